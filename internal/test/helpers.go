package test

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

// The encoders below are the inverse of the decoders under test. They don't return
// an error value, which makes them usable inline.

// EncodeBaseN renders every character of text as its code point in the given radix
func EncodeBaseN(text string, radix int) string {
	groups := []string{}
	for _, r := range text {
		groups = append(groups, strconv.FormatInt(int64(r), radix))
	}
	return strings.Join(groups, " ")
}

// EncodeCodePoints renders every character of text as its base-10 code point
func EncodeCodePoints(text string) string {
	return EncodeBaseN(text, 10)
}

// EncodeUnary renders every value as a run of symbol of that length
func EncodeUnary(values []int, symbol string) string {
	groups := make([]string, 0, len(values))
	for _, v := range values {
		groups = append(groups, strings.Repeat(symbol, v))
	}
	return strings.Join(groups, " ")
}

// EncodeRot shifts Latin letters forward by shift, wrapping within each case,
// or every character when fullCharset is set
func EncodeRot(text string, shift int, fullCharset bool) string {
	var sb strings.Builder
	for _, r := range text {
		switch {
		case fullCharset:
			r += rune(shift)
		case r >= 'A' && r <= 'Z':
			r = 'A' + rune(((int(r-'A')+shift)%26+26)%26)
		case r >= 'a' && r <= 'z':
			r = 'a' + rune(((int(r-'a')+shift)%26+26)%26)
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// EncodeUnicode renders every character of text as a \uXXXX escape
func EncodeUnicode(text string) string {
	var sb strings.Builder
	for _, r := range text {
		fmt.Fprintf(&sb, "\\u%04x", r)
	}
	return sb.String()
}

// EncodeHTML renders every character of text as a numeric character reference
func EncodeHTML(text string, hex bool) string {
	var sb strings.Builder
	for _, r := range text {
		if hex {
			fmt.Fprintf(&sb, "&#x%x;", r)
		} else {
			fmt.Fprintf(&sb, "&#%d;", r)
		}
	}
	return sb.String()
}

// EncodeBase64 is standard padded Base64
func EncodeBase64(text string) string {
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// EncodeBase58 uses the Bitcoin alphabet
func EncodeBase58(text string) string {
	return base58.Encode([]byte(text))
}

// EncodeBech32 encodes text as the data part of a Bech32 string with the given prefix
func EncodeBech32(hrp string, text string) string {
	data, err := bech32.ConvertBits([]byte(text), 8, 5, true)
	if err != nil {
		panic(fmt.Sprintf("error converting bits: %s", err))
	}
	encoded, err := bech32.Encode(hrp, data)
	if err != nil {
		panic(fmt.Sprintf("error encoding bech32: %s", err))
	}
	return encoded
}
