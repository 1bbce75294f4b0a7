// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package codec

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const (
	unicodeMarker = `\u`
	unicodeDigits = 4

	htmlMarker     = "&#"
	htmlTerminator = ";"
)

// DecodeUnicode extracts every \uXXXX escape from the input and decodes it.
// Text outside of escapes is dropped, so input without escapes decodes to an
// empty string. An escape cut short at the end of the input uses whatever
// digits remain. A high surrogate escape followed by a low surrogate escape
// decodes to the single character the pair encodes; an unpaired surrogate
// degrades to U+FFFD.
func DecodeUnicode(encoded string) string {
	rest := strings.TrimSpace(encoded)
	var sb strings.Builder
	for {
		idx := strings.Index(rest, unicodeMarker)
		if idx < 0 {
			break
		}
		rest = rest[idx+len(unicodeMarker):]
		n := min(unicodeDigits, len(rest))
		if r, next, ok := surrogatePair(rest[:n], rest[n:]); ok {
			sb.WriteRune(r)
			rest = next
			continue
		}
		sb.WriteString(decodeMarkerDigits(rest[:n], 16))
		rest = rest[n:]
	}
	return sb.String()
}

// surrogatePair joins a high surrogate with the next escape in rest. Text
// between the two is dropped like any other text outside of escapes. It
// returns the input remaining after the second escape.
func surrogatePair(digits, rest string) (rune, string, bool) {
	high, ok := surrogate(digits)
	if !ok {
		return 0, "", false
	}
	idx := strings.Index(rest, unicodeMarker)
	if idx < 0 {
		return 0, "", false
	}
	rest = rest[idx+len(unicodeMarker):]
	n := min(unicodeDigits, len(rest))
	low, ok := surrogate(rest[:n])
	if !ok {
		return 0, "", false
	}
	r := utf16.DecodeRune(high, low)
	if r == utf8.RuneError {
		return 0, "", false
	}
	return r, rest[n:], true
}

func surrogate(digits string) (rune, bool) {
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || !utf16.IsSurrogate(rune(v)) {
		return 0, false
	}
	return rune(v), true
}

// DecodeHTML extracts every numeric character reference from the input and
// decodes it. References are decimal (&#104;) or hexadecimal (&#x68;). Text
// outside of references is dropped. A reference without its closing ';' runs
// to the end of the input.
func DecodeHTML(encoded string) string {
	rest := strings.TrimSpace(encoded)
	var sb strings.Builder
	for {
		idx := strings.Index(rest, htmlMarker)
		if idx < 0 {
			break
		}
		rest = rest[idx+len(htmlMarker):]
		radix := 10
		if strings.HasPrefix(rest, "x") || strings.HasPrefix(rest, "X") {
			radix = 16
			rest = rest[1:]
		}
		var digits string
		if end := strings.Index(rest, htmlTerminator); end >= 0 {
			digits = rest[:end]
			rest = rest[end+len(htmlTerminator):]
		} else {
			digits = rest
			rest = ""
		}
		sb.WriteString(decodeMarkerDigits(digits, radix))
	}
	return sb.String()
}

// decodeMarkerDigits runs the digits of one escape through the base-N and
// ASCII decoders. Digits that do not name a character degrade to U+FFFD.
func decodeMarkerDigits(digits string, radix int) string {
	ret, err := DecodeASCII(DecodeBaseN(digits, radix))
	if err != nil {
		return string(utf8.RuneError)
	}
	return ret
}
