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
	"strings"
	"unicode/utf8"
)

const (
	stageRot = "rot"

	// latinLetters is the period of a rotation restricted to A-Z and a-z
	latinLetters = 26
)

// DecodeRot shifts every character of the input by shift code points. The
// shift must already point in the decoding direction.
//
// When fullCharset is false only the Latin letters move, wrapping within their
// own case, and every other byte is left untouched. When it is true every
// character moves without wrapping; a result that is not a valid code point
// fails the decode.
func DecodeRot(encoded string, shift int, fullCharset bool) (string, error) {
	if !fullCharset {
		shift %= latinLetters
	}
	if shift == 0 {
		return encoded, nil
	}
	if !fullCharset {
		return rotateLatin(encoded, shift), nil
	}
	var sb strings.Builder
	sb.Grow(len(encoded))
	for _, r := range encoded {
		shifted := int64(r) + int64(shift)
		if shifted < 0 || shifted > utf8.MaxRune || !utf8.ValidRune(rune(shifted)) {
			return "", newDecodeError(stageRot, string(r), ErrInvalidCodePoint)
		}
		sb.WriteRune(rune(shifted))
	}
	return sb.String(), nil
}

// rotateLatin works on bytes. Only ASCII letters move, so multi-byte
// characters and bytes that are not valid UTF-8 pass through unchanged.
func rotateLatin(encoded string, shift int) string {
	buf := []byte(encoded)
	for i, b := range buf {
		var first byte
		switch {
		case b >= 'A' && b <= 'Z':
			first = 'A'
		case b >= 'a' && b <= 'z':
			first = 'a'
		default:
			continue
		}
		offset := (int(b-first) + shift) % latinLetters
		if offset < 0 {
			offset += latinLetters
		}
		buf[i] = first + byte(offset)
	}
	return string(buf)
}
