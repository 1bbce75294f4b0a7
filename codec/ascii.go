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
	"math/big"
	"strings"
	"unicode/utf8"
)

const stageASCII = "ascii"

// DecodeASCII turns space-separated base-10 code points into the characters
// they name. Any group that is not an integer or not a valid code point fails
// the whole decode. Empty input decodes to empty output.
func DecodeASCII(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	var sb strings.Builder
	for _, group := range strings.Split(encoded, GroupSeparator) {
		r, err := codePoint(group)
		if err != nil {
			return "", newDecodeError(stageASCII, group, err)
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// codePoint parses a base-10 group into a rune
func codePoint(group string) (rune, error) {
	n, ok := new(big.Int).SetString(group, 10)
	if !ok || !n.IsInt64() {
		return 0, ErrInvalidCodePoint
	}
	v := n.Int64()
	if v < 0 || v > utf8.MaxRune || !utf8.ValidRune(rune(v)) {
		return 0, ErrInvalidCodePoint
	}
	return rune(v), nil
}
