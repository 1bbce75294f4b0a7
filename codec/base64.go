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
	"encoding/base64"
	"strings"
)

const stageBase64 = "base64"

// DecodeBase64 decodes standard Base64 text. ASCII whitespace is ignored and
// padding is optional, but a lone trailing symbol or characters outside the
// alphabet fail the decode. The decoded bytes are returned unchanged.
func DecodeBase64(encoded string) (string, error) {
	cleaned := strings.Map(
		func(r rune) rune {
			switch r {
			case ' ', '\t', '\n', '\f', '\r':
				return -1
			}
			return r
		},
		encoded,
	)
	if len(cleaned)%4 == 0 {
		for range 2 {
			cleaned = strings.TrimSuffix(cleaned, "=")
		}
	}
	if len(cleaned)%4 == 1 {
		return "", newDecodeError(stageBase64, "", ErrInvalidBase64)
	}
	decoded, err := base64.RawStdEncoding.DecodeString(cleaned)
	if err != nil {
		return "", newDecodeError(stageBase64, "", ErrInvalidBase64)
	}
	return string(decoded), nil
}
