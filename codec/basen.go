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
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// GroupSeparator separates digit groups and code points in numeric stages
	GroupSeparator = " "

	// NaN is what a malformed digit group decodes to
	NaN = "NaN"

	// MinRadix is the smallest radix ParseGroup accepts
	MinRadix = 2
	// MaxRadix is the largest radix ParseGroup accepts, using digits 0-9 and a-z
	MaxRadix = 36
)

// ParseGroup parses a single digit group in the given radix and returns its
// base-10 rendering. Groups of any length are supported.
func ParseGroup(group string, radix int) (string, error) {
	if radix < MinRadix || radix > MaxRadix {
		return "", fmt.Errorf("codec: unsupported radix %d", radix)
	}
	if group == "" {
		return "", ErrMalformedDigitGroup
	}
	n, ok := new(big.Int).SetString(group, radix)
	if !ok {
		return "", ErrMalformedDigitGroup
	}
	return n.String(), nil
}

// DecodeBaseN converts space-separated digit groups in the given radix into
// space-separated base-10 values. A malformed group decodes to NaN and does
// not stop the remaining groups from being decoded.
func DecodeBaseN(encoded string, radix int) string {
	groups := strings.Split(encoded, GroupSeparator)
	for i, group := range groups {
		value, err := ParseGroup(group, radix)
		if err != nil {
			value = NaN
		}
		groups[i] = value
	}
	return strings.Join(groups, GroupSeparator)
}

// DecodeUnary replaces every space-separated group with its length in characters.
// Only the count matters, so any symbol may be used for the tally.
func DecodeUnary(encoded string) string {
	groups := strings.Split(encoded, GroupSeparator)
	for i, group := range groups {
		groups[i] = strconv.Itoa(utf8.RuneCountInString(group))
	}
	return strings.Join(groups, GroupSeparator)
}
