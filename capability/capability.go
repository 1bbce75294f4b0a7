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

// Package capability describes the parameters and encodings a decoder accepts
package capability

import (
	"maps"
	"slices"
)

// Parameter names of the decode entry point
var parameters = []string{"encodedString", "pattern"}

// Descriptions of the tokens that are not aliases
var encodings = map[string]string{
	"ascii":    "ASCII encoding",
	"base<x>":  "different numbering systems where x is the base of the numbering system; x can be one of: 1, 2, 3, 4, 5, 6, 7, 8, 12, 16, 20, 58, 64",
	"base<x>a": "building onto base (see base<x>) additionally an ASCII decoding (see ascii) is performed after the base",
	"bech32":   "Bech32 encoding; the human-readable prefix is discarded",
	"bech32a":  "building onto bech32 (see bech32) additionally an ASCII decoding (see ascii) is performed",
	"html":     "HTML based encoding",
	"rot<x>":   "rotate the characters by x (can be negative); only rotates the base latin letters in the ASCII table",
	"rot<x>a":  "building onto rot (see rot<x>) the string is rotated regardless of the position on the ASCII / Unicode table",
	"unicode":  "Unicode based encoding",
}

// Listing is the capability report returned when no input is given
type Listing struct {
	Parameters []string          `json:"parameters" cbor:"parameters"`
	Encodings  map[string]string `json:"encodings" cbor:"encodings"`
}

// New builds the listing for a decoder using the given alias table
func New(aliases map[string]string) Listing {
	ret := Listing{
		Parameters: slices.Clone(parameters),
		Encodings:  maps.Clone(encodings),
	}
	for name, target := range aliases {
		if _, ok := ret.Encodings[name]; ok {
			continue
		}
		ret.Encodings[name] = "see " + target
	}
	return ret
}

// Names returns the listed encoding names in sorted order
func (l Listing) Names() []string {
	return slices.Sorted(maps.Keys(l.Encodings))
}
