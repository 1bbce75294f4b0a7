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

package pattern

import (
	"maps"
	"strings"
)

// defaultAliases maps short names to the canonical token they stand for.
// Alias targets are never aliases themselves.
var defaultAliases = map[string]string{
	"binary":     "base2",
	"duodec":     "base12",
	"hex":        "base16",
	"oct":        "base8",
	"pental":     "base5",
	"quaternary": "base4",
	"senary":     "base6",
	"septenary":  "base7",
	"trinary":    "base3",
	"unary":      "base1",
	"vigesimal":  "base20",
}

// DefaultAliases returns a copy of the built-in alias table
func DefaultAliases() map[string]string {
	return maps.Clone(defaultAliases)
}

// mergeAliases returns the built-in aliases overlaid with extra. Keys and
// values are normalized the same way pattern tokens are.
func mergeAliases(extra map[string]string) map[string]string {
	ret := DefaultAliases()
	for name, target := range extra {
		name = normalizeToken(name)
		if name == "" {
			continue
		}
		ret[name] = normalizeToken(target)
	}
	return ret
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}
