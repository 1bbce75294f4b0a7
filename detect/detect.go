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

// Package detect guesses which encoding produced a string
package detect

import (
	"regexp"
	"strings"
)

// None is returned when no rule matches
const None = ""

type rule struct {
	suggestion string
	re         *regexp.Regexp
}

// Rules are tested in order and the first match wins
var rules = []rule{
	{suggestion: "html", re: regexp.MustCompile(`^(&#x[a-f0-9]+;)+$`)},
	{suggestion: "unicode", re: regexp.MustCompile(`^(\\u[a-f0-9]{4})+$`)},
	{suggestion: "base64", re: regexp.MustCompile(`^[A-Za-z0-9=]+$`)},
	{suggestion: "ascii", re: regexp.MustCompile(`^[0-9 ]+$`)},
	{suggestion: "hex", re: regexp.MustCompile(`^[0-9a-f ]+$`)},
	{suggestion: "binary", re: regexp.MustCompile(`^[0-1 ]+$`)},
	{suggestion: "unary", re: regexp.MustCompile(`^[1 ]+$`)},
}

// Suggest returns the name of the encoding the trimmed input most likely
// uses, or None
func Suggest(encoded string) string {
	encoded = strings.TrimSpace(encoded)
	for _, r := range rules {
		if r.re.MatchString(encoded) {
			return r.suggestion
		}
	}
	return None
}

