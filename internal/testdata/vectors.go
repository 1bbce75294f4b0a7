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

// Package testdata provides shared decode vectors for tests.
package testdata

import (
	_ "embed"
	"strings"
)

// Tab-separated pattern, input and expected output, one vector per line
//
//go:embed vectors.tsv
var vectorsTsv string

// DecodeVector is a pattern applied to an input together with the expected output
type DecodeVector struct {
	Pattern  string
	Input    string
	Expected string
}

// GetDecodeVectors returns the end-to-end decode vectors
func GetDecodeVectors() []DecodeVector {
	var ret []DecodeVector
	for _, line := range strings.Split(vectorsTsv, "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			panic("malformed decode vector: " + line)
		}
		ret = append(
			ret,
			DecodeVector{
				Pattern:  fields[0],
				Input:    fields[1],
				Expected: fields[2],
			},
		)
	}
	return ret
}
