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

// Package pattern turns decode patterns into the ordered stages a decoder applies.
//
// A pattern is a comma-delimited list of tokens such as "binary,ascii" or
// "rot13". Tokens are case-insensitive. Short names like "hex" are aliases
// for a "base<N>" token, "base<N>a" and "rot<N>a" select the compound forms,
// and tokens that are not recognized are skipped.
package pattern

import (
	"strconv"
)

// Kind identifies the decoder a stage runs
type Kind uint8

const (
	KindASCII Kind = iota + 1
	KindHTML
	KindUnicode
	KindBase64
	KindBaseN
	KindUnary
	KindRot
	KindBase58
	KindBech32
)

func (k Kind) String() string {
	switch k {
	case KindASCII:
		return "ascii"
	case KindHTML:
		return "html"
	case KindUnicode:
		return "unicode"
	case KindBase64:
		return "base64"
	case KindBaseN:
		return "baseN"
	case KindUnary:
		return "unary"
	case KindRot:
		return "rot"
	case KindBase58:
		return "base58"
	case KindBech32:
		return "bech32"
	default:
		return "unknown"
	}
}

// Stage is one resolved pattern token
type Stage struct {
	Kind Kind
	// Radix is set for KindBaseN
	Radix int
	// Shift is the decoding shift for KindRot. It is the negation of the
	// shift named in the token.
	Shift int
	// FullCharset rotates every character instead of only Latin letters
	FullCharset bool
	// ThenASCII chains the ASCII decoder after the stage's own decoder
	ThenASCII bool
}

// String returns the canonical token for the stage
func (s Stage) String() string {
	var ret string
	switch s.Kind {
	case KindBaseN:
		ret = baseTokenPrefix + strconv.Itoa(s.Radix)
	case KindUnary:
		ret = baseTokenPrefix + "1"
	case KindRot:
		ret = rotTokenPrefix + strconv.Itoa(-s.Shift)
		if s.FullCharset {
			ret += compoundTokenSuffix
		}
	default:
		ret = s.Kind.String()
	}
	if s.ThenASCII {
		ret += compoundTokenSuffix
	}
	return ret
}

// ASCII returns a stage that only runs the ASCII decoder
func ASCII() Stage {
	return Stage{Kind: KindASCII}
}

// BaseN returns a stage decoding digit groups in the given radix
func BaseN(radix int, thenASCII bool) Stage {
	return Stage{Kind: KindBaseN, Radix: radix, ThenASCII: thenASCII}
}

// Rot returns a stage that undoes a rotation by shift
func Rot(shift int, fullCharset bool) Stage {
	return Stage{Kind: KindRot, Shift: -shift, FullCharset: fullCharset}
}
