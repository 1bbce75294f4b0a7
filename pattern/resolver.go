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
	"math"
	"strconv"
	"strings"

	"github.com/blinklabs-io/nesteddecoder/codec"
)

const (
	tokenSeparator = ","

	baseTokenPrefix     = "base"
	rotTokenPrefix      = "rot"
	compoundTokenSuffix = "a"

	radixUnary  = 1
	radixBase58 = 58
	radixBase64 = 64
)

// Resolver turns pattern tokens into stages. It is safe for concurrent use;
// its alias table cannot change after construction.
type Resolver struct {
	aliases map[string]string
}

// NewResolver returns a Resolver using the built-in aliases plus any extra
// aliases given. Extra aliases override built-in ones with the same name.
func NewResolver(extraAliases map[string]string) *Resolver {
	return &Resolver{
		aliases: mergeAliases(extraAliases),
	}
}

// Aliases returns a copy of the resolver's alias table
func (r *Resolver) Aliases() map[string]string {
	return maps.Clone(r.aliases)
}

// Split breaks a comma-delimited pattern into its tokens
func Split(pattern string) []string {
	return strings.Split(pattern, tokenSeparator)
}

// ResolveString resolves a comma-delimited pattern
func (r *Resolver) ResolveString(pattern string) []Stage {
	return r.Resolve(Split(pattern))
}

// Resolve resolves tokens in order, skipping any that are not recognized
func (r *Resolver) Resolve(tokens []string) []Stage {
	ret := make([]Stage, 0, len(tokens))
	for _, token := range tokens {
		if stage, ok := r.ResolveToken(token); ok {
			ret = append(ret, stage)
		}
	}
	return ret
}

// ResolveToken resolves a single token. The boolean result is false when the
// token is not recognized.
func (r *Resolver) ResolveToken(token string) (Stage, bool) {
	token = normalizeToken(token)
	if target, ok := r.aliases[token]; ok {
		token = target
	}
	switch {
	case strings.HasPrefix(token, baseTokenPrefix):
		return resolveBase(strings.TrimPrefix(token, baseTokenPrefix))
	case strings.HasPrefix(token, rotTokenPrefix):
		return resolveRot(strings.TrimPrefix(token, rotTokenPrefix))
	}
	switch token {
	case "ascii":
		return Stage{Kind: KindASCII}, true
	case "html":
		return Stage{Kind: KindHTML}, true
	case "unicode":
		return Stage{Kind: KindUnicode}, true
	case "bech32":
		return Stage{Kind: KindBech32}, true
	case "bech32" + compoundTokenSuffix:
		return Stage{Kind: KindBech32, ThenASCII: true}, true
	}
	return Stage{}, false
}

func resolveBase(suffix string) (Stage, bool) {
	thenASCII := false
	if strings.HasSuffix(suffix, compoundTokenSuffix) {
		thenASCII = true
		suffix = strings.TrimSuffix(suffix, compoundTokenSuffix)
	}
	radix, err := strconv.Atoi(suffix)
	if err != nil {
		return Stage{}, false
	}
	var ret Stage
	switch {
	case radix == radixUnary:
		ret = Stage{Kind: KindUnary}
	case radix == radixBase64:
		ret = Stage{Kind: KindBase64}
	case radix == radixBase58:
		ret = Stage{Kind: KindBase58}
	case radix >= codec.MinRadix && radix <= codec.MaxRadix:
		ret = Stage{Kind: KindBaseN, Radix: radix}
	default:
		return Stage{}, false
	}
	ret.ThenASCII = thenASCII
	return ret, true
}

func resolveRot(suffix string) (Stage, bool) {
	fullCharset := false
	if strings.HasSuffix(suffix, compoundTokenSuffix) {
		fullCharset = true
		suffix = strings.TrimSuffix(suffix, compoundTokenSuffix)
	}
	move, err := strconv.Atoi(suffix)
	// The undoing shift is -move, which has no int value for math.MinInt
	if err != nil || move == math.MinInt {
		return Stage{}, false
	}
	return Rot(move, fullCharset), true
}
