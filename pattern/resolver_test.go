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
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAliases(t *testing.T) {
	r := NewResolver(nil)
	expected := map[string]Stage{
		"binary":     BaseN(2, false),
		"trinary":    BaseN(3, false),
		"quaternary": BaseN(4, false),
		"pental":     BaseN(5, false),
		"senary":     BaseN(6, false),
		"septenary":  BaseN(7, false),
		"oct":        BaseN(8, false),
		"duodec":     BaseN(12, false),
		"hex":        BaseN(16, false),
		"vigesimal":  BaseN(20, false),
		"unary":      {Kind: KindUnary},
	}
	for alias, stage := range expected {
		got, ok := r.ResolveToken(alias)
		assert.True(t, ok, "alias %s", alias)
		assert.Equal(t, stage, got, "alias %s", alias)
		// Every alias names a canonical base token
		target, ok := r.ResolveToken(DefaultAliases()[alias])
		assert.True(t, ok)
		assert.Equal(t, got, target)
	}
	assert.Len(t, DefaultAliases(), len(expected))
}

func TestResolveString(t *testing.T) {
	testDefs := []struct {
		pattern  string
		expected []Stage
	}{
		{
			pattern:  "binary,ascii",
			expected: []Stage{BaseN(2, false), ASCII()},
		},
		{
			pattern:  "base16a",
			expected: []Stage{BaseN(16, true)},
		},
		{
			pattern:  "BASE2A,Rot13",
			expected: []Stage{BaseN(2, true), Rot(13, false)},
		},
		{
			pattern:  "rot13",
			expected: []Stage{{Kind: KindRot, Shift: -13}},
		},
		{
			pattern:  "rot-5a",
			expected: []Stage{{Kind: KindRot, Shift: 5, FullCharset: true}},
		},
		{
			pattern:  "base1,base1a,base64,base64a",
			expected: []Stage{{Kind: KindUnary}, {Kind: KindUnary, ThenASCII: true}, {Kind: KindBase64}, {Kind: KindBase64, ThenASCII: true}},
		},
		{
			pattern:  "html,unicode,base58,bech32a",
			expected: []Stage{{Kind: KindHTML}, {Kind: KindUnicode}, {Kind: KindBase58}, {Kind: KindBech32, ThenASCII: true}},
		},
		{
			// Surrounding whitespace is ignored
			pattern:  " hex , ascii ",
			expected: []Stage{BaseN(16, false), ASCII()},
		},
		{
			pattern:  "",
			expected: []Stage{},
		},
	}
	r := NewResolver(nil)
	for _, testDef := range testDefs {
		got := r.ResolveString(testDef.pattern)
		if diff := cmp.Diff(testDef.expected, got); diff != "" {
			t.Errorf("pattern %q: stages mismatch (-want +got):\n%s", testDef.pattern, diff)
		}
	}
}

func TestResolveUnknownTokensAreSkipped(t *testing.T) {
	r := NewResolver(nil)
	for _, token := range []string{
		"nope",
		"base",
		"basea",
		"base0",
		"base37",
		"base99",
		"basexa",
		"rot",
		"rota",
		"rot13b",
		"rotx",
		"rot-9223372036854775808",
		"rot-9223372036854775808a",
		"hexa",
		"",
	} {
		_, ok := r.ResolveToken(token)
		assert.False(t, ok, "token %q", token)
	}
	got := r.Resolve([]string{"binary", "bogus", "ascii"})
	if diff := cmp.Diff([]Stage{BaseN(2, false), ASCII()}, got); diff != "" {
		t.Errorf("stages mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveRotExtremes(t *testing.T) {
	r := NewResolver(nil)
	got, ok := r.ResolveToken("rot" + strconv.Itoa(math.MaxInt))
	require.True(t, ok)
	assert.Equal(t, -math.MaxInt, got.Shift)
	got, ok = r.ResolveToken("rot" + strconv.Itoa(math.MinInt+1) + "a")
	require.True(t, ok)
	assert.Equal(t, math.MaxInt, got.Shift)
	_, ok = r.ResolveToken("rot" + strconv.Itoa(math.MinInt))
	assert.False(t, ok)
}

func TestResolveExtraAliases(t *testing.T) {
	r := NewResolver(map[string]string{
		" Bin ": "BASE2",
		"hex":   "base16a",
		"":      "base8",
	})
	got := r.ResolveString("bin,hex,oct")
	expected := []Stage{BaseN(2, false), BaseN(16, true), BaseN(8, false)}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("stages mismatch (-want +got):\n%s", diff)
	}
	// The built-in table is untouched
	assert.Equal(t, "base16", DefaultAliases()["hex"])
	assert.Equal(t, "base2", r.Aliases()["bin"])
}

func TestStageString(t *testing.T) {
	testDefs := map[string]Stage{
		"ascii":   ASCII(),
		"base16":  BaseN(16, false),
		"base2a":  BaseN(2, true),
		"base1":   {Kind: KindUnary},
		"base64a": {Kind: KindBase64, ThenASCII: true},
		"rot13":   Rot(13, false),
		"rot-3a":  Rot(-3, true),
		"html":    {Kind: KindHTML},
		"bech32a": {Kind: KindBech32, ThenASCII: true},
	}
	r := NewResolver(nil)
	for token, stage := range testDefs {
		assert.Equal(t, token, stage.String())
		// The canonical token resolves back to the same stage
		resolved, ok := r.ResolveToken(token)
		assert.True(t, ok, "token %q", token)
		assert.Equal(t, stage, resolved)
	}
}
