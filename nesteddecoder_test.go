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

package nesteddecoder_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"testing"

	nesteddecoder "github.com/blinklabs-io/nesteddecoder"
	"github.com/blinklabs-io/nesteddecoder/codec"
	"github.com/blinklabs-io/nesteddecoder/internal/test"
	"github.com/blinklabs-io/nesteddecoder/internal/testdata"
	"github.com/blinklabs-io/nesteddecoder/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeVectors(t *testing.T) {
	d := nesteddecoder.New()
	for _, vector := range testdata.GetDecodeVectors() {
		t.Run(vector.Pattern, func(t *testing.T) {
			decoded, err := d.Decode(vector.Input, vector.Pattern)
			require.NoError(t, err)
			assert.Equal(t, vector.Expected, decoded)
		})
	}
}

func TestDecodeTokens(t *testing.T) {
	d := nesteddecoder.New()
	decoded, err := d.DecodeTokens(
		"01101000 01100101 01101100 01101100 01101111",
		[]string{"Binary", "ASCII"},
	)
	require.NoError(t, err)
	assert.Equal(t, "hello", decoded)
}

func TestExecuteWithoutStagesIsIdentity(t *testing.T) {
	d := nesteddecoder.New()
	for _, input := range []string{"", "hello", "  spaced  ", "&#65;", "\\u0041"} {
		decoded, err := d.Execute(input, nil)
		require.NoError(t, err)
		assert.Equal(t, input, decoded)
		decoded, err = d.Decode(input, "")
		require.NoError(t, err)
		assert.Equal(t, input, decoded)
	}
}

func TestUnknownTokensDoNotAffectNeighbors(t *testing.T) {
	d := nesteddecoder.New()
	input := "68 65 6c 6c 6f"
	expected, err := d.Decode(input, "hex,ascii")
	require.NoError(t, err)
	for _, p := range []string{
		"nope,hex,ascii",
		"hex,nope,ascii",
		"hex,ascii,nope",
		"hex,,ascii",
		"base99,hex,rotx,ascii",
	} {
		decoded, err := d.Decode(input, p)
		require.NoError(t, err, "pattern %q", p)
		assert.Equal(t, expected, decoded, "pattern %q", p)
	}
}

func TestDecodeIsOrderSensitive(t *testing.T) {
	d := nesteddecoder.New()
	decoded, err := d.Decode("dXJ5eWI=", "base64,rot13")
	require.NoError(t, err)
	assert.Equal(t, "hello", decoded)

	// Rotating first changes the Base64 text and produces something else
	decoded, err = d.Decode("dXJ5eWI=", "rot13,base64")
	require.NoError(t, err)
	assert.NotEqual(t, "hello", decoded)
}

func TestDecodeCompoundMatchesChain(t *testing.T) {
	d := nesteddecoder.New()
	text := "Compound stages"
	for _, radix := range []int{2, 3, 4, 5, 6, 7, 8, 12, 16, 20} {
		encoded := test.EncodeBaseN(text, radix)
		compound, err := d.Decode(encoded, "base"+strconv.Itoa(radix)+"a")
		require.NoError(t, err)
		chained, err := d.Decode(encoded, "base"+strconv.Itoa(radix)+",ascii")
		require.NoError(t, err)
		assert.Equal(t, text, compound, "radix %d", radix)
		assert.Equal(t, compound, chained, "radix %d", radix)
	}
}

func TestDecodeRoundTrips(t *testing.T) {
	d := nesteddecoder.New()
	text := "Round trip: ok?"

	decoded, err := d.Decode(test.EncodeUnary([]int{3, 1, 4}, "|"), "unary")
	require.NoError(t, err)
	assert.Equal(t, "3 1 4", decoded)

	decoded, err = d.Decode(test.EncodeBase64(text), "base64")
	require.NoError(t, err)
	assert.Equal(t, text, decoded)

	decoded, err = d.Decode(test.EncodeBase58(text), "base58")
	require.NoError(t, err)
	assert.Equal(t, text, decoded)

	decoded, err = d.Decode(test.EncodeBech32("txt", text), "bech32")
	require.NoError(t, err)
	assert.Equal(t, text, decoded)

	decoded, err = d.Decode(test.EncodeRot(text, 7, false), "rot7")
	require.NoError(t, err)
	assert.Equal(t, text, decoded)

	decoded, err = d.Decode(test.EncodeRot(text, 300, true), "rot300a")
	require.NoError(t, err)
	assert.Equal(t, text, decoded)

	// Nest several encodings and peel them off again
	nested := test.EncodeHTML(test.EncodeBase64(test.EncodeBaseN(test.EncodeRot(text, 13, false), 2)), true)
	decoded, err = d.Decode(nested, "html,base64,binary,ascii,rot13")
	require.NoError(t, err)
	assert.Equal(t, text, decoded)
}

func TestDecodeErrors(t *testing.T) {
	d := nesteddecoder.New()

	_, err := d.Decode("6g", "hex,ascii")
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrInvalidCodePoint)
	assert.True(t, strings.HasPrefix(err.Error(), "stage 1 (ascii): "), err.Error())

	_, err = d.Decode("not*base64", "base64")
	assert.ErrorIs(t, err, codec.ErrInvalidBase64)

	_, err = d.Decode("A", "rot66a")
	assert.ErrorIs(t, err, codec.ErrInvalidCodePoint)

	var decodeErr *codec.DecodeError
	_, err = d.Decode("65 x", "ascii")
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "x", decodeErr.Group)
}

func TestMalformedGroupsDegrade(t *testing.T) {
	d := nesteddecoder.New()
	decoded, err := d.Decode("101 2 11", "binary")
	require.NoError(t, err)
	assert.Equal(t, "5 NaN 3", decoded)
}

func TestRotKeepsNonUTF8Bytes(t *testing.T) {
	d := nesteddecoder.New()
	// Base64 output that is Latin-1, not UTF-8
	for _, p := range []string{"base64,rot26", "base64,rot13,rot13"} {
		decoded, err := d.Decode("6XVyeXli", p)
		require.NoError(t, err)
		assert.Equal(t, "\xe9uryyb", decoded, p)
	}
	decoded, err := d.Decode("6XVyeXli", "base64,rot13")
	require.NoError(t, err)
	assert.Equal(t, "\xe9hello", decoded)
}

func TestApplyStage(t *testing.T) {
	decoded, err := nesteddecoder.ApplyStage(pattern.BaseN(16, true), "68 69")
	require.NoError(t, err)
	assert.Equal(t, "hi", decoded)

	_, err = nesteddecoder.ApplyStage(pattern.Stage{}, "68 69")
	assert.Error(t, err)
}

func TestWithAliases(t *testing.T) {
	d := nesteddecoder.New(
		nesteddecoder.WithAliases(map[string]string{"bits": "base2a"}),
	)
	decoded, err := d.Decode("1101000 1101001", "bits")
	require.NoError(t, err)
	assert.Equal(t, "hi", decoded)
	assert.Equal(t, "see base2a", d.Options().Encodings["bits"])

	// Other decoders are unaffected
	_, ok := nesteddecoder.New().Options().Encodings["bits"]
	assert.False(t, ok)
}

func TestWithLoggerReportsUnknownTokens(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d := nesteddecoder.New(nesteddecoder.WithLogger(logger))
	_, err := d.Decode("uryyb", "mystery,rot13")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ignoring unknown pattern token")
	assert.Contains(t, buf.String(), "token=mystery")
	assert.Contains(t, buf.String(), "stage=rot13")
}

func TestWithCacheSize(t *testing.T) {
	d := nesteddecoder.New(nesteddecoder.WithCacheSize(2))
	for range 3 {
		decoded, err := d.Decode("uryyb", "rot13")
		require.NoError(t, err)
		assert.Equal(t, "hello", decoded)
	}
	// Aliases resolve to the same stages and share cache entries
	first, err := d.Decode("68 69", "hex,ascii")
	require.NoError(t, err)
	second, err := d.Decode("68 69", "base16,ascii")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	// Failures are never cached
	for range 2 {
		_, err = d.Decode("x", "ascii")
		assert.Error(t, err)
	}
}

func TestConcurrentDecode(t *testing.T) {
	d := nesteddecoder.New(nesteddecoder.WithCacheSize(8))
	vectors := testdata.GetDecodeVectors()
	var wg sync.WaitGroup
	errs := make(chan error, 64*len(vectors))
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, vector := range vectors {
				decoded, err := d.Decode(vector.Input, vector.Pattern)
				if err != nil {
					errs <- err
					continue
				}
				if decoded != vector.Expected {
					errs <- errors.New("unexpected result for " + vector.Pattern)
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
