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
	"testing"

	"github.com/blinklabs-io/nesteddecoder/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase58(t *testing.T) {
	decoded, err := DecodeBase58("Cn8eVZg")
	require.NoError(t, err)
	assert.Equal(t, "hello", decoded)

	decoded, err = DecodeBase58(test.EncodeBase58("nested decoder"))
	require.NoError(t, err)
	assert.Equal(t, "nested decoder", decoded)

	decoded, err = DecodeBase58("")
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeBase58Invalid(t *testing.T) {
	// 0, O, I and l are not part of the alphabet
	for _, encoded := range []string{"0abc", "OIl"} {
		_, err := DecodeBase58(encoded)
		assert.ErrorIs(t, err, ErrInvalidBase58, "input %q", encoded)
	}
}

func TestDecodeBech32(t *testing.T) {
	encoded := test.EncodeBech32("msg", "hello")
	decoded, err := DecodeBech32(encoded)
	require.NoError(t, err)
	assert.Equal(t, "hello", decoded)
}

func TestDecodeBech32Invalid(t *testing.T) {
	encoded := test.EncodeBech32("msg", "hello")
	// Corrupt the checksum
	last := encoded[len(encoded)-1]
	replacement := byte('q')
	if last == 'q' {
		replacement = 'p'
	}
	corrupted := encoded[:len(encoded)-1] + string(replacement)
	_, err := DecodeBech32(corrupted)
	assert.ErrorIs(t, err, ErrInvalidBech32)

	_, err = DecodeBech32("not bech32")
	assert.ErrorIs(t, err, ErrInvalidBech32)
}
