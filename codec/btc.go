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
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	stageBase58 = "base58"
	stageBech32 = "bech32"
)

// DecodeBase58 decodes text in the Bitcoin Base58 alphabet
func DecodeBase58(encoded string) (string, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return "", nil
	}
	decoded := base58.Decode(encoded)
	// The library signals bad input with an empty result
	if len(decoded) == 0 {
		return "", newDecodeError(stageBase58, encoded, ErrInvalidBase58)
	}
	return string(decoded), nil
}

// DecodeBech32 decodes a Bech32 string of any length and returns its data
// part as text. The human-readable prefix is discarded.
func DecodeBech32(encoded string) (string, error) {
	encoded = strings.TrimSpace(encoded)
	_, data, err := bech32.DecodeNoLimit(encoded)
	if err != nil {
		return "", &DecodeError{
			Stage: stageBech32,
			Group: encoded,
			Err:   fmt.Errorf("%w: %w", ErrInvalidBech32, err),
		}
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", &DecodeError{
			Stage: stageBech32,
			Group: encoded,
			Err:   fmt.Errorf("%w: %w", ErrInvalidBech32, err),
		}
	}
	return string(decoded), nil
}
