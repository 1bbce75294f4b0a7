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
	"errors"
	"fmt"
)

var (
	// ErrMalformedDigitGroup is returned by ParseGroup when a digit group holds
	// characters outside the digit set of its radix
	ErrMalformedDigitGroup = errors.New("codec: malformed digit group")
	// ErrInvalidCodePoint is returned when a value cannot be turned into a character
	ErrInvalidCodePoint = errors.New("codec: invalid code point")
	// ErrInvalidBase64 is returned for input outside the Base64 alphabet or with bad padding
	ErrInvalidBase64 = errors.New("codec: invalid base64")
	// ErrInvalidBase58 is returned for input outside the Base58 alphabet
	ErrInvalidBase58 = errors.New("codec: invalid base58")
	// ErrInvalidBech32 is returned for malformed Bech32 strings
	ErrInvalidBech32 = errors.New("codec: invalid bech32")
)

// DecodeError describes a failure of a single decoder
type DecodeError struct {
	// Stage is the name of the decoder that failed
	Stage string
	// Group is the offending piece of input, if one can be isolated
	Group string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Group == "" {
		return fmt.Sprintf("%s: %s", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %s: %q", e.Stage, e.Err, e.Group)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func newDecodeError(stage string, group string, err error) *DecodeError {
	return &DecodeError{
		Stage: stage,
		Group: group,
		Err:   err,
	}
}
