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
package cbor

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"

	_cbor "github.com/fxamacker/cbor/v2"
)

// ErrUnexpectedType is returned when an item of a sequence is not of the
// major type the caller asked for
var ErrUnexpectedType = errors.New("cbor: unexpected major type")

var mapStringAnyType = reflect.TypeOf(map[string]any(nil))

var (
	cachedDecMode     _cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getDecMode returns a cached DecMode, initializing it on first use.
func getDecMode() (_cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		decOptions := _cbor.DecOptions{
			// Struct targets reject keys they have no field for
			ExtraReturnErrors: _cbor.ExtraDecErrorUnknownField,
			DefaultMapType:    mapStringAnyType,
		}
		cachedDecMode, cachedDecModeErr = decOptions.DecMode()
	})
	return cachedDecMode, cachedDecModeErr
}

// SequenceReader reads the items of a CBOR sequence (RFC 8742) one at a time
// from a stream.
type SequenceReader struct {
	mode  _cbor.DecMode
	dec   *_cbor.Decoder
	count int
}

// NewSequenceReader returns a SequenceReader consuming r.
func NewSequenceReader(r io.Reader) (*SequenceReader, error) {
	decMode, err := getDecMode()
	if err != nil {
		return nil, err
	}
	return &SequenceReader{
		mode: decMode,
		dec:  decMode.NewDecoder(r),
	}, nil
}

// Next decodes the next item into dest, which must be of major type want.
// An item of any other type fails with ErrUnexpectedType and leaves dest
// untouched. Next returns io.EOF once the sequence ends cleanly; a sequence
// cut short inside an item gives io.ErrUnexpectedEOF.
func (s *SequenceReader) Next(want uint8, dest any) error {
	var raw _cbor.RawMessage
	if err := s.dec.Decode(&raw); err != nil {
		return err
	}
	s.count++
	if major, _ := MajorType(raw); major != want {
		return fmt.Errorf(
			"%w: item %d is %s, expected %s",
			ErrUnexpectedType,
			s.count,
			majorTypeName(major),
			majorTypeName(want),
		)
	}
	if err := s.mode.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("item %d: %w", s.count, err)
	}
	return nil
}

// Count returns how many items have been read so far.
func (s *SequenceReader) Count() int {
	return s.count
}

// BytesRead returns the number of bytes consumed from the stream.
func (s *SequenceReader) BytesRead() int {
	return s.dec.NumBytesRead()
}
