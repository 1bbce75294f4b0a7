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

package pipeline

import (
	"slices"
	"sync"
	"time"

	nesteddecoder "github.com/blinklabs-io/nesteddecoder"
)

// Item represents a decode request as it moves through the pipeline.
// It is thread-safe and tracks the processing state at each stage.
type Item struct {
	// Immutable fields (set at construction, never modified)
	// These are unexported to prevent modification; use getter methods.
	request        nesteddecoder.Request
	sequenceNumber uint64
	receivedAt     time.Time

	// Mutable fields protected by mutex
	mu sync.RWMutex

	// Decode stage results
	response       nesteddecoder.Response
	decoded        bool
	decodeError    error
	decodeDuration time.Duration

	// Detect stage results
	suggestion     string
	detected       bool
	detectDuration time.Duration

	// Emit stage results
	emitted      bool
	emitError    error
	emitDuration time.Duration
}

// NewItem creates a new Item for the given request.
// The request tokens are copied so the caller may reuse its slice.
func NewItem(req nesteddecoder.Request, seq uint64) *Item {
	req.Tokens = slices.Clone(req.Tokens)
	return &Item{
		request:        req,
		sequenceNumber: seq,
		receivedAt:     time.Now(),
	}
}

// Request returns the decode request.
// The returned Tokens slice should not be modified.
func (i *Item) Request() nesteddecoder.Request {
	return i.request
}

// SequenceNumber returns the sequence number assigned to this item.
func (i *Item) SequenceNumber() uint64 {
	return i.sequenceNumber
}

// ReceivedAt returns the time when this item was submitted.
func (i *Item) ReceivedAt() time.Time {
	return i.receivedAt
}

// Response returns the decoder response. It is the zero Response until the
// item has been decoded successfully.
func (i *Item) Response() nesteddecoder.Response {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.response
}

// SetResponse sets the decoder response and decode duration.
// Clears any previously set decode error for consistency.
func (i *Item) SetResponse(resp nesteddecoder.Response, duration time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.response = resp
	i.decoded = true
	i.decodeError = nil
	i.decodeDuration = duration
}

// DecodeError returns the decode error, if any.
func (i *Item) DecodeError() error {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.decodeError
}

// SetDecodeError sets the decode error and duration.
// Clears any previously set response for consistency.
func (i *Item) SetDecodeError(err error, duration time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.response = nesteddecoder.Response{}
	i.decoded = false
	i.decodeError = err
	i.decodeDuration = duration
}

// DecodeDuration returns the time spent in the decode stage.
func (i *Item) DecodeDuration() time.Duration {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.decodeDuration
}

// IsDecoded returns true if the request has been answered successfully.
func (i *Item) IsDecoded() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.decoded
}

// SetSuggestion sets the detector's suggestion for the request text.
func (i *Item) SetSuggestion(suggestion string, duration time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.suggestion = suggestion
	i.detected = true
	i.detectDuration = duration
}

// Suggestion returns the detector's suggestion, if the detect stage ran.
func (i *Item) Suggestion() (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.suggestion, i.detected
}

// DetectDuration returns the time spent in the detect stage.
func (i *Item) DetectDuration() time.Duration {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.detectDuration
}

// SetEmitted sets the emit result.
func (i *Item) SetEmitted(emitted bool, err error, duration time.Duration) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.emitted = emitted
	i.emitError = err
	i.emitDuration = duration
}

// IsEmitted returns true if the item has been emitted.
func (i *Item) IsEmitted() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.emitted
}

// EmitError returns the emit error, if any.
func (i *Item) EmitError() error {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.emitError
}

// EmitDuration returns the time spent in the emit stage.
func (i *Item) EmitDuration() time.Duration {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.emitDuration
}

// TotalDuration returns the total processing time from receipt to completion.
func (i *Item) TotalDuration() time.Duration {
	return time.Since(i.receivedAt)
}
