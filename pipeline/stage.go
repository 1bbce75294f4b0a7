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

// Package pipeline provides a concurrent batch pipeline for decode requests.
// It supports parallel decoding and detection with ordered emission.
package pipeline

import (
	"context"
	"time"

	nesteddecoder "github.com/blinklabs-io/nesteddecoder"
)

// Stage represents a processing stage in the batch pipeline.
type Stage interface {
	// Name returns the name of the stage for logging and metrics.
	Name() string
	// Process processes a single item. Returns an error if processing fails.
	Process(ctx context.Context, item *Item) error
}

// StageFunc is an adapter that allows using ordinary functions as Stage implementations.
type StageFunc struct {
	name string
	fn   func(ctx context.Context, item *Item) error
}

// NewStageFunc creates a new StageFunc with the given name and processing function.
func NewStageFunc(name string, fn func(ctx context.Context, item *Item) error) *StageFunc {
	return &StageFunc{
		name: name,
		fn:   fn,
	}
}

// Name returns the name of the stage.
func (s *StageFunc) Name() string {
	return s.name
}

// Process calls the underlying function.
func (s *StageFunc) Process(ctx context.Context, item *Item) error {
	return s.fn(ctx, item)
}

// Pipeline represents a batch decode pipeline.
type Pipeline interface {
	// Start starts the pipeline processing.
	Start(ctx context.Context) error
	// Submit submits a new request for processing.
	// The context allows callers to handle timeouts or cancellations when the
	// pipeline is full and applying backpressure.
	Submit(ctx context.Context, req nesteddecoder.Request) error
	// Results returns a channel of processed items in submission order.
	Results() <-chan *Item
	// Errors returns a channel of processing errors.
	Errors() <-chan error
	// Stop gracefully stops the pipeline.
	Stop() error
	// WaitForDrain waits for all submitted requests to be processed.
	WaitForDrain(ctx context.Context) error
	// Stats returns the current pipeline statistics.
	Stats() PipelineStats
}

// PipelineStats contains statistics about pipeline performance.
type PipelineStats struct {
	// ItemsSubmitted is the total number of requests submitted to the pipeline.
	ItemsSubmitted uint64
	// ItemsDecoded is the total number of requests answered successfully.
	ItemsDecoded uint64
	// ItemsDetected is the total number of items annotated by the detect stage.
	ItemsDetected uint64
	// ItemsEmitted is the total number of items emitted successfully.
	ItemsEmitted uint64
	// ItemsFinished is the total number of items that left the pipeline,
	// whether or not they were decoded and emitted successfully.
	ItemsFinished uint64
	// DecodeErrors is the total number of decode errors.
	DecodeErrors uint64
	// EmitErrors is the total number of emit errors.
	EmitErrors uint64

	// CurrentQueueDepth is the current number of items in the pipeline.
	CurrentQueueDepth int
	// PeakQueueDepth is the maximum queue depth observed.
	PeakQueueDepth int

	// MaxLatency is the longest submit-to-emit time observed.
	MaxLatency time.Duration

	// LastItemTime is the time the last item was emitted.
	LastItemTime time.Time
	// StartTime is when the pipeline was started.
	StartTime time.Time
}
