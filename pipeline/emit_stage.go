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
	"context"
	"errors"
	"sync"
	"time"
)

// ErrPendingLimitExceeded is returned when the emit stage's pending buffer is full.
var ErrPendingLimitExceeded = errors.New("pipeline: pending item limit exceeded")

// EmitFunc is a function that consumes a finished item.
// It is called in sequence order (by SequenceNumber) for every item,
// including items whose decode failed.
type EmitFunc func(*Item) error

// EmitStage buffers finished items and emits them in sequence order.
//
// ProcessWithStatus must be called from a single goroutine to guarantee
// ordered execution of EmitFunc. The EmitStageRunner provides this guarantee.
type EmitStage struct {
	emitFunc   EmitFunc
	maxPending int
	mu         sync.Mutex
	// pending holds out-of-order items waiting to be emitted
	pending map[uint64]*Item
	// nextSequence is the next sequence number to emit
	nextSequence uint64
}

// NewEmitStage creates a new EmitStage with the given emit function.
// maxPending limits the number of out-of-order items that can be buffered.
// Use 0 for unlimited.
func NewEmitStage(emitFunc EmitFunc, maxPending int) *EmitStage {
	return &EmitStage{
		emitFunc:   emitFunc,
		maxPending: maxPending,
		pending:    make(map[uint64]*Item),
	}
}

// Name returns the stage name.
func (s *EmitStage) Name() string {
	return "emit"
}

// Process buffers the item and emits any items that are now in order.
func (s *EmitStage) Process(ctx context.Context, item *Item) error {
	_, err := s.ProcessWithStatus(ctx, item)
	return err
}

// ProcessWithStatus processes an item and returns all items that were emitted.
// If the item is next in sequence, it is emitted immediately along with any
// buffered items that become ready. If the item is out of order, it is
// buffered and the returned slice is nil.
func (s *EmitStage) ProcessWithStatus(ctx context.Context, item *Item) ([]*Item, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.Lock()
	if item.SequenceNumber() == s.nextSequence {
		s.nextSequence++
		s.mu.Unlock()
		s.emitItem(ctx, item)
		buffered := s.emitPending(ctx)
		processed := make([]*Item, 0, 1+len(buffered))
		processed = append(processed, item)
		processed = append(processed, buffered...)
		return processed, nil
	}

	// Always buffer so the sequence has no gaps, even past the limit
	s.pending[item.SequenceNumber()] = item
	pendingCount := len(s.pending)
	s.mu.Unlock()

	if s.maxPending > 0 && pendingCount > s.maxPending {
		return nil, ErrPendingLimitExceeded
	}
	return nil, nil
}

func (s *EmitStage) emitItem(ctx context.Context, item *Item) {
	select {
	case <-ctx.Done():
		item.SetEmitted(false, ctx.Err(), 0)
		return
	default:
	}

	start := time.Now()
	var err error
	if s.emitFunc != nil {
		err = s.emitFunc(item)
	}
	item.SetEmitted(err == nil, err, time.Since(start))
}

// emitPending emits buffered items that are now in order. The lock is not
// held while emitFunc runs.
func (s *EmitStage) emitPending(ctx context.Context) []*Item {
	var processed []*Item
	for {
		select {
		case <-ctx.Done():
			return processed
		default:
		}

		s.mu.Lock()
		item, ok := s.pending[s.nextSequence]
		if !ok {
			s.mu.Unlock()
			return processed
		}
		delete(s.pending, s.nextSequence)
		s.nextSequence++
		s.mu.Unlock()

		s.emitItem(ctx, item)
		processed = append(processed, item)
	}
}

// Reset resets the stage state for reuse.
func (s *EmitStage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = make(map[uint64]*Item)
	s.nextSequence = 0
}

// PendingCount returns the number of items waiting to be emitted.
func (s *EmitStage) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// EmitStageRunner runs the emit stage as a single goroutine.
type EmitStageRunner struct {
	stage   *EmitStage
	input   <-chan *Item
	output  chan<- *Item
	errors  chan<- error
	metrics *PipelineMetrics
	done    chan struct{}
	running bool
	mu      sync.Mutex
}

// NewEmitStageRunner creates a new runner for the emit stage.
func NewEmitStageRunner(
	stage *EmitStage,
	input <-chan *Item,
	output chan<- *Item,
	errors chan<- error,
) *EmitStageRunner {
	return &EmitStageRunner{
		stage:  stage,
		input:  input,
		output: output,
		errors: errors,
		done:   make(chan struct{}),
	}
}

// SetMetrics sets the metrics collector for the runner.
// Must be called before Start.
func (r *EmitStageRunner) SetMetrics(metrics *PipelineMetrics) {
	r.metrics = metrics
}

// Start starts the emit stage runner.
func (r *EmitStageRunner) Start(ctx context.Context) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.done = make(chan struct{})
	r.mu.Unlock()

	go r.run(ctx)
}

// Stop waits for the runner to complete. The runner exits when the context
// passed to Start is cancelled or the input channel is closed.
func (r *EmitStageRunner) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	done := r.done
	r.mu.Unlock()

	<-done
}

func (r *EmitStageRunner) run(ctx context.Context) {
	defer func() {
		r.mu.Lock()
		r.running = false
		close(r.done)
		r.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case item, ok := <-r.input:
			if !ok {
				return
			}

			processed, err := r.stage.ProcessWithStatus(ctx, item)
			if err != nil {
				select {
				case r.errors <- err:
				case <-ctx.Done():
					return
				}
				continue
			}

			for _, p := range processed {
				r.forwardItem(ctx, p)
			}
		}
	}
}

// forwardItem sends an item to output and reports any emit error. The item
// only counts as finished once both sends have completed.
func (r *EmitStageRunner) forwardItem(ctx context.Context, item *Item) {
	select {
	case r.output <- item:
	case <-ctx.Done():
		return
	}

	if emitErr := item.EmitError(); emitErr != nil {
		select {
		case r.errors <- emitErr:
		case <-ctx.Done():
			return
		}
	}

	if r.metrics != nil {
		r.metrics.RecordEmit(item.EmitDuration(), item.EmitError())
		r.metrics.RecordPipelineLatency(item.TotalDuration())
	}
}
