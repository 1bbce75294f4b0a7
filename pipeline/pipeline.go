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
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	nesteddecoder "github.com/blinklabs-io/nesteddecoder"
)

// ErrPipelineStopped is returned when trying to submit to a stopped pipeline.
var ErrPipelineStopped = errors.New("pipeline is stopped")

// ErrPipelineNotStarted is returned when trying to use a pipeline that hasn't been started.
var ErrPipelineNotStarted = errors.New("pipeline not started")

// closedResultsChan is returned by Results() before Start() is called.
var closedResultsChan = func() <-chan *Item {
	ch := make(chan *Item)
	close(ch)
	return ch
}()

// newNotStartedErrorsChan creates a fresh channel that yields ErrPipelineNotStarted once.
func newNotStartedErrorsChan() <-chan error {
	ch := make(chan error, 1)
	ch <- ErrPipelineNotStarted
	close(ch)
	return ch
}

// BatchPipeline decodes requests concurrently and emits them in submission
// order. Callers must keep reading both Results and Errors while submitting,
// otherwise the pipeline stalls once the channel buffers fill.
type BatchPipeline struct {
	config PipelineConfig
	logger *slog.Logger

	// Stages
	decodeStage *DecodeStage
	detectStage *DetectStage
	emitStage   *EmitStage

	// Worker pools and runners
	decodePool *StagePool
	detectPool *StagePool
	emitRunner *EmitStageRunner

	// Channels
	submitChan   chan *Item
	decodedChan  chan *Item
	detectedChan chan *Item
	resultsChan  chan *Item
	errorsChan   chan error

	// Metrics
	metrics *PipelineMetrics

	// State
	sequenceCounter uint64
	ctx             context.Context
	cancel          context.CancelFunc
	started         atomic.Bool
	stopped         atomic.Bool
	wg              sync.WaitGroup
	mu              sync.Mutex   // protects Start/Stop
	submitMu        sync.RWMutex // protects Submit against concurrent Stop
}

// NewBatchPipeline creates a new BatchPipeline using functional options.
//
// Example:
//
//	p := NewBatchPipeline(
//	    WithDecodeWorkers(4),
//	    WithEmitFunc(writeItem),
//	)
func NewBatchPipeline(opts ...PipelineOption) *BatchPipeline {
	config := DefaultPipelineConfig()
	for _, opt := range opts {
		opt(&config)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.Decoder == nil {
		config.Decoder = nesteddecoder.New(nesteddecoder.WithLogger(logger))
	}
	return &BatchPipeline{
		config:  config,
		logger:  logger,
		metrics: NewPipelineMetrics(),
	}
}

// Start starts the pipeline processing.
func (p *BatchPipeline) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped.Load() {
		return ErrPipelineStopped
	}
	if p.started.Load() {
		return nil
	}

	p.ctx, p.cancel = context.WithCancel(ctx)

	bufSize := p.config.PrefetchBufferSize
	p.submitChan = make(chan *Item, bufSize)
	p.decodedChan = make(chan *Item, bufSize)
	p.resultsChan = make(chan *Item, bufSize)
	p.errorsChan = make(chan error, bufSize)

	p.decodeStage = NewDecodeStage(p.config.Decoder, p.logger)
	p.emitStage = NewEmitStage(p.config.EmitFunc, p.config.MaxPendingItems)

	p.decodePool = NewStagePool(p.decodeStage, p.config.DecodeWorkers, p.metrics.decodeDone)

	emitInput := p.decodedChan
	if p.config.DetectWorkers > 0 {
		p.detectedChan = make(chan *Item, bufSize)
		p.detectStage = NewDetectStage()
		p.detectPool = NewStagePool(p.detectStage, p.config.DetectWorkers, p.metrics.detectDone)
		emitInput = p.detectedChan
	}

	p.emitRunner = NewEmitStageRunner(
		p.emitStage,
		emitInput,
		p.resultsChan,
		p.errorsChan,
	)
	p.emitRunner.SetMetrics(p.metrics)

	// Fresh pools cannot already be running
	_ = p.decodePool.Run(p.ctx, p.submitChan, p.decodedChan, p.errorsChan) //nolint:contextcheck
	if p.detectPool != nil {
		_ = p.detectPool.Run(p.ctx, p.decodedChan, p.detectedChan, p.errorsChan) //nolint:contextcheck
	}
	p.emitRunner.Start(p.ctx) //nolint:contextcheck

	p.wg.Add(1)
	go p.metricsCollector()

	p.started.Store(true)
	p.logger.Debug(
		"pipeline started",
		"decode_workers",
		p.config.DecodeWorkers,
		"detect_workers",
		p.config.DetectWorkers,
	)
	return nil
}

// Submit submits a new request for processing.
// This method is safe to call concurrently with Stop().
func (p *BatchPipeline) Submit(ctx context.Context, req nesteddecoder.Request) error {
	if !p.started.Load() {
		return ErrPipelineNotStarted
	}

	// Stop waits for in-flight submits before closing submitChan
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()

	if p.stopped.Load() {
		return ErrPipelineStopped
	}

	item := NewItem(req, atomic.AddUint64(&p.sequenceCounter, 1)-1)

	select {
	case p.submitChan <- item:
		p.metrics.RecordSubmit()
		return nil
	case <-ctx.Done():
		// A sequence gap here only happens on shutdown
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPipelineStopped
	}
}

// Results returns a channel of processed items in submission order.
// If the pipeline has not been started, returns a closed channel.
func (p *BatchPipeline) Results() <-chan *Item {
	if !p.started.Load() {
		return closedResultsChan
	}
	return p.resultsChan
}

// Errors returns a channel of processing errors.
// If the pipeline has not been started, returns a channel that yields
// ErrPipelineNotStarted once and then closes.
func (p *BatchPipeline) Errors() <-chan error {
	if !p.started.Load() {
		return newNotStartedErrorsChan()
	}
	return p.errorsChan
}

// Stop stops the pipeline. Items still in flight are abandoned; call
// WaitForDrain first to let them finish.
func (p *BatchPipeline) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started.Load() || p.stopped.Load() {
		return nil
	}

	// Cancel first so a Submit blocked on send releases its RLock
	p.cancel()

	p.submitMu.Lock()
	p.stopped.Store(true)
	close(p.submitChan)
	p.submitMu.Unlock()

	p.decodePool.Wait()
	if p.detectPool != nil {
		p.detectPool.Wait()
	}

	p.emitRunner.Stop()

	close(p.resultsChan)
	close(p.errorsChan)

	p.wg.Wait()

	p.logger.Debug(
		"pipeline stopped",
		"submitted",
		p.metrics.itemsSubmitted.Load(),
		"finished",
		p.metrics.itemsFinished.Load(),
	)
	return nil
}

// Stats returns the current pipeline statistics.
func (p *BatchPipeline) Stats() PipelineStats {
	return p.metrics.Stats()
}

// PendingCount returns the approximate number of items still being processed.
// This includes items in inter-stage channels and items buffered in the emit stage.
func (p *BatchPipeline) PendingCount() int {
	if !p.started.Load() {
		return 0
	}
	channelDepth := len(p.submitChan) + len(p.decodedChan) + len(p.detectedChan)
	emitPending := 0
	if p.emitStage != nil {
		emitPending = p.emitStage.PendingCount()
	}
	return channelDepth + emitPending
}

// WaitForDrain blocks until every submitted item has left the pipeline
// or the context is cancelled.
func (p *BatchPipeline) WaitForDrain(ctx context.Context) error {
	if !p.started.Load() {
		return ErrPipelineNotStarted
	}

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if p.metrics.itemsFinished.Load() >= p.metrics.itemsSubmitted.Load() {
				return nil
			}
		}
	}
}

func (p *BatchPipeline) metricsCollector() {
	defer p.wg.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			depth := len(p.submitChan) + len(p.decodedChan) + len(p.detectedChan)
			p.metrics.UpdateQueueDepth(depth)
		}
	}
}
