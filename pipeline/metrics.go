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
	"sync"
	"sync/atomic"
	"time"
)

// PipelineMetrics tracks metrics for the entire pipeline.
// Uses atomic counters for thread-safe operation.
type PipelineMetrics struct {
	// Counters (atomic)
	itemsSubmitted atomic.Uint64
	itemsDecoded   atomic.Uint64
	itemsDetected  atomic.Uint64
	itemsEmitted   atomic.Uint64
	itemsFinished  atomic.Uint64
	decodeErrors   atomic.Uint64
	emitErrors     atomic.Uint64

	// Queue and timing tracking (requires mutex)
	mu                sync.RWMutex
	currentQueueDepth int
	peakQueueDepth    int
	maxLatency        time.Duration
	lastItemTime      time.Time
	startTime         time.Time
}

// NewPipelineMetrics creates a new PipelineMetrics.
func NewPipelineMetrics() *PipelineMetrics {
	return &PipelineMetrics{
		startTime: time.Now(),
	}
}

// RecordSubmit increments the submitted counter.
func (m *PipelineMetrics) RecordSubmit() {
	m.itemsSubmitted.Add(1)
}

// RecordDecode records a decode result.
func (m *PipelineMetrics) RecordDecode(duration time.Duration, err error) {
	if err != nil {
		m.decodeErrors.Add(1)
	} else {
		m.itemsDecoded.Add(1)
	}
}

// RecordDetect records a detect result.
func (m *PipelineMetrics) RecordDetect(duration time.Duration, err error) {
	if err == nil {
		m.itemsDetected.Add(1)
	}
}

func (m *PipelineMetrics) decodeDone(item *Item, err error) {
	m.RecordDecode(item.DecodeDuration(), err)
}

func (m *PipelineMetrics) detectDone(item *Item, err error) {
	m.RecordDetect(item.DetectDuration(), err)
}

// RecordEmit records an emit result. Every item leaving the pipeline passes
// through here exactly once.
func (m *PipelineMetrics) RecordEmit(duration time.Duration, err error) {
	if err != nil {
		m.emitErrors.Add(1)
	} else {
		m.itemsEmitted.Add(1)
		m.mu.Lock()
		m.lastItemTime = time.Now()
		m.mu.Unlock()
	}
	m.itemsFinished.Add(1)
}

// RecordPipelineLatency records end-to-end pipeline latency.
func (m *PipelineMetrics) RecordPipelineLatency(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if duration > m.maxLatency {
		m.maxLatency = duration
	}
}

// UpdateQueueDepth updates the queue depth tracking.
func (m *PipelineMetrics) UpdateQueueDepth(depth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentQueueDepth = depth
	if depth > m.peakQueueDepth {
		m.peakQueueDepth = depth
	}
}

// Stats returns a snapshot of the current metrics.
func (m *PipelineMetrics) Stats() PipelineStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return PipelineStats{
		ItemsSubmitted:    m.itemsSubmitted.Load(),
		ItemsDecoded:      m.itemsDecoded.Load(),
		ItemsDetected:     m.itemsDetected.Load(),
		ItemsEmitted:      m.itemsEmitted.Load(),
		ItemsFinished:     m.itemsFinished.Load(),
		DecodeErrors:      m.decodeErrors.Load(),
		EmitErrors:        m.emitErrors.Load(),
		CurrentQueueDepth: m.currentQueueDepth,
		PeakQueueDepth:    m.peakQueueDepth,
		MaxLatency:        m.maxLatency,
		LastItemTime:      m.lastItemTime,
		StartTime:         m.startTime,
	}
}

// Reset resets all metrics.
func (m *PipelineMetrics) Reset() {
	m.itemsSubmitted.Store(0)
	m.itemsDecoded.Store(0)
	m.itemsDetected.Store(0)
	m.itemsEmitted.Store(0)
	m.itemsFinished.Store(0)
	m.decodeErrors.Store(0)
	m.emitErrors.Store(0)

	m.mu.Lock()
	m.currentQueueDepth = 0
	m.peakQueueDepth = 0
	m.maxLatency = 0
	m.lastItemTime = time.Time{}
	m.startTime = time.Now()
	m.mu.Unlock()
}
