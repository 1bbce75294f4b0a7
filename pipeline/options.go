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
	"log/slog"
	"runtime"

	nesteddecoder "github.com/blinklabs-io/nesteddecoder"
)

// DefaultMaxPendingItems is the default limit for out-of-order items buffered
// in the emit stage.
const DefaultMaxPendingItems = 4096

// PipelineConfig holds configuration for a BatchPipeline.
type PipelineConfig struct {
	// DecodeWorkers is the number of parallel decode workers.
	DecodeWorkers int
	// DetectWorkers is the number of parallel detect workers.
	// Zero disables the detect stage.
	DetectWorkers int
	// PrefetchBufferSize is the buffer size for inter-stage channels.
	PrefetchBufferSize int
	// MaxPendingItems limits out-of-order items buffered in the emit stage.
	MaxPendingItems int
	// EmitFunc is called for each item in submission order.
	EmitFunc EmitFunc
	// Decoder answers each request. A default decoder is created if nil.
	Decoder *nesteddecoder.Decoder
	// Logger is used for pipeline diagnostics.
	Logger *slog.Logger
}

// DefaultPipelineConfig returns a PipelineConfig with sensible defaults.
// Detection is disabled by default.
func DefaultPipelineConfig() PipelineConfig {
	decodeWorkers := runtime.NumCPU() / 2
	if decodeWorkers < 2 {
		decodeWorkers = 2
	}
	return PipelineConfig{
		DecodeWorkers:      decodeWorkers,
		DetectWorkers:      0,
		PrefetchBufferSize: 256,
		MaxPendingItems:    DefaultMaxPendingItems,
	}
}

// PipelineOption is a functional option for configuring a BatchPipeline.
type PipelineOption func(*PipelineConfig)

// WithConfig applies a complete PipelineConfig, replacing all default values.
// Options applied after WithConfig still override the config values.
func WithConfig(config PipelineConfig) PipelineOption {
	return func(c *PipelineConfig) {
		*c = config
	}
}

// WithDecodeWorkers sets the number of decode workers.
func WithDecodeWorkers(n int) PipelineOption {
	return func(c *PipelineConfig) {
		if n > 0 {
			c.DecodeWorkers = n
		}
	}
}

// WithDetectWorkers sets the number of detect workers.
// Set to 0 to disable detection.
func WithDetectWorkers(n int) PipelineOption {
	return func(c *PipelineConfig) {
		if n >= 0 {
			c.DetectWorkers = n
		}
	}
}

// WithPrefetchBufferSize sets the buffer size for inter-stage channels.
func WithPrefetchBufferSize(size int) PipelineOption {
	return func(c *PipelineConfig) {
		if size > 0 {
			c.PrefetchBufferSize = size
		}
	}
}

// WithMaxPendingItems sets the limit for out-of-order items in the emit stage.
func WithMaxPendingItems(n int) PipelineOption {
	return func(c *PipelineConfig) {
		if n > 0 {
			c.MaxPendingItems = n
		}
	}
}

// WithEmitFunc sets the emit function.
// A nil function is ignored.
func WithEmitFunc(fn EmitFunc) PipelineOption {
	return func(c *PipelineConfig) {
		if fn != nil {
			c.EmitFunc = fn
		}
	}
}

// WithDecoder sets the decoder used by the decode stage.
func WithDecoder(decoder *nesteddecoder.Decoder) PipelineOption {
	return func(c *PipelineConfig) {
		if decoder != nil {
			c.Decoder = decoder
		}
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(c *PipelineConfig) {
		if logger != nil {
			c.Logger = logger
		}
	}
}
