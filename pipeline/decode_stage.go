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
	"fmt"
	"log/slog"
	"time"

	nesteddecoder "github.com/blinklabs-io/nesteddecoder"
)

// ErrNilStage is the panic value of NewStagePool when given a nil stage.
var ErrNilStage = errors.New("pipeline: nil stage")

// DecodeStage answers the request held by each item.
type DecodeStage struct {
	decoder *nesteddecoder.Decoder
	logger  *slog.Logger
}

// NewDecodeStage creates a new DecodeStage using the given decoder.
func NewDecodeStage(decoder *nesteddecoder.Decoder, logger *slog.Logger) *DecodeStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &DecodeStage{
		decoder: decoder,
		logger:  logger,
	}
}

// Name returns the stage name.
func (s *DecodeStage) Name() string {
	return "decode"
}

// Process runs the decoder on the item's request.
func (s *DecodeStage) Process(ctx context.Context, item *Item) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	start := time.Now()
	resp, err := s.decoder.Do(item.Request())
	duration := time.Since(start)

	if err != nil {
		err = fmt.Errorf("item %d: %w", item.SequenceNumber(), err)
		s.logger.Warn(
			"decode failed",
			"sequence",
			item.SequenceNumber(),
			"error",
			err,
		)
		item.SetDecodeError(err, duration)
		return err
	}

	item.SetResponse(resp, duration)
	return nil
}
