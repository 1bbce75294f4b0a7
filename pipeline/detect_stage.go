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
	"time"

	"github.com/blinklabs-io/nesteddecoder/detect"
)

// DetectStage annotates each item with the encoding its text most likely
// uses. It runs for every item, including those whose decode failed, since
// the suggestion is most useful for input that did not decode.
type DetectStage struct{}

// NewDetectStage creates a new DetectStage.
func NewDetectStage() *DetectStage {
	return &DetectStage{}
}

// Name returns the stage name.
func (s *DetectStage) Name() string {
	return "detect"
}

// Process sets the item's suggestion.
func (s *DetectStage) Process(ctx context.Context, item *Item) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	start := time.Now()
	suggestion := detect.Suggest(item.Request().Text)
	item.SetSuggestion(suggestion, time.Since(start))
	return nil
}
