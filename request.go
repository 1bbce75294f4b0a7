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

package nesteddecoder

import (
	"github.com/blinklabs-io/nesteddecoder/capability"
	"github.com/blinklabs-io/nesteddecoder/detect"
)

// Request is a single call to the decoder. Which fields are set decides what
// the decoder does: without Text it lists its options, with Text but no
// pattern it suggests an encoding, and with both it decodes.
type Request struct {
	Text string
	// Pattern is a comma-delimited list of tokens
	Pattern string
	// Tokens is an already split pattern and takes precedence over Pattern
	Tokens []string
}

func (r Request) hasPattern() bool {
	return len(r.Tokens) > 0 || r.Pattern != ""
}

// ResponseKind identifies which of the three kinds of answer a Response holds
type ResponseKind uint8

const (
	ResponseOptions ResponseKind = iota + 1
	ResponseSuggestion
	ResponseResult
)

func (k ResponseKind) String() string {
	switch k {
	case ResponseOptions:
		return "options"
	case ResponseSuggestion:
		return "suggestion"
	case ResponseResult:
		return "result"
	default:
		return "unknown"
	}
}

// Response is the decoder's answer to a Request
type Response struct {
	Kind       ResponseKind
	Result     string
	Suggestion string
	Options    capability.Listing
}

// Payload returns the response in the shape it is serialized in:
// {"result": ...}, {"suggestion": ...} with a nil suggestion when nothing
// matched, or {"parameters": ..., "encodings": ...}
func (r Response) Payload() map[string]any {
	switch r.Kind {
	case ResponseResult:
		return map[string]any{"result": r.Result}
	case ResponseSuggestion:
		if r.Suggestion == detect.None {
			return map[string]any{"suggestion": nil}
		}
		return map[string]any{"suggestion": r.Suggestion}
	case ResponseOptions:
		return map[string]any{
			"parameters": r.Options.Parameters,
			"encodings":  r.Options.Encodings,
		}
	}
	return map[string]any{}
}

// Do answers a request
func (d *Decoder) Do(req Request) (Response, error) {
	if req.Text == "" {
		return Response{
			Kind:    ResponseOptions,
			Options: d.Options(),
		}, nil
	}
	if !req.hasPattern() {
		return Response{
			Kind:       ResponseSuggestion,
			Suggestion: d.Detect(req.Text),
		}, nil
	}
	var result string
	var err error
	if len(req.Tokens) > 0 {
		result, err = d.DecodeTokens(req.Text, req.Tokens)
	} else {
		result, err = d.Decode(req.Text, req.Pattern)
	}
	if err != nil {
		return Response{}, err
	}
	return Response{
		Kind:   ResponseResult,
		Result: result,
	}, nil
}
