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

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	nesteddecoder "github.com/blinklabs-io/nesteddecoder"
	"github.com/blinklabs-io/nesteddecoder/cbor"
	"github.com/blinklabs-io/nesteddecoder/detect"
	"github.com/blinklabs-io/nesteddecoder/internal/config"
	"github.com/blinklabs-io/nesteddecoder/pipeline"
)

// responseWriter renders responses and batch items in one output format
type responseWriter struct {
	format string
	w      io.Writer
	// hexArmor writes CBOR as hex lines so it does not garble a terminal
	hexArmor bool
}

func newResponseWriter(format string, w io.Writer) *responseWriter {
	return &responseWriter{
		format:   format,
		w:        w,
		hexArmor: isTerminal(w),
	}
}

// WriteResponse writes a single decoder response
func (rw *responseWriter) WriteResponse(resp nesteddecoder.Response) error {
	switch rw.format {
	case config.FormatJSON:
		return rw.writeJSON(resp.Payload())
	case config.FormatCBOR:
		return rw.writeCBOR(resp.Payload())
	default:
		_, err := io.WriteString(rw.w, responseText(resp))
		return err
	}
}

// WriteItem writes the outcome of one batch request
func (rw *responseWriter) WriteItem(item *pipeline.Item) error {
	switch rw.format {
	case config.FormatJSON:
		return rw.writeJSON(itemRecord(item))
	case config.FormatCBOR:
		return rw.writeCBOR(itemRecord(item))
	}
	var sb strings.Builder
	if err := item.DecodeError(); err != nil {
		fmt.Fprintf(&sb, "error: %s\n", err)
	} else {
		sb.WriteString(responseText(item.Response()))
	}
	if suggestion, ok := item.Suggestion(); ok {
		// Annotate the last line
		text := strings.TrimSuffix(sb.String(), "\n")
		sb.Reset()
		fmt.Fprintf(&sb, "%s\t# %s\n", text, suggestionText(suggestion))
	}
	_, err := io.WriteString(rw.w, sb.String())
	return err
}

func (rw *responseWriter) writeJSON(v any) error {
	return json.NewEncoder(rw.w).Encode(v)
}

func (rw *responseWriter) writeCBOR(v any) error {
	data, err := cbor.Encode(v)
	if err != nil {
		return fmt.Errorf("failed to encode CBOR: %w", err)
	}
	if rw.hexArmor {
		_, err = fmt.Fprintln(rw.w, hex.EncodeToString(data))
		return err
	}
	_, err = rw.w.Write(data)
	return err
}

// itemRecord is the serialized shape of a batch item: the response payload
// plus its sequence number, or the error when the decode failed
func itemRecord(item *pipeline.Item) map[string]any {
	var ret map[string]any
	if err := item.DecodeError(); err != nil {
		ret = map[string]any{"error": err.Error()}
	} else {
		ret = item.Response().Payload()
	}
	ret["sequence"] = item.SequenceNumber()
	if suggestion, ok := item.Suggestion(); ok {
		if suggestion == detect.None {
			ret["detected"] = nil
		} else {
			ret["detected"] = suggestion
		}
	}
	return ret
}

func responseText(resp nesteddecoder.Response) string {
	switch resp.Kind {
	case nesteddecoder.ResponseResult:
		return resp.Result + "\n"
	case nesteddecoder.ResponseSuggestion:
		return suggestionText(resp.Suggestion) + "\n"
	case nesteddecoder.ResponseOptions:
		var sb strings.Builder
		fmt.Fprintf(&sb, "parameters: %s\n", strings.Join(resp.Options.Parameters, ", "))
		sb.WriteString("encodings:\n")
		for _, name := range resp.Options.Names() {
			fmt.Fprintf(&sb, "  %s: %s\n", name, resp.Options.Encodings[name])
		}
		return sb.String()
	}
	return ""
}

func suggestionText(suggestion string) string {
	if suggestion == detect.None {
		return "none"
	}
	return suggestion
}
