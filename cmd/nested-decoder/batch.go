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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	nesteddecoder "github.com/blinklabs-io/nesteddecoder"
	"github.com/blinklabs-io/nesteddecoder/cbor"
	"github.com/blinklabs-io/nesteddecoder/pipeline"
	"github.com/spf13/cobra"
)

// errBatchFailed is returned when some batch requests could not be decoded
var errBatchFailed = errors.New("some requests failed to decode")

const (
	inputFormatLines = "lines"
	inputFormatCBOR  = "cbor"
)

type batchFlags struct {
	input       string
	inputFormat string
	workers     int
	detect      bool
}

// batchRecord is one request of CBOR batch input
type batchRecord struct {
	Pattern string `cbor:"pattern"`
	Text    string `cbor:"text"`
}

func newBatchCommand(a *app) *cobra.Command {
	f := &batchFlags{}
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Decode many lines concurrently, keeping their order",
		Long: `batch decodes one request per input line. A line is either
"<pattern><TAB><text>" or just the text, in which case the --pattern flag
or the configured pattern is used. Empty lines are skipped.

With --input-format cbor the input is instead a CBOR sequence of maps with a
"text" key and an optional "pattern" key.

Results are written in input order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd.Context(), cmd, f)
		},
	}
	cmd.Flags().StringVarP(
		&f.input,
		"input",
		"i",
		"",
		"file to read requests from (defaults to standard input)",
	)
	cmd.Flags().StringVar(
		&f.inputFormat,
		"input-format",
		inputFormatLines,
		"input format: lines or cbor",
	)
	cmd.Flags().IntVarP(
		&f.workers,
		"workers",
		"w",
		0,
		"number of decode workers (defaults to the configured value)",
	)
	cmd.Flags().BoolVar(
		&f.detect,
		"detect",
		false,
		"annotate each result with the suggested encoding of its input",
	)
	return cmd
}

func (a *app) runBatch(ctx context.Context, cmd *cobra.Command, f *batchFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	workers := a.cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers = f.workers
	}
	if workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", workers)
	}
	submit := a.submitLines
	switch f.inputFormat {
	case inputFormatLines:
	case inputFormatCBOR:
		submit = a.submitRecords
	default:
		return fmt.Errorf("unknown input format %q", f.inputFormat)
	}
	detectWorkers := 0
	if f.detect || a.cfg.Detect {
		detectWorkers = 1
	}

	var in io.Reader = a.stdin
	if f.input != "" {
		file, err := os.Open(f.input)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()
		in = file
	}
	if in == nil {
		return errors.New("no input")
	}

	out := newResponseWriter(a.cfg.Format, a.stdout)
	var writeErr error
	p := pipeline.NewBatchPipeline(
		pipeline.WithDecoder(a.decoder),
		pipeline.WithLogger(a.logger),
		pipeline.WithDecodeWorkers(workers),
		pipeline.WithDetectWorkers(detectWorkers),
		pipeline.WithEmitFunc(func(item *pipeline.Item) error {
			if writeErr != nil {
				return writeErr
			}
			writeErr = out.WriteItem(item)
			return writeErr
		}),
	)
	if err := p.Start(ctx); err != nil {
		return err
	}

	// Results and errors must both be drained for the pipeline to make progress
	done := make(chan struct{})
	go func() {
		defer close(done)
		results := p.Results()
		errs := p.Errors()
		for results != nil || errs != nil {
			select {
			case _, ok := <-results:
				if !ok {
					results = nil
				}
			case err, ok := <-errs:
				if !ok {
					errs = nil
					continue
				}
				a.logger.Debug("batch item failed", "error", err)
			}
		}
	}()

	submitErr := submit(ctx, p, in)
	if submitErr == nil {
		submitErr = p.WaitForDrain(ctx)
	}
	_ = p.Stop()
	<-done

	if submitErr != nil {
		return submitErr
	}
	if writeErr != nil {
		return fmt.Errorf("failed to write output: %w", writeErr)
	}
	stats := p.Stats()
	a.logger.Debug(
		"batch finished",
		"submitted",
		stats.ItemsSubmitted,
		"decoded",
		stats.ItemsDecoded,
		"failed",
		stats.DecodeErrors,
		"peak_queue_depth",
		stats.PeakQueueDepth,
	)
	if stats.DecodeErrors > 0 {
		return fmt.Errorf("%w: %d of %d", errBatchFailed, stats.DecodeErrors, stats.ItemsSubmitted)
	}
	return nil
}

// submitLines turns each non-empty input line into a request
func (a *app) submitLines(ctx context.Context, p *pipeline.BatchPipeline, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if err := p.Submit(ctx, a.lineRequest(line)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// submitRecords turns each map of a CBOR sequence into a request
func (a *app) submitRecords(ctx context.Context, p *pipeline.BatchPipeline, in io.Reader) error {
	records, err := cbor.NewSequenceReader(in)
	if err != nil {
		return err
	}
	for {
		var rec batchRecord
		err := records.Next(cbor.CborTypeMap, &rec)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		req := nesteddecoder.Request{Text: rec.Text, Pattern: rec.Pattern}
		if req.Pattern == "" {
			req.Pattern = a.cfg.Pattern
		}
		if err := p.Submit(ctx, req); err != nil {
			return err
		}
	}
}

func (a *app) lineRequest(line string) nesteddecoder.Request {
	if pattern, text, ok := strings.Cut(line, "\t"); ok {
		return nesteddecoder.Request{Text: text, Pattern: pattern}
	}
	return nesteddecoder.Request{Text: line, Pattern: a.cfg.Pattern}
}
