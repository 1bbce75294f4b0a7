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
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	nesteddecoder "github.com/blinklabs-io/nesteddecoder"
	"github.com/blinklabs-io/nesteddecoder/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app holds the state shared by all subcommands
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// Flags
	configPath string
	pattern    string
	format     string
	cacheSize  int
	verbose    bool

	cfg     *config.Config
	logger  *slog.Logger
	decoder *nesteddecoder.Decoder
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
	cmd := &cobra.Command{
		Use:   "nested-decoder [text]",
		Short: "Decode text that was encoded several times over",
		Long: `nested-decoder undoes a chain of encodings in one call.

The pattern is a comma-delimited list of encodings applied left to right,
for example "base64,rot13" or "hex,ascii". Without a pattern the most likely
encoding of the text is suggested, and without text the supported encodings
are listed. Text is read from standard input when it is not given as an
argument and standard input is not a terminal.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.inputText(args)
			if err != nil {
				return err
			}
			return a.answer(nesteddecoder.Request{
				Text:    text,
				Pattern: a.cfg.Pattern,
			})
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(
		&a.configPath,
		"config",
		"",
		"path to a YAML config file (defaults to $"+config.EnvConfigFile+")",
	)
	flags.StringVarP(
		&a.pattern,
		"pattern",
		"p",
		"",
		"comma-delimited list of encodings to undo, in order",
	)
	flags.StringVar(
		&a.format,
		"format",
		config.FormatText,
		"output format: text, json or cbor",
	)
	flags.IntVar(
		&a.cacheSize,
		"cache-size",
		0,
		"number of decode results to keep in memory (0 disables the cache)",
	)
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newOptionsCommand(a),
		newDetectCommand(a),
		newBatchCommand(a),
	)
	return cmd
}

// setup loads the config, applies explicit flags over it and builds the
// logger and decoder
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("pattern") {
		cfg.Pattern = a.pattern
	}
	if flags.Changed("format") {
		cfg.Format = a.format
	}
	if flags.Changed("cache-size") {
		cfg.CacheSize = a.cacheSize
	}
	if a.verbose {
		cfg.LogLevel = slog.LevelDebug.String()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = slog.New(
		slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}),
	)
	a.decoder = nesteddecoder.New(
		nesteddecoder.WithLogger(a.logger),
		nesteddecoder.WithAliases(cfg.Aliases),
		nesteddecoder.WithCacheSize(cfg.CacheSize),
	)
	return nil
}

// inputText returns the text argument, or the contents of standard input when
// it is piped
func (a *app) inputText(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if a.stdin == nil || isTerminal(a.stdin) {
		return "", nil
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// answer runs a single request and writes the response
func (a *app) answer(req nesteddecoder.Request) error {
	resp, err := a.decoder.Do(req)
	if err != nil {
		return err
	}
	return newResponseWriter(a.cfg.Format, a.stdout).WriteResponse(resp)
}

// isTerminal reports whether v is a file attached to a terminal
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
