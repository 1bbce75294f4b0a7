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
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blinklabs-io/nesteddecoder/cbor"
	"github.com/blinklabs-io/nesteddecoder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// runCommand executes the root command with the given arguments and input
func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigFile, "")
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDecodeArgument(t *testing.T) {
	stdout, _, err := runCommand(t, "", "-p", "base64,rot13", "dXJ5eWI=")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout)
}

func TestDecodePipedInput(t *testing.T) {
	stdout, _, err := runCommand(t, "68 65 6c 6c 6f\n", "--pattern", "hex,ascii")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout)
}

func TestDecodeJSON(t *testing.T) {
	stdout, _, err := runCommand(t, "", "-p", "rot13", "--format", "json", "uryyb")
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":"hello"}`, stdout)
}

func TestDecodeCBOR(t *testing.T) {
	stdout, _, err := runCommand(t, "", "-p", "rot13", "--format", "cbor", "uryyb")
	require.NoError(t, err)
	major, ok := cbor.MajorType([]byte(stdout))
	require.True(t, ok)
	assert.Equal(t, cbor.CborTypeMap, major)
	r, err := cbor.NewSequenceReader(strings.NewReader(stdout))
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, r.Next(cbor.CborTypeMap, &decoded))
	assert.Equal(t, map[string]any{"result": "hello"}, decoded)
}

func TestDecodeError(t *testing.T) {
	_, _, err := runCommand(t, "", "-p", "ascii", "1114112")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ascii")
}

func TestSuggestionWithoutPattern(t *testing.T) {
	stdout, _, err := runCommand(t, "", "--format", "json", "aGVsbG8=")
	require.NoError(t, err)
	assert.JSONEq(t, `{"suggestion":"base64"}`, stdout)

	stdout, _, err = runCommand(t, "", "--format", "json", "hello world!")
	require.NoError(t, err)
	assert.JSONEq(t, `{"suggestion":null}`, stdout)
}

func TestOptions(t *testing.T) {
	for _, args := range [][]string{{"options"}, {}} {
		stdout, _, err := runCommand(t, "", args...)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stdout, "parameters: encodedString, pattern\nencodings:\n"))
		assert.Contains(t, stdout, "  hex: see base16\n")
	}

	stdout, _, err := runCommand(t, "", "options", "--format", "json")
	require.NoError(t, err)
	var listing struct {
		Parameters []string          `json:"parameters"`
		Encodings  map[string]string `json:"encodings"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &listing))
	assert.Equal(t, []string{"encodedString", "pattern"}, listing.Parameters)
	assert.Contains(t, listing.Encodings, "base<x>")
	assert.Equal(t, "see base16", listing.Encodings["hex"])
}

func TestDetect(t *testing.T) {
	stdout, _, err := runCommand(t, "", "detect", "&#x68;&#x69;")
	require.NoError(t, err)
	assert.Equal(t, "html\n", stdout)

	stdout, _, err = runCommand(t, "hello world!", "detect")
	require.NoError(t, err)
	assert.Equal(t, "none\n", stdout)
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := runCommand(t, "", "--format", "xml", "x")
	require.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pattern: codes\naliases:\n  codes: ascii\n"), 0o600))

	stdout, _, err := runCommand(t, "", "--config", path, "104 105")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", stdout)

	// Flags win over the file
	stdout, _, err = runCommand(t, "", "--config", path, "-p", "rot13", "uv")
	require.NoError(t, err)
	assert.Equal(t, "hi\n", stdout)
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := runCommand(t, "", "-v", "-p", "rot13,bogus", "uryyb")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, "bogus")
}

func TestBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	input := strings.Join([]string{
		"rot13\turyyb",
		"",
		"hex,ascii\t68 69",
		"ascii\t1114112",
		"base64\taGVsbG8=",
	}, "\n")
	stdout, _, err := runCommand(t, input, "batch", "-w", "3")
	require.ErrorIs(t, err, errBatchFailed)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "hello", lines[0])
	assert.Equal(t, "hi", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "error: "))
	assert.Equal(t, "hello", lines[3])
}

func TestBatchDefaultPatternAndDetect(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("uryyb\nivrjre\n"), 0o600))

	stdout, _, err := runCommand(t, "", "batch", "-p", "rot13", "-i", path, "--detect", "--format", "json")
	require.NoError(t, err)
	dec := json.NewDecoder(strings.NewReader(stdout))
	var records []map[string]any
	for dec.More() {
		var record map[string]any
		require.NoError(t, dec.Decode(&record))
		records = append(records, record)
	}
	require.Len(t, records, 2)
	assert.Equal(t, "hello", records[0]["result"])
	assert.Equal(t, float64(0), records[0]["sequence"])
	assert.Equal(t, "base64", records[0]["detected"])
	assert.Equal(t, "viewer", records[1]["result"])
	assert.Equal(t, float64(1), records[1]["sequence"])
}

// readResults collects the result of every map in a CBOR sequence
func readResults(t *testing.T, stdout string) []any {
	t.Helper()
	r, err := cbor.NewSequenceReader(strings.NewReader(stdout))
	require.NoError(t, err)
	var results []any
	for {
		var record map[string]any
		err := r.Next(cbor.CborTypeMap, &record)
		if errors.Is(err, io.EOF) {
			return results
		}
		require.NoError(t, err)
		results = append(results, record["result"])
	}
}

func TestBatchCBOR(t *testing.T) {
	defer goleak.VerifyNone(t)

	stdout, _, err := runCommand(t, "uryyb\nivrjre\n", "batch", "-p", "rot13", "--format", "cbor")
	require.NoError(t, err)
	assert.Equal(t, []any{"hello", "viewer"}, readResults(t, stdout))
}

func TestBatchCBORInput(t *testing.T) {
	defer goleak.VerifyNone(t)

	var input []byte
	for _, rec := range []batchRecord{
		{Pattern: "hex,ascii", Text: "68 69"},
		{Text: "uryyb"},
		{Pattern: "base64,rot13", Text: "dXJ5eWI="},
	} {
		data, err := cbor.Encode(rec)
		require.NoError(t, err)
		input = append(input, data...)
	}
	stdout, _, err := runCommand(t, string(input), "batch", "-p", "rot13", "--input-format", "cbor", "--format", "cbor")
	require.NoError(t, err)
	assert.Equal(t, []any{"hi", "hello", "hello"}, readResults(t, stdout))
}

func TestBatchCBORInputRejectsNonMap(t *testing.T) {
	defer goleak.VerifyNone(t)

	input, err := cbor.Encode([]any{"rot13", "uryyb"})
	require.NoError(t, err)
	_, _, err = runCommand(t, string(input), "batch", "--input-format", "cbor")
	require.ErrorIs(t, err, cbor.ErrUnexpectedType)
}

func TestBatchUnknownInputFormat(t *testing.T) {
	_, _, err := runCommand(t, "", "batch", "--input-format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown input format")
}

func TestBatchMissingInput(t *testing.T) {
	_, _, err := runCommand(t, "", "batch", "-i", filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
