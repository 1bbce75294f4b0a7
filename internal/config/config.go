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

// Package config loads the nested-decoder command configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile names the environment variable consulted when no config file
// is given on the command line
const EnvConfigFile = "NESTED_DECODER_CONFIG"

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

var (
	ErrInvalidFormat   = errors.New("config: invalid output format")
	ErrInvalidWorkers  = errors.New("config: workers must be at least 1")
	ErrInvalidCache    = errors.New("config: cache_size must not be negative")
	ErrInvalidLogLevel = errors.New("config: invalid log level")
)

// Config holds the command settings
type Config struct {
	// Pattern is used when a command is not given one explicitly
	Pattern string `yaml:"pattern"`
	// Format is the output format: text, json or cbor
	Format string `yaml:"format"`
	// Workers is the number of batch decode workers
	Workers int `yaml:"workers"`
	// Detect annotates batch output with an encoding suggestion
	Detect bool `yaml:"detect"`
	// CacheSize is the number of decode results kept in memory. Zero disables
	// the cache
	CacheSize int `yaml:"cache_size"`
	// LogLevel is one of debug, info, warn or error
	LogLevel string `yaml:"log_level"`
	// Aliases maps extra alias tokens to canonical tokens
	Aliases map[string]string `yaml:"aliases"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Format:    FormatText,
		Workers:   max(1, runtime.NumCPU()),
		CacheSize: 256,
		LogLevel:  "warn",
	}
}

// Load returns the default configuration with the given file merged over it.
// An empty path falls back to $NESTED_DECODER_CONFIG, and when that is unset
// too the defaults are returned as is. Zero values in the file leave the
// defaults in place.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	fileCfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Merge(fileCfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var ret Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ret); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &ret, nil
}

// Merge copies the non-zero fields of other over c
func (c *Config) Merge(other *Config) error {
	if err := copier.CopyWithOption(
		c,
		other,
		copier.Option{IgnoreEmpty: true, DeepCopy: true},
	); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	if !slices.Contains([]string{FormatText, FormatJSON, FormatCBOR}, c.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	if c.CacheSize < 0 {
		return ErrInvalidCache
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns the configured log level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return level, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return level, nil
}
