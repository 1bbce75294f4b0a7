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

// Package nesteddecoder decodes text that went through one or more nested
// encodings.
//
// A caller supplies the encoded text and a pattern naming the encodings in the
// order they have to be undone, for example "binary,ascii" or "rot13". The
// decoder resolves the pattern into stages and applies them left to right,
// each stage consuming the previous stage's output. Without a pattern the
// decoder suggests a likely encoding, and without input it lists what it
// supports.
package nesteddecoder

import (
	"log/slog"

	"github.com/blinklabs-io/nesteddecoder/capability"
	"github.com/blinklabs-io/nesteddecoder/detect"
	"github.com/blinklabs-io/nesteddecoder/pattern"
)

// Decoder resolves patterns and runs decode pipelines. It holds no state
// that changes between calls other than an optional result cache, and is
// safe for concurrent use.
type Decoder struct {
	logger       *slog.Logger
	extraAliases map[string]string
	cacheSize    int
	resolver     *pattern.Resolver
	cache        *resultCache
}

// New returns a Decoder configured with the given options
func New(options ...DecoderOptionFunc) *Decoder {
	d := &Decoder{}
	for _, option := range options {
		option(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	d.resolver = pattern.NewResolver(d.extraAliases)
	if d.cacheSize > 0 {
		d.cache = newResultCache(d.cacheSize)
	}
	return d
}

// Options returns the parameters and encodings the decoder accepts
func (d *Decoder) Options() capability.Listing {
	return capability.New(d.resolver.Aliases())
}

// Detect returns the most likely encoding of the input, or detect.None
func (d *Decoder) Detect(encoded string) string {
	return detect.Suggest(encoded)
}

// Resolve turns a comma-delimited pattern into stages
func (d *Decoder) Resolve(p string) []pattern.Stage {
	return d.ResolveTokens(pattern.Split(p))
}

// ResolveTokens turns pattern tokens into stages, skipping unknown tokens
func (d *Decoder) ResolveTokens(tokens []string) []pattern.Stage {
	ret := make([]pattern.Stage, 0, len(tokens))
	for _, token := range tokens {
		stage, ok := d.resolver.ResolveToken(token)
		if !ok {
			d.logger.Debug(
				"ignoring unknown pattern token",
				"token",
				token,
			)
			continue
		}
		ret = append(ret, stage)
	}
	return ret
}

// Decode decodes the input using a comma-delimited pattern
func (d *Decoder) Decode(encoded string, p string) (string, error) {
	return d.Execute(encoded, d.Resolve(p))
}

// DecodeTokens decodes the input using an already tokenized pattern
func (d *Decoder) DecodeTokens(encoded string, tokens []string) (string, error) {
	return d.Execute(encoded, d.ResolveTokens(tokens))
}

// Execute applies stages to the input in order
func (d *Decoder) Execute(encoded string, stages []pattern.Stage) (string, error) {
	if d.cache != nil {
		if ret, ok := d.cache.Get(encoded, stages); ok {
			return ret, nil
		}
	}
	ret, err := executeStages(encoded, stages, d.logger)
	if err != nil {
		return "", err
	}
	if d.cache != nil {
		d.cache.Put(encoded, stages, ret)
	}
	return ret, nil
}
