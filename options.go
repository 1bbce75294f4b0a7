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
	"log/slog"
)

// DecoderOptionFunc is a type that represents functions that modify the Decoder config
type DecoderOptionFunc func(*Decoder)

// WithLogger specifies the logger to use. The default is slog.Default()
func WithLogger(logger *slog.Logger) DecoderOptionFunc {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// WithAliases adds pattern aliases on top of the built-in ones. A name that
// matches a built-in alias replaces it.
func WithAliases(aliases map[string]string) DecoderOptionFunc {
	return func(d *Decoder) {
		if d.extraAliases == nil {
			d.extraAliases = make(map[string]string, len(aliases))
		}
		for name, target := range aliases {
			d.extraAliases[name] = target
		}
	}
}

// WithCacheSize enables a cache holding up to size decode results. A size of 0
// disables the cache.
func WithCacheSize(size int) DecoderOptionFunc {
	return func(d *Decoder) {
		if size >= 0 {
			d.cacheSize = size
		}
	}
}
