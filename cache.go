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
	"fmt"
	"sync"

	"github.com/blinklabs-io/nesteddecoder/pattern"
	"golang.org/x/crypto/blake2b"
)

type cacheKey [blake2b.Size256]byte

// resultCache holds recent decode results keyed by a digest of the stages and
// the input. The oldest entry is evicted first once the cache is full.
type resultCache struct {
	mu      sync.Mutex
	size    int
	entries map[cacheKey]string
	order   []cacheKey
}

func newResultCache(size int) *resultCache {
	return &resultCache{
		size:    size,
		entries: make(map[cacheKey]string, size),
		order:   make([]cacheKey, 0, size),
	}
}

func newCacheKey(encoded string, stages []pattern.Stage) cacheKey {
	// New256 only fails for keys longer than 64 bytes
	h, _ := blake2b.New256(nil)
	for _, stage := range stages {
		fmt.Fprintf(
			h,
			"%d:%d:%d:%t:%t;",
			stage.Kind,
			stage.Radix,
			stage.Shift,
			stage.FullCharset,
			stage.ThenASCII,
		)
	}
	h.Write([]byte{0})
	h.Write([]byte(encoded))
	var ret cacheKey
	copy(ret[:], h.Sum(nil))
	return ret
}

func (c *resultCache) Get(encoded string, stages []pattern.Stage) (string, bool) {
	key := newCacheKey(encoded, stages)
	c.mu.Lock()
	defer c.mu.Unlock()
	ret, ok := c.entries[key]
	return ret, ok
}

func (c *resultCache) Put(encoded string, stages []pattern.Stage, decoded string) {
	key := newCacheKey(encoded, stages)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return
	}
	if len(c.order) >= c.size {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
	c.entries[key] = decoded
	c.order = append(c.order, key)
}

// Len returns the number of cached results
func (c *resultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
