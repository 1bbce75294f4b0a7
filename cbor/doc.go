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

// Package cbor provides the CBOR encoding used for decoder output and batch
// input.
//
// It wraps github.com/fxamacker/cbor/v2 with fixed modes: maps are encoded
// with core deterministic key ordering so that the same response always
// produces the same bytes, and decoding is shared through a cached DecMode.
//
// Batch input and output are CBOR sequences (RFC 8742), one map per request.
// SequenceReader reads them item by item.
package cbor
