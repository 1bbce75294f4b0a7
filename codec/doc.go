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

// Package codec implements the individual text decoders that can be chained
// into a decode pattern.
//
// Numeric decoders exchange space-separated groups: DecodeBaseN and
// DecodeUnary turn digit groups into base-10 code points, and DecodeASCII
// turns code points into characters. DecodeUnicode and DecodeHTML extract
// escape sequences from surrounding text, while DecodeRot, DecodeBase64,
// DecodeBase58 and DecodeBech32 operate on the whole input.
//
// Decoders are pure functions and safe for concurrent use.
package codec
