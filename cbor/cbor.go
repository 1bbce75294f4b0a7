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
package cbor

import "strconv"

// Major types of the initial byte of an encoded item
const (
	CborTypeUnsignedInt uint8 = 0x00
	CborTypeNegativeInt uint8 = 0x20
	CborTypeByteString  uint8 = 0x40
	CborTypeTextString  uint8 = 0x60
	CborTypeArray       uint8 = 0x80
	CborTypeMap         uint8 = 0xa0
	CborTypeTag         uint8 = 0xc0
	CborTypeSimple      uint8 = 0xe0

	// Only the top 3 bits are used to specify the type
	CborTypeMask uint8 = 0xe0
)

// MajorType returns the major type bits of the first byte of an encoded item
func MajorType(data []byte) (uint8, bool) {
	if len(data) == 0 {
		return 0, false
	}
	return data[0] & CborTypeMask, true
}

func majorTypeName(major uint8) string {
	switch major {
	case CborTypeUnsignedInt:
		return "an unsigned integer"
	case CborTypeNegativeInt:
		return "a negative integer"
	case CborTypeByteString:
		return "a byte string"
	case CborTypeTextString:
		return "a text string"
	case CborTypeArray:
		return "an array"
	case CborTypeMap:
		return "a map"
	case CborTypeTag:
		return "a tag"
	case CborTypeSimple:
		return "a simple value"
	}
	return "major type 0x" + strconv.FormatUint(uint64(major), 16)
}
