// Copyright 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: Apache-2.0
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

package mfdump

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// BlockKind classifies a data block's content format.
type BlockKind string

// A block is a Value block only when it carries the full redundancy scheme
// of the MIFARE value format; everything else is Plain.
const (
	KindValue BlockKind = "value"
	KindPlain BlockKind = "plain"
)

// Value block layout: a 4-byte little-endian value stored three times with
// the middle copy inverted, then a 1-byte address stored four times,
// alternating direct and inverted.
const (
	valueLen     = 4
	valueInvOff  = valueLen
	valueCopyOff = 2 * valueLen
	valueAddrOff = 3 * valueLen
)

// decodeDataBlock decodes one non-trailer block and classifies it. Anything
// other than exactly one block of clean hex is malformed.
func decodeDataBlock(blockHex string) (DataBlock, error) {
	if len(blockHex) != blockHexLen {
		return DataBlock{}, fmt.Errorf("%w: %d hex chars, want %d",
			ErrMalformedValueBlock, len(blockHex), blockHexLen)
	}
	raw, err := hex.DecodeString(blockHex)
	if err != nil {
		return DataBlock{}, fmt.Errorf("%w: %v", ErrMalformedValueBlock, err)
	}

	kind := KindPlain
	if isValueBlock(raw) {
		kind = KindValue
	}
	return DataBlock{Kind: kind, Bytes: raw}, nil
}

// isValueBlock checks the triple-value and quadruple-address redundancy of
// the value format. Any mismatched byte demotes the block to plain data.
func isValueBlock(b []byte) bool {
	for i := range valueLen {
		if b[i] != b[valueCopyOff+i] || b[i] != ^b[valueInvOff+i] {
			return false
		}
	}
	addr := b[valueAddrOff]
	return addr == b[valueAddrOff+2] &&
		addr == ^b[valueAddrOff+1] &&
		addr == ^b[valueAddrOff+3]
}

// Value returns the stored signed 32-bit value and address byte of a Value
// block. ok is false for Plain blocks.
func (b *DataBlock) Value() (value int32, addr byte, ok bool) {
	if b.Kind != KindValue || len(b.Bytes) != BlockSize {
		return 0, 0, false
	}
	value = int32(binary.LittleEndian.Uint32(b.Bytes[:valueLen]))
	return value, b.Bytes[valueAddrOff], true
}
