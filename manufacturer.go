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
	"encoding/hex"
	"fmt"
)

// SAK values that fix the UID size directly during anti-collision.
const (
	sakUID4 = 0x08
	sakUID7 = 0x18
)

// uidSizeUnknown marks a block whose SAK and ATQA match no UID size class.
const uidSizeUnknown = 0

// uidTagDetector probes one known SAK/ATQA embedding inside a manufacturer
// block. Detectors run in order and the first match wins.
type uidTagDetector struct {
	match func(block []byte) (sak byte, atqa ByteSeq, ok bool)
	name  string
}

// uidTagDetectors holds the known embeddings: 4-byte UID cards place the
// SAK at offset 5 followed by ATQA 04 00, 7-byte UID cards place it at
// offset 7 followed by ATQA 44 00. The high SAK bit may be set on cards
// answering mid-cascade, so 0x88 and 0x98 match as well.
var uidTagDetectors = []uidTagDetector{
	{
		name: "uid4",
		match: func(b []byte) (byte, ByteSeq, bool) {
			if (b[5] == 0x08 || b[5] == 0x88) && b[6] == 0x04 && b[7] == 0x00 {
				return b[5], ByteSeq{b[6], b[7]}, true
			}
			return 0, nil, false
		},
	},
	{
		name: "uid7",
		match: func(b []byte) (byte, ByteSeq, bool) {
			if (b[7] == 0x18 || b[7] == 0x98) && b[8] == 0x44 && b[9] == 0x00 {
				return b[7], ByteSeq{b[8], b[9]}, true
			}
			return 0, nil, false
		},
	},
}

// guessUIDSize fixes the UID byte count from the SAK, falling back to the
// UID size bits of the ATQA low byte when the SAK value is inconclusive.
func guessUIDSize(sak *byte, atqa ByteSeq) int {
	if sak != nil {
		switch *sak {
		case sakUID4:
			return 4
		case sakUID7:
			return 7
		}
	}
	if len(atqa) > 0 {
		switch (atqa[0] >> 4) & 0x07 {
		case 0b000:
			return 4
		case 0b001:
			return 7
		case 0b010:
			return 10
		}
	}
	return uidSizeUnknown
}

// decodeManufacturerBlock decodes block 0 of sector 0. The layout depends
// on the UID size, which is itself guessed from bytes inside the block, so
// decoding proceeds detector match, size guess, then field extraction.
func decodeManufacturerBlock(blockHex string) (ManufacturerBlock, error) {
	if len(blockHex) != blockHexLen {
		return ManufacturerBlock{}, fmt.Errorf("%w: %d hex chars, want %d",
			ErrMalformedManufacturerBlock, len(blockHex), blockHexLen)
	}
	raw, err := hex.DecodeString(blockHex)
	if err != nil {
		return ManufacturerBlock{}, fmt.Errorf("%w: %v", ErrMalformedManufacturerBlock, err)
	}

	var (
		sak  *byte
		atqa ByteSeq
	)
	for _, det := range uidTagDetectors {
		if s, a, ok := det.match(raw); ok {
			sak = &s
			atqa = a
			break
		}
	}

	size := guessUIDSize(sak, atqa)
	if size == uidSizeUnknown {
		return ManufacturerBlock{}, &UnresolvedUIDSizeError{
			SAK:  sak,
			NUID: ByteSeq(raw[:nuidSize:nuidSize]),
			ATQA: atqa,
			Raw:  ByteSeq(raw),
		}
	}

	var bcc *byte
	dataStart := size
	if size == nuidSize {
		b := raw[nuidSize]
		bcc = &b
		dataStart++
	}
	if sak != nil {
		dataStart++
	}
	dataStart += len(atqa)

	return ManufacturerBlock{
		SAK:   sak,
		BCC:   bcc,
		UID:   ByteSeq(raw[:size:size]),
		NUID:  ByteSeq(raw[:nuidSize:nuidSize]),
		ATQA:  atqa,
		Extra: ByteSeq(raw[dataStart:]),
		Raw:   ByteSeq(raw),
	}, nil
}

// BCCValid reports whether the block-check byte equals the XOR of the four
// NUID bytes. Blocks without a BCC field report false.
func (m *ManufacturerBlock) BCCValid() bool {
	if m.BCC == nil || len(m.NUID) != nuidSize {
		return false
	}
	var x byte
	for _, b := range m.NUID {
		x ^= b
	}
	return x == *m.BCC
}

// ChipMaker is the chip manufacturer identified from the UID. The first
// byte of a UID carries the manufacturer code per ISO/IEC 7816-6.
type ChipMaker string

// Manufacturer codes commonly seen on MIFARE Classic and compatible chips.
// An unrecognized code usually means a clone.
const (
	ChipMakerNXP      ChipMaker = "NXP"
	ChipMakerST       ChipMaker = "STMicroelectronics"
	ChipMakerInfineon ChipMaker = "Infineon"
	ChipMakerTI       ChipMaker = "Texas Instruments"
	ChipMakerUnknown  ChipMaker = "Unknown"
)

// Maker returns the chip manufacturer derived from the UID's first byte.
func (m *ManufacturerBlock) Maker() ChipMaker {
	if len(m.UID) == 0 {
		return ChipMakerUnknown
	}
	switch m.UID[0] {
	case 0x04:
		return ChipMakerNXP
	case 0x02:
		return ChipMakerST
	case 0x05:
		return ChipMakerInfineon
	case 0x07:
		return ChipMakerTI
	default:
		return ChipMakerUnknown
	}
}
