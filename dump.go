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

// Package mfdump decodes raw MIFARE Classic card dumps into a structured,
// semantically labeled form: manufacturer identity, per-sector data blocks
// and per-sector keys and access conditions.
//
// The decoder is a pure transform over an in-memory image and does no I/O
// of its own. Container formats live in the dumpfile package and serial
// text capture in the capture package.
package mfdump

import (
	"encoding/hex"
	"fmt"
)

// Geometry of a MIFARE Classic image. The sector count is not part of the
// geometry: the decoder processes however many sectors the dump holds.
const (
	// BlockSize is the byte length of one block.
	BlockSize = 16
	// BlocksPerSector is the block count of a full sector.
	BlocksPerSector = 4
	// SectorSize is the byte length of a full sector.
	SectorSize = BlockSize * BlocksPerSector
	// KeySize is the byte length of a sector key.
	KeySize = 6

	// Two hex characters encode one byte, most significant nibble first.
	blockHexLen  = BlockSize * 2
	sectorHexLen = SectorSize * 2

	// nuidSize is the byte length of the non-unique identifier, the
	// 4-byte prefix every UID size shares.
	nuidSize = 4
)

// CardDump is the decoded form of a complete card image.
type CardDump struct {
	Sectors      []Sector          `json:"sectors"`
	Manufacturer ManufacturerBlock `json:"manufacturer"`
}

// ManufacturerBlock is the factory-written block 0 of sector 0. SAK, ATQA
// and BCC are present only when the block's byte pattern embeds them; Extra
// holds whatever follows the identification fields.
type ManufacturerBlock struct {
	SAK   *byte   `json:"sak,omitempty"`
	BCC   *byte   `json:"bcc,omitempty"`
	UID   ByteSeq `json:"uid"`
	NUID  ByteSeq `json:"nuid"`
	ATQA  ByteSeq `json:"atqa,omitempty"`
	Extra ByteSeq `json:"extra"`
	Raw   ByteSeq `json:"raw"`
}

// Sector groups the data blocks and trailer of one sector. Sector 0
// reserves its first block for manufacturer data, so a full sector 0
// carries two data blocks where every other full sector carries three.
type Sector struct {
	DataBlocks []DataBlock   `json:"data_blocks"`
	Trailer    SectorTrailer `json:"trailer"`
}

// DataBlock is one decoded non-trailer block.
type DataBlock struct {
	Kind  BlockKind `json:"kind"`
	Bytes ByteSeq   `json:"bytes"`
}

// SectorTrailer is the final block of a sector: both keys, the free user
// byte, and the access conditions in raw and expanded form.
type SectorTrailer struct {
	KeyA         ByteSeq                  `json:"key_a"`
	KeyB         ByteSeq                  `json:"key_b"`
	AccessRaw    ByteSeq                  `json:"access_raw"`
	AccessParsed [accessTupleCount]string `json:"access_parsed"`
	UserByte     byte                     `json:"user_byte"`
}

// Decode transforms dump text into a CardDump. The input is a hexadecimal
// byte image, case-insensitive, with arbitrary interspersed whitespace.
//
// Decode returns either a fully decoded dump or an error, never a partial
// result. Errors wrap the package's sentinel values; per-sector failures
// carry the sector index in the message.
func Decode(dump string) (*CardDump, error) {
	canonical, err := normalizeHex(dump)
	if err != nil {
		return nil, err
	}

	sectorChunks := splitSectors(canonical)

	var manufacturer ManufacturerBlock
	if len(sectorChunks) > 0 {
		blocks := splitBlocks(sectorChunks[0])
		manufacturer, err = decodeManufacturerBlock(blocks[0])
		if err != nil {
			return nil, fmt.Errorf("sector 0 block 0: %w", err)
		}
	}

	sectors := make([]Sector, 0, len(sectorChunks))
	for i, chunk := range sectorChunks {
		sector, err := decodeSector(chunk, i == 0)
		if err != nil {
			return nil, fmt.Errorf("sector %d: %w", i, err)
		}
		sectors = append(sectors, sector)
	}

	return &CardDump{Sectors: sectors, Manufacturer: manufacturer}, nil
}

// DecodeBytes decodes a flat binary card image by hex-encoding it into the
// textual pipeline. Containers that store raw bytes enter here.
func DecodeBytes(image []byte) (*CardDump, error) {
	return Decode(hex.EncodeToString(image))
}

// decodeSector decodes one sector chunk. The final block is always treated
// as the trailer regardless of how many blocks the chunk holds; for sector
// 0 the first block is the manufacturer block and is skipped here.
func decodeSector(chunk string, first bool) (Sector, error) {
	blocks := splitBlocks(chunk)

	dataChunks := blocks[:len(blocks)-1]
	if first && len(dataChunks) > 0 {
		dataChunks = dataChunks[1:]
	}

	dataBlocks := make([]DataBlock, 0, len(dataChunks))
	for i, blockHex := range dataChunks {
		block, err := decodeDataBlock(blockHex)
		if err != nil {
			pos := i
			if first {
				pos++
			}
			return Sector{}, fmt.Errorf("block %d: %w", pos, err)
		}
		dataBlocks = append(dataBlocks, block)
	}

	trailer, err := decodeTrailer(blocks[len(blocks)-1])
	if err != nil {
		return Sector{}, fmt.Errorf("block %d: %w", len(blocks)-1, err)
	}

	return Sector{DataBlocks: dataBlocks, Trailer: trailer}, nil
}
