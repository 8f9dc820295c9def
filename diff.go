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

import "bytes"

// BlockDiff reports one physical block position whose bytes differ between
// two dumps. A and B are nil when the corresponding dump has no block at
// that position.
type BlockDiff struct {
	A      ByteSeq `json:"a"`
	B      ByteSeq `json:"b"`
	Sector int     `json:"sector"`
	Block  int     `json:"block"`
}

// Diff compares two decoded dumps block by block at physical positions and
// returns every position whose bytes differ, ordered by sector then block.
// Two snapshots of the same card taken before and after a write show
// exactly the written blocks.
func Diff(a, b *CardDump) []BlockDiff {
	var diffs []BlockDiff
	sectors := max(len(a.Sectors), len(b.Sectors))
	for s := range sectors {
		blocksA := physicalBlocks(a, s)
		blocksB := physicalBlocks(b, s)
		positions := max(len(blocksA), len(blocksB))
		for p := range positions {
			var bytesA, bytesB ByteSeq
			if p < len(blocksA) {
				bytesA = blocksA[p]
			}
			if p < len(blocksB) {
				bytesB = blocksB[p]
			}
			if !bytes.Equal(bytesA, bytesB) {
				diffs = append(diffs, BlockDiff{Sector: s, Block: p, A: bytesA, B: bytesB})
			}
		}
	}
	return diffs
}

// physicalBlocks reassembles the block images of one sector in card order:
// the manufacturer block leads sector 0, then data blocks, then the
// trailer.
func physicalBlocks(dump *CardDump, sector int) []ByteSeq {
	if sector >= len(dump.Sectors) {
		return nil
	}
	s := dump.Sectors[sector]

	blocks := make([]ByteSeq, 0, BlocksPerSector)
	if sector == 0 && len(dump.Manufacturer.Raw) > 0 {
		blocks = append(blocks, dump.Manufacturer.Raw)
	}
	for _, b := range s.DataBlocks {
		blocks = append(blocks, b.Bytes)
	}
	return append(blocks, s.Trailer.Bytes())
}
