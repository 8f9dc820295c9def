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

// splitSectors partitions a canonical hex string into sector-sized chunks.
// A shorter trailing remainder is kept as the final chunk, and there is no
// upper bound on the sector count: the caller gets whatever the dump holds.
func splitSectors(canonical string) []string {
	return chunkString(canonical, sectorHexLen)
}

// splitBlocks partitions one sector chunk into block-sized chunks, again
// keeping a shorter trailing remainder.
func splitBlocks(sector string) []string {
	return chunkString(sector, blockHexLen)
}

// chunkString cuts s into n-sized pieces. Only the final piece may be
// shorter than n; an empty s yields no pieces.
func chunkString(s string, n int) []string {
	if s == "" {
		return nil
	}
	chunks := make([]string, 0, (len(s)+n-1)/n)
	for len(s) > n {
		chunks = append(chunks, s[:n])
		s = s[n:]
	}
	return append(chunks, s)
}
