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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffIdenticalDumps(t *testing.T) {
	t.Parallel()

	a, err := Decode(buildImageHex(4))
	require.NoError(t, err)
	b, err := Decode(buildImageHex(4))
	require.NoError(t, err)

	assert.Empty(t, Diff(a, b))
}

func TestDiffSingleBlockWrite(t *testing.T) {
	t.Parallel()

	before, err := Decode(buildImageHex(2))
	require.NoError(t, err)

	// Rewrite sector 1 block 1 (the sixth physical block).
	image := buildImageHex(2)
	changed := image[:5*blockHexLen] + strings.Repeat("42", BlockSize) + image[6*blockHexLen:]
	after, err := Decode(changed)
	require.NoError(t, err)

	diffs := Diff(before, after)
	require.Len(t, diffs, 1)
	assert.Equal(t, 1, diffs[0].Sector)
	assert.Equal(t, 1, diffs[0].Block)
	assert.Equal(t, ByteSeq(make([]byte, BlockSize)), diffs[0].A)
	assert.Equal(t, ByteSeq(strings.Repeat("\x42", BlockSize)), diffs[0].B)
}

func TestDiffManufacturerAndTrailerPositions(t *testing.T) {
	t.Parallel()

	a, err := Decode(buildImageHex(1))
	require.NoError(t, err)

	// Different UID and different sector 0 user byte.
	otherHex := "AABBCCDD" + "08" + "08" + "0400" + "00112233445566FF" +
		zeroBlockHex + zeroBlockHex +
		"FFFFFFFFFFFF" + "FF0780" + "00" + "FFFFFFFFFFFF"
	b, err := Decode(otherHex)
	require.NoError(t, err)

	diffs := Diff(a, b)
	require.Len(t, diffs, 2)

	assert.Equal(t, 0, diffs[0].Sector)
	assert.Equal(t, 0, diffs[0].Block)
	assert.Equal(t, 0, diffs[1].Sector)
	assert.Equal(t, 3, diffs[1].Block)
}

func TestDiffLengthMismatch(t *testing.T) {
	t.Parallel()

	long, err := Decode(buildImageHex(2))
	require.NoError(t, err)
	short, err := Decode(buildImageHex(1))
	require.NoError(t, err)

	diffs := Diff(long, short)
	require.Len(t, diffs, BlocksPerSector)
	for i, d := range diffs {
		assert.Equal(t, 1, d.Sector)
		assert.Equal(t, i, d.Block)
		assert.NotNil(t, d.A)
		assert.Nil(t, d.B)
	}

	// Orientation matters: swapping the arguments swaps the sides.
	reversed := Diff(short, long)
	require.Len(t, reversed, BlocksPerSector)
	assert.Nil(t, reversed[0].A)
	assert.NotNil(t, reversed[0].B)
}
