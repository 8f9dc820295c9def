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

package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mfdump "github.com/ZaparooProject/go-mfdump"
	"github.com/ZaparooProject/go-mfdump/keydict"
)

// Image fragments: a factory-fresh sector 0 and an NDEF-formatted card
// carrying one URI record (https://zaparoo.org).
const (
	manufacturerHex = "04020304" + "01" + "08" + "0400" + "AABBCCDDEEFF0011"
	factoryTrailer  = "FFFFFFFFFFFF" + "FF0780" + "69" + "FFFFFFFFFFFF"
	zeroBlock       = "00000000000000000000000000000000"
	factorySector   = manufacturerHex + zeroBlock + zeroBlock + factoryTrailer

	madSector = manufacturerHex +
		"0F00" + "03E103E103E103E103E103E103E1" +
		"03E103E103E103E103E103E103E103E1" +
		"A0A1A2A3A4A5" + "787788" + "C1" + "FFFFFFFFFFFF"
)

var uriSector = "0310D1010C55047A617061726F6F2E6F" +
	"7267FE" + strings.Repeat("00", 13) +
	zeroBlock +
	"D3F7D3F7D3F7" + "7F0788" + "40" + "FFFFFFFFFFFF"

func decodeFixture(t *testing.T, image string) *mfdump.CardDump {
	t.Helper()
	dump, err := mfdump.Decode(image)
	require.NoError(t, err)
	return dump
}

func TestRenderDumpFactoryCard(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	dump := decodeFixture(t, factorySector)
	require.NoError(t, renderDump(&out, dump, keydict.New()))
	text := out.String()

	assert.Contains(t, text, "UID      04 02 03 04 (4-byte, NXP)")
	assert.Contains(t, text, "BCC      01 (ok)")
	assert.Contains(t, text, "SAK      08")
	assert.Contains(t, text, "ATQA     04 00")
	assert.Contains(t, text, "Sectors  1")
	assert.Contains(t, text, "MAD      none")
	assert.Contains(t, text, "NDEF     none")
	assert.Contains(t, text, "Sector 0")
	assert.Contains(t, text, "manufacturer")
	assert.Contains(t, text, "key A FF FF FF FF FF FF (factory default)")
	assert.Contains(t, text, "access FF 07 80 [000 000 000 001]  user 69")
}

func TestRenderDumpNDEFCard(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	dump := decodeFixture(t, madSector+uriSector)
	require.NoError(t, renderDump(&out, dump, keydict.New()))
	text := out.String()

	assert.Contains(t, text, "MAD      v1, NDEF sectors 1,2,")
	assert.Contains(t, text, "NDEF     uri https://zaparoo.org")
	assert.Contains(t, text, "key A A0 A1 A2 A3 A4 A5 (MIFARE application directory)")
	assert.Contains(t, text, "key A D3 F7 D3 F7 D3 F7 (NFC Forum NDEF)")
}

func TestRenderDumpValueBlock(t *testing.T) {
	t.Parallel()

	// Value 100 at address 5, inverted copies in place.
	valueBlock := "64000000" + "9BFFFFFF" + "64000000" + "05FA05FA"
	image := factorySector + valueBlock + zeroBlock + zeroBlock + factoryTrailer

	var out strings.Builder
	dump := decodeFixture(t, image)
	require.NoError(t, renderDump(&out, dump, keydict.New()))

	assert.Contains(t, out.String(), "value 100 addr 05")
}

func TestRenderDumpEmpty(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	dump := decodeFixture(t, "")
	require.NoError(t, renderDump(&out, dump, keydict.New()))
	text := out.String()

	assert.Contains(t, text, "UID      none (empty dump)")
	assert.Contains(t, text, "Sectors  0")
}

func TestRenderDiff(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	diffs := []mfdump.BlockDiff{
		{Sector: 1, Block: 2, A: mfdump.ByteSeq{0x01}, B: nil},
	}
	require.NoError(t, renderDiff(&out, diffs))
	text := out.String()

	assert.Contains(t, text, "sector 1 block 2")
	assert.Contains(t, text, "a: 01")
	assert.Contains(t, text, "b: (absent)")
	assert.Contains(t, text, "1 block(s) differ")
}

func TestRenderDiffIdentical(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	require.NoError(t, renderDiff(&out, nil))
	assert.Equal(t, "dumps are identical\n", out.String())
}
