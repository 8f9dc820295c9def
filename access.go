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

// accessTupleCount is the number of C1C2C3 tuples a trailer encodes, one
// per physical block position within the sector.
const accessTupleCount = 4

// decodeAccessBits expands the three raw access-condition bytes into the
// four per-position "C1C2C3" tuples. Counting bit 0 as the most significant
// bit of a byte, bit k of byte 1 carries C1, bit k of byte 0 carries the
// inverted C2, and bit k of byte 2 carries C3; positions are walked from
// k=3 down to k=0.
func decodeAccessBits(raw []byte) [accessTupleCount]string {
	var parsed [accessTupleCount]string
	i := 0
	for k := 3; k >= 0; k-- {
		c1 := msbBit(raw[1], k)
		c2 := msbBit(raw[0], k) ^ 1
		c3 := msbBit(raw[2], k)
		parsed[i] = string([]byte{'0' + c1, '0' + c2, '0' + c3})
		i++
	}
	return parsed
}

// msbBit returns bit i of b counting down from the most significant bit.
func msbBit(b byte, i int) byte {
	return (b >> (7 - i)) & 1
}

// KeyGate names which authentication unlocks an operation on a block.
type KeyGate string

// The four possible gates of the MF1S50 access model.
const (
	GateNever   KeyGate = "never"
	GateKeyA    KeyGate = "key A"
	GateKeyB    KeyGate = "key B"
	GateKeyAOrB KeyGate = "key A|B"
)

// DataAccess lists the operations a data block's access tuple permits and
// the key each one requires.
type DataAccess struct {
	Read  KeyGate `json:"read"`
	Write KeyGate `json:"write"`
	// Increment gates the increment command alone.
	Increment KeyGate `json:"increment"`
	// Decrement also gates transfer and restore, which always share
	// its condition.
	Decrement KeyGate `json:"decrement"`
}

// TrailerAccess lists the rights a trailer's own access tuple grants over
// its fields. Key A is never readable, so no gate is listed for it.
type TrailerAccess struct {
	KeyAWrite   KeyGate `json:"key_a_write"`
	AccessRead  KeyGate `json:"access_read"`
	AccessWrite KeyGate `json:"access_write"`
	KeyBRead    KeyGate `json:"key_b_read"`
	KeyBWrite   KeyGate `json:"key_b_write"`
}

// dataAccessTable maps a data block's C1C2C3 tuple to its rights, per the
// MF1S50 data sheet. "000" is the transport configuration.
var dataAccessTable = map[string]DataAccess{
	"000": {Read: GateKeyAOrB, Write: GateKeyAOrB, Increment: GateKeyAOrB, Decrement: GateKeyAOrB},
	"010": {Read: GateKeyAOrB, Write: GateNever, Increment: GateNever, Decrement: GateNever},
	"100": {Read: GateKeyAOrB, Write: GateKeyB, Increment: GateNever, Decrement: GateNever},
	"110": {Read: GateKeyAOrB, Write: GateKeyB, Increment: GateKeyB, Decrement: GateKeyAOrB},
	"001": {Read: GateKeyAOrB, Write: GateNever, Increment: GateNever, Decrement: GateKeyAOrB},
	"011": {Read: GateKeyB, Write: GateKeyB, Increment: GateNever, Decrement: GateNever},
	"101": {Read: GateKeyB, Write: GateNever, Increment: GateNever, Decrement: GateNever},
	"111": {Read: GateNever, Write: GateNever, Increment: GateNever, Decrement: GateNever},
}

// trailerAccessTable maps the trailer's own C1C2C3 tuple to the rights over
// its fields, per the MF1S50 data sheet. "001" is the transport
// configuration.
var trailerAccessTable = map[string]TrailerAccess{
	"000": {KeyAWrite: GateKeyA, AccessRead: GateKeyA, AccessWrite: GateNever, KeyBRead: GateKeyA, KeyBWrite: GateKeyA},
	"010": {KeyAWrite: GateNever, AccessRead: GateKeyA, AccessWrite: GateNever, KeyBRead: GateKeyA, KeyBWrite: GateNever},
	"100": {KeyAWrite: GateKeyB, AccessRead: GateKeyAOrB, AccessWrite: GateNever, KeyBRead: GateNever, KeyBWrite: GateKeyB},
	"110": {KeyAWrite: GateNever, AccessRead: GateKeyAOrB, AccessWrite: GateNever, KeyBRead: GateNever, KeyBWrite: GateNever},
	"001": {KeyAWrite: GateKeyA, AccessRead: GateKeyA, AccessWrite: GateKeyA, KeyBRead: GateKeyA, KeyBWrite: GateKeyA},
	"011": {KeyAWrite: GateKeyB, AccessRead: GateKeyAOrB, AccessWrite: GateKeyB, KeyBRead: GateNever, KeyBWrite: GateKeyB},
	"101": {KeyAWrite: GateNever, AccessRead: GateKeyAOrB, AccessWrite: GateKeyB, KeyBRead: GateNever, KeyBWrite: GateNever},
	"111": {KeyAWrite: GateNever, AccessRead: GateKeyAOrB, AccessWrite: GateNever, KeyBRead: GateNever, KeyBWrite: GateNever},
}

// DataAccess returns the rights granted at data block position pos (0-2)
// within this trailer's sector. The second return is false when pos is out
// of range or the tuple is not a defined access code.
func (t *SectorTrailer) DataAccess(pos int) (DataAccess, bool) {
	if pos < 0 || pos >= accessTupleCount-1 {
		return DataAccess{}, false
	}
	access, ok := dataAccessTable[t.AccessParsed[pos]]
	return access, ok
}

// TrailerAccess returns the rights the trailer's final tuple grants over
// the trailer itself.
func (t *SectorTrailer) TrailerAccess() (TrailerAccess, bool) {
	access, ok := trailerAccessTable[t.AccessParsed[accessTupleCount-1]]
	return access, ok
}
