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
	"errors"
	"fmt"
)

// MIFARE Application Directory (MAD): sector 0's two data blocks hold a
// CRC-protected table assigning an application identifier to each of
// sectors 1-15. The directory is announced by the DA bit of the general
// purpose byte, which is the user byte of the sector 0 trailer.
const (
	madDABit       = 0x80
	madVersionMask = 0x03
	madCRCPoly     = 0x1D
	madCRCInit     = 0xC7
	madEntries     = 15
)

// Errors reported by DecodeMAD.
var (
	ErrNoMAD       = errors.New("no application directory")
	ErrMADChecksum = errors.New("application directory checksum mismatch")
)

// AID is a MAD application identifier: function cluster code in the high
// byte, application code in the low byte. On the card each entry is stored
// cluster byte first, so the NFC Forum assignment 0x03E1 appears as the
// byte pair 03 E1.
type AID uint16

// Administrative AID values, plus the NFC Forum NDEF assignment.
const (
	AIDFree     AID = 0x0000
	AIDDefect   AID = 0x0001
	AIDReserved AID = 0x0002
	AIDNDEF     AID = 0x03E1
)

// String names the administrative values and renders everything else as
// four hex digits.
func (a AID) String() string {
	switch a {
	case AIDFree:
		return "free"
	case AIDDefect:
		return "defect"
	case AIDReserved:
		return "reserved"
	case AIDNDEF:
		return "NFC Forum NDEF"
	default:
		return fmt.Sprintf("%04X", uint16(a))
	}
}

// MAD is the decoded application directory of a card.
type MAD struct {
	// Version is the directory version from the general purpose byte.
	Version int `json:"version"`
	// GPB is the raw general purpose byte.
	GPB byte `json:"gpb"`
	// Info is the directory info byte; its low nibble points at the
	// card publisher sector.
	Info byte `json:"info"`
	// AIDs holds the directory entries; AIDs[i] belongs to sector i+1.
	AIDs [madEntries]AID `json:"aids"`
}

// SectorAID returns the directory entry for a sector. ok is false for
// sectors the directory does not cover, including sector 0.
func (m *MAD) SectorAID(sector int) (AID, bool) {
	if sector < 1 || sector > madEntries {
		return 0, false
	}
	return m.AIDs[sector-1], true
}

// NDEFSectors lists the sectors assigned to the NFC Forum NDEF AID, in
// ascending order.
func (m *MAD) NDEFSectors() []int {
	var sectors []int
	for i, aid := range m.AIDs {
		if aid == AIDNDEF {
			sectors = append(sectors, i+1)
		}
	}
	return sectors
}

// DecodeMAD reads the application directory out of a decoded dump.
// ErrNoMAD is returned when sector 0 is incomplete or its general purpose
// byte does not announce a directory; ErrMADChecksum when the announced
// directory fails its CRC.
func DecodeMAD(dump *CardDump) (*MAD, error) {
	if len(dump.Sectors) == 0 || len(dump.Sectors[0].DataBlocks) < 2 {
		return nil, fmt.Errorf("%w: sector 0 incomplete", ErrNoMAD)
	}
	sector0 := dump.Sectors[0]

	gpb := sector0.Trailer.UserByte
	if gpb&madDABit == 0 {
		return nil, fmt.Errorf("%w: DA bit clear in general purpose byte 0x%02X", ErrNoMAD, gpb)
	}

	table := make([]byte, 0, 2*BlockSize)
	table = append(table, sector0.DataBlocks[0].Bytes...)
	table = append(table, sector0.DataBlocks[1].Bytes...)
	if len(table) != 2*BlockSize {
		return nil, fmt.Errorf("%w: directory blocks truncated", ErrNoMAD)
	}

	if crc := madCRC(table[1:]); crc != table[0] {
		return nil, fmt.Errorf("%w: computed 0x%02X, stored 0x%02X", ErrMADChecksum, crc, table[0])
	}

	mad := &MAD{
		Version: int(gpb & madVersionMask),
		GPB:     gpb,
		Info:    table[1],
	}
	for i := range mad.AIDs {
		off := 2 + 2*i
		mad.AIDs[i] = AID(uint16(table[off])<<8 | uint16(table[off+1]))
	}
	return mad, nil
}

// madCRC computes the directory CRC-8 (polynomial 0x1D, initial value
// 0xC7) over data.
func madCRC(data []byte) byte {
	crc := byte(madCRCInit)
	for _, b := range data {
		crc ^= b
		for range 8 {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ madCRCPoly
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
