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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	mfdump "github.com/ZaparooProject/go-mfdump"
	"github.com/ZaparooProject/go-mfdump/keydict"
)

// renderDump writes the human-readable summary of a decoded dump: card
// identity, directory and NDEF state, then every sector block by block.
func renderDump(w io.Writer, dump *mfdump.CardDump, dict *keydict.Dictionary) error {
	var b strings.Builder

	renderManufacturer(&b, &dump.Manufacturer)
	fmt.Fprintf(&b, "Sectors  %d\n", len(dump.Sectors))
	renderDirectory(&b, dump)

	for i := range dump.Sectors {
		b.WriteByte('\n')
		renderSector(&b, dump, i, dict)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func renderManufacturer(b *strings.Builder, m *mfdump.ManufacturerBlock) {
	if len(m.UID) == 0 {
		b.WriteString("UID      none (empty dump)\n")
		return
	}
	fmt.Fprintf(b, "UID      %s (%d-byte, %s)\n", m.UID, len(m.UID), m.Maker())
	if m.BCC != nil {
		state := "mismatch"
		if m.BCCValid() {
			state = "ok"
		}
		fmt.Fprintf(b, "BCC      %02X (%s)\n", *m.BCC, state)
	}
	if m.SAK != nil {
		fmt.Fprintf(b, "SAK      %02X\n", *m.SAK)
	}
	if len(m.ATQA) > 0 {
		fmt.Fprintf(b, "ATQA     %s\n", m.ATQA)
	}
}

func renderDirectory(b *strings.Builder, dump *mfdump.CardDump) {
	mad, err := mfdump.DecodeMAD(dump)
	switch {
	case errors.Is(err, mfdump.ErrNoMAD):
		b.WriteString("MAD      none\n")
	case err != nil:
		fmt.Fprintf(b, "MAD      %v\n", err)
	default:
		fmt.Fprintf(b, "MAD      v%d, NDEF sectors %s\n",
			mad.Version, formatSectorList(mad.NDEFSectors()))
	}

	msg, err := mfdump.ExtractNDEF(dump)
	switch {
	case errors.Is(err, mfdump.ErrNoNDEF):
		b.WriteString("NDEF     none\n")
	case err != nil:
		fmt.Fprintf(b, "NDEF     %v\n", err)
	default:
		for _, rec := range msg.Records {
			fmt.Fprintf(b, "NDEF     %s\n", formatRecord(rec))
		}
	}
}

func formatSectorList(sectors []int) string {
	if len(sectors) == 0 {
		return "none"
	}
	parts := make([]string, len(sectors))
	for i, s := range sectors {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}

func formatRecord(rec mfdump.NDEFRecord) string {
	switch rec.Type {
	case mfdump.NDEFTypeText:
		return fmt.Sprintf("text %q", rec.Text)
	case mfdump.NDEFTypeURI:
		return "uri " + rec.URI
	default:
		return fmt.Sprintf("%s (%d bytes)", rec.Type, len(rec.Payload))
	}
}

func renderSector(b *strings.Builder, dump *mfdump.CardDump, index int, dict *keydict.Dictionary) {
	sector := &dump.Sectors[index]
	fmt.Fprintf(b, "Sector %d\n", index)

	pos := 0
	if index == 0 && len(dump.Manufacturer.Raw) > 0 {
		fmt.Fprintf(b, "  %d  %s  manufacturer\n", pos, dump.Manufacturer.Raw)
		pos++
	}
	for i := range sector.DataBlocks {
		block := &sector.DataBlocks[i]
		fmt.Fprintf(b, "  %d  %s", pos, block.Bytes)
		if value, addr, ok := block.Value(); ok {
			fmt.Fprintf(b, "  value %d addr %02X", value, addr)
		}
		b.WriteByte('\n')
		pos++
	}
	renderTrailer(b, pos, &sector.Trailer, dict)
}

func renderTrailer(b *strings.Builder, pos int, t *mfdump.SectorTrailer, dict *keydict.Dictionary) {
	fmt.Fprintf(b, "  %d  key A %s%s  key B %s%s\n", pos,
		t.KeyA, keyName(dict, t.KeyA), t.KeyB, keyName(dict, t.KeyB))
	fmt.Fprintf(b, "     access %s [%s]  user %02X\n",
		t.AccessRaw, strings.Join(t.AccessParsed[:], " "), t.UserByte)
}

func keyName(dict *keydict.Dictionary, key mfdump.ByteSeq) string {
	if name, ok := dict.NameBytes(key); ok {
		return " (" + name + ")"
	}
	return ""
}

// renderDiff writes differing block positions, one stanza per block.
func renderDiff(w io.Writer, diffs []mfdump.BlockDiff) error {
	var b strings.Builder
	if len(diffs) == 0 {
		b.WriteString("dumps are identical\n")
	} else {
		for _, d := range diffs {
			fmt.Fprintf(&b, "sector %d block %d\n", d.Sector, d.Block)
			fmt.Fprintf(&b, "  a: %s\n", formatDiffSide(d.A))
			fmt.Fprintf(&b, "  b: %s\n", formatDiffSide(d.B))
		}
		fmt.Fprintf(&b, "%d block(s) differ\n", len(diffs))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write diff: %w", err)
	}
	return nil
}

func formatDiffSide(side mfdump.ByteSeq) string {
	if side == nil {
		return "(absent)"
	}
	return side.String()
}
