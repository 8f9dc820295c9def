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
	"errors"
	"fmt"

	"github.com/hsanjuan/go-ndef"
)

// Errors reported by ExtractNDEF.
var (
	// ErrNoNDEF is returned when the dump carries no NDEF message.
	ErrNoNDEF = errors.New("no NDEF message found")
	// ErrInvalidNDEF is returned when an announced message cannot be
	// parsed.
	ErrInvalidNDEF = errors.New("invalid NDEF message")
)

// NDEFRecordType classifies a decoded NDEF record.
type NDEFRecordType string

const (
	// NDEFTypeText is an NFC Forum well-known text record.
	NDEFTypeText NDEFRecordType = "text"
	// NDEFTypeURI is an NFC Forum well-known URI record.
	NDEFTypeURI NDEFRecordType = "uri"
	// NDEFTypeSmartPoster is an NFC Forum smart poster record.
	NDEFTypeSmartPoster NDEFRecordType = "smartposter"
)

// NDEFMessage groups the records extracted from one dump.
type NDEFMessage struct {
	Records []NDEFRecord `json:"records"`
}

// NDEFRecord is a decoded record. Text and URI are populated for the
// corresponding well-known types; Payload always holds the raw payload.
type NDEFRecord struct {
	Type    NDEFRecordType `json:"type"`
	Text    string         `json:"text,omitempty"`
	URI     string         `json:"uri,omitempty"`
	Payload ByteSeq        `json:"payload"`
}

// ExtractNDEF pulls the NDEF message out of a decoded dump. Sector
// selection follows the application directory when a valid one is present;
// without a directory every sector after 0 is scanned. The message is
// expected in TLV framing within the selected sectors' data blocks.
func ExtractNDEF(dump *CardDump) (*NDEFMessage, error) {
	area := ndefArea(dump)
	if len(area) == 0 {
		return nil, ErrNoNDEF
	}
	payload, err := findNDEFTLV(area)
	if err != nil {
		return nil, err
	}
	return parseNDEFMessage(payload)
}

// ndefArea concatenates the data blocks of the sectors that can hold the
// message.
func ndefArea(dump *CardDump) []byte {
	var sectors []int
	if mad, err := DecodeMAD(dump); err == nil {
		sectors = mad.NDEFSectors()
	} else {
		for s := 1; s < len(dump.Sectors); s++ {
			sectors = append(sectors, s)
		}
	}

	var area []byte
	for _, s := range sectors {
		if s >= len(dump.Sectors) {
			break
		}
		for _, block := range dump.Sectors[s].DataBlocks {
			area = append(area, block.Bytes...)
		}
	}
	return area
}

// TLV type bytes used within the NDEF area.
const (
	tlvNull       = 0x00
	tlvNDEF       = 0x03
	tlvTerminator = 0xFE
)

// findNDEFTLV walks the TLV structures in the area and returns the first
// NDEF message payload. Both the short (one byte) and the long (0xFF plus
// two big-endian bytes) length forms are handled; NULL TLVs are skipped and
// a terminator ends the walk.
func findNDEFTLV(area []byte) ([]byte, error) {
	offset := 0
	for offset < len(area) {
		switch area[offset] {
		case tlvNull:
			offset++
		case tlvTerminator:
			return nil, ErrNoNDEF
		case tlvNDEF:
			start, length, err := tlvLength(area, offset)
			if err != nil {
				return nil, err
			}
			if start+length > len(area) {
				return nil, fmt.Errorf("%w: TLV length %d overruns area", ErrInvalidNDEF, length)
			}
			return area[start : start+length], nil
		default:
			start, length, err := tlvLength(area, offset)
			if err != nil {
				return nil, err
			}
			offset = start + length
		}
	}
	return nil, ErrNoNDEF
}

// tlvLength decodes the length field of the TLV at offset and returns the
// payload start and length.
func tlvLength(area []byte, offset int) (start, length int, err error) {
	if offset+1 >= len(area) {
		return 0, 0, fmt.Errorf("%w: truncated TLV at offset %d", ErrInvalidNDEF, offset)
	}
	if area[offset+1] != 0xFF {
		return offset + 2, int(area[offset+1]), nil
	}
	if offset+4 > len(area) {
		return 0, 0, fmt.Errorf("%w: truncated long TLV at offset %d", ErrInvalidNDEF, offset)
	}
	return offset + 4, int(binary.BigEndian.Uint16(area[offset+2 : offset+4])), nil
}

// parseNDEFMessage parses the TLV payload with go-ndef and converts the
// records. Records of types the converter does not understand are skipped;
// a message with no convertible records counts as no message. Freshly
// formatted sectors hold a zero-length message TLV, which also counts as
// no message.
func parseNDEFMessage(payload []byte) (*NDEFMessage, error) {
	if len(payload) == 0 {
		return nil, ErrNoNDEF
	}
	msg := &ndef.Message{}
	if _, err := msg.Unmarshal(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidNDEF, err)
	}

	result := &NDEFMessage{Records: make([]NDEFRecord, 0, len(msg.Records))}
	for _, rec := range msg.Records {
		converted, err := convertNDEFRecord(rec)
		if err != nil {
			continue
		}
		result.Records = append(result.Records, converted)
	}
	if len(result.Records) == 0 {
		return nil, ErrNoNDEF
	}
	return result, nil
}

// convertNDEFRecord maps a go-ndef record onto the package's record shape.
func convertNDEFRecord(rec *ndef.Record) (NDEFRecord, error) {
	payload, err := rec.Payload()
	if err != nil {
		return NDEFRecord{}, fmt.Errorf("record payload: %w", err)
	}
	raw := payload.Marshal()

	result := NDEFRecord{Payload: raw}
	switch rec.TNF() {
	case ndef.NFCForumWellKnownType:
		switch rec.Type() {
		case "T":
			result.Type = NDEFTypeText
			if text, err := parseTextPayload(raw); err == nil {
				result.Text = text
			}
		case "U":
			result.Type = NDEFTypeURI
			if uri, err := parseURIPayload(raw); err == nil {
				result.URI = uri
			}
		case "Sp":
			result.Type = NDEFTypeSmartPoster
		default:
			return NDEFRecord{}, fmt.Errorf("unknown well-known type: %s", rec.Type())
		}
	case ndef.MediaType:
		result.Type = NDEFRecordType("media:" + rec.Type())
	case ndef.AbsoluteURI:
		result.Type = NDEFRecordType("uri:" + rec.Type())
	case ndef.NFCForumExternalType:
		result.Type = NDEFRecordType("ext:" + rec.Type())
	default:
		return NDEFRecord{}, errors.New("unsupported TNF")
	}
	return result, nil
}

// parseTextPayload decodes a well-known text record payload: a status byte
// whose low bits give the language code length, the language code, then
// the text.
func parseTextPayload(payload []byte) (string, error) {
	if len(payload) < 1 {
		return "", errors.New("text payload too short")
	}
	langLen := int(payload[0] & 0x3F)
	if len(payload) < 1+langLen {
		return "", errors.New("invalid text payload length")
	}
	return string(payload[1+langLen:]), nil
}

// ndefURIPrefixes holds the URI abbreviation table of the NFC Forum URI
// RTD, indexed by the prefix code byte.
var ndefURIPrefixes = []string{
	"",
	"http://www.",
	"https://www.",
	"http://",
	"https://",
	"tel:",
	"mailto:",
	"ftp://anonymous:anonymous@",
	"ftp://ftp.",
	"ftps://",
	"sftp://",
	"smb://",
	"nfs://",
	"ftp://",
	"dav://",
	"news:",
	"telnet://",
	"imap:",
	"rtsp://",
	"urn:",
	"pop:",
	"sip:",
	"sips:",
	"tftp:",
	"btspp://",
	"btl2cap://",
	"btgoep://",
	"tcpobex://",
	"irdaobex://",
	"file://",
	"urn:epc:id:",
	"urn:epc:tag:",
	"urn:epc:pat:",
	"urn:epc:raw:",
	"urn:epc:",
	"urn:nfc:",
}

// parseURIPayload decodes a well-known URI record payload: a prefix code
// byte followed by the rest of the URI.
func parseURIPayload(payload []byte) (string, error) {
	if len(payload) < 1 {
		return "", errors.New("URI payload too short")
	}
	code := int(payload[0])
	if code >= len(ndefURIPrefixes) {
		return "", fmt.Errorf("invalid URI prefix code: %d", code)
	}
	return ndefURIPrefixes[code] + string(payload[1:]), nil
}
