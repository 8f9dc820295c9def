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

// Package dumpfile reads MIFARE Classic dump containers: raw hex text,
// flat binary images (.mfd and friends) and Flipper Zero NFC device files.
// The container format is sniffed from the content, never from the file
// name.
package dumpfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	mfdump "github.com/ZaparooProject/go-mfdump"
)

// Errors reported while unpacking containers.
var (
	// ErrUnknownFormat is returned when recognizable container
	// structure is broken.
	ErrUnknownFormat = errors.New("unrecognized dump structure")
	// ErrUnreadBytes is returned for Flipper files holding blocks the
	// reader never managed to read.
	ErrUnreadBytes = errors.New("dump contains unread bytes")
)

// Format identifies a recognized container format.
type Format string

const (
	// FormatHex is plain hex text, with or without whitespace.
	FormatHex Format = "hex"
	// FormatBinary is a flat binary image.
	FormatBinary Format = "binary"
	// FormatFlipper is a Flipper Zero NFC device file.
	FormatFlipper Format = "flipper"
)

// Detect sniffs the container format of raw content. Anything that is
// neither a Flipper file nor pure hex text is treated as a binary image.
func Detect(content []byte) Format {
	if bytes.HasPrefix(content, []byte(flipperMagic)) {
		return FormatFlipper
	}
	if len(content) > 0 && isHexText(content) {
		return FormatHex
	}
	return FormatBinary
}

// isHexText reports whether content holds only hex digits and whitespace.
func isHexText(content []byte) bool {
	for _, b := range content {
		switch {
		case b >= '0' && b <= '9':
		case b >= 'a' && b <= 'f':
		case b >= 'A' && b <= 'F':
		case b == ' ' || b == '\t' || b == '\r' || b == '\n':
		default:
			return false
		}
	}
	return true
}

// Decode sniffs and decodes in-memory dump content.
func Decode(content []byte) (*mfdump.CardDump, error) {
	switch Detect(content) {
	case FormatFlipper:
		image, err := parseFlipper(content)
		if err != nil {
			return nil, err
		}
		return mfdump.DecodeBytes(image)
	case FormatHex:
		return mfdump.Decode(string(content))
	default:
		return mfdump.DecodeBytes(content)
	}
}

// Read decodes dump content from r.
func Read(r io.Reader) (*mfdump.CardDump, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}
	return Decode(content)
}

// ReadFile decodes the dump stored at path.
func ReadFile(path string) (*mfdump.CardDump, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump file: %w", err)
	}
	return Decode(content)
}
