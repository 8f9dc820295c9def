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

package dumpfile

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	mfdump "github.com/ZaparooProject/go-mfdump"
)

// flipperMagic opens every Flipper Zero NFC device file.
const flipperMagic = "Filetype: Flipper NFC device"

// parseFlipper flattens the "Block N:" lines of a Flipper NFC file into a
// binary card image. Block numbers must start at 0 and stay contiguous.
// Header lines and comments are skipped. The Flipper writes "??" for bytes
// it could not read, which makes the dump undecodable.
func parseFlipper(content []byte) ([]byte, error) {
	sc := bufio.NewScanner(bytes.NewReader(content))
	image := make([]byte, 0, 64*mfdump.BlockSize)
	next := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		rest, ok := strings.CutPrefix(line, "Block ")
		if !ok {
			continue
		}
		numText, data, ok := strings.Cut(rest, ":")
		if !ok {
			return nil, fmt.Errorf("%w: block line without separator", ErrUnknownFormat)
		}
		num, err := strconv.Atoi(strings.TrimSpace(numText))
		if err != nil {
			return nil, fmt.Errorf("%w: bad block number %q", ErrUnknownFormat, numText)
		}
		if num != next {
			return nil, fmt.Errorf("%w: block %d out of order, expected %d",
				ErrUnknownFormat, num, next)
		}
		block, err := parseBlockBytes(data)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", num, err)
		}
		image = append(image, block...)
		next++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan flipper file: %w", err)
	}
	if next == 0 {
		return nil, fmt.Errorf("%w: no block lines found", ErrUnknownFormat)
	}
	return image, nil
}

func parseBlockBytes(data string) ([]byte, error) {
	fields := strings.Fields(data)
	if len(fields) != mfdump.BlockSize {
		return nil, fmt.Errorf("%w: %d byte fields, expected %d",
			ErrUnknownFormat, len(fields), mfdump.BlockSize)
	}
	block := make([]byte, 0, mfdump.BlockSize)
	for _, f := range fields {
		if f == "??" {
			return nil, ErrUnreadBytes
		}
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: bad byte %q", ErrUnknownFormat, f)
		}
		block = append(block, byte(v))
	}
	return block, nil
}
