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
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ByteSeq is a byte sequence that serializes as an ordered array of
// numbers. encoding/json renders a plain []byte as base64, which is useless
// to the display-oriented consumers of a decoded dump.
type ByteSeq []byte

// MarshalJSON renders the sequence as a JSON array of integers 0-255.
func (s ByteSeq) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.Grow(len(s)*4 + 2)
	buf.WriteByte('[')
	for i, b := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Itoa(int(b)))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts a JSON array of integers 0-255, or null.
func (s *ByteSeq) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("byte sequence: %w", err)
	}
	out := make(ByteSeq, len(raw))
	for i, v := range raw {
		if v < 0 || v > 0xFF {
			return fmt.Errorf("byte sequence: value %d at index %d out of range", v, i)
		}
		out[i] = byte(v)
	}
	*s = out
	return nil
}

// String renders the sequence as space-separated uppercase hex pairs.
func (s ByteSeq) String() string {
	return fmt.Sprintf("% 02X", []byte(s))
}
