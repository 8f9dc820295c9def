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
	"encoding/hex"
	"fmt"
)

// Trailer byte layout: Key A, access conditions, user byte, Key B.
const (
	trailerAccessOff = KeySize
	trailerUserOff   = trailerAccessOff + 3
	trailerKeyBOff   = trailerUserOff + 1
)

// decodeTrailer splits a sector's final block into its fixed-width fields
// and expands the access bits. Anything other than exactly one block of
// clean hex is a malformed trailer.
func decodeTrailer(blockHex string) (SectorTrailer, error) {
	if len(blockHex) != blockHexLen {
		return SectorTrailer{}, fmt.Errorf("%w: %d hex chars, want %d",
			ErrMalformedTrailerBlock, len(blockHex), blockHexLen)
	}
	raw, err := hex.DecodeString(blockHex)
	if err != nil {
		return SectorTrailer{}, fmt.Errorf("%w: %v", ErrMalformedTrailerBlock, err)
	}

	trailer := SectorTrailer{
		KeyA:      ByteSeq(raw[:trailerAccessOff:trailerAccessOff]),
		AccessRaw: ByteSeq(raw[trailerAccessOff:trailerUserOff:trailerUserOff]),
		UserByte:  raw[trailerUserOff],
		KeyB:      ByteSeq(raw[trailerKeyBOff:BlockSize:BlockSize]),
	}
	trailer.AccessParsed = decodeAccessBits(trailer.AccessRaw)
	return trailer, nil
}

// Bytes reassembles the trailer fields into the 16-byte block image.
func (t *SectorTrailer) Bytes() ByteSeq {
	out := make(ByteSeq, 0, BlockSize)
	out = append(out, t.KeyA...)
	out = append(out, t.AccessRaw...)
	out = append(out, t.UserByte)
	out = append(out, t.KeyB...)
	return out
}
