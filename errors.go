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

// Decoding is deterministic, so every error here is permanent: the same
// input fails the same way every time. Errors returned by Decode wrap one
// of these sentinels and can be tested with errors.Is.
var (
	// Input errors - the dump cannot be treated as text at all
	ErrInvalidInput = errors.New("input is not valid text")

	// Shape errors - a fixed-width block extraction failed
	ErrMalformedManufacturerBlock = errors.New("malformed manufacturer block")
	ErrMalformedTrailerBlock      = errors.New("malformed sector trailer")
	ErrMalformedValueBlock        = errors.New("malformed data block")

	// Heuristic errors - a block extracted cleanly but its meaning
	// could not be fixed
	ErrUnresolvedUIDSize = errors.New("unresolved UID size")
)

// UnresolvedUIDSizeError reports that neither the SAK nor the ATQA of a
// manufacturer block matched a known UID size class. The fields recovered
// before the heuristic gave up are carried so callers can still show them.
type UnresolvedUIDSizeError struct {
	SAK  *byte
	NUID ByteSeq
	ATQA ByteSeq
	Raw  ByteSeq
}

// Error returns a human-readable description of the failed heuristic.
func (e *UnresolvedUIDSizeError) Error() string {
	if e.SAK != nil {
		return fmt.Sprintf("unresolved UID size: SAK 0x%02X ATQA % 02X", *e.SAK, []byte(e.ATQA))
	}
	return "unresolved UID size: no SAK/ATQA pattern detected"
}

// Unwrap allows errors.Is to match against ErrUnresolvedUIDSize.
func (e *UnresolvedUIDSizeError) Unwrap() error {
	return ErrUnresolvedUIDSize
}

// IsMalformed returns true for any of the fixed-width extraction failures,
// regardless of which block kind produced it.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformedManufacturerBlock) ||
		errors.Is(err, ErrMalformedTrailerBlock) ||
		errors.Is(err, ErrMalformedValueBlock)
}
