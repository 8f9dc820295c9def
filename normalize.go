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
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// normalizeHex canonicalizes dump text: every whitespace rune is dropped
// and the rest is upper-cased. Hex validity and even length are not checked
// here; broken content surfaces when a fixed-width block extraction fails.
func normalizeHex(dump string) (string, error) {
	if !utf8.ValidString(dump) {
		return "", fmt.Errorf("dump is not valid UTF-8: %w", ErrInvalidInput)
	}
	var b strings.Builder
	b.Grow(len(dump))
	for _, r := range dump {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String(), nil
}
