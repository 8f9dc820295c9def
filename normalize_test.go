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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercase pairs with spaces",
			input: "ab cd ef",
			want:  "ABCDEF",
		},
		{
			name:  "mixed whitespace",
			input: " 0a\t1B\r\n2c \n",
			want:  "0A1B2C",
		},
		{
			name:  "already canonical",
			input: "0123456789ABCDEF",
			want:  "0123456789ABCDEF",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \n\t \r ",
			want:  "",
		},
		{
			// Non-hex characters pass through untouched; they fail
			// later when a block is hex-decoded.
			name:  "non-hex characters preserved",
			input: "zz 0x1g",
			want:  "ZZ0X1G",
		},
		{
			name:  "odd length preserved",
			input: "abc",
			want:  "ABC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := normalizeHex(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeHexInvalidUTF8(t *testing.T) {
	t.Parallel()

	_, err := normalizeHex(string([]byte{0xFF, 0xFE, 0x41}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
