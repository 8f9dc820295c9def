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
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mfdump "github.com/ZaparooProject/go-mfdump"
)

// execute runs the command tree once. Flag values persist on the shared
// command across executions, so the repeatable --keys flag is cleared here
// and every test passes the boolean flags it depends on explicitly.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	value, ok := rootCmd.PersistentFlags().Lookup("keys").Value.(pflag.SliceValue)
	require.True(t, ok)
	require.NoError(t, value.Replace(nil))

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDecodeCommandJSON(t *testing.T) {
	path := writeFixture(t, "card.hex", factorySector)

	out, err := execute(t, "", "decode", "--json=true", path)
	require.NoError(t, err)

	var dump mfdump.CardDump
	require.NoError(t, json.Unmarshal([]byte(out), &dump))
	require.Len(t, dump.Sectors, 1)
	assert.Equal(t, mfdump.ByteSeq{0x04, 0x02, 0x03, 0x04}, dump.Manufacturer.UID)
}

func TestDecodeCommandStdin(t *testing.T) {
	out, err := execute(t, factorySector, "decode", "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "UID      04 02 03 04 (4-byte, NXP)")
}

func TestDecodeCommandKeysFile(t *testing.T) {
	keys := writeFixture(t, "keys.yaml",
		"keys:\n  - name: test master\n    key: \"FF FF FF FF FF FF\"\n")
	card := writeFixture(t, "card.hex", factorySector)

	out, err := execute(t, "", "decode", "--json=false", "--keys", keys, card)
	require.NoError(t, err)
	assert.Contains(t, out, "key A FF FF FF FF FF FF (test master)")
}

func TestDecodeCommandBadDump(t *testing.T) {
	path := writeFixture(t, "card.hex", strings.Repeat("ZZ", 16))

	_, err := execute(t, "", "decode", "--json=false", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, mfdump.ErrMalformedManufacturerBlock)
}

func TestDiffCommand(t *testing.T) {
	a := writeFixture(t, "a.hex", factorySector)
	b := writeFixture(t, "b.hex", strings.Replace(factorySector, "AABB", "AACC", 1))

	out, err := execute(t, "", "diff", "--json=false", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "sector 0 block 0")
	assert.Contains(t, out, "1 block(s) differ")
}
