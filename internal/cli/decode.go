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
	"github.com/spf13/cobra"

	mfdump "github.com/ZaparooProject/go-mfdump"
	"github.com/ZaparooProject/go-mfdump/dumpfile"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode a card dump to a readable summary or JSON",
	Long: `Decode a card dump. Without a file argument the dump is read from
standard input. Hex text, binary images and Flipper Zero NFC files are
all accepted.`,
	Example: `  mfdump decode card.mfd
  mfdump decode --json card.nfc
  pm3 console output | mfdump decode`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().Bool("json", false, "emit the decoded dump as JSON")
}

func runDecode(cmd *cobra.Command, args []string) error {
	logger := loggerFor(cmd)
	dict, err := dictionaryFor(cmd)
	if err != nil {
		return err
	}

	var dump *mfdump.CardDump
	if len(args) == 1 {
		logger.Debug("decoding dump file", "path", args[0])
		dump, err = dumpfile.ReadFile(args[0])
	} else {
		logger.Debug("decoding dump from stdin")
		dump, err = dumpfile.Read(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}
	logger.Debug("dump decoded", "sectors", len(dump.Sectors))

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return writeJSON(cmd.OutOrStdout(), dump)
	}
	return renderDump(cmd.OutOrStdout(), dump, dict)
}
