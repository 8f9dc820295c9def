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

// Package cli implements the mfdump command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ZaparooProject/go-mfdump/internal/logging"
	"github.com/ZaparooProject/go-mfdump/keydict"
)

var rootCmd = &cobra.Command{
	Use:   "mfdump",
	Short: "Decode MIFARE Classic card dumps",
	Long: `mfdump decodes MIFARE Classic card dumps into a readable summary or
JSON: manufacturer block, per-sector data and value blocks, keys and
access conditions, plus the application directory and any NDEF message.

Dumps are accepted as hex text, flat binary images or Flipper Zero NFC
files; the format is sniffed from the content.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringArray("keys", nil, "YAML key dictionary file (repeatable)")
	rootCmd.AddCommand(decodeCmd, diffCmd, captureCmd, portsCmd)
}

// Execute runs the command tree and exits non-zero on error.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// loggerFor builds the command's logger, honoring --verbose.
func loggerFor(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	return logging.New(cmd.ErrOrStderr(), verbose)
}

// dictionaryFor builds the key dictionary used to annotate trailer keys,
// loading any --keys files on top of the well-known entries.
func dictionaryFor(cmd *cobra.Command) (*keydict.Dictionary, error) {
	dict := keydict.New()
	files, _ := cmd.Flags().GetStringArray("keys")
	for _, path := range files {
		if err := dict.LoadFile(path); err != nil {
			return nil, err
		}
	}
	return dict, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
