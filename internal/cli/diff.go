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
	"fmt"

	"github.com/spf13/cobra"

	mfdump "github.com/ZaparooProject/go-mfdump"
	"github.com/ZaparooProject/go-mfdump/dumpfile"
)

var diffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Compare two card dumps block by block",
	Long: `Compare two dumps at physical block positions and list every block
whose bytes differ. Snapshots of a card taken before and after a write
show exactly the written blocks.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().Bool("json", false, "emit differing blocks as JSON")
}

func runDiff(cmd *cobra.Command, args []string) error {
	a, err := dumpfile.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	b, err := dumpfile.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("%s: %w", args[1], err)
	}

	diffs := mfdump.Diff(a, b)
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return writeJSON(cmd.OutOrStdout(), diffs)
	}
	return renderDiff(cmd.OutOrStdout(), diffs)
}
