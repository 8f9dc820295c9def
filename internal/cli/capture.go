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
	"os"

	"github.com/spf13/cobra"

	"github.com/ZaparooProject/go-mfdump/capture"
	"github.com/ZaparooProject/go-mfdump/dumpfile"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture and decode a dump echoed over a serial port",
	Long: `Capture dump text from a serial console and decode it. Reading starts
with the first byte and ends once the line has been idle for the
configured time, so present the card after the command is running.`,
	Example: `  mfdump capture --port /dev/ttyACM0
  mfdump capture -p COM3 --baud 9600 --out card.hex`,
	RunE: runCapture,
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ports, err := capture.Ports()
		if err != nil {
			return err
		}
		for _, p := range ports {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

func init() {
	captureCmd.Flags().StringP("port", "p", "", "serial port name")
	captureCmd.Flags().Int("baud", capture.DefaultBaudRate, "baud rate")
	captureCmd.Flags().Duration("idle", capture.DefaultIdleTimeout, "idle time that ends the capture")
	captureCmd.Flags().String("out", "", "also save the raw capture to this file")
	captureCmd.Flags().Bool("json", false, "emit the decoded dump as JSON")
	_ = captureCmd.MarkFlagRequired("port")
}

func runCapture(cmd *cobra.Command, _ []string) error {
	logger := loggerFor(cmd)
	dict, err := dictionaryFor(cmd)
	if err != nil {
		return err
	}

	port, _ := cmd.Flags().GetString("port")
	baud, _ := cmd.Flags().GetInt("baud")
	idle, _ := cmd.Flags().GetDuration("idle")

	logger.Info("waiting for dump", "port", port, "baud", baud)
	data, err := capture.Serial(cmd.Context(), port, capture.Options{
		BaudRate:    baud,
		IdleTimeout: idle,
	})
	if err != nil {
		return err
	}
	logger.Debug("capture finished", "bytes", len(data))

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("failed to save capture: %w", err)
		}
		logger.Info("raw capture saved", "path", out)
	}

	dump, err := dumpfile.Decode(data)
	if err != nil {
		return err
	}

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return writeJSON(cmd.OutOrStdout(), dump)
	}
	return renderDump(cmd.OutOrStdout(), dump, dict)
}
