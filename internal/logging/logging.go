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

// Package logging builds the structured loggers used by the mfdump CLI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// LevelEnv names the environment variable holding the default log level.
const LevelEnv = "MFDUMP_LOG_LEVEL"

// New creates a logger writing to w. The level comes from MFDUMP_LOG_LEVEL
// (debug, info, warn, error, defaulting to info); verbose overrides it to
// debug.
func New(w io.Writer, verbose bool) *log.Logger {
	lg := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})

	switch os.Getenv(LevelEnv) {
	case "debug":
		lg.SetLevel(log.DebugLevel)
	case "warn":
		lg.SetLevel(log.WarnLevel)
	case "error":
		lg.SetLevel(log.ErrorLevel)
	default:
		lg.SetLevel(log.InfoLevel)
	}
	if verbose {
		lg.SetLevel(log.DebugLevel)
	}

	return lg.WithPrefix("mfdump")
}
