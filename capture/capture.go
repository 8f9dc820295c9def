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

// Package capture collects card dump text from serial consoles. Hobbyist
// reader firmware commonly echoes dumps as hex text over a USB serial
// port; this package gathers those bytes until the line goes idle so they
// can be handed to dumpfile or mfdump.
package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"go.bug.st/serial"
)

// ErrNoData is returned when a capture ends before any bytes arrive.
var ErrNoData = errors.New("no data captured")

// Defaults applied by Options.withDefaults for zero fields.
const (
	DefaultBaudRate    = 115200
	DefaultIdleTimeout = 2 * time.Second
	DefaultMaxSize     = 1 << 20
)

// pollTimeout bounds a single port read so cancellation and idle checks
// run between polls.
const pollTimeout = 100 * time.Millisecond

const readChunk = 4096

// Options configures a capture. The zero value selects 115200 8N1, a two
// second idle timeout and a 1 MiB size cap.
type Options struct {
	// BaudRate is the serial line speed.
	BaudRate int
	// IdleTimeout ends the capture this long after the last byte. It
	// does not start counting until the first byte arrives.
	IdleTimeout time.Duration
	// MaxSize caps the captured byte count.
	MaxSize int
}

func (o Options) withDefaults() Options {
	if o.BaudRate <= 0 {
		o.BaudRate = DefaultBaudRate
	}
	if o.IdleTimeout <= 0 {
		o.IdleTimeout = DefaultIdleTimeout
	}
	if o.MaxSize <= 0 {
		o.MaxSize = DefaultMaxSize
	}
	return o
}

// Serial captures bytes from the named serial port until the line goes
// idle, the size cap is reached or ctx is canceled. Cancellation after
// bytes have arrived returns the partial capture without error.
func Serial(ctx context.Context, portName string, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	port, err := serial.Open(portName, &serial.Mode{
		BaudRate: opts.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", portName, err)
	}
	defer func() { _ = port.Close() }()

	if err := port.SetReadTimeout(pollTimeout); err != nil {
		return nil, fmt.Errorf("failed to set serial read timeout: %w", err)
	}

	return collect(ctx, port, opts)
}

// collect accumulates bytes from r. Reads against a serial port with a
// read timeout return zero bytes on a quiet line, which is what drives
// the idle check.
func collect(ctx context.Context, r io.Reader, opts Options) ([]byte, error) {
	data := make([]byte, 0, readChunk)
	buf := make([]byte, readChunk)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			if len(data) > 0 {
				return data, nil
			}
			return nil, fmt.Errorf("%w: %w", ErrNoData, ctx.Err())
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			last = time.Now()
			if len(data) >= opts.MaxSize {
				return data[:opts.MaxSize:opts.MaxSize], nil
			}
		}
		switch {
		case errors.Is(err, io.EOF):
			if len(data) == 0 {
				return nil, ErrNoData
			}
			return data, nil
		case err != nil:
			return nil, fmt.Errorf("failed to read from serial port: %w", err)
		}

		if len(data) > 0 && time.Since(last) >= opts.IdleTimeout {
			return data, nil
		}
	}
}

// Ports lists the serial port names visible on this system.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	slices.Sort(ports)
	return ports, nil
}
