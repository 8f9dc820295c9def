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

package capture

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPort plays back Read results like a serial port with a read
// timeout: scripted steps first, then endless empty polls.
type scriptedPort struct {
	steps []scriptStep
}

type scriptStep struct {
	err  error
	data []byte
}

func (p *scriptedPort) Read(buf []byte) (int, error) {
	if len(p.steps) == 0 {
		time.Sleep(5 * time.Millisecond)
		return 0, nil
	}
	step := p.steps[0]
	p.steps = p.steps[1:]
	return copy(buf, step.data), step.err
}

func TestCollectStopsOnIdleLine(t *testing.T) {
	t.Parallel()

	port := &scriptedPort{steps: []scriptStep{
		{data: []byte("AABB")},
		{data: []byte("CCDD")},
	}}
	opts := Options{IdleTimeout: 30 * time.Millisecond}.withDefaults()

	data, err := collect(context.Background(), port, opts)
	require.NoError(t, err)
	assert.Equal(t, []byte("AABBCCDD"), data)
}

func TestCollectStopsOnEOF(t *testing.T) {
	t.Parallel()

	opts := Options{}.withDefaults()
	data, err := collect(context.Background(), bytes.NewReader([]byte("AABB")), opts)
	require.NoError(t, err)
	assert.Equal(t, []byte("AABB"), data)
}

func TestCollectNoData(t *testing.T) {
	t.Parallel()

	opts := Options{}.withDefaults()
	data, err := collect(context.Background(), bytes.NewReader(nil), opts)
	require.Error(t, err)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestCollectCanceledBeforeData(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := Options{}.withDefaults()
	data, err := collect(ctx, &scriptedPort{}, opts)
	require.Error(t, err)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, ErrNoData)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCollectCanceledAfterDataKeepsCapture(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	port := &scriptedPort{steps: []scriptStep{{data: []byte("AABB")}}}
	opts := Options{IdleTimeout: time.Minute}.withDefaults()

	data, err := collect(ctx, port, opts)
	require.NoError(t, err)
	assert.Equal(t, []byte("AABB"), data)
}

func TestCollectSizeCap(t *testing.T) {
	t.Parallel()

	port := &scriptedPort{steps: []scriptStep{
		{data: []byte("0123456789")},
	}}
	opts := Options{MaxSize: 4}.withDefaults()

	data, err := collect(context.Background(), port, opts)
	require.NoError(t, err)
	assert.Equal(t, []byte("0123"), data)
}

func TestCollectReadError(t *testing.T) {
	t.Parallel()

	port := &scriptedPort{steps: []scriptStep{
		{data: []byte("AA")},
		{err: assert.AnError},
	}}
	opts := Options{}.withDefaults()

	data, err := collect(context.Background(), port, opts)
	require.Error(t, err)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestOptionsDefaults(t *testing.T) {
	t.Parallel()

	opts := Options{}.withDefaults()
	assert.Equal(t, DefaultBaudRate, opts.BaudRate)
	assert.Equal(t, DefaultIdleTimeout, opts.IdleTimeout)
	assert.Equal(t, DefaultMaxSize, opts.MaxSize)

	custom := Options{BaudRate: 9600, IdleTimeout: time.Second, MaxSize: 64}.withDefaults()
	assert.Equal(t, 9600, custom.BaudRate)
	assert.Equal(t, time.Second, custom.IdleTimeout)
	assert.Equal(t, 64, custom.MaxSize)
}

func TestSerialOpenError(t *testing.T) {
	t.Parallel()

	_, err := Serial(context.Background(), "/dev/mfdump-no-such-port", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open serial port")
}
