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

// Package keydict names MIFARE Classic sector keys. A dictionary is seeded
// with the well-known keys every tool recognizes and takes additions at
// runtime or from YAML files, so decoded trailers can be annotated with
// what their keys are.
package keydict

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ZaparooProject/go-mfdump/internal/syncutil"
)

// KeySize is the byte length of a MIFARE Classic sector key.
const KeySize = 6

// ErrBadKey is returned for key text that does not parse to six bytes.
var ErrBadKey = errors.New("malformed key")

// Key is one sector key. It is a value type and usable as a map key.
type Key [KeySize]byte

// ParseKey reads a key from twelve hex characters. Case does not matter
// and spaces or colons between pairs are tolerated.
func ParseKey(s string) (Key, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == ':' {
			return -1
		}
		return r
	}, s)

	raw, err := hex.DecodeString(clean)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrBadKey, err)
	}
	return KeyFromBytes(raw)
}

// KeyFromBytes converts a six byte slice, as it comes out of a decoded
// sector trailer.
func KeyFromBytes(b []byte) (Key, error) {
	if len(b) != KeySize {
		return Key{}, fmt.Errorf("%w: %d bytes, want %d", ErrBadKey, len(b), KeySize)
	}
	var k Key
	copy(k[:], b)
	return k, nil
}

// String renders the key as twelve uppercase hex characters.
func (k Key) String() string {
	return strings.ToUpper(hex.EncodeToString(k[:]))
}

// Well-known keys.
var (
	// FactoryDefault is the transport configuration key cards ship with.
	FactoryDefault = Key{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	// MAD is the application directory key for sector 0.
	MAD = Key{0xA0, 0xA1, 0xA2, 0xA3, 0xA4, 0xA5}
	// NDEF is the NFC Forum public key for NDEF data sectors.
	NDEF = Key{0xD3, 0xF7, 0xD3, 0xF7, 0xD3, 0xF7}
	// Zero turns up on blanked and badly initialized cards.
	Zero = Key{}
)

// Dictionary maps keys to display names. Safe for concurrent use.
type Dictionary struct {
	names map[Key]string
	mu    syncutil.RWMutex
}

// New returns a dictionary seeded with the well-known keys.
func New() *Dictionary {
	d := &Dictionary{names: make(map[Key]string)}
	d.Register(FactoryDefault, "factory default")
	d.Register(MAD, "MIFARE application directory")
	d.Register(NDEF, "NFC Forum NDEF")
	d.Register(Zero, "all zero")
	return d
}

// Register adds a key or renames an existing one.
func (d *Dictionary) Register(k Key, name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.names[k] = name
}

// Name returns the display name registered for a key.
func (d *Dictionary) Name(k Key) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name, ok := d.names[k]
	return name, ok
}

// NameBytes is Name for raw key slices. Unknown and malformed keys report
// false.
func (d *Dictionary) NameBytes(b []byte) (string, bool) {
	k, err := KeyFromBytes(b)
	if err != nil {
		return "", false
	}
	return d.Name(k)
}

// Len returns the number of registered keys.
func (d *Dictionary) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.names)
}

// keyFile is the YAML shape LoadFile reads:
//
//	keys:
//	  - name: hotel master
//	    key: "A0 B1 C2 D3 E4 F5"
type keyFile struct {
	Keys []keyFileEntry `yaml:"keys"`
}

type keyFileEntry struct {
	Name string `yaml:"name"`
	Key  string `yaml:"key"`
}

// LoadFile merges a YAML key file into the dictionary. Unknown fields are
// rejected so typos surface instead of silently dropping entries.
func (d *Dictionary) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var parsed keyFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&parsed); err != nil {
		return fmt.Errorf("failed to parse key file %s: %w", path, err)
	}

	for i, entry := range parsed.Keys {
		if entry.Name == "" {
			return fmt.Errorf("%w: entry %d has no name", ErrBadKey, i)
		}
		k, err := ParseKey(entry.Key)
		if err != nil {
			return fmt.Errorf("entry %q: %w", entry.Name, err)
		}
		d.Register(k, entry.Name)
	}
	return nil
}
