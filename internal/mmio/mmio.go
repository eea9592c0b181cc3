// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package mmio provides the register access contract shared by the emulated
// memory mapped devices.
package mmio

import (
	"errors"
	"fmt"
	"sort"
)

// WordSize is the only access width the register files accept.
const WordSize = 4

var (
	ErrSize      = errors.New("invalid access size")
	ErrUnaligned = errors.New("unaligned access")
	ErrRange     = errors.New("out of bounds access")
)

// Device is a memory mapped register window. Offsets are relative to the
// window base. Invalid accesses are reported by the device and never fault:
// reads return 0 and writes are dropped.
type Device interface {
	// String returns the device type name, e.g. "aspeed.gpio".
	String() string
	// Size returns the byte length of the mapped window.
	Size() uint64
	Read(offset uint64, size uint) uint64
	Write(offset uint64, value uint64, size uint)
	Reset()
}

// Check validates a 32-bit access of a register space of limit bytes.
func Check(offset uint64, size uint, limit uint64) error {
	switch {
	case size != WordSize:
		return ErrSize
	case offset&(WordSize-1) != 0:
		return ErrUnaligned
	case offset >= limit || limit-offset < WordSize:
		return ErrRange
	}
	return nil
}

// Reg converts a byte offset to a word index.
func Reg(offset uint64) int { return int(offset >> 2) }

// Offset converts a word index to a byte offset.
func Offset(reg int) uint64 { return uint64(reg) << 2 }

// Map names the devices reachable from a monitor or daemon.
type Map map[string]Device

func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m Map) Lookup(name string) (Device, error) {
	if d, found := m[name]; found {
		return d, nil
	}
	return nil, fmt.Errorf("%s: no such device", name)
}

// Reset all devices of the map.
func (m Map) Reset() {
	for _, d := range m {
		d.Reset()
	}
}
