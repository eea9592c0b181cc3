// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package gpio

import (
	"fmt"
	"sort"
)

const (
	// RegSpace is the byte length of the implemented register file.
	RegSpace = 0x1F0
	NrRegs   = RegSpace >> 2
	// Size of the mapped window; accesses past RegSpace are out of bounds.
	Size = 0x1000
)

// Layout gives the byte offsets of a group's registers. IrqSense spans
// three consecutive words (high, level, dual); Debounce and CmdSource span
// two each.
type Layout struct {
	Data      uint64
	Dir       uint64
	IrqEnable uint64
	IrqSense  uint64
	IrqStatus uint64
	Reset     uint64
	Debounce  uint64
	CmdSource uint64
	InputMask uint64
	DataRead  uint64
}

// Layouts3V3 are the register offsets of the 3.3V groups.
var Layouts3V3 = []Layout{
	{0x000, 0x004, 0x008, 0x00C, 0x018, 0x01C, 0x040, 0x060, 0x1D0, 0x0C0}, // A B C D
	{0x020, 0x024, 0x028, 0x02C, 0x038, 0x03C, 0x048, 0x068, 0x1D4, 0x0C4}, // E F G H
	{0x070, 0x074, 0x098, 0x09C, 0x0A8, 0x0AC, 0x0B0, 0x090, 0x0B8, 0x0C8}, // I J K L
	{0x078, 0x07C, 0x0E8, 0x0EC, 0x0F8, 0x0FC, 0x100, 0x0E0, 0x108, 0x0CC}, // M N O P
	{0x080, 0x084, 0x118, 0x11C, 0x128, 0x12C, 0x130, 0x110, 0x138, 0x0D0}, // Q R S T
	{0x088, 0x08C, 0x148, 0x14C, 0x158, 0x15C, 0x160, 0x140, 0x168, 0x0D4}, // U V W X
	{0x1E0, 0x1E4, 0x178, 0x17C, 0x188, 0x18C, 0x190, 0x170, 0x198, 0x0D8}, // Y Z AA AB
	{0x1E8, 0x1EC, 0x1A8, 0x1AC, 0x1B8, 0x1BC, 0x1C0, 0x1A0, 0x1C8, 0x0DC}, // AC
}

// DebounceTimes are the controller wide debounce timer reload registers.
var DebounceTimes = []uint64{0x050, 0x054, 0x058}

type kind uint8

const (
	kNone kind = iota
	kData
	kDir
	kIrqEnable
	kIrqSense
	kIrqStatus
	kReset
	kDebounce
	kCmdSource
	kInputMask
	kDataRead
	kDebounceTime
)

var kindNames = [...]string{
	kNone:         "unimplemented",
	kData:         "data",
	kDir:          "direction",
	kIrqEnable:    "irq enable",
	kIrqSense:     "irq sense",
	kIrqStatus:    "irq status",
	kReset:        "reset tolerant",
	kDebounce:     "debounce",
	kCmdSource:    "command source",
	kInputMask:    "input mask",
	kDataRead:     "data read",
	kDebounceTime: "debounce time",
}

func (k kind) String() string { return kindNames[k] }

// entry decodes a register word: its kind, the group it belongs to and
// which word of a multi-word register it is.
type entry struct {
	kind  kind
	group int
	sub   int
}

type field struct {
	name   string
	offset uint64
	kind   kind
	sub    int
}

func (l Layout) fields() []field {
	return []field{
		{"data", l.Data, kData, 0},
		{"direction", l.Dir, kDir, 0},
		{"irq enable", l.IrqEnable, kIrqEnable, 0},
		{"irq sense 0", l.IrqSense, kIrqSense, 0},
		{"irq sense 1", l.IrqSense + 4, kIrqSense, 1},
		{"irq sense 2", l.IrqSense + 8, kIrqSense, 2},
		{"irq status", l.IrqStatus, kIrqStatus, 0},
		{"reset tolerant", l.Reset, kReset, 0},
		{"debounce 1", l.Debounce, kDebounce, 0},
		{"debounce 2", l.Debounce + 4, kDebounce, 1},
		{"command source 0", l.CmdSource, kCmdSource, 0},
		{"command source 1", l.CmdSource + 4, kCmdSource, 1},
		{"input mask", l.InputMask, kInputMask, 0},
		{"data read", l.DataRead, kDataRead, 0},
	}
}

// decoder maps every word of the register space of a validated revision.
func (r *Revision) decoder() (d [NrRegs]entry) {
	for i, offset := range DebounceTimes {
		d[offset>>2] = entry{kDebounceTime, -1, i}
	}
	for g, l := range r.Layouts[:r.Groups()] {
		for _, f := range l.fields() {
			d[f.offset>>2] = entry{f.kind, g, f.sub}
		}
	}
	return
}

// Register names one implemented word of a revision's register file.
type Register struct {
	Offset uint64
	// Group is -1 for the controller wide registers.
	Group int
	Name  string
}

func (r Register) String() string {
	if r.Group < 0 {
		return r.Name
	}
	return fmt.Sprint("group ", r.Group, " ", r.Name)
}

// Registers lists the implemented words of r by offset.
func (r *Revision) Registers() []Register {
	var regs []Register
	for i, offset := range DebounceTimes {
		regs = append(regs, Register{offset, -1,
			fmt.Sprint(kDebounceTime, " ", i+1)})
	}
	for g, l := range r.Layouts[:r.Groups()] {
		for _, f := range l.fields() {
			regs = append(regs, Register{f.offset, g, f.name})
		}
	}
	sort.Slice(regs, func(i, j int) bool {
		return regs[i].Offset < regs[j].Offset
	})
	return regs
}
