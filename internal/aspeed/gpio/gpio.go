// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package gpio models the ASPEED AST2400/AST2500 GPIO controller.
//
// The controller has groups of 32 pins, each group split into four banks of
// eight pins. Every pin has one bit in each of its group's registers at
// position (index within bank) + 8 * (bank within group).
//
// The model is single threaded; callers that share a Controller between
// goroutines must serialize Read, Write, Reset and SetPinLevel.
package gpio

import (
	"errors"
	"fmt"

	"github.com/amboar/qemu/internal/devlog"
	"github.com/amboar/qemu/internal/irq"
	"github.com/amboar/qemu/internal/mmio"
)

var (
	ErrUnsupportedRevision = errors.New("unsupported silicon revision")
	ErrLayout              = errors.New("incomplete register layout")
)

// ConfigError is returned by New for a revision that can't be modelled.
type ConfigError struct {
	Revision uint32
	Err      error
	Detail   string
}

func (err *ConfigError) Error() string {
	s := fmt.Sprintf("aspeed.gpio: revision %#08x: %v", err.Revision,
		err.Err)
	if len(err.Detail) > 0 {
		s += ": " + err.Detail
	}
	return s
}

func (err *ConfigError) Unwrap() error { return err.Err }

type Config struct {
	// Revision is the SCU silicon revision identifier.
	Revision uint32
	// Custom, if set, is used instead of the Revisions entry.
	Custom *Revision
	// IRQ is the outbound interrupt line, nil is detached.
	IRQ irq.Line
	Log *devlog.Logger
}

type Controller struct {
	rev    *Revision
	regs   [NrRegs]uint32
	decode [NrRegs]entry
	line   irq.Line
	high   bool
	log    *devlog.Logger
}

// New validates the revision and returns a reset controller.
func New(config Config) (*Controller, error) {
	rev := config.Custom
	if rev == nil {
		var err error
		if rev, err = LookupRevision(config.Revision); err != nil {
			return nil, err
		}
	}
	if err := rev.Validate(); err != nil {
		return nil, err
	}
	c := &Controller{
		rev:    rev,
		decode: rev.decoder(),
		line:   config.IRQ,
		log:    config.Log,
	}
	if c.line == nil {
		c.line = irq.Detached()
	}
	return c, nil
}

func (*Controller) String() string { return "aspeed.gpio" }

func (*Controller) Size() uint64 { return Size }

func (c *Controller) Revision() *Revision { return c.rev }

func (c *Controller) NrGpios() int { return c.rev.NrGpios }

// Layout returns the register offsets of group g.
func (c *Controller) Layout(g int) Layout { return c.rev.Layouts[g] }

// Asserted reports the level of the outbound interrupt line.
func (c *Controller) Asserted() bool { return c.high }

// Reset zeroes every register and lowers the interrupt line.
func (c *Controller) Reset() {
	c.regs = [NrRegs]uint32{}
	c.update()
}

func (c *Controller) Read(offset uint64, size uint) uint64 {
	if err := mmio.Check(offset, size, RegSpace); err != nil {
		c.log.Printf(devlog.GuestError, "read of %d bytes at %#x: %v",
			size, offset, err)
		return 0
	}
	reg := mmio.Reg(offset)
	e := c.decode[reg]
	var v uint32
	switch e.kind {
	case kNone:
		c.log.Printf(devlog.Unimp, "unimplemented read at offset %#x",
			offset)
		return 0
	case kDataRead:
		v = c.regs[mmio.Reg(c.rev.Layouts[e.group].Data)]
	default:
		v = c.regs[reg]
	}
	c.log.Printf(devlog.Trace, "read %s %#x: %#08x", e.kind, offset, v)
	return uint64(v)
}

func (c *Controller) Write(offset uint64, value uint64, size uint) {
	if err := mmio.Check(offset, size, RegSpace); err != nil {
		c.log.Printf(devlog.GuestError, "write of %d bytes at %#x: %v",
			size, offset, err)
		return
	}
	reg := mmio.Reg(offset)
	e := c.decode[reg]
	v := uint32(value)
	c.log.Printf(devlog.Trace, "write %s %#x: %#08x", e.kind, offset, v)
	switch e.kind {
	case kNone:
		c.log.Printf(devlog.Unimp, "unimplemented write at offset %#x",
			offset)
	case kDataRead:
		c.log.Printf(devlog.GuestError, "write to read-only %s at %#x",
			e.kind, offset)
	case kDir:
		c.regs[reg] = v & c.rev.Sets[e.group].Output
	case kIrqStatus:
		c.regs[reg] &^= v
		c.update()
	case kIrqEnable:
		c.regs[reg] = v
		c.update()
	default:
		c.regs[reg] = v
	}
}

func (c *Controller) reg(g int, offset func(Layout) uint64) *uint32 {
	return &c.regs[mmio.Reg(offset(c.rev.Layouts[g]))]
}

func data(l Layout) uint64      { return l.Data }
func dir(l Layout) uint64       { return l.Dir }
func irqEnable(l Layout) uint64 { return l.IrqEnable }
func irqStatus(l Layout) uint64 { return l.IrqStatus }

func (c *Controller) bit(n int, offset func(Layout) uint64) bool {
	if n < 0 || n >= c.rev.NrGpios {
		return false
	}
	return *c.reg(Group(n), offset)&Bit(n) != 0
}

// Level returns the data bit of pin n.
func (c *Controller) Level(n int) bool { return c.bit(n, data) }

// IsOutput reports whether pin n is configured as an output.
func (c *Controller) IsOutput(n int) bool { return c.bit(n, dir) }

// Enabled reports whether interrupts of pin n are enabled.
func (c *Controller) Enabled(n int) bool { return c.bit(n, irqEnable) }

// Pending reports the status latch of pin n.
func (c *Controller) Pending(n int) bool { return c.bit(n, irqStatus) }
