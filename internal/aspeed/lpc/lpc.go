// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package lpc models the register file of the ASPEED LPC controller. Every
// register stores and reads back what's written; none have side effects.
package lpc

import (
	"github.com/amboar/qemu/internal/devlog"
	"github.com/amboar/qemu/internal/mmio"
)

const (
	RegSpace = 0x260
	NrRegs   = RegSpace >> 2
	Size     = 0x1000
)

type Controller struct {
	regs [NrRegs]uint32
	log  *devlog.Logger
}

func New(l *devlog.Logger) *Controller {
	return &Controller{log: l}
}

func (*Controller) String() string { return "aspeed.lpc" }

func (*Controller) Size() uint64 { return Size }

func (c *Controller) Reset() { c.regs = [NrRegs]uint32{} }

func (c *Controller) Read(offset uint64, size uint) uint64 {
	if err := mmio.Check(offset, size, RegSpace); err != nil {
		c.log.Printf(devlog.GuestError, "read at offset %#x: %v",
			offset, err)
		return 0
	}
	v := c.regs[mmio.Reg(offset)]
	c.log.Printf(devlog.Trace, "read %#x: %#08x", offset, v)
	return uint64(v)
}

func (c *Controller) Write(offset uint64, value uint64, size uint) {
	if err := mmio.Check(offset, size, RegSpace); err != nil {
		c.log.Printf(devlog.GuestError, "write at offset %#x: %v",
			offset, err)
		return
	}
	c.log.Printf(devlog.Trace, "write %#x: %#08x", offset, uint32(value))
	c.regs[mmio.Reg(offset)] = uint32(value)
}
