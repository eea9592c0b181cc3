// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package gpio

import (
	"fmt"
	"strings"

	"github.com/amboar/qemu/internal/devlog"
	"github.com/amboar/qemu/internal/irq"
)

// Sense is the interrupt sensitivity of a pin, decoded from its bits in the
// three irq sense words: high (sense0), level (sense1) and dual (sense2).
type Sense uint8

const (
	Falling Sense = iota
	Rising
	LowLevel
	HighLevel
	BothEdges
)

var senseNames = [...]string{
	Falling:   "falling",
	Rising:    "rising",
	LowLevel:  "low",
	HighLevel: "high",
	BothEdges: "both",
}

func (s Sense) String() string {
	if int(s) < len(senseNames) {
		return senseNames[s]
	}
	return fmt.Sprint("sense(", uint8(s), ")")
}

func ParseSense(s string) (Sense, error) {
	for i, name := range senseNames {
		if strings.EqualFold(s, name) {
			return Sense(i), nil
		}
	}
	return 0, fmt.Errorf("%s: invalid sense", s)
}

func senseOf(high, level, dual bool) Sense {
	switch {
	case dual:
		return BothEdges
	case level && high:
		return HighLevel
	case level:
		return LowLevel
	case high:
		return Rising
	}
	return Falling
}

// bits returns the high, level and dual selector bits of s.
func (s Sense) bits() (high, level, dual bool) {
	switch s {
	case Rising:
		high = true
	case LowLevel:
		level = true
	case HighLevel:
		high, level = true, true
	case BothEdges:
		dual = true
	}
	return
}

// Fires reports whether a change from old to new qualifies as an event.
// Level senses fire on every change delivered while the level holds.
func (s Sense) Fires(old, new bool) bool {
	switch s {
	case LowLevel:
		return !new
	case HighLevel:
		return new
	case Rising:
		return !old && new
	case Falling:
		return old && !new
	case BothEdges:
		return old != new
	}
	return false
}

// Sense returns the configured sensitivity of pin n.
func (c *Controller) Sense(n int) Sense {
	if n < 0 || n >= c.rev.NrGpios {
		return Falling
	}
	sense := c.rev.Layouts[Group(n)].IrqSense
	bit := Bit(n)
	return senseOf(c.regs[sense>>2]&bit != 0,
		c.regs[(sense+4)>>2]&bit != 0,
		c.regs[(sense+8)>>2]&bit != 0)
}

// SetSense programs the irq sense words of pin n.
func (c *Controller) SetSense(n int, s Sense) {
	if !c.valid(n) {
		return
	}
	sense := c.rev.Layouts[Group(n)].IrqSense
	bit := Bit(n)
	high, level, dual := s.bits()
	for i, set := range []bool{high, level, dual} {
		r := &c.regs[(sense>>2)+uint64(i)]
		if set {
			*r |= bit
		} else {
			*r &^= bit
		}
	}
}

func (c *Controller) valid(n int) bool {
	if n < 0 || n >= c.rev.NrGpios {
		c.log.Printf(devlog.GuestError, "invalid GPIO number: %d", n)
		return false
	}
	return true
}

// SetPinLevel drives input pin n from outside of the controller. It's a
// guest error to drive an unknown, output only or output configured pin.
func (c *Controller) SetPinLevel(n int, level bool) {
	if !c.valid(n) {
		return
	}
	switch c.rev.Capability(n) {
	case None:
		c.log.Printf(devlog.GuestError, "GPIO%s is not bonded",
			PinName(n))
		return
	case Output:
		c.log.Printf(devlog.GuestError, "GPIO%s is output only",
			PinName(n))
		return
	}
	if c.IsOutput(n) {
		c.log.Printf(devlog.GuestError,
			"GPIO%s is configured as an output", PinName(n))
		return
	}
	g := Group(n)
	bit := Bit(n)
	dr := c.reg(g, data)
	old := *dr&bit != 0
	if level {
		*dr |= bit
	} else {
		*dr &^= bit
	}
	c.log.Printf(devlog.Trace, "GPIO%s %t -> %t", PinName(n), old, level)
	if *c.reg(g, irqEnable)&bit == 0 {
		return
	}
	if c.Sense(n).Fires(old, level) {
		*c.reg(g, irqStatus) |= bit
		c.update()
	}
}

// update drives the interrupt line on a change of any pending enabled
// status across all groups.
func (c *Controller) update() {
	high := false
	for g := 0; g < c.rev.Groups(); g++ {
		if *c.reg(g, irqStatus)&*c.reg(g, irqEnable) != 0 {
			high = true
			break
		}
	}
	if high != c.high {
		c.high = high
		c.line.SetLevel(high)
	}
}

// PinLine is an inbound line driving one pin of a controller.
type PinLine struct {
	C *Controller
	N int
}

func (l PinLine) SetLevel(high bool) { l.C.SetPinLevel(l.N, high) }

// Input returns the inbound line of pin n.
func (c *Controller) Input(n int) irq.Line { return PinLine{c, n} }
