// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package regs prints the register file of a reset ASPEED GPIO controller.
package regs

import (
	"fmt"
	"io"
	"os"

	"github.com/amboar/qemu/internal/aspeed/gpio"
	"github.com/amboar/qemu/internal/board"
	"github.com/amboar/qemu/lang"
	"github.com/platinasystems/parms"
)

const Name = "regs"

type Command struct {
	Stdout io.Writer
}

func (*Command) String() string { return Name }

func (*Command) Usage() string { return "regs [-rev REVISION] [-dtb FILE]" }

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "print ASPEED GPIO registers",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Print the offset, name and value of every implemented register of
	a controller after reset and, with -dtb, after the device tree pin
	modes are applied.`,
	}
}

func (c *Command) Main(args ...string) error {
	parm, args := parms.New(args, "-rev", "-dtb")
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	if len(parm.ByName["-rev"]) == 0 {
		parm.ByName["-rev"] = "ast2500-a1"
	}
	rev, err := gpio.ParseRevision(parm.ByName["-rev"])
	if err != nil {
		return err
	}
	g, err := gpio.New(gpio.Config{Revision: rev.ID})
	if err != nil {
		return err
	}
	if fn := parm.ByName["-dtb"]; len(fn) > 0 {
		pins, err := board.ReadFile(fn)
		if err != nil {
			return err
		}
		if err = board.Apply(pins, g); err != nil {
			return err
		}
	}
	w := c.Stdout
	if w == nil {
		w = os.Stdout
	}
	for _, reg := range rev.Registers() {
		fmt.Fprintf(w, "%#03x %-28s %#08x\n", reg.Offset, reg,
			g.Read(reg.Offset, 4))
	}
	return nil
}
