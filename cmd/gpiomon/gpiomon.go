// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package gpiomon is an interactive monitor of a modelled ASPEED GPIO
// controller and its companion LPC register file.
package gpiomon

import (
	"fmt"
	"io"
	"os"

	"github.com/amboar/qemu/internal/aspeed/gpio"
	"github.com/amboar/qemu/internal/aspeed/lpc"
	"github.com/amboar/qemu/internal/board"
	"github.com/amboar/qemu/internal/devlog"
	"github.com/amboar/qemu/internal/irq"
	"github.com/amboar/qemu/internal/mmio"
	"github.com/amboar/qemu/internal/monitor"
	"github.com/amboar/qemu/internal/prompt"
	"github.com/amboar/qemu/lang"
	"github.com/platinasystems/flags"
	sysgpio "github.com/platinasystems/gpio"
	"github.com/platinasystems/parms"
)

const (
	Name            = "gpiomon"
	Prompt          = "gpio> "
	DefaultRevision = "ast2500-a1"
)

type Command struct {
	// Stdin and Stdout default to os.Stdin and os.Stdout
	Stdin  io.Reader
	Stdout io.Writer
}

func (*Command) String() string { return Name }

func (*Command) Usage() string {
	return "gpiomon [-no-liner] [-rev REVISION] [-dtb FILE] [-log CLASSES]"
}

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "interactive ASPEED GPIO controller monitor",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Read monitor commands from a line editor, or from standard input
	when that isn't a terminal. Enter "help" for a list of commands.

	PIN is a board name from the device tree, a data sheet name such
	as A3 or AC7, or a GPIO number. DEVICE is gpio or lpc.

OPTIONS
	-no-liner
		read standard input without line editing
	-rev REVISION
		silicon revision name or identifier (default ast2500-a1)
	-dtb FILE
		name pins from the device tree and apply their modes
	-log CLASSES
		comma separated guest_errors, unimp, trace, all or none`,
	}
}

func (c *Command) Main(args ...string) error {
	flag, args := flags.New(args, "-no-liner")
	parm, args := parms.New(args, "-rev", "-dtb", "-log")
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	if len(parm.ByName["-rev"]) == 0 {
		parm.ByName["-rev"] = DefaultRevision
	}
	rev, err := gpio.ParseRevision(parm.ByName["-rev"])
	if err != nil {
		return err
	}
	l := devlog.New("")
	if s := parm.ByName["-log"]; len(s) > 0 {
		if l.Mask, err = devlog.ParseMask(s); err != nil {
			return err
		}
	}
	m, err := c.monitor(rev, parm.ByName["-dtb"], l)
	if err != nil {
		return err
	}
	var p prompt.Prompter
	if flag.ByName["-no-liner"] || c.Stdin != nil {
		p = prompt.NewScanner(c.stdin(), nil)
	} else {
		p = prompt.New(m.Complete)
	}
	defer p.Close()
	return m.Run(p, Prompt)
}

func (c *Command) monitor(rev *gpio.Revision, dtb string,
	l *devlog.Logger) (*monitor.Monitor, error) {
	line := new(irq.Level)
	g, err := gpio.New(gpio.Config{
		Revision: rev.ID,
		IRQ:      line,
		Log:      l.Sub("aspeed.gpio"),
	})
	if err != nil {
		return nil, err
	}
	pins := make(sysgpio.PinMap)
	if len(dtb) > 0 {
		if pins, err = board.ReadFile(dtb); err != nil {
			return nil, err
		}
		if err = board.Apply(pins, g); err != nil {
			return nil, err
		}
	}
	return &monitor.Monitor{
		GPIO: g,
		Devices: mmio.Map{
			"gpio": g,
			"lpc":  lpc.New(l.Sub("aspeed.lpc")),
		},
		Line: line,
		Pins: pins,
		W:    c.stdout(),
	}, nil
}

func (c *Command) stdin() io.Reader {
	if c.Stdin != nil {
		return c.Stdin
	}
	return os.Stdin
}

func (c *Command) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}
