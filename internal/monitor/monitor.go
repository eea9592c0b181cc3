// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package monitor interprets the command lines of an interactive GPIO
// controller monitor.
package monitor

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/amboar/qemu/internal/aspeed/gpio"
	"github.com/amboar/qemu/internal/board"
	"github.com/amboar/qemu/internal/irq"
	"github.com/amboar/qemu/internal/mmio"
	"github.com/amboar/qemu/internal/prompt"
	sysgpio "github.com/platinasystems/gpio"
)

var ErrQuit = errors.New("quit")

type Monitor struct {
	GPIO *gpio.Controller
	// Devices are the register files of rd and wr; the first sorted
	// name is the default.
	Devices mmio.Map
	// Line is the outbound interrupt line of GPIO.
	Line *irq.Level
	// Pins are the board names of GPIO lines.
	Pins sysgpio.PinMap
	W    io.Writer
}

type command struct {
	name, usage, apropos string
	f                    func(*Monitor, []string) error
}

var commands []command

func init() {
	commands = []command{
		{"set", "set PIN 0|1", "drive an input pin", (*Monitor).set},
		{"get", "get PIN", "show a pin", (*Monitor).get},
		{"sense", "sense PIN falling|rising|low|high|both",
			"configure interrupt sensitivity", (*Monitor).sense},
		{"enable", "enable PIN [0|1]", "enable pin interrupts",
			(*Monitor).enable},
		{"rd", "rd [DEVICE] OFFSET", "read a register", (*Monitor).rd},
		{"wr", "wr [DEVICE] OFFSET VALUE", "write a register",
			(*Monitor).wr},
		{"irq", "irq", "show the interrupt line", (*Monitor).irq},
		{"status", "status", "show pending interrupts by group",
			(*Monitor).status},
		{"reset", "reset", "reset all devices", (*Monitor).reset},
		{"pins", "pins", "list board pin names", (*Monitor).pins},
		{"help", "help", "list commands", (*Monitor).help},
		{"quit", "quit", "exit the monitor", (*Monitor).quit},
	}
}

func lookup(name string) (*command, error) {
	for i := range commands {
		if commands[i].name == name {
			return &commands[i], nil
		}
	}
	return nil, fmt.Errorf("%s: command not found", name)
}

// Exec interprets one command line; it returns ErrQuit on quit.
func (m *Monitor) Exec(line string) error {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	c, err := lookup(args[0])
	if err != nil {
		return err
	}
	return c.f(m, args[1:])
}

// Run executes prompted lines until quit or end of input. Command errors
// are printed and don't stop the loop.
func (m *Monitor) Run(p prompt.Prompter, ps string) error {
	for {
		line, err := p.Prompt(ps)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch err = m.Exec(line); err {
		case nil:
		case ErrQuit:
			return nil
		default:
			fmt.Fprintln(m.W, err)
		}
	}
}

// Complete returns command and pin name completions of line.
func (m *Monitor) Complete(line string) (lines []string) {
	args := strings.Fields(line)
	if len(args) == 0 || len(args) == 1 && !strings.HasSuffix(line, " ") {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		for _, c := range commands {
			if strings.HasPrefix(c.name, prefix) {
				lines = append(lines, c.name+" ")
			}
		}
		return
	}
	var names []string
	switch args[0] {
	case "set", "get", "sense", "enable":
		names = board.Names(m.Pins)
	case "rd", "wr":
		names = m.Devices.Names()
	default:
		return
	}
	head, last := line, ""
	if !strings.HasSuffix(line, " ") {
		last = args[len(args)-1]
		head = line[:len(line)-len(last)]
	}
	for _, name := range names {
		if strings.HasPrefix(name, last) {
			lines = append(lines, head+name+" ")
		}
	}
	return
}

func usage(c string) error {
	cmd, _ := lookup(c)
	return fmt.Errorf("usage: %s", cmd.usage)
}

// pin accepts board names, data sheet names and indexes.
func (m *Monitor) pin(s string) (int, error) {
	var n int
	if p, found := m.Pins[s]; found {
		n = p.Index()
	} else if i, err := gpio.ParsePin(s); err != nil {
		return 0, err
	} else {
		n = i
	}
	if n >= m.GPIO.NrGpios() {
		return 0, fmt.Errorf("%s: no such pin", s)
	}
	return n, nil
}

func parseLevel(s string) (bool, error) {
	switch s {
	case "1", "true", "high":
		return true, nil
	case "0", "false", "low":
		return false, nil
	}
	return false, fmt.Errorf("%s: expected 0|1", s)
}

func (m *Monitor) set(args []string) error {
	if len(args) != 2 {
		return usage("set")
	}
	n, err := m.pin(args[0])
	if err != nil {
		return err
	}
	level, err := parseLevel(args[1])
	if err != nil {
		return err
	}
	m.GPIO.SetPinLevel(n, level)
	return nil
}

func b2i(t bool) int {
	if t {
		return 1
	}
	return 0
}

func (m *Monitor) get(args []string) error {
	if len(args) != 1 {
		return usage("get")
	}
	n, err := m.pin(args[0])
	if err != nil {
		return err
	}
	dir := "in"
	if m.GPIO.IsOutput(n) {
		dir = "out"
	}
	fmt.Fprintf(m.W, "GPIO%s: %d %s %s", gpio.PinName(n),
		b2i(m.GPIO.Level(n)), dir, m.GPIO.Sense(n))
	if m.GPIO.Enabled(n) {
		fmt.Fprint(m.W, " enabled")
	}
	if m.GPIO.Pending(n) {
		fmt.Fprint(m.W, " pending")
	}
	fmt.Fprintln(m.W)
	return nil
}

func (m *Monitor) sense(args []string) error {
	if len(args) != 2 {
		return usage("sense")
	}
	n, err := m.pin(args[0])
	if err != nil {
		return err
	}
	s, err := gpio.ParseSense(args[1])
	if err != nil {
		return err
	}
	m.GPIO.SetSense(n, s)
	return nil
}

func (m *Monitor) enable(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usage("enable")
	}
	n, err := m.pin(args[0])
	if err != nil {
		return err
	}
	on := true
	if len(args) == 2 {
		if on, err = parseLevel(args[1]); err != nil {
			return err
		}
	}
	offset := m.GPIO.Layout(gpio.Group(n)).IrqEnable
	v := m.GPIO.Read(offset, 4)
	if on {
		v |= uint64(gpio.Bit(n))
	} else {
		v &^= uint64(gpio.Bit(n))
	}
	m.GPIO.Write(offset, v, 4)
	return nil
}

// device splits an optional leading device name from args.
func (m *Monitor) device(args []string) (mmio.Device, []string, error) {
	if len(args) > 0 {
		if d, found := m.Devices[args[0]]; found {
			return d, args[1:], nil
		}
	}
	names := m.Devices.Names()
	if len(names) == 0 {
		return nil, args, fmt.Errorf("no devices")
	}
	return m.Devices[names[0]], args, nil
}

func parseUint(s string, bits int) (uint64, error) {
	u, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", s, err.(*strconv.NumError).Err)
	}
	return u, nil
}

func (m *Monitor) rd(args []string) error {
	d, args, err := m.device(args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return usage("rd")
	}
	offset, err := parseUint(args[0], 64)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.W, "%s %#03x: %#08x\n", d, offset,
		d.Read(offset, mmio.WordSize))
	return nil
}

func (m *Monitor) wr(args []string) error {
	d, args, err := m.device(args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return usage("wr")
	}
	offset, err := parseUint(args[0], 64)
	if err != nil {
		return err
	}
	v, err := parseUint(args[1], 32)
	if err != nil {
		return err
	}
	d.Write(offset, v, mmio.WordSize)
	return nil
}

func (m *Monitor) irq(args []string) error {
	if len(args) != 0 {
		return usage("irq")
	}
	if m.Line == nil {
		fmt.Fprintln(m.W, "detached")
		return nil
	}
	fmt.Fprintf(m.W, "%s (raised %d, lowered %d)\n", m.Line,
		m.Line.Raised, m.Line.Lowered)
	return nil
}

func (m *Monitor) status(args []string) error {
	if len(args) != 0 {
		return usage("status")
	}
	for g := 0; g < m.GPIO.Revision().Groups(); g++ {
		l := m.GPIO.Layout(g)
		status := m.GPIO.Read(l.IrqStatus, 4)
		if status == 0 {
			continue
		}
		banks := make([]string, gpio.BanksPerGroup)
		for b := range banks {
			banks[b] = gpio.BankName(g*gpio.BanksPerGroup + b)
		}
		fmt.Fprintf(m.W, "%s: status %#08x enable %#08x\n",
			strings.Join(banks, " "), status,
			m.GPIO.Read(l.IrqEnable, 4))
	}
	return nil
}

func (m *Monitor) reset(args []string) error {
	if len(args) != 0 {
		return usage("reset")
	}
	m.Devices.Reset()
	return nil
}

func (m *Monitor) pins(args []string) error {
	if len(args) != 0 {
		return usage("pins")
	}
	for _, name := range board.Names(m.Pins) {
		p := m.Pins[name]
		fmt.Fprintf(m.W, "%-24s GPIO%-4s %s\n", name,
			gpio.PinName(p.Index()), board.Mode(p))
	}
	return nil
}

func (m *Monitor) help(args []string) error {
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.name)
	}
	sort.Strings(names)
	for _, name := range names {
		c, _ := lookup(name)
		fmt.Fprintf(m.W, "%-40s %s\n", c.usage, c.apropos)
	}
	return nil
}

func (m *Monitor) quit(args []string) error { return ErrQuit }
