// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package monitor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/amboar/qemu/internal/aspeed/gpio"
	"github.com/amboar/qemu/internal/aspeed/lpc"
	"github.com/amboar/qemu/internal/irq"
	"github.com/amboar/qemu/internal/mmio"
	"github.com/amboar/qemu/internal/prompt"
	"github.com/amboar/qemu/internal/test"
	sysgpio "github.com/platinasystems/gpio"
)

func newMonitor(t *testing.T) (*Monitor, *bytes.Buffer) {
	t.Helper()
	out := new(bytes.Buffer)
	line := new(irq.Level)
	c, err := gpio.New(gpio.Config{Revision: gpio.AST2500A1, IRQ: line})
	test.Assert{TB: t}.Nil(err)
	return &Monitor{
		GPIO: c,
		Devices: mmio.Map{
			"gpio": c,
			"lpc":  lpc.New(nil),
		},
		Line: line,
		Pins: sysgpio.PinMap{
			"power-button": sysgpio.IsInput | 3,
			"bmc-ready":    sysgpio.IsOutputHi | 10,
		},
		W: out,
	}, out
}

func TestSession(t *testing.T) {
	assert := test.Assert{TB: t}
	m, out := newMonitor(t)
	script := `
# rising edge on A3
sense power-button rising
enable A3
set power-button 1
get 3
irq
status
rd 0x018
wr 0x018 8
irq
wr lpc 0x80 0xabcd
rd lpc 0x80
quit
get 3
`
	assert.Nil(m.Run(prompt.NewScanner(strings.NewReader(script), nil),
		"gpio> "))
	assert.Equal(out.String(), `GPIOA3: 1 in rising enabled pending
high (raised 1, lowered 0)
A B C D: status 0x00000008 enable 0x00000008
aspeed.gpio 0x018: 0x00000008
low (raised 1, lowered 1)
aspeed.lpc 0x080: 0x0000abcd
`)
}

func TestErrors(t *testing.T) {
	assert := test.Assert{TB: t}
	m, out := newMonitor(t)
	for _, x := range []struct {
		line, err string
	}{
		{"frob", "frob: command not found"},
		{"set A3", "usage: set PIN 0|1"},
		{"set A3 2", "2: expected 0|1"},
		{"get AD0", "AD0: no such pin"},
		{"get A9", "A9: invalid bank index"},
		{"sense A3 edge", "edge: invalid sense"},
		{"rd", "usage: rd [DEVICE] OFFSET"},
		{"rd zz", "zz: invalid syntax"},
		{"wr 0 0x100000000", "0x100000000: value out of range"},
		{"status 1", "usage: status"},
	} {
		assert.Error(m.Exec(x.line), x.err)
	}
	assert.Error(m.Exec("quit"), ErrQuit)
	assert.Nil(m.Exec("  # comment"))
	assert.Equal(out.String(), "")
}

func TestReset(t *testing.T) {
	assert := test.Assert{TB: t}
	m, out := newMonitor(t)
	for _, line := range []string{
		"sense A3 both",
		"enable A3",
		"set A3 1",
		"wr lpc 0 1",
		"reset",
		"irq",
		"rd lpc 0",
		"get A3",
	} {
		assert.Nil(m.Exec(line))
	}
	assert.Equal(out.String(), `low (raised 1, lowered 1)
aspeed.lpc 0x000: 0x00000000
GPIOA3: 0 in falling
`)
}

func TestPins(t *testing.T) {
	assert := test.Assert{TB: t}
	m, out := newMonitor(t)
	assert.Nil(m.Exec("pins"))
	assert.Match(out.String(),
		`^bmc-ready +GPIOB2 +output-high\npower-button +GPIOA3 +input\n$`)
}

func TestComplete(t *testing.T) {
	assert := test.Assert{TB: t}
	m, _ := newMonitor(t)
	for _, x := range []struct {
		line   string
		expect string
	}{
		{"s", "set |sense |status "},
		{"re", "reset "},
		{"get ", "get bmc-ready |get power-button "},
		{"set po", "set power-button "},
		{"rd l", "rd lpc "},
		{"help x", ""},
	} {
		assert.Equal(strings.Join(m.Complete(x.line), "|"), x.expect)
	}
}

func TestHelp(t *testing.T) {
	assert := test.Assert{TB: t}
	m, out := newMonitor(t)
	assert.Nil(m.Exec("help"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.True(len(lines) == len(commands))
	assert.Match(lines[0], `^enable PIN \[0\|1\] +enable pin interrupts$`)
}
