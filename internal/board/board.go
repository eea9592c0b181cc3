// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package board names the pins of a modelled GPIO controller from a
// flattened device tree and programs their default direction and level.
//
// A gpio-controller node may name its lines with a gpio-line-names
// property and describe pins with NAME@INDEX children carrying one of the
// input, output-low or output-high properties, e.g.
//
//	gpio@1e780000 {
//		gpio-controller;
//		gpio-line-names = "", "", "", "power-button";
//		bmc-ready@B2 { gpio-pin-desc = "BMC ready"; output-high; };
//	};
//
// INDEX is either a decimal line number or a data sheet pin name.
package board

import (
	"encoding/binary"
	"fmt"
	"io/ioutil"
	"sort"
	"strings"

	"github.com/amboar/qemu/internal/aspeed/gpio"
	"github.com/platinasystems/fdt"
	sysgpio "github.com/platinasystems/gpio"
)

const fdtMagic = 0xd00dfeed

// ReadFile parses the named device tree blob.
func ReadFile(fn string) (sysgpio.PinMap, error) {
	b, err := ioutil.ReadFile(fn)
	if err != nil {
		return nil, err
	}
	pins, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", fn, err)
	}
	return pins, nil
}

// Parse returns the named pins of every gpio-controller of a device tree
// blob. A controller with a gpioN alias starts at the linux base of that
// alias; others start at 0.
func Parse(b []byte) (pins sysgpio.PinMap, err error) {
	if len(b) < 40 || binary.BigEndian.Uint32(b) != fdtMagic {
		return nil, fmt.Errorf("not a flattened device tree")
	}
	if size := binary.BigEndian.Uint32(b[4:]); int(size) > len(b) {
		return nil, fmt.Errorf("truncated device tree, %d of %d bytes",
			len(b), size)
	}
	defer func() {
		if r := recover(); r != nil {
			pins, err = nil, fmt.Errorf("corrupt device tree: %v", r)
		}
	}()
	t := &fdt.Tree{Debug: false, IsLittleEndian: false}
	if err = t.Parse(b); err != nil {
		return nil, err
	}
	if t.RootNode == nil {
		return nil, fmt.Errorf("empty device tree")
	}
	aliases := make(sysgpio.GpioAliasMap)
	t.MatchNode("aliases", func(n *fdt.Node) {
		GatherAliases(n, aliases)
	})
	pins = make(sysgpio.PinMap)
	t.EachProperty("gpio-controller", "",
		func(n *fdt.Node, name, value string) {
			if err != nil {
				return
			}
			var base sysgpio.Pin
			for alias, node := range aliases {
				if node == n.Name {
					base = sysgpio.GpioBankToBase[alias]
				}
			}
			err = Gather(n, base, pins)
		})
	if err != nil {
		return nil, err
	}
	return pins, nil
}

// GatherAliases maps gpio aliases to the name of their node.
func GatherAliases(n *fdt.Node, aliases sysgpio.GpioAliasMap) {
	for p, pn := range n.Properties {
		if strings.HasPrefix(p, "gpio") {
			val := strings.Split(string(pn), "\x00")
			v := strings.Split(val[0], "/")
			aliases[p] = v[len(v)-1]
		}
	}
}

// Gather adds the named lines and pin descriptions of controller n.
func Gather(n *fdt.Node, base sysgpio.Pin, pins sysgpio.PinMap) error {
	if b, found := n.Properties["gpio-line-names"]; found {
		names := strings.Split(strings.TrimRight(string(b), "\x00"),
			"\x00")
		for i, name := range names {
			if len(name) > 0 {
				pins[name] = sysgpio.IsInput | (base + sysgpio.Pin(i))
			}
		}
	}
	for _, c := range n.Children {
		var mode sysgpio.Pin
		for p := range c.Properties {
			if m, found := sysgpio.GpioPinMode[p]; found {
				mode = m
			}
		}
		if mode == 0 {
			continue
		}
		pn := strings.Split(c.Name, "@")
		if len(pn) != 2 {
			return fmt.Errorf("%s: expected NAME@INDEX", c.Name)
		}
		i, err := gpio.ParsePin(pn[1])
		if err != nil {
			return fmt.Errorf("%s: %v", c.Name, err)
		}
		pins[pn[0]] = mode | (base + sysgpio.Pin(i))
	}
	return nil
}

// Names returns the sorted pin names.
func Names(pins sysgpio.PinMap) []string {
	names := make([]string, 0, len(pins))
	for name := range pins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Mode returns the device tree mode property of p.
func Mode(p sysgpio.Pin) string {
	switch {
	case p&sysgpio.IsOutputHi != 0:
		return "output-high"
	case p&sysgpio.IsOutputLo != 0:
		return "output-low"
	}
	return "input"
}

// Apply programs the direction and output level of each pin through the
// controller registers, as firmware would.
func Apply(pins sysgpio.PinMap, c *gpio.Controller) error {
	for _, name := range Names(pins) {
		p := pins[name]
		n := p.Index()
		if n >= c.NrGpios() {
			return fmt.Errorf("%s: GPIO %d out of range", name, n)
		}
		l := c.Layout(gpio.Group(n))
		bit := uint64(gpio.Bit(n))
		dir := c.Read(l.Dir, 4)
		if p&(sysgpio.IsOutputHi|sysgpio.IsOutputLo) == 0 {
			c.Write(l.Dir, dir&^bit, 4)
			continue
		}
		data := c.Read(l.Data, 4)
		if p&sysgpio.IsOutputHi != 0 {
			data |= bit
		} else {
			data &^= bit
		}
		c.Write(l.Data, data, 4)
		c.Write(l.Dir, dir|bit, 4)
		if !c.IsOutput(n) {
			return fmt.Errorf("%s: GPIO%s can't be an output", name,
				gpio.PinName(n))
		}
	}
	return nil
}
