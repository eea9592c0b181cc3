// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package mmio

import "testing"

func TestCheck(t *testing.T) {
	for _, x := range []struct {
		offset uint64
		size   uint
		limit  uint64
		err    error
	}{
		{0x000, 4, 0x1f0, nil},
		{0x1ec, 4, 0x1f0, nil},
		{0x1f0, 4, 0x1f0, ErrRange},
		{0xffc, 4, 0x1f0, ErrRange},
		{0x002, 4, 0x1f0, ErrUnaligned},
		{0x000, 1, 0x1f0, ErrSize},
		{0x000, 2, 0x1f0, ErrSize},
		{0x000, 8, 0x1f0, ErrSize},
		{0x000, 4, 2, ErrRange},
	} {
		if err := Check(x.offset, x.size, x.limit); err != x.err {
			t.Errorf("Check(%#x, %d, %#x): %v != %v",
				x.offset, x.size, x.limit, err, x.err)
		}
	}
}

func TestRegOffset(t *testing.T) {
	if r := Reg(0x1ec); r != 0x7b {
		t.Fatalf("%#x", r)
	}
	if o := Offset(0x7b); o != 0x1ec {
		t.Fatalf("%#x", o)
	}
}

type nop struct{ resets int }

func (*nop) String() string { return "nop" }
func (*nop) Size() uint64 { return 0x1000 }
func (*nop) Read(uint64, uint) uint64 { return 0 }
func (*nop) Write(uint64, uint64, uint) {}
func (n *nop) Reset() { n.resets++ }

func TestMap(t *testing.T) {
	a, b := new(nop), new(nop)
	m := Map{"lpc": a, "gpio": b}
	names := m.Names()
	if len(names) != 2 || names[0] != "gpio" || names[1] != "lpc" {
		t.Fatal(names)
	}
	if d, err := m.Lookup("gpio"); err != nil || d != Device(b) {
		t.Fatal(d, err)
	}
	if _, err := m.Lookup("scu"); err == nil {
		t.Fatal("expected error")
	}
	m.Reset()
	if a.resets != 1 || b.resets != 1 {
		t.Fatal("reset not propagated")
	}
}
