// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package irq

import "testing"

func TestLevel(t *testing.T) {
	var l Level
	for _, high := range []bool{true, true, false, false, true} {
		l.SetLevel(high)
	}
	if !l.High {
		t.Fatal("expected high")
	}
	if l.Raised != 2 || l.Lowered != 1 {
		t.Fatalf("raised %d lowered %d", l.Raised, l.Lowered)
	}
	if s := l.String(); s != "high" {
		t.Fatalf("%q != %q", s, "high")
	}
}

func TestPulse(t *testing.T) {
	var seen []bool
	Pulse(Func(func(high bool) { seen = append(seen, high) }))
	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Fatalf("unexpected %v", seen)
	}
}

func TestTee(t *testing.T) {
	var a, b Level
	tee := Tee{&a, nil, &b, Detached()}
	Raise(tee)
	Lower(tee)
	for _, l := range []*Level{&a, &b} {
		if l.High || l.Raised != 1 || l.Lowered != 1 {
			t.Fatalf("unexpected %+v", *l)
		}
	}
}

func TestNilFunc(t *testing.T) {
	var f Func
	f.SetLevel(true)
}
