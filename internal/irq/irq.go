// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package irq models the single wire signals that connect emulated devices:
// interrupt outputs and externally driven gpio inputs.
package irq

// Line is a level signal. Implementations may assume they are driven from a
// single goroutine.
type Line interface {
	SetLevel(high bool)
}

// Func adapts a function to a Line.
type Func func(high bool)

func (f Func) SetLevel(high bool) {
	if f != nil {
		f(high)
	}
}

type detached struct{}

func (detached) SetLevel(bool) {}

// Detached returns a Line that drops all signals.
func Detached() Line { return detached{} }

func Raise(l Line) { l.SetLevel(true) }
func Lower(l Line) { l.SetLevel(false) }

// Pulse raises then lowers the line.
func Pulse(l Line) {
	l.SetLevel(true)
	l.SetLevel(false)
}

// Level records the current state of a line along with the number of
// transitions it has seen. Repeated levels are not transitions.
type Level struct {
	High    bool
	Raised  uint
	Lowered uint
}

func (l *Level) SetLevel(high bool) {
	switch {
	case high && !l.High:
		l.Raised++
	case !high && l.High:
		l.Lowered++
	}
	l.High = high
}

func (l *Level) String() string {
	if l.High {
		return "high"
	}
	return "low"
}

// Tee forwards every level to all of the given lines.
type Tee []Line

func (t Tee) SetLevel(high bool) {
	for _, l := range t {
		if l != nil {
			l.SetLevel(high)
		}
	}
}
