// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package devlog prints device model diagnostics through the platina
// syslog logger. Each diagnostic has a class mask so that guest mistakes,
// unimplemented register accesses and access traces can be enabled
// independently, e.g.
//
//	l := devlog.New("aspeed.gpio")
//	l.Printf(devlog.GuestError, "invalid GPIO number: %d", n)
package devlog

import (
	"fmt"
	"strings"

	"github.com/platinasystems/log"
)

type Mask uint8

const (
	// GuestError reports a guest driving the device outside of its
	// contract, e.g. misaligned or out of bounds register access.
	GuestError Mask = 1 << iota
	// Unimp reports access to a register the model doesn't implement.
	Unimp
	// Trace reports every register access.
	Trace

	NoMask  Mask = 0
	AllMask      = GuestError | Unimp | Trace
)

const DefaultMask = GuestError | Unimp

var maskNames = []struct {
	name string
	mask Mask
}{
	{"guest_errors", GuestError},
	{"unimp", Unimp},
	{"trace", Trace},
}

var priority = map[Mask]string{
	GuestError: "err",
	Unimp:      "warn",
	Trace:      "debug",
}

// Logger filters and prints diagnostics. The zero Logger prints nothing; a
// nil *Logger is also valid.
type Logger struct {
	Mask   Mask
	Prefix string
	// If set, Hook receives the formatted diagnostic instead of the
	// system log.
	Hook func(Mask, string)
}

// New returns a Logger with the DefaultMask.
func New(prefix string) *Logger {
	return &Logger{Mask: DefaultMask, Prefix: prefix}
}

// Sub returns a Logger of the same mask and hook with another prefix.
func (l *Logger) Sub(prefix string) *Logger {
	if l == nil {
		return nil
	}
	sub := *l
	sub.Prefix = prefix
	return &sub
}

func (l *Logger) Enabled(m Mask) bool {
	return l != nil && l.Mask&m != 0
}

func (l *Logger) Printf(m Mask, format string, args ...interface{}) {
	if !l.Enabled(m) {
		return
	}
	s := fmt.Sprintf(format, args...)
	if len(l.Prefix) > 0 {
		s = l.Prefix + ": " + s
	}
	if l.Hook != nil {
		l.Hook(m, s)
		return
	}
	log.Print("daemon", priority[m], s)
}

func (m Mask) String() string {
	if m == NoMask {
		return "none"
	}
	var names []string
	for _, x := range maskNames {
		if m&x.mask != 0 {
			names = append(names, x.name)
		}
	}
	return strings.Join(names, ",")
}

// ParseMask decodes a comma separated list of class names, "all" or "none".
func ParseMask(s string) (Mask, error) {
	var m Mask
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		switch name {
		case "":
		case "all":
			m |= AllMask
		case "none":
		default:
			found := false
			for _, x := range maskNames {
				if x.name == name {
					m |= x.mask
					found = true
				}
			}
			if !found {
				return NoMask, fmt.Errorf("%s: unknown log class",
					name)
			}
		}
	}
	return m, nil
}

// Recorder collects diagnostics, use its Hook method as Logger.Hook.
type Recorder struct {
	Lines []string
	Masks []Mask
}

func (r *Recorder) Hook(m Mask, s string) {
	r.Lines = append(r.Lines, s)
	r.Masks = append(r.Masks, m)
}

// Count returns the number of recorded diagnostics of the given class.
func (r *Recorder) Count(m Mask) int {
	n := 0
	for _, x := range r.Masks {
		if x&m != 0 {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.Lines = r.Lines[:0]
	r.Masks = r.Masks[:0]
}
