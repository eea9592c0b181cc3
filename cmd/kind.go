// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cmd

import (
	"fmt"
	"strings"
)

const (
	DontFork Kind = 1 << iota
	Daemon
	Hidden
)

func WhatKind(v Cmd) Kind {
	if m, found := v.(kinder); found {
		return m.Kind()
	}
	return 0
}

type kinder interface {
	Kind() Kind
}

type Kind uint16

func (k Kind) IsDontFork() bool    { return (k & DontFork) == DontFork }
func (k Kind) IsDaemon() bool      { return (k & Daemon) == Daemon }
func (k Kind) IsHidden() bool      { return (k & Hidden) == Hidden }
func (k Kind) IsInteractive() bool { return (k & (Daemon | Hidden)) == 0 }

var kindNames = []struct {
	k    Kind
	name string
}{
	{DontFork, "dont-fork"},
	{Daemon, "daemon"},
	{Hidden, "hidden"},
}

// String lists the kind flags, e.g. "daemon,hidden"; 0 is "interactive".
func (k Kind) String() string {
	if k == 0 {
		return "interactive"
	}
	var names []string
	for _, x := range kindNames {
		if k&x.k == x.k {
			names = append(names, x.name)
			k &^= x.k
		}
	}
	if k != 0 {
		names = append(names, fmt.Sprintf("%#x", uint16(k)))
	}
	return strings.Join(names, ",")
}
