// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"fmt"
	"strings"

	"github.com/amboar/qemu/cmd"
)

type helper interface {
	Help(...string) string
}

// Help returns the help text of the named command, or the usage of g
// followed by its commands and their kind.
func (g *Goes) Help(args ...string) string {
	if len(args) > 0 {
		if v, found := g.ByName[args[0]]; found {
			if method, found := v.(helper); found {
				return method.Help(args[1:]...)
			}
			return Usage(v)
		}
	}
	buf := new(strings.Builder)
	buf.WriteString(Usage(g))
	if names := g.Names(); len(names) > 0 {
		buf.WriteString("\n\ncommands:")
		for _, name := range names {
			fmt.Fprintf(buf, "\n\t%-16s%s", name,
				cmd.WhatKind(g.ByName[name]))
		}
	}
	return buf.String()
}

func (g *Goes) help(args ...string) error {
	h := g.Help(args...)
	if len(h) > 0 {
		fmt.Fprintln(g.stdout(), h)
	}
	return nil
}
