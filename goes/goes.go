// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package goes dispatches a multi-command program to its plotted commands
// and the apropos, help, man and usage helpers.
package goes

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/amboar/qemu/cmd"
	"github.com/amboar/qemu/lang"
	"github.com/platinasystems/log"
)

type Goes struct {
	NAME    string
	USAGE   string
	APROPOS lang.Alt
	MAN     lang.Alt
	ByName  map[string]cmd.Cmd
	// Stdout of the helpers, os.Stdout if nil.
	Stdout io.Writer
}

func (g *Goes) String() string { return g.NAME }

func (g *Goes) stdout() io.Writer {
	if g.Stdout != nil {
		return g.Stdout
	}
	return os.Stdout
}

// Names returns the sorted names of all but hidden commands.
func (g *Goes) Names() []string {
	names := make([]string, 0, len(g.ByName))
	for name, v := range g.ByName {
		if !cmd.WhatKind(v).IsHidden() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Main runs the args[0] command or helper. A daemon command is closed on
// SIGTERM or SIGINT if it has a Close method.
func (g *Goes) Main(args ...string) error {
	if len(args) == 0 {
		return g.usage()
	}
	cmd.Swap(args)
	name := args[0]
	args = args[1:]
	switch name {
	case "apropos":
		return g.apropos(args...)
	case "help":
		return g.help(args...)
	case "man":
		return g.man(args...)
	case "usage":
		return g.usage(args...)
	}
	v := g.ByName[name]
	if v == nil {
		return fmt.Errorf("%s: command not found", name)
	}
	k := cmd.WhatKind(v)
	if closer, ok := v.(io.Closer); ok && k.IsDaemon() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGTERM, syscall.SIGINT)
		done := make(chan struct{})
		defer func() {
			signal.Stop(sig)
			close(done)
		}()
		go func() {
			select {
			case <-sig:
				closer.Close()
			case <-done:
			}
		}()
	}
	err := v.Main(args...)
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		if k.IsDaemon() {
			log.Print("daemon", "err", name, ": ", err)
		}
		err = fmt.Errorf("%s: %v", name, err)
	}
	return err
}
