// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// This is a goes machine of ASPEED GPIO controller models.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amboar/qemu/cmd"
	"github.com/amboar/qemu/cmd/aspeedgpiod"
	"github.com/amboar/qemu/cmd/gpiomon"
	"github.com/amboar/qemu/cmd/regs"
	"github.com/amboar/qemu/goes"
	"github.com/amboar/qemu/lang"
)

var Goes = &goes.Goes{
	NAME:  "aspeed-gpio",
	USAGE: "aspeed-gpio COMMAND [ARGS]...",
	APROPOS: lang.Alt{
		lang.EnUS: "ASPEED GPIO controller models",
	},
	ByName: map[string]cmd.Cmd{
		"aspeedgpiod": &aspeedgpiod.Command{},
		"gpiomon":     &gpiomon.Command{},
		"regs":        &regs.Command{},
	},
}

func main() {
	args := os.Args
	if filepath.Base(args[0]) == Goes.NAME {
		args = args[1:]
	} else {
		args[0] = filepath.Base(args[0])
	}
	if err := Goes.Main(args...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
