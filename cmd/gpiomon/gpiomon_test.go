// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package gpiomon

import (
	"bytes"
	"strings"
	"testing"

	"github.com/amboar/qemu/internal/test"
)

func TestRun(t *testing.T) {
	assert := test.Assert{TB: t}
	out := new(bytes.Buffer)
	c := &Command{
		Stdin: strings.NewReader(`sense AC3 falling
enable AC3
set AC3 1
set AC3 0
irq
rd 0x1b8
`),
		Stdout: out,
	}
	assert.Nil(c.Main("-rev", "0x04010303", "-log", "none"))
	assert.Equal(out.String(), `high (raised 1, lowered 0)
aspeed.gpio 0x1b8: 0x00000008
`)
}

func TestRunErrors(t *testing.T) {
	assert := test.Assert{TB: t}
	c := &Command{Stdin: strings.NewReader("")}
	assert.Error(c.Main("-rev", "ast9999"), "ast9999: unknown silicon revision")
	assert.Error(c.Main("-log", "loud"), "loud: unknown log class")
	assert.Error(c.Main("extra"), "[extra]: unexpected")
	assert.Match(c.Main("-dtb", "/nonexistent.dtb").Error(),
		"no such file or directory$")
}
