// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/amboar/qemu/cmd"
	"github.com/amboar/qemu/internal/test"
	"github.com/amboar/qemu/lang"
)

type echo struct{ args []string }

func (*echo) String() string { return "echo" }
func (*echo) Usage() string  { return "echo [ARG]..." }

func (*echo) Apropos() lang.Alt {
	return lang.Alt{lang.EnUS: "remember arguments"}
}

func (*echo) Man() lang.Alt {
	return lang.Alt{lang.EnUS: "DESCRIPTION\n\tRemembers its arguments."}
}

func (c *echo) Main(args ...string) error {
	if len(args) > 0 && args[0] == "fail" {
		return errors.New("failed")
	}
	c.args = args
	return nil
}

type hidden struct{}

func (hidden) String() string       { return "hidden" }
func (hidden) Usage() string        { return "hidden" }
func (hidden) Apropos() lang.Alt    { return lang.Alt{lang.EnUS: "secret"} }
func (hidden) Kind() cmd.Kind       { return cmd.Hidden }
func (hidden) Main(...string) error { return nil }

func newGoes() (*Goes, *echo, *bytes.Buffer) {
	lang.Lang = lang.EnUS
	e := new(echo)
	out := new(bytes.Buffer)
	return &Goes{
		NAME: "aspeed-gpio",
		ByName: map[string]cmd.Cmd{
			"echo":   e,
			"hidden": hidden{},
		},
		Stdout: out,
	}, e, out
}

func TestDispatch(t *testing.T) {
	assert := test.Assert{TB: t}
	g, e, out := newGoes()
	assert.Nil(g.Main("echo", "a", "b"))
	assert.Equal(strings.Join(e.args, " "), "a b")
	assert.Error(g.Main("echo", "fail"), "echo: failed")
	assert.Error(g.Main("frob"), "frob: command not found")
	assert.Equal(out.String(), "")
	assert.Equal(strings.Join(g.Names(), " "), "echo")
}

func TestHelpers(t *testing.T) {
	assert := test.Assert{TB: t}
	g, _, out := newGoes()

	assert.Nil(g.Main("echo", "-usage"))
	assert.Equal(out.String(), "usage:\techo [ARG]...\n")

	out.Reset()
	assert.Nil(g.Main("help", "echo"))
	assert.Equal(out.String(), "usage:\techo [ARG]...\n")

	out.Reset()
	assert.Nil(g.Main("help"))
	assert.Match(out.String(),
		"\n\ncommands:\n\techo +interactive\n$")

	out.Reset()
	assert.Nil(g.Main("apropos"))
	assert.Equal(out.String(), "echo            remember arguments\n")

	out.Reset()
	assert.Nil(g.Main("-man", "echo"))
	assert.Equal(out.String(), `NAME
	echo - remember arguments

SYNOPSIS
	echo [ARG]...

DESCRIPTION
	Remembers its arguments.
`)

	out.Reset()
	assert.Nil(g.Main())
	assert.Match(out.String(), "^usage:\taspeed-gpio COMMAND")

	assert.Error(g.Main("usage", "frob"), "frob: not found")
	assert.Error(g.Main("man", "frob"), "frob: not found")
}
