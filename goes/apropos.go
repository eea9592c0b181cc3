// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package goes

import (
	"fmt"

	"github.com/amboar/qemu/lang"
)

func (g *Goes) Apropos() lang.Alt {
	apropos := g.APROPOS
	if apropos == nil {
		apropos = lang.Alt{
			lang.EnUS: "ASPEED GPIO controller model",
		}
	}
	return apropos
}

func (g *Goes) apropos(args ...string) error {
	w := g.stdout()
	pad := func(n int) {
		if n < 0 {
			fmt.Fprint(w, "\n\t\t")
		} else {
			fmt.Fprint(w, "                "[:n])
		}
	}
	if len(args) == 0 {
		args = g.Names()
	}
	for i, name := range args {
		if len(name) == 0 {
			continue
		}
		if v, found := g.ByName[name]; found {
			fmt.Fprint(w, name)
			pad(16 - len(name))
			fmt.Fprintln(w, v.Apropos())
		} else if i == 0 {
			return fmt.Errorf("%s: not found", name)
		}
	}
	return nil
}
