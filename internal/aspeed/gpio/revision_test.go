// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package gpio

import (
	"errors"
	"regexp"
	"testing"

	"github.com/amboar/qemu/internal/test"
)

func TestRevisions(t *testing.T) {
	assert := test.Assert{TB: t}
	for _, r := range Revisions {
		assert.Nil(r.Validate())
	}
	r, err := LookupRevision(AST2400A1)
	assert.Nil(err)
	assert.True(r.Groups() == 7)
	r, err = ParseRevision("AST2500-A1")
	assert.Nil(err)
	assert.True(r.ID == AST2500A1)
	assert.True(r.Groups() == 8)
	r, err = ParseRevision("0x04000303")
	assert.Nil(err)
	assert.Equal(r.String(), "ast2500-a0")

	_, err = ParseRevision("ast2600")
	assert.Error(err, "ast2600: unknown silicon revision")
	_, err = ParseRevision("0x05000303")
	assert.True(errors.Is(err, ErrUnsupportedRevision))
}

func TestCapability(t *testing.T) {
	assert := test.Assert{TB: t}
	r, err := LookupRevision(AST2400A0)
	assert.Nil(err)
	for _, x := range []struct {
		n   int
		cap Capability
	}{
		{0, InputOutput},
		{168, InputOutput}, // V0
		{176, Input},       // W0
		{184, Input},       // X0
		{192, InputOutput}, // Y0
		{196, None},        // Y4
		{200, Output},      // Z0
		{216, None},
		{-1, None},
	} {
		assert.Equal(r.Capability(x.n).String(), x.cap.String())
	}
	r, err = LookupRevision(AST2500A0)
	assert.Nil(err)
	assert.Equal(r.Capability(200).String(), "input-output")
	assert.Equal(r.Capability(227).String(), "input-output")
}

func TestValidate(t *testing.T) {
	assert := test.Assert{TB: t}
	for _, x := range []struct {
		r   Revision
		err string
	}{
		{
			Revision{ID: 1, NrGpios: 0},
			"no pins",
		},
		{
			Revision{ID: 1, NrGpios: 64, Sets: ast2500Sets[:1],
				Layouts: Layouts3V3[:2]},
			"1 of 2 capability sets",
		},
		{
			Revision{ID: 1, NrGpios: 64, Sets: ast2500Sets,
				Layouts: Layouts3V3[:1]},
			"1 of 2 group layouts",
		},
		{
			Revision{ID: 1, NrGpios: 64, Sets: ast2500Sets,
				Layouts: []Layout{Layouts3V3[0], {}}},
			"group 1 has no layout",
		},
		{
			Revision{ID: 1, NrGpios: 64, Sets: ast2500Sets,
				Layouts: []Layout{Layouts3V3[0], Layouts3V3[0]}},
			"group 1 data offset 0x0 overlaps group 0 data",
		},
		{
			Revision{ID: 1, NrGpios: 32, Sets: ast2500Sets,
				Layouts: []Layout{{Data: 0x050}}},
			"group 0 data offset 0x50 overlaps debounce time 1",
		},
		{
			Revision{ID: 1, NrGpios: 32, Sets: ast2500Sets,
				Layouts: []Layout{{Data: 0x1F0}}},
			"group 0 data offset 0x1f0",
		},
	} {
		err := x.r.Validate()
		assert.True(errors.Is(err, ErrLayout))
		assert.Match(err.Error(), regexp.QuoteMeta(x.err)+"$")
	}
}

func TestRegisters(t *testing.T) {
	assert := test.Assert{TB: t}
	r, err := ParseRevision("ast2500-a1")
	assert.Nil(err)
	regs := r.Registers()
	assert.True(len(regs) == 8*14+len(DebounceTimes))
	assert.Equal(regs[0].String(), "group 0 data")
	assert.Equal(regs[len(regs)-1].String(), "group 7 direction")
	seen := make(map[uint64]bool)
	for i, reg := range regs {
		assert.False(seen[reg.Offset])
		seen[reg.Offset] = true
		if i > 0 {
			assert.True(regs[i-1].Offset < reg.Offset)
		}
	}
	assert.True(seen[0x050])

	r, err = ParseRevision("ast2400-a0")
	assert.Nil(err)
	assert.True(len(r.Registers()) == 7*14+len(DebounceTimes))
}
