// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package gpio

import (
	"fmt"
	"strconv"
	"strings"
)

// Silicon revision identifiers as reported by the SCU.
const (
	AST2400A0 uint32 = 0x02000303
	AST2400A1 uint32 = 0x02010303
	AST2500A0 uint32 = 0x04000303
	AST2500A1 uint32 = 0x04010303
)

// Capability of a pin for a silicon revision.
type Capability uint8

const (
	None   Capability = 0
	Input  Capability = 1 << 0
	Output Capability = 1 << 1

	InputOutput = Input | Output
)

func (c Capability) String() string {
	switch c {
	case Input:
		return "input"
	case Output:
		return "output"
	case InputOutput:
		return "input-output"
	}
	return "none"
}

// Set gives the input and output capable pins of a group.
type Set struct {
	Input, Output uint32
}

// Capability of the pin with mask bit.
func (s Set) Capability(bit uint32) Capability {
	var c Capability
	if s.Input&bit != 0 {
		c |= Input
	}
	if s.Output&bit != 0 {
		c |= Output
	}
	return c
}

type Revision struct {
	ID      uint32
	Name    string
	NrGpios int
	// Sets and Layouts are indexed by group.
	Sets    []Set
	Layouts []Layout
}

var ast2400Sets = []Set{
	{0xffffffff, 0xffffffff}, // A B C D
	{0xffffffff, 0xffffffff}, // E F G H
	{0xffffffff, 0xffffffff}, // I J K L
	{0xffffffff, 0xffffffff}, // M N O P
	{0xffffffff, 0xffffffff}, // Q R S T
	{0xffffffff, 0x0000ffff}, // U V W X
	{0x0000000f, 0x0fffff0f}, // Y Z AA AB
}

var ast2500Sets = []Set{
	{0xffffffff, 0xffffffff}, // A B C D
	{0xffffffff, 0xffffffff}, // E F G H
	{0xffffffff, 0xffffffff}, // I J K L
	{0xffffffff, 0xffffffff}, // M N O P
	{0xffffffff, 0xffffffff}, // Q R S T
	{0xffffffff, 0x0000ffff}, // U V W X
	{0x0fffffff, 0x0fffffff}, // Y Z AA AB
	{0x000000ff, 0x000000ff}, // AC
}

var Revisions = []*Revision{
	{AST2400A0, "ast2400-a0", 216, ast2400Sets, Layouts3V3[:7]},
	{AST2400A1, "ast2400-a1", 216, ast2400Sets, Layouts3V3[:7]},
	{AST2500A0, "ast2500-a0", 228, ast2500Sets, Layouts3V3[:8]},
	{AST2500A1, "ast2500-a1", 228, ast2500Sets, Layouts3V3[:8]},
}

// LookupRevision returns the table entry of a silicon revision identifier.
func LookupRevision(id uint32) (*Revision, error) {
	for _, r := range Revisions {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, &ConfigError{Revision: id, Err: ErrUnsupportedRevision}
}

// ParseRevision accepts either a revision name, e.g. "ast2500-a1", or its
// numeric identifier.
func ParseRevision(s string) (*Revision, error) {
	name := strings.ToLower(s)
	for _, r := range Revisions {
		if r.Name == name {
			return r, nil
		}
	}
	id, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("%s: unknown silicon revision", s)
	}
	return LookupRevision(uint32(id))
}

func (r *Revision) String() string { return r.Name }

// Groups returns the number of register groups implied by the pin count.
func (r *Revision) Groups() int {
	return (r.NrGpios + PinsPerGroup - 1) / PinsPerGroup
}

// Capability of pin n; None for pins outside of the revision.
func (r *Revision) Capability(n int) Capability {
	if n < 0 || n >= r.NrGpios {
		return None
	}
	return r.Sets[Group(n)].Capability(Bit(n))
}

// Validate asserts that there is a complete register layout and capability
// set for every group implied by the pin count.
func (r *Revision) Validate() error {
	groups := r.Groups()
	if r.NrGpios <= 0 {
		return &ConfigError{r.ID, ErrLayout, "no pins"}
	}
	if len(r.Sets) < groups {
		return &ConfigError{r.ID, ErrLayout,
			fmt.Sprintf("%d of %d capability sets", len(r.Sets), groups)}
	}
	if len(r.Layouts) < groups {
		return &ConfigError{r.ID, ErrLayout,
			fmt.Sprintf("%d of %d group layouts", len(r.Layouts), groups)}
	}
	seen := make(map[uint64]string)
	claim := func(name string, offset uint64) error {
		if offset&3 != 0 || offset >= RegSpace {
			return &ConfigError{r.ID, ErrLayout,
				fmt.Sprintf("%s offset %#x", name, offset)}
		}
		if other, found := seen[offset]; found {
			return &ConfigError{r.ID, ErrLayout,
				fmt.Sprintf("%s offset %#x overlaps %s",
					name, offset, other)}
		}
		seen[offset] = name
		return nil
	}
	for i, offset := range DebounceTimes {
		name := fmt.Sprint("debounce time ", i+1)
		if err := claim(name, offset); err != nil {
			return err
		}
	}
	for g, l := range r.Layouts[:groups] {
		if g > 0 && l == (Layout{}) {
			return &ConfigError{r.ID, ErrLayout,
				fmt.Sprintf("group %d has no layout", g)}
		}
		for _, f := range l.fields() {
			name := fmt.Sprint("group ", g, " ", f.name)
			if err := claim(name, f.offset); err != nil {
				return err
			}
		}
	}
	return nil
}
