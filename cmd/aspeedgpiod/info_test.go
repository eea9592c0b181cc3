// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package aspeedgpiod

import (
	"fmt"
	"strings"
	"testing"

	"github.com/amboar/qemu/internal/aspeed/gpio"
	"github.com/amboar/qemu/internal/test"
	sysgpio "github.com/platinasystems/gpio"
	"github.com/platinasystems/redis/rpc/args"
	"github.com/platinasystems/redis/rpc/reply"
)

type fakePublisher []string

func (p *fakePublisher) Print(a ...interface{}) (int, error) {
	s := fmt.Sprint(a...)
	*p = append(*p, s)
	return len(s), nil
}

func (p *fakePublisher) reset() { *p = (*p)[:0] }

func newInfo(t *testing.T) (*Info, *fakePublisher) {
	t.Helper()
	pub := new(fakePublisher)
	i := new(Info)
	line := i.attach(pub, sysgpio.PinMap{
		"power-button": sysgpio.IsInput | 3,
	})
	c, err := gpio.New(gpio.Config{Revision: gpio.AST2500A1, IRQ: line})
	test.Assert{TB: t}.Nil(err)
	i.c = c
	return i, pub
}

func TestPublish(t *testing.T) {
	assert := test.Assert{TB: t}
	i, pub := newInfo(t)
	i.update()
	assert.True(len(*pub) > 1)
	assert.Equal((*pub)[0], "aspeed.gpio.A0: 0")
	assert.Equal((*pub)[len(*pub)-1], "aspeed.gpio.irq: false")
	pub.reset()
	i.update()
	assert.True(len(*pub) == 0)
}

func TestHset(t *testing.T) {
	assert := test.Assert{TB: t}
	i, pub := newInfo(t)
	i.update()
	pub.reset()

	var r reply.Hset
	// rising edge on A3 with its interrupt enabled
	assert.Nil(i.Hset(args.Hset{Field: RegPrefix + "0x008",
		Value: []byte("8")}, &r))
	assert.Nil(i.Hset(args.Hset{Field: RegPrefix + "0x00c",
		Value: []byte("8")}, &r))
	assert.True(r == 1)
	assert.True(len(*pub) == 0)

	assert.Nil(i.Hset(args.Hset{Field: Prefix + "power-button",
		Value: []byte("1\n")}, &r))
	assert.Equal(strings.Join(*pub, "|"),
		"aspeed.gpio.A3: 1|aspeed.gpio.irq: true")
	pub.reset()

	assert.Nil(i.Hset(args.Hset{Field: RegPrefix + "0x018",
		Value: []byte("0x8")}, &r))
	assert.Equal(strings.Join(*pub, "|"), "aspeed.gpio.irq: false")
	pub.reset()

	assert.Nil(i.Hset(args.Hset{Field: Prefix + "B1",
		Value: []byte("true")}, &r))
	assert.Equal(strings.Join(*pub, "|"), "aspeed.gpio.B1: 1")

	for _, x := range []struct {
		field, value, err string
	}{
		{"fan.speed", "1", "cannot hset: fan.speed"},
		{Prefix + "nonesuch", "1", "cannot hset: aspeed.gpio.nonesuch"},
		{Prefix + "AD0", "1", "cannot hset: aspeed.gpio.AD0"},
		{RegPrefix + "zz", "1", "cannot hset: aspeed.gpio.reg.zz"},
		{Prefix + "A3", "maybe",
			`aspeed.gpio.A3: strconv.ParseBool: parsing "maybe": invalid syntax`},
	} {
		err := i.Hset(args.Hset{Field: x.field, Value: []byte(x.value)},
			&r)
		assert.Error(err, x.err)
	}
}

func TestHget(t *testing.T) {
	assert := test.Assert{TB: t}
	i, _ := newInfo(t)
	i.c.SetPinLevel(3, true)
	for _, x := range []struct {
		field, expect string
	}{
		{Prefix + "power-button", "1"},
		{Prefix + "A4", "0"},
		{RegPrefix + "0", "0x00000008"},
		{IrqKey, "false"},
	} {
		var r reply.Hget
		assert.Nil(i.Hget(args.Hget{Field: x.field}, &r))
		assert.Equal(string(r), x.expect)
	}
	var r reply.Hget
	assert.Error(i.Hget(args.Hget{Field: "x"}, &r), "cannot hget: x")
	assert.Error(i.Hget(args.Hget{Field: Prefix + "Q"}, &r),
		"cannot hget: aspeed.gpio.Q")
}
