// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package aspeedgpiod

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/amboar/qemu/internal/aspeed/gpio"
	"github.com/amboar/qemu/internal/irq"
	sysgpio "github.com/platinasystems/gpio"
	"github.com/platinasystems/redis/rpc/args"
	"github.com/platinasystems/redis/rpc/reply"
)

const (
	Prefix    = "aspeed.gpio."
	RegPrefix = Prefix + "reg."
	IrqKey    = Prefix + "irq"
	UuidKey   = Prefix + "uuid"
)

type Publisher interface {
	Print(a ...interface{}) (int, error)
}

// Info serves hset and hget of the aspeed.gpio. fields and publishes
// pin and interrupt line changes.
type Info struct {
	mutex sync.Mutex
	pub   Publisher
	c     *gpio.Controller
	line  irq.Level
	pins  sysgpio.PinMap
	last  map[int]bool
	lastq bool
	known bool
}

// attach returns the line that must be given to gpio.New as its IRQ.
func (i *Info) attach(pub Publisher, pins sysgpio.PinMap) irq.Line {
	i.pub = pub
	i.pins = pins
	i.last = make(map[int]bool)
	return &i.line
}

// publish prints the level of every bonded pin that changed since the last
// publish, and the interrupt line.
func (i *Info) publish() {
	for n := 0; n < i.c.NrGpios(); n++ {
		if i.c.Revision().Capability(n) == gpio.None {
			continue
		}
		v := i.c.Level(n)
		if last, found := i.last[n]; found && last == v {
			continue
		}
		i.last[n] = v
		i.pub.Print(Prefix, gpio.PinName(n), ": ", b2i(v))
	}
	if !i.known || i.line.High != i.lastq {
		i.known = true
		i.lastq = i.line.High
		i.pub.Print(IrqKey, ": ", i.line.High)
	}
}

func (i *Info) update() {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	i.publish()
}

func b2i(t bool) int {
	if t {
		return 1
	}
	return 0
}

func (i *Info) pin(s string) (int, error) {
	if p, found := i.pins[s]; found {
		return p.Index(), nil
	}
	n, err := gpio.ParsePin(s)
	if err != nil {
		return 0, err
	}
	if n >= i.c.NrGpios() {
		return 0, fmt.Errorf("%s: no such pin", s)
	}
	return n, nil
}

func (i *Info) Hset(args args.Hset, reply *reply.Hset) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	value := strings.TrimSpace(string(args.Value))
	switch {
	case strings.HasPrefix(args.Field, RegPrefix):
		offset, err := strconv.ParseUint(
			strings.TrimPrefix(args.Field, RegPrefix), 0, 64)
		if err != nil {
			return fmt.Errorf("cannot hset: %s", args.Field)
		}
		v, err := strconv.ParseUint(value, 0, 32)
		if err != nil {
			return fmt.Errorf("%s: %v", args.Field, err)
		}
		i.c.Write(offset, v, 4)
	case strings.HasPrefix(args.Field, Prefix):
		n, err := i.pin(strings.TrimPrefix(args.Field, Prefix))
		if err != nil {
			return fmt.Errorf("cannot hset: %s", args.Field)
		}
		level, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %v", args.Field, err)
		}
		i.c.SetPinLevel(n, level)
	default:
		return fmt.Errorf("cannot hset: %s", args.Field)
	}
	i.publish()
	*reply = 1
	return nil
}

func (i *Info) Hget(args args.Hget, reply *reply.Hget) error {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	switch {
	case args.Field == IrqKey:
		*reply = []byte(fmt.Sprint(i.line.High))
	case strings.HasPrefix(args.Field, RegPrefix):
		offset, err := strconv.ParseUint(
			strings.TrimPrefix(args.Field, RegPrefix), 0, 64)
		if err != nil {
			return fmt.Errorf("cannot hget: %s", args.Field)
		}
		*reply = []byte(fmt.Sprintf("%#08x", i.c.Read(offset, 4)))
	case strings.HasPrefix(args.Field, Prefix):
		n, err := i.pin(strings.TrimPrefix(args.Field, Prefix))
		if err != nil {
			return fmt.Errorf("cannot hget: %s", args.Field)
		}
		*reply = []byte(strconv.Itoa(b2i(i.c.Level(n))))
	default:
		return fmt.Errorf("cannot hget: %s", args.Field)
	}
	return nil
}
