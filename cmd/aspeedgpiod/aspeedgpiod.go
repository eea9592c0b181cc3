// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package aspeedgpiod publishes the pins of a modelled ASPEED GPIO
// controller to redis and drives them from redis hset.
package aspeedgpiod

import (
	"fmt"
	"net/rpc"
	"sync"
	"time"

	"github.com/amboar/qemu/cmd"
	"github.com/amboar/qemu/internal/aspeed/gpio"
	"github.com/amboar/qemu/internal/board"
	"github.com/amboar/qemu/internal/devlog"
	"github.com/amboar/qemu/lang"
	"github.com/platinasystems/atsock"
	"github.com/platinasystems/flags"
	sysgpio "github.com/platinasystems/gpio"
	"github.com/platinasystems/parms"
	"github.com/platinasystems/redis"
	"github.com/platinasystems/redis/publisher"
	uuid "github.com/satori/go.uuid"
)

const Name = "aspeedgpiod"

const DefaultRevision = "ast2500-a1"

var pollInterval = time.Second

type Command struct {
	Info
	init  sync.Once
	close sync.Once
	stop  chan struct{}
}

func (c *Command) stopch() chan struct{} {
	c.init.Do(func() { c.stop = make(chan struct{}) })
	return c.stop
}

func (*Command) String() string { return Name }

func (*Command) Usage() string {
	return "aspeedgpiod [-rev REVISION] [-dtb FILE] [-log CLASSES] [-redis ADDR]"
}

func (*Command) Apropos() lang.Alt {
	return lang.Alt{
		lang.EnUS: "ASPEED GPIO controller model daemon",
	}
}

func (*Command) Man() lang.Alt {
	return lang.Alt{
		lang.EnUS: `
DESCRIPTION
	Publish the level of each modelled pin as aspeed.gpio.PIN, the
	interrupt line as aspeed.gpio.irq and the instance as
	aspeed.gpio.uuid. PIN is a data sheet name, e.g. A3.

	An hset of aspeed.gpio.PIN with 0 or 1 drives an input pin;
	aspeed.gpio.reg.OFFSET writes a controller register.

OPTIONS
	-rev REVISION
		silicon revision name or identifier (default ast2500-a1)
	-dtb FILE
		name pins from the device tree and apply their modes
	-log CLASSES
		comma separated guest_errors, unimp, trace, all or none
	-redis ADDR
		hset fields of a remote redis server instead of the
		local publisher; disables hset`,
	}
}

func (*Command) Kind() cmd.Kind { return cmd.Daemon }

func (c *Command) Main(args ...string) error {
	parm, args := parms.New(args, "-rev", "-dtb", "-log", "-redis")
	flag, args := flags.New(args, "-no-uuid")
	if len(args) > 0 {
		return fmt.Errorf("%v: unexpected", args)
	}
	if len(parm.ByName["-rev"]) == 0 {
		parm.ByName["-rev"] = DefaultRevision
	}
	rev, err := gpio.ParseRevision(parm.ByName["-rev"])
	if err != nil {
		return err
	}
	l := devlog.New("aspeed.gpio")
	if s := parm.ByName["-log"]; len(s) > 0 {
		if l.Mask, err = devlog.ParseMask(s); err != nil {
			return err
		}
	}
	var pub Publisher
	if addr := parm.ByName["-redis"]; len(addr) > 0 {
		conn, err := dial(addr, c.stopch())
		if err != nil {
			return err
		}
		hp := &hsetPublisher{conn, redis.DefaultHash}
		defer hp.Close()
		pub = hp
	} else {
		if err = redis.IsReady(); err != nil {
			return err
		}
		lp, err := publisher.New()
		if err != nil {
			return err
		}
		defer lp.Close()
		pub = lp
	}

	pinmap, err := readPins(parm.ByName["-dtb"])
	if err != nil {
		return err
	}
	line := c.Info.attach(pub, pinmap)
	c.Info.c, err = gpio.New(gpio.Config{
		Revision: rev.ID,
		IRQ:      line,
		Log:      l,
	})
	if err != nil {
		return err
	}
	if len(pinmap) > 0 {
		if err = board.Apply(pinmap, c.Info.c); err != nil {
			return err
		}
	}
	if !flag.ByName["-no-uuid"] {
		pub.Print(UuidKey, ": ", uuid.NewV4())
	}
	c.update()

	if len(parm.ByName["-redis"]) == 0 {
		srvr, err := atsock.NewRpcServer(Name)
		if err != nil {
			return err
		}
		defer srvr.Close()
		rpc.Register(&c.Info)
		err = redis.Assign(redis.DefaultHash+":"+Prefix, Name, "Info")
		if err != nil {
			return err
		}
	}

	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		select {
		case <-c.stopch():
			return nil
		case <-t.C:
			c.update()
		}
	}
}

func (c *Command) Close() error {
	c.close.Do(func() { close(c.stopch()) })
	return nil
}

func readPins(dtb string) (sysgpio.PinMap, error) {
	if len(dtb) == 0 {
		return make(sysgpio.PinMap), nil
	}
	return board.ReadFile(dtb)
}
