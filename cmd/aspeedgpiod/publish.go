// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package aspeedgpiod

import (
	"fmt"
	"strings"
	"time"

	redigo "github.com/garyburd/redigo/redis"
	"github.com/jpillora/backoff"
	"github.com/platinasystems/log"
)

// hsetPublisher sets "KEY: VALUE" prints as fields of a remote redis hash.
type hsetPublisher struct {
	conn redigo.Conn
	hash string
}

func (p *hsetPublisher) Print(a ...interface{}) (int, error) {
	s := fmt.Sprint(a...)
	kv := strings.SplitN(s, ": ", 2)
	if len(kv) != 2 {
		return 0, fmt.Errorf("%q: expected KEY: VALUE", s)
	}
	if _, err := p.conn.Do("HSET", p.hash, kv[0], kv[1]); err != nil {
		return 0, err
	}
	return len(s), nil
}

func (p *hsetPublisher) Close() error { return p.conn.Close() }

// dial retries a redis server until it answers or stop is closed.
func dial(addr string, stop <-chan struct{}) (redigo.Conn, error) {
	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    10 * time.Second,
		Factor: 2,
		Jitter: false,
	}
	for {
		conn, err := redigo.Dial("tcp", addr)
		if err == nil {
			if _, err = conn.Do("PING"); err == nil {
				return conn, nil
			}
			conn.Close()
		}
		d := b.Duration()
		log.Print("daemon", "warn", addr, ": ", err, ", retry in ", d)
		select {
		case <-stop:
			return nil, err
		case <-time.After(d):
		}
	}
}
