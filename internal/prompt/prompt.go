// Copyright © 2015-2020 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package prompt reads monitor command lines with the liner line editor
// on a terminal and with a plain scanner otherwise.
package prompt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/platinasystems/liner"
)

type Prompter interface {
	Prompt(prompt string) (string, error)
	Close()
}

// Scanner prompts for lines of a reader; the prompt is only printed with
// a non-nil writer.
type Scanner struct {
	scanner *bufio.Scanner
	w       io.Writer
}

func NewScanner(r io.Reader, w io.Writer) *Scanner {
	return &Scanner{bufio.NewScanner(r), w}
}

func (*Scanner) Close() {}

func (p *Scanner) Prompt(prompt string) (string, error) {
	if p.w != nil {
		fmt.Fprint(p.w, prompt)
	}
	if p.scanner.Scan() {
		return p.scanner.Text(), nil
	}
	err := p.scanner.Err()
	if err == nil {
		err = io.EOF
	}
	return "", err
}

const historyLen = 1 << 6

type Liner struct {
	history struct {
		buf   *bytes.Buffer
		lines []string
		i     int
	}
	fallback *Scanner
	s        *liner.State
}

// New returns a Liner when both stdin and stdout are terminals, or a
// Scanner of stdin.
func New(complete func(line string) []string) Prompter {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return NewScanner(os.Stdin, nil)
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return NewScanner(os.Stdin, os.Stdout)
	}
	l := new(Liner)
	l.history.buf = new(bytes.Buffer)
	l.history.lines = make([]string, 0, historyLen)
	l.s = liner.NewLiner()
	if complete != nil {
		l.s.SetCompleter(complete)
	}
	return l
}

func (l *Liner) Close() {
	l.s.Close()
}

func (l *Liner) Prompt(prompt string) (string, error) {
	if l.fallback != nil {
		return l.fallback.Prompt(prompt)
	}
	if len(l.history.lines) > 0 {
		l.history.buf.Reset()
		if len(l.history.lines) < cap(l.history.lines) {
			for i := 0; i < l.history.i; i++ {
				fmt.Fprintln(l.history.buf, l.history.lines[i])
			}
		} else {
			for i := l.history.i + 1; ; i++ {
				i &= cap(l.history.lines) - 1
				if i == l.history.i {
					break
				}
				fmt.Fprintln(l.history.buf, l.history.lines[i])
			}
		}
		l.s.ReadHistory(l.history.buf)
	}
	line, err := l.s.Prompt(prompt)
	switch {
	case err == nil:
		if len(line) == 0 {
			break
		}
		if len(l.history.lines) < cap(l.history.lines) {
			l.history.lines = append(l.history.lines, line)
		} else {
			l.history.lines[l.history.i] = line
		}
		l.history.i++
		l.history.i &= cap(l.history.lines) - 1
	case err == liner.ErrNotTerminalOutput:
		l.fallback = NewScanner(os.Stdin, os.Stdout)
		line, err = l.fallback.Prompt(prompt)
	}
	return line, err
}
