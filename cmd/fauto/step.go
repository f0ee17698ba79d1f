// Copyright 2023 KoKoKotlin
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/KoKoKotlin/AutomataPlayground/automaton"

	"github.com/google/uuid"
)

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

type stepper struct {
	a      automaton.Automaton
	out    io.Writer
	colour bool
	read   int
}

func (s *stepper) highlight(text string) string {
	if !s.colour {
		return text
	}
	return ansiRed + text + ansiReset
}

func (s *stepper) verdict() string {
	if s.a.IsAccepted() {
		return s.highlight("accepted")
	}
	return "rejected"
}

func (s *stepper) show(prefix string) {
	fmt.Fprintf(s.out, "%s%s %s\n", prefix, stateList(s.a, s.a.ActiveStates()), s.verdict())
}

func (s *stepper) feed(sym automaton.Symbol) {
	s.a.ReadChar(sym)
	s.read++
	trans := s.a.Transitions()
	edges := make([]string, 0, len(s.a.Traversed()))
	for _, id := range s.a.Traversed() {
		edges = append(edges, s.highlight(trans[id].String()))
	}
	s.show(fmt.Sprintf("%v: [%s] ", sym, strings.Join(edges, ", ")))
}

// step runs an interactive session over a: every line
// of in is either a command or a sequence of symbols
// that are read one at a time
func step(a automaton.Automaton, in io.Reader, out io.Writer, colour bool) {
	id := uuid.New()
	logf("session %s: stepping %s", id, a)
	s := &stepper{a: a, out: out, colour: colour}
	a.Reset()
	s.show("start: ")

	scan := bufio.NewScanner(in)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		switch line {
		case "":
		case "reset":
			a.Reset()
			s.show("reset: ")
		case "accepted":
			fmt.Fprintln(out, s.verdict())
		case "dot":
			if err := automaton.Dot(a).DotContent(out, "automaton", id.String()); err != nil {
				exitf("writing graph: %s", err)
			}
		default:
			for _, r := range line {
				sym := automaton.Symbol(r)
				if r == 'ε' {
					sym = automaton.Epsilon
				}
				s.feed(sym)
			}
		}
	}
	if err := scan.Err(); err != nil {
		exitf("reading input: %s", err)
	}
	logf("session %s: %d symbols read", id, s.read)
}
