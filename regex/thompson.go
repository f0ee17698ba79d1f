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

package regex

import (
	"fmt"

	"github.com/KoKoKotlin/AutomataPlayground/automaton"
)

// Thompson constructions. Every construction builds
// a fresh ENFA; the states of the second operand of
// a binary construction are shifted by the number of
// states of the first, and new states are appended.

func epsilon(from, to automaton.State) automaton.Transition {
	return automaton.Transition{Symbol: automaton.Epsilon, From: from, To: to}
}

func shift(states []automaton.State, off int) []automaton.State {
	out := make([]automaton.State, len(states))
	for i, s := range states {
		out[i] = s + automaton.State(off)
	}
	return out
}

func build(o automaton.Options) (*automaton.ENFA, error) {
	e, err := automaton.NewENFA(o)
	if err != nil {
		return nil, fmt.Errorf("%w: thompson construction: %w", automaton.ErrInternal, err)
	}
	return e, nil
}

// union returns the disjoint union of a and b
func union(a, b *automaton.ENFA) (o automaton.Options, bInitial, bFinal []automaton.State) {
	x, y := a.Options(), b.Options()
	off := x.StateCount
	o = automaton.Options{
		Alphabet:    append(x.Alphabet, y.Alphabet...),
		StateCount:  x.StateCount + y.StateCount,
		StateNames:  append(x.StateNames, y.StateNames...),
		Transitions: x.Transitions,
	}
	for _, t := range y.Transitions {
		t.From += automaton.State(off)
		t.To += automaton.State(off)
		o.Transitions = append(o.Transitions, t)
	}
	o.InitialStates = x.InitialStates
	o.FinalStates = x.FinalStates
	return o, shift(y.InitialStates, off), shift(y.FinalStates, off)
}

// primitive accepts exactly sym
func primitive(sym automaton.Symbol, label string) (*automaton.ENFA, error) {
	return build(automaton.Options{
		Alphabet:      []automaton.Symbol{sym},
		StateCount:    2,
		StateNames:    []string{"I" + label, "F" + label},
		Transitions:   []automaton.Transition{{Symbol: sym, From: 0, To: 1}},
		InitialStates: []automaton.State{0},
		FinalStates:   []automaton.State{1},
	})
}

// concat accepts the words of a followed by the words of b
func concat(a, b *automaton.ENFA) (*automaton.ENFA, error) {
	o, bInitial, bFinal := union(a, b)
	for _, f := range o.FinalStates {
		for _, i := range bInitial {
			o.Transitions = append(o.Transitions, epsilon(f, i))
		}
	}
	o.FinalStates = bFinal
	return build(o)
}

// wrap appends a new initial and a new final state to
// o, linked by ε-transitions to the old initial and
// final states respectively
func wrap(o *automaton.Options, initial, final []automaton.State, label string) (newI, newF automaton.State) {
	newI = automaton.State(o.StateCount)
	newF = newI + 1
	o.StateCount += 2
	o.StateNames = append(o.StateNames, "I"+label, "F"+label)
	for _, i := range initial {
		o.Transitions = append(o.Transitions, epsilon(newI, i))
	}
	for _, f := range final {
		o.Transitions = append(o.Transitions, epsilon(f, newF))
	}
	o.InitialStates = []automaton.State{newI}
	o.FinalStates = []automaton.State{newF}
	return newI, newF
}

// alternation accepts the words of a or b
func alternation(a, b *automaton.ENFA, label string) (*automaton.ENFA, error) {
	o, bInitial, bFinal := union(a, b)
	initial := append(o.InitialStates, bInitial...)
	final := append(o.FinalStates, bFinal...)
	wrap(&o, initial, final, label)
	return build(o)
}

// repeat builds star, plus and question: loop adds
// the repetition edges from every final state of a to
// every initial state of a, and bypass the edge that
// accepts zero occurrences
func repeat(a *automaton.ENFA, label string, loop, bypass bool) (*automaton.ENFA, error) {
	o := a.Options()
	initial, final := o.InitialStates, o.FinalStates
	newI, newF := wrap(&o, initial, final, label)
	if loop {
		for _, f := range final {
			for _, i := range initial {
				o.Transitions = append(o.Transitions, epsilon(f, i))
			}
		}
	}
	if bypass {
		o.Transitions = append(o.Transitions, epsilon(newI, newF))
	}
	return build(o)
}

// star accepts zero or more words of a
func star(a *automaton.ENFA, label string) (*automaton.ENFA, error) {
	return repeat(a, label, true, true)
}

// plus accepts one or more words of a
func plus(a *automaton.ENFA, label string) (*automaton.ENFA, error) {
	return repeat(a, label, true, false)
}

// question accepts the empty word or a word of a
func question(a *automaton.ENFA, label string) (*automaton.ENFA, error) {
	return repeat(a, label, false, true)
}
