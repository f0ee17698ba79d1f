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

package automaton

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// ConvertOption is an optional argument to
// the conversion functions.
type ConvertOption func(c *convertConfig)

type convertConfig struct {
	maxStates int
}

// WithMaxStates limits the number of states a
// subset construction may produce. If n is zero,
// the number of states is unbounded (the
// construction may produce up to 2^StateCount states).
func WithMaxStates(n int) ConvertOption {
	return func(c *convertConfig) {
		c.maxStates = n
	}
}

func config(opts []ConvertOption) convertConfig {
	var c convertConfig
	for i := range opts {
		opts[i](&c)
	}
	return c
}

// ToDFA returns d itself.
func (d *DFA) ToDFA() (Automaton, error) { return d, nil }

// ToNFA returns d itself; a DFA is a valid NFA.
func (d *DFA) ToNFA() (Automaton, error) { return d, nil }

// ToDFA returns the subset construction of n.
func (n *NFA) ToDFA() (Automaton, error) {
	d, err := SubsetConstruction(n)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ToNFA returns n itself.
func (n *NFA) ToNFA() (Automaton, error) { return n, nil }

// ToDFA eliminates the ε-transitions of e and
// performs the subset construction on the result.
func (e *ENFA) ToDFA() (Automaton, error) {
	n, err := EliminateEpsilon(e)
	if err != nil {
		return nil, err
	}
	d, err := SubsetConstruction(n)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ToNFA returns the ε-free equivalent of e.
func (e *ENFA) ToNFA() (Automaton, error) {
	n, err := EliminateEpsilon(e)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// EliminateEpsilon builds an NFA that accepts the
// same language as e and has the same states.
//
// The initial states of the result are the ε-closure
// of the initial states of e. A state i gets a
// transition i --c--> j for every j reached by
// stepping {i} on c, for every symbol of the alphabet
// and every other symbol labelling a transition of e.
// Initial states that reach a
// final state through ε-transitions alone are final.
func EliminateEpsilon(e *ENFA) (*NFA, error) {
	m := &e.machine
	initial, _ := m.closure(m.initial, nil)
	final := slices.Clone(m.final)
	for _, i := range m.initial {
		if m.anyFinal(m.EpsilonClosure([]State{i})) {
			final = append(final, i)
		}
	}
	var trans []Transition
	symbols := m.symbols()
	for i := 0; i < m.count; i++ {
		for _, c := range symbols {
			next, _ := m.Step([]State{State(i)}, c)
			for _, j := range next {
				trans = append(trans, Transition{Symbol: c, From: State(i), To: j})
			}
		}
	}
	n, err := NewNFA(Options{
		Alphabet:      m.alphabet,
		StateCount:    m.count,
		StateNames:    m.names,
		Transitions:   trans,
		InitialStates: initial,
		FinalStates:   final,
	})
	if err != nil {
		return nil, internal(err)
	}
	return n, nil
}

// SubsetConstruction builds a DFA that accepts the
// same language as a. Each DFA state is a set of
// states of a named by SubsetKey; states are numbered
// in discovery order, starting with the set of initial
// states. An empty set of destinations becomes the
// dead state "{}", which loops to itself on every
// symbol, so the result is total. Symbols outside the
// alphabet of a that label transitions of a get one
// transition per DFA state as well, so no word is
// accepted differently.
func SubsetConstruction(a *NFA, opts ...ConvertOption) (*DFA, error) {
	cfg := config(opts)
	m := &a.machine

	table := newSubsetTable()
	start := newBitSet(m.count)
	for _, s := range m.initial {
		start.insert(int(s))
	}
	table.intern(start)

	var trans []Transition
	symbols := m.symbols()
	queue := newQueue[int]()
	queue.push(0)
	for !queue.empty() {
		cur := queue.front()
		queue.pop()
		members := table.at(cur).states()
		for _, c := range symbols {
			dest := newBitSet(m.count)
			for _, s := range members {
				for _, id := range m.out[s] {
					if m.trans[id].Symbol == c {
						dest.insert(int(m.trans[id].To))
					}
				}
			}
			idx, added := table.intern(dest)
			if added {
				if cfg.maxStates > 0 && table.len() > cfg.maxStates {
					return nil, fmt.Errorf("%w: subset construction exceeds %d states", ErrTooManyStates, cfg.maxStates)
				}
				queue.push(idx)
			}
			trans = append(trans, Transition{Symbol: c, From: State(cur), To: State(idx)})
		}
	}

	names := make([]string, table.len())
	var final []State
	for i := range names {
		set := table.at(i).states()
		names[i] = SubsetKey(set)
		if m.anyFinal(set) {
			final = append(final, State(i))
		}
	}
	d, err := NewDFA(Options{
		Alphabet:      m.alphabet,
		StateCount:    table.len(),
		StateNames:    names,
		Transitions:   trans,
		InitialStates: []State{0},
		FinalStates:   final,
	})
	if err != nil {
		return nil, internal(err)
	}
	return d, nil
}

// Convert converts a to the requested variant.
// Converting to ENFA returns a itself, since
// every automaton is a valid ε-NFA.
func Convert(a Automaton, to Variant, opts ...ConvertOption) (Automaton, error) {
	switch to {
	case VariantENFA:
		return a, nil
	case VariantNFA:
		return a.ToNFA()
	case VariantDFA:
		var n *NFA
		switch a := a.(type) {
		case *DFA:
			return a, nil
		case *NFA:
			n = a
		case *ENFA:
			var err error
			n, err = EliminateEpsilon(a)
			if err != nil {
				return nil, err
			}
		default:
			return a.ToDFA()
		}
		d, err := SubsetConstruction(n, opts...)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, fmt.Errorf("cannot convert to %s", to)
}
