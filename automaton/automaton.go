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

// Package automaton implements deterministic,
// nondeterministic and ε-nondeterministic finite
// automata, their simulation, and conversions
// between the variants.
//
// The structure of an Automaton never changes
// after construction; conversions always build
// a new Automaton. The only mutable part is the
// active configuration used for interactive
// stepping (see Reset and ReadChar), so an
// Automaton must not be stepped from more than
// one goroutine at a time.
package automaton

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Automaton is the capability set shared by DFA, NFA and ENFA.
type Automaton interface {
	Variant() Variant
	Alphabet() []Symbol
	StateCount() int
	StateNames() []string
	Transitions() []Transition
	InitialStates() []State
	FinalStates() []State
	// Options returns a copy of the definition
	// of the automaton.
	Options() Options

	// EpsilonClosure returns the sorted set of states
	// reachable from states using only ε-transitions.
	EpsilonClosure(states []State) []State
	// Step returns the states reached from active by
	// reading sym, and the ids of the transitions taken.
	// It does not touch the active configuration.
	Step(active []State, sym Symbol) (next []State, traversed []int)

	Reset()
	ReadChar(sym Symbol)
	IsAccepted() bool
	AcceptsWord(word string) bool
	ActiveStates() []State
	Traversed() []int

	ToDFA() (Automaton, error)
	ToNFA() (Automaton, error)
}

type machine struct {
	variant  Variant
	alphabet []Symbol
	count    int
	names    []string
	trans    []Transition
	initial  []State
	final    []State

	// derived at construction
	out      [][]int // outgoing transition ids per state
	finalSet bitSetT

	// active configuration
	active    []State
	traversed []int
}

// DFA is a deterministic finite automaton.
type DFA struct{ machine }

// NFA is a nondeterministic finite automaton
// without ε-transitions.
type NFA struct{ machine }

// ENFA is a nondeterministic finite automaton
// that may have ε-transitions.
type ENFA struct{ machine }

// New constructs an automaton of variant v from opts.
// If opts violates any rule of the variant, New
// returns an *InvalidDefinition and no automaton.
func New(v Variant, opts Options) (Automaton, error) {
	switch v {
	case VariantDFA:
		d, err := NewDFA(opts)
		if err != nil {
			return nil, err
		}
		return d, nil
	case VariantNFA:
		n, err := NewNFA(opts)
		if err != nil {
			return nil, err
		}
		return n, nil
	case VariantENFA:
		e, err := NewENFA(opts)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, &InvalidDefinition{Variant: v, Rule: RuleVariant, Msg: "unknown variant"}
}

// NewDFA constructs a DFA from opts.
func NewDFA(opts Options) (*DFA, error) {
	d := &DFA{}
	if err := d.init(VariantDFA, opts, validateDFA); err != nil {
		return nil, err
	}
	return d, nil
}

// NewNFA constructs an NFA from opts.
func NewNFA(opts Options) (*NFA, error) {
	n := &NFA{}
	if err := n.init(VariantNFA, opts, validateNFA); err != nil {
		return nil, err
	}
	return n, nil
}

// NewENFA constructs an ENFA from opts.
func NewENFA(opts Options) (*ENFA, error) {
	e := &ENFA{}
	if err := e.init(VariantENFA, opts, validateENFA); err != nil {
		return nil, err
	}
	return e, nil
}

func (m *machine) init(v Variant, opts Options, checks []check) error {
	o := opts.clone()
	m.variant = v
	m.alphabet = symbolSet(o.Alphabet)
	m.count = o.StateCount
	m.names = o.StateNames
	if len(m.names) == 0 && m.count > 0 {
		m.names = make([]string, m.count)
		for i := range m.names {
			m.names[i] = fmt.Sprintf("q%d", i)
		}
	}
	m.trans = o.Transitions
	m.initial = stateSet(o.InitialStates)
	m.final = stateSet(o.FinalStates)
	if err := m.validate(checks); err != nil {
		return err
	}

	m.out = make([][]int, m.count)
	for i := range m.trans {
		from := m.trans[i].From
		m.out[from] = append(m.out[from], i)
	}
	m.finalSet = newBitSet(m.count)
	for _, s := range m.final {
		m.finalSet.insert(int(s))
	}
	m.active = slices.Clone(m.initial)
	return nil
}

func (m *machine) Variant() Variant          { return m.variant }
func (m *machine) Alphabet() []Symbol        { return slices.Clone(m.alphabet) }
func (m *machine) StateCount() int           { return m.count }
func (m *machine) StateNames() []string      { return slices.Clone(m.names) }
func (m *machine) Transitions() []Transition { return slices.Clone(m.trans) }
func (m *machine) InitialStates() []State    { return slices.Clone(m.initial) }
func (m *machine) FinalStates() []State      { return slices.Clone(m.final) }

func (m *machine) Options() Options {
	o := Options{
		Alphabet:      m.alphabet,
		StateCount:    m.count,
		StateNames:    m.names,
		Transitions:   m.trans,
		InitialStates: m.initial,
		FinalStates:   m.final,
	}
	return o.clone()
}

// isFinal returns whether s is a final state
func (m *machine) isFinal(s State) bool {
	return m.finalSet.contains(int(s))
}

// anyFinal returns whether states contains a final state
func (m *machine) anyFinal(states []State) bool {
	for _, s := range states {
		if m.isFinal(s) {
			return true
		}
	}
	return false
}

// String returns a short description of the automaton
func (m *machine) String() string {
	return fmt.Sprintf("%s(states=%d, alphabet=%q, transitions=%d, initial=%v, final=%v)",
		m.variant, m.count, string(symbolRunes(m.alphabet)), len(m.trans), m.initial, m.final)
}

// symbols returns the alphabet together with every
// other symbol that labels a transition, sorted
func (m *machine) symbols() []Symbol {
	out := slices.Clone(m.alphabet)
	for i := range m.trans {
		if !m.trans[i].epsilon() && m.symbolIndex(m.trans[i].Symbol) < 0 {
			out = append(out, m.trans[i].Symbol)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func symbolRunes(symbols []Symbol) []rune {
	out := make([]rune, len(symbols))
	for i, s := range symbols {
		out[i] = rune(s)
	}
	return out
}
