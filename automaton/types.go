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
	"strings"

	"golang.org/x/exp/slices"
)

// Symbol is a single character of an input alphabet.
type Symbol rune

// Epsilon labels transitions that are taken
// without consuming input. It is never a
// member of an alphabet.
const Epsilon = Symbol(-1)

func (s Symbol) String() string {
	if s == Epsilon {
		return "ε"
	}
	return string(rune(s))
}

// State is the dense index of a state in [0, StateCount).
type State int

// Transition is a labelled edge From --Symbol--> To.
// The position of a transition in Automaton.Transitions
// is its id.
type Transition struct {
	Symbol Symbol
	From   State
	To     State
}

func (t *Transition) epsilon() bool {
	return t.Symbol == Epsilon
}

func (t Transition) String() string {
	return fmt.Sprintf("%d -%v-> %d", t.From, t.Symbol, t.To)
}

// Variant selects the well-formedness rules of an automaton.
type Variant int

const (
	VariantDFA Variant = iota
	VariantNFA
	VariantENFA
)

func (v Variant) String() string {
	switch v {
	case VariantDFA:
		return "DFA"
	case VariantNFA:
		return "NFA"
	case VariantENFA:
		return "ENFA"
	}
	return fmt.Sprintf("Variant(%d)", int(v))
}

// ParseVariant parses the name of a variant
// ("dfa", "nfa", "enfa", "e-nfa" or "epsilon-nfa"),
// ignoring case.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "dfa":
		return VariantDFA, nil
	case "nfa":
		return VariantNFA, nil
	case "enfa", "e-nfa", "epsilon-nfa", "ε-nfa":
		return VariantENFA, nil
	}
	return 0, fmt.Errorf("unknown automaton variant %q", s)
}

// Options is the definition of an automaton
// handed to New.
type Options struct {
	Alphabet      []Symbol
	StateCount    int
	StateNames    []string
	Transitions   []Transition
	InitialStates []State
	FinalStates   []State
}

// clone returns a deep copy of o
func (o *Options) clone() Options {
	return Options{
		Alphabet:      slices.Clone(o.Alphabet),
		StateCount:    o.StateCount,
		StateNames:    slices.Clone(o.StateNames),
		Transitions:   slices.Clone(o.Transitions),
		InitialStates: slices.Clone(o.InitialStates),
		FinalStates:   slices.Clone(o.FinalStates),
	}
}

// stateSet sorts and deduplicates states in place
func stateSet(states []State) []State {
	slices.Sort(states)
	return slices.Compact(states)
}

// symbolSet sorts and deduplicates symbols in place
// and drops Epsilon
func symbolSet(symbols []Symbol) []Symbol {
	slices.Sort(symbols)
	symbols = slices.Compact(symbols)
	if len(symbols) > 0 && symbols[0] == Epsilon {
		symbols = symbols[1:]
	}
	return symbols
}

// SubsetKey returns the canonical name of a set
// of states, e.g. "{0,2,5}". The states must be sorted.
func SubsetKey(states []State) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, s := range states {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", s)
	}
	sb.WriteByte('}')
	return sb.String()
}
