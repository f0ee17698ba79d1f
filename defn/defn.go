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

// Package defn implements the serialized form
// of an automaton definition.
//
// A definition is a JSON (or YAML) document:
//
//	{
//	  "variant": "dfa",
//	  "alphabet": ["a", "b"],
//	  "stateNames": ["q0", "q1"],
//	  "initialStates": [0],
//	  "finalStates": [1],
//	  "transitions": [{"character": "a", "from": 0, "to": 1}, ...]
//	}
//
// The character of an ε-transition is EpsilonToken;
// every other character is a single character.
package defn

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/KoKoKotlin/AutomataPlayground/automaton"

	"golang.org/x/exp/slices"
)

// EpsilonToken is the character of an ε-transition.
// In an alphabet it denotes nothing and is dropped.
const EpsilonToken = "EPSILON"

// ErrSchema is returned (wrapped) when a
// document is not a well-formed definition.
var ErrSchema = errors.New("malformed automaton definition")

// Transition is one transition of a Definition.
type Transition struct {
	// Character is the symbol read by the
	// transition: exactly one character,
	// or EpsilonToken.
	Character string `json:"character"`
	From      int    `json:"from"`
	To        int    `json:"to"`
}

// Definition is the serialized form of an automaton.
type Definition struct {
	// Variant is the kind of automaton
	// ("dfa", "nfa" or "enfa"). If it is empty,
	// the definition describes an ε-NFA.
	Variant string `json:"variant,omitempty"`
	// Alphabet lists the input symbols,
	// one character each.
	Alphabet []string `json:"alphabet"`
	// StateCount is the number of states.
	// If it is zero, it is len(StateNames).
	StateCount int `json:"stateCount,omitempty"`
	// StateNames are the display names of the states.
	StateNames    []string     `json:"stateNames,omitempty"`
	InitialStates []int        `json:"initialStates"`
	FinalStates   []int        `json:"finalStates"`
	Transitions   []Transition `json:"transitions"`
}

func schemaErr(f string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSchema, fmt.Sprintf(f, args...))
}

func symbol(s string) (automaton.Symbol, error) {
	if s == EpsilonToken {
		return automaton.Epsilon, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || (r == utf8.RuneError && size == 1) {
		return 0, schemaErr("character %q is not a single character", s)
	}
	return automaton.Symbol(r), nil
}

func symbolString(s automaton.Symbol) string {
	if s == automaton.Epsilon {
		return EpsilonToken
	}
	return string(rune(s))
}

func states(src []int) []automaton.State {
	out := make([]automaton.State, len(src))
	for i := range src {
		out[i] = automaton.State(src[i])
	}
	return out
}

func ints(src []automaton.State) []int {
	out := make([]int, len(src))
	for i := range src {
		out[i] = int(src[i])
	}
	return out
}

// Options converts d into automaton options.
// It only checks the encoding of the symbols;
// everything else is left to the validation
// performed by automaton.New.
func (d *Definition) Options() (automaton.Options, error) {
	o := automaton.Options{
		StateCount:    d.StateCount,
		StateNames:    slices.Clone(d.StateNames),
		InitialStates: states(d.InitialStates),
		FinalStates:   states(d.FinalStates),
	}
	if o.StateCount == 0 {
		o.StateCount = len(d.StateNames)
	}
	for i := range d.Alphabet {
		sym, err := symbol(d.Alphabet[i])
		if err != nil {
			return automaton.Options{}, fmt.Errorf("alphabet: %w", err)
		}
		o.Alphabet = append(o.Alphabet, sym)
	}
	o.Transitions = make([]automaton.Transition, len(d.Transitions))
	for i := range d.Transitions {
		t := &d.Transitions[i]
		sym, err := symbol(t.Character)
		if err != nil {
			return automaton.Options{}, fmt.Errorf("transition %d: %w", i, err)
		}
		o.Transitions[i] = automaton.Transition{
			Symbol: sym,
			From:   automaton.State(t.From),
			To:     automaton.State(t.To),
		}
	}
	return o, nil
}

// Kind returns the variant named by d.Variant.
func (d *Definition) Kind() (automaton.Variant, error) {
	if d.Variant == "" {
		return automaton.VariantENFA, nil
	}
	v, err := automaton.ParseVariant(d.Variant)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return v, nil
}

// Build constructs an automaton of variant v from d.
func (d *Definition) Build(v automaton.Variant) (automaton.Automaton, error) {
	o, err := d.Options()
	if err != nil {
		return nil, err
	}
	return automaton.New(v, o)
}

// Automaton constructs the automaton described by d,
// of the variant named by d.Variant.
func (d *Definition) Automaton() (automaton.Automaton, error) {
	v, err := d.Kind()
	if err != nil {
		return nil, err
	}
	return d.Build(v)
}

// FromAutomaton returns the definition of a.
func FromAutomaton(a automaton.Automaton) *Definition {
	alphabet := a.Alphabet()
	d := &Definition{
		Variant:       strings.ToLower(a.Variant().String()),
		Alphabet:      make([]string, len(alphabet)),
		StateCount:    a.StateCount(),
		StateNames:    a.StateNames(),
		InitialStates: ints(a.InitialStates()),
		FinalStates:   ints(a.FinalStates()),
	}
	for i := range alphabet {
		d.Alphabet[i] = symbolString(alphabet[i])
	}
	trans := a.Transitions()
	d.Transitions = make([]Transition, len(trans))
	for i := range trans {
		d.Transitions[i] = Transition{
			Character: symbolString(trans[i].Symbol),
			From:      int(trans[i].From),
			To:        int(trans[i].To),
		}
	}
	return d
}

// Equal returns whether d and other are
// equivalent.
func (d *Definition) Equal(other *Definition) bool {
	if d == nil || other == nil {
		return d == nil && other == nil
	}
	return d.Variant == other.Variant &&
		slices.Equal(d.Alphabet, other.Alphabet) &&
		d.StateCount == other.StateCount &&
		slices.Equal(d.StateNames, other.StateNames) &&
		slices.Equal(d.InitialStates, other.InitialStates) &&
		slices.Equal(d.FinalStates, other.FinalStates) &&
		slices.Equal(d.Transitions, other.Transitions)
}
