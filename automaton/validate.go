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
	"errors"
	"fmt"
	"sort"
)

// ErrInternal is wrapped by errors that indicate
// a defect in this package rather than bad input.
var ErrInternal = errors.New("automaton: internal error")

// ErrTooManyStates is returned when a conversion
// would exceed the configured state limit.
var ErrTooManyStates = errors.New("automaton: too many states")

func internal(err error) error {
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// Rule identifies a well-formedness rule.
type Rule int

const (
	// RuleVariant: the variant tag is known.
	RuleVariant Rule = iota
	// RuleStateNames: one name per state.
	RuleStateNames
	// RuleRange: every referenced state is in [0, StateCount).
	RuleRange
	// RuleEpsilon: no ε-transitions (DFA and NFA).
	RuleEpsilon
	// RuleInitial: exactly one (DFA) or at least one initial state.
	RuleInitial
	// RuleDeterminism: exactly one transition per
	// state and alphabet symbol (DFA).
	RuleDeterminism
)

func (r Rule) String() string {
	switch r {
	case RuleVariant:
		return "variant"
	case RuleStateNames:
		return "state-names"
	case RuleRange:
		return "state-range"
	case RuleEpsilon:
		return "no-epsilon"
	case RuleInitial:
		return "initial-states"
	case RuleDeterminism:
		return "determinism"
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// InvalidDefinition is the error returned by New
// when the definition violates one of the rules
// of the requested variant.
type InvalidDefinition struct {
	Variant Variant
	Rule    Rule
	Msg     string
}

func (e *InvalidDefinition) Error() string {
	return fmt.Sprintf("definition of %s is not correct (%s): %s", e.Variant, e.Rule, e.Msg)
}

type check func(m *machine) *InvalidDefinition

var (
	validateDFA  = []check{checkNames, checkRange, checkNoEpsilon, checkOneInitial, checkDeterministic}
	validateNFA  = []check{checkNames, checkRange, checkNoEpsilon, checkSomeInitial}
	validateENFA = []check{checkNames, checkRange, checkSomeInitial}
)

func (m *machine) invalid(rule Rule, f string, args ...interface{}) *InvalidDefinition {
	return &InvalidDefinition{Variant: m.variant, Rule: rule, Msg: fmt.Sprintf(f, args...)}
}

func (m *machine) validate(checks []check) error {
	for _, c := range checks {
		if err := c(m); err != nil {
			return err
		}
	}
	return nil
}

func checkNames(m *machine) *InvalidDefinition {
	if m.count < 0 {
		return m.invalid(RuleStateNames, "negative state count %d", m.count)
	}
	if len(m.names) != m.count {
		return m.invalid(RuleStateNames, "%d state names for %d states", len(m.names), m.count)
	}
	return nil
}

func checkRange(m *machine) *InvalidDefinition {
	in := func(s State) bool { return s >= 0 && int(s) < m.count }
	for i := range m.trans {
		t := &m.trans[i]
		if !in(t.From) || !in(t.To) {
			return m.invalid(RuleRange, "transition %d (%v) references a state outside [0, %d)", i, t, m.count)
		}
	}
	for _, s := range m.initial {
		if !in(s) {
			return m.invalid(RuleRange, "initial state %d outside [0, %d)", s, m.count)
		}
	}
	for _, s := range m.final {
		if !in(s) {
			return m.invalid(RuleRange, "final state %d outside [0, %d)", s, m.count)
		}
	}
	return nil
}

func checkNoEpsilon(m *machine) *InvalidDefinition {
	for i := range m.trans {
		if m.trans[i].epsilon() {
			return m.invalid(RuleEpsilon, "transition %d (%v) is an epsilon transition", i, &m.trans[i])
		}
	}
	return nil
}

func checkOneInitial(m *machine) *InvalidDefinition {
	if len(m.initial) != 1 {
		return m.invalid(RuleInitial, "need exactly one initial state, have %d", len(m.initial))
	}
	return nil
}

func checkSomeInitial(m *machine) *InvalidDefinition {
	if len(m.initial) == 0 {
		return m.invalid(RuleInitial, "need at least one initial state")
	}
	return nil
}

func checkDeterministic(m *machine) *InvalidDefinition {
	width := len(m.alphabet)
	counts := make([]int, m.count*width)
	for i := range m.trans {
		t := &m.trans[i]
		if c := m.symbolIndex(t.Symbol); c >= 0 {
			counts[int(t.From)*width+c]++
		}
	}
	for i, n := range counts {
		if n != 1 {
			return m.invalid(RuleDeterminism, "state %d has %d transitions on %q", i/width, n, rune(m.alphabet[i%width]))
		}
	}
	return nil
}

// symbolIndex returns the position of sym
// in the (sorted) alphabet, or -1
func (m *machine) symbolIndex(sym Symbol) int {
	i := sort.Search(len(m.alphabet), func(i int) bool {
		return m.alphabet[i] >= sym
	})
	if i == len(m.alphabet) || m.alphabet[i] != sym {
		return -1
	}
	return i
}
