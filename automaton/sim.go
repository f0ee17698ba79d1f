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
	"golang.org/x/exp/slices"
)

// closure computes the ε-closure of states. The ids of
// the ε-transitions followed are appended to edges.
// States outside [0, StateCount) are ignored.
func (m *machine) closure(states []State, edges []int) ([]State, []int) {
	visited := newBitSet(m.count)
	queue := newQueue[State]()
	for _, s := range states {
		if s >= 0 && int(s) < m.count && visited.insert(int(s)) {
			queue.push(s)
		}
	}
	for !queue.empty() {
		top := queue.front()
		queue.pop()
		for _, id := range m.out[top] {
			t := &m.trans[id]
			if !t.epsilon() {
				continue
			}
			edges = append(edges, id)
			if visited.insert(int(t.To)) {
				queue.push(t.To)
			}
		}
	}
	return visited.states(), edges
}

func (m *machine) EpsilonClosure(states []State) []State {
	closed, _ := m.closure(states, nil)
	return closed
}

func (m *machine) Step(active []State, sym Symbol) ([]State, []int) {
	current, used := m.closure(active, nil)
	if sym == Epsilon {
		return current, sortedIDs(used)
	}
	used = used[:0]
	var dest []State
	for _, s := range current {
		for _, id := range m.out[s] {
			if m.trans[id].Symbol == sym {
				used = append(used, id)
				dest = append(dest, m.trans[id].To)
			}
		}
	}
	next, used := m.closure(dest, used)
	return next, sortedIDs(used)
}

func sortedIDs(ids []int) []int {
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Reset sets the active configuration to the
// ε-closure of the initial states.
func (m *machine) Reset() {
	m.active, _ = m.closure(m.initial, nil)
	m.traversed = nil
}

// ReadChar advances the active configuration by one symbol.
func (m *machine) ReadChar(sym Symbol) {
	m.active, m.traversed = m.Step(m.active, sym)
}

// IsAccepted returns whether the active
// configuration contains a final state.
func (m *machine) IsAccepted() bool {
	return m.anyFinal(m.active)
}

// AcceptsWord resets the automaton and reads word.
// The active configuration is left at the state
// reached after the last symbol read.
func (m *machine) AcceptsWord(word string) bool {
	m.Reset()
	for _, r := range word {
		if len(m.active) == 0 {
			return false
		}
		m.ReadChar(Symbol(r))
	}
	return m.IsAccepted()
}

// ActiveStates returns the active configuration.
func (m *machine) ActiveStates() []State {
	return slices.Clone(m.active)
}

// Traversed returns the ids of the transitions
// taken by the last ReadChar.
func (m *machine) Traversed() []int {
	return slices.Clone(m.traversed)
}
