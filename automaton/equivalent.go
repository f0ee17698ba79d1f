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
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Words calls fn for every word over alphabet of
// length at most maxLen, shortest first, until fn
// returns false.
func Words(alphabet []Symbol, maxLen int, fn func(word string) bool) {
	level := []string{""}
	for n := 0; n <= maxLen; n++ {
		for _, w := range level {
			if !fn(w) {
				return
			}
		}
		if n == maxLen || len(alphabet) == 0 {
			return
		}
		next := make([]string, 0, len(level)*len(alphabet))
		for _, w := range level {
			for _, s := range alphabet {
				next = append(next, w+string(rune(s)))
			}
		}
		level = next
	}
}

// Equivalent compares the languages of a and b
// on every word of length at most maxLen over the
// union of their alphabets and transition symbols. It returns a word on
// which they disagree, or ok == true when none exists.
// The active configurations of a and b are reset.
func Equivalent(a, b Automaton, maxLen int) (word string, ok bool) {
	union := make(map[Symbol]struct{})
	for _, x := range []Automaton{a, b} {
		for _, s := range x.Alphabet() {
			union[s] = struct{}{}
		}
		for _, t := range x.Transitions() {
			if t.Symbol != Epsilon {
				union[t.Symbol] = struct{}{}
			}
		}
	}
	alphabet := maps.Keys(union)
	slices.Sort(alphabet)

	ok = true
	Words(alphabet, maxLen, func(w string) bool {
		if a.AcceptsWord(w) != b.AcceptsWord(w) {
			word, ok = w, false
			return false
		}
		return true
	})
	a.Reset()
	b.Reset()
	return word, ok
}
