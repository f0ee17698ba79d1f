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

package defn

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KoKoKotlin/AutomataPlayground/automaton"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/exp/slices"
)

const endsInA = `{
  "variant": "dfa",
  "alphabet": ["a", "b"],
  "stateNames": ["q0", "q1"],
  "initialStates": [0],
  "finalStates": [1],
  "transitions": [
    {"character": "a", "from": 0, "to": 1},
    {"character": "b", "from": 0, "to": 0},
    {"character": "a", "from": 1, "to": 1},
    {"character": "b", "from": 1, "to": 0}
  ]
}`

const endsInAYAML = `
variant: dfa
alphabet: [a, b]
stateNames: [q0, q1]
initialStates: [0]
finalStates: [1]
transitions:
- {character: a, from: 0, to: 1}
- {character: b, from: 0, to: 0}
- {character: a, from: 1, to: 1}
- {character: b, from: 1, to: 0}
`

func TestDecode(t *testing.T) {
	for _, src := range []string{endsInA, endsInAYAML} {
		d, err := Decode([]byte(src))
		if err != nil {
			t.Fatal(err)
		}
		a, err := d.Automaton()
		if err != nil {
			t.Fatal(err)
		}
		if a.Variant() != automaton.VariantDFA {
			t.Errorf("variant %s", a.Variant())
		}
		if !a.AcceptsWord("abba") || a.AcceptsWord("ab") {
			t.Error("wrong language")
		}
	}
}

// the import format of the original front end:
// no variant, no state count, "EPSILON" both in
// the alphabet and as a transition character
const importShape = `{
  "stateNames": ["s", "t", "u"],
  "finalStates": [2],
  "initialStates": [0],
  "alphabet": ["a", "EPSILON"],
  "transitions": [
    {"character": "EPSILON", "from": 0, "to": 1},
    {"character": "a", "from": 1, "to": 2}
  ]
}`

func TestImportShape(t *testing.T) {
	d, err := Decode([]byte(importShape))
	if err != nil {
		t.Fatal(err)
	}
	a, err := d.Automaton()
	if err != nil {
		t.Fatal(err)
	}
	if a.Variant() != automaton.VariantENFA || a.StateCount() != 3 {
		t.Errorf("got %s with %d states", a.Variant(), a.StateCount())
	}
	if got := a.Alphabet(); !slices.Equal(got, []automaton.Symbol{'a'}) {
		t.Errorf("alphabet %v", got)
	}
	if tr := a.Transitions()[0]; tr.Symbol != automaton.Epsilon {
		t.Errorf("transition %v is not an ε-transition", tr)
	}
	if !a.AcceptsWord("a") || a.AcceptsWord("") {
		t.Error("wrong language")
	}
	if _, err := d.Build(automaton.VariantNFA); err == nil {
		t.Error("NFA with ε-transition accepted")
	}
	back := FromAutomaton(a)
	if !slices.Equal(back.Alphabet, []string{"a"}) {
		t.Errorf("alphabet %q", back.Alphabet)
	}
	if back.Transitions[0].Character != EpsilonToken {
		t.Errorf("character %q", back.Transitions[0].Character)
	}
}

func TestEpsilonRuneIsASymbol(t *testing.T) {
	a, err := automaton.NewDFA(automaton.Options{
		Alphabet:      []automaton.Symbol{'ε'},
		StateCount:    1,
		Transitions:   []automaton.Transition{{Symbol: 'ε', From: 0, To: 0}},
		InitialStates: []automaton.State{0},
	})
	if err != nil {
		t.Fatal(err)
	}
	buf, err := Encode(FromAutomaton(a), JSON)
	if err != nil {
		t.Fatal(err)
	}
	d, err := Decode(buf)
	if err != nil {
		t.Fatal(err)
	}
	b, err := d.Automaton()
	if err != nil {
		t.Fatal(err)
	}
	if automaton.Fingerprint(a) != automaton.Fingerprint(b) {
		t.Errorf("round trip changed the automaton: %s", buf)
	}
}

func TestSchemaErrors(t *testing.T) {
	testcases := []string{
		`{"alphabet": ["a"], "transitions": [{"character": "ab", "from": 0, "to": 0}]}`,
		`{"alphabet": ["a"], "transitions": [{"character": "", "from": 0, "to": 0}]}`,
		`{"alphabet": ["ab"], "transitions": []}`,
		`{"alphabet": "ab", "transitions": []}`,
		`{"alphabet": ["a"], "transitions": [], "colour": "red"}`,
		`{"alphabet": ["a"], "variant": "pda", "transitions": []}`,
		`[1, 2, 3]`,
	}
	for _, src := range testcases {
		d, err := Decode([]byte(src))
		if err == nil {
			_, err = d.Automaton()
		}
		if !errors.Is(err, ErrSchema) {
			t.Errorf("%s: expected ErrSchema, got %v", src, err)
		}
	}

	// invalid automata are reported by the validator
	d, err := Decode([]byte(`{"variant": "dfa", "alphabet": ["a"], "stateCount": 1,
  "initialStates": [0], "finalStates": [], "transitions": []}`))
	if err != nil {
		t.Fatal(err)
	}
	_, err = d.Automaton()
	var invalid *automaton.InvalidDefinition
	if !errors.As(err, &invalid) || invalid.Rule != automaton.RuleDeterminism {
		t.Errorf("expected a determinism violation, got %v", err)
	}
}

func TestFromAutomaton(t *testing.T) {
	d, err := Decode([]byte(endsInA))
	if err != nil {
		t.Fatal(err)
	}
	a, err := d.Automaton()
	if err != nil {
		t.Fatal(err)
	}
	back := FromAutomaton(a)
	d.StateCount = 2
	if !back.Equal(d) {
		t.Errorf("got %+v, want %+v", back, d)
	}
	for _, f := range []Format{JSON, YAML} {
		buf, err := Encode(back, f)
		if err != nil {
			t.Fatal(err)
		}
		again, err := Decode(buf)
		if err != nil {
			t.Fatalf("%s: %s", f, err)
		}
		if !again.Equal(back) {
			t.Errorf("%s: got %+v", f, again)
		}
	}
}

func TestFormatOf(t *testing.T) {
	testcases := []struct {
		path       string
		format     Format
		compressed bool
		ok         bool
	}{
		{"a.json", JSON, false, true},
		{"dir/a.yaml", YAML, false, true},
		{"a.yml.zst", YAML, true, true},
		{"a.json.zst", JSON, true, true},
		{"a.txt", 0, false, false},
		{"a.zst", 0, false, false},
	}
	for _, tc := range testcases {
		f, compressed, err := FormatOf(tc.path)
		if (err == nil) != tc.ok {
			t.Errorf("%s: unexpected error %v", tc.path, err)
			continue
		}
		if tc.ok && (f != tc.format || compressed != tc.compressed) {
			t.Errorf("%s: got %s %v", tc.path, f, compressed)
		}
	}
}

func TestFiles(t *testing.T) {
	d, err := Decode([]byte(endsInA))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, name := range []string{"a.json", "a.yaml", "a.json.zst", "a.yml.zst"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(path, d); err != nil {
			t.Fatal(err)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if strings.HasSuffix(name, ".zst") != bytes.HasPrefix(raw, zstdMagic) {
			t.Errorf("%s: compression does not match the extension", name)
		}
		got, err := ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(d) {
			t.Errorf("%s: got %+v", name, got)
		}
	}
	if _, err := ReadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestReadLimit(t *testing.T) {
	// a small compressed stream that expands
	// beyond the size limit must be rejected
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	big := enc.EncodeAll(bytes.Repeat([]byte(" "), maxDefSize+10), nil)
	enc.Close()
	if _, err := Read(bytes.NewReader(big)); err == nil || errors.Is(err, ErrSchema) {
		t.Errorf("expected a size error, got %v", err)
	}
	if _, err := Read(strings.NewReader(endsInA)); err != nil {
		t.Error(err)
	}
}
