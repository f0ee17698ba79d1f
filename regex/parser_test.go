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
	"bytes"
	"errors"
	"log"
	"math/rand"
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/KoKoKotlin/AutomataPlayground/automaton"

	"golang.org/x/exp/slices"
)

var ab = []automaton.Symbol{'a', 'b'}

func TestCompile(t *testing.T) {
	testcases := []struct {
		expr   string
		accept []string
		reject []string
	}{
		{
			expr:   "a",
			accept: []string{"a"},
			reject: []string{"", "aa", "b"},
		},
		{
			expr:   "a*",
			accept: []string{"", "a", "aaa"},
			reject: []string{"b", "ab"},
		},
		{
			expr:   "ab|c",
			accept: []string{"ab", "c"},
			reject: []string{"a", "ac", "abc", ""},
		},
		{
			expr:   "a|bc",
			accept: []string{"a", "bc"},
			reject: []string{"ac", "b", "abc"},
		},
		{
			expr:   "(a|b)+",
			accept: []string{"a", "b", "ababab"},
			reject: []string{""},
		},
		{
			expr:   "a?",
			accept: []string{"", "a"},
			reject: []string{"aa"},
		},
		{
			expr:   "a|b|c",
			accept: []string{"a", "b", "c"},
			reject: []string{"", "ab"},
		},
		{
			expr:   "x|a**",
			accept: []string{"x", "", "aaa"},
			reject: []string{"xx", "xa"},
		},
		{
			expr:   "(ab)*c?",
			accept: []string{"", "c", "ab", "ababc"},
			reject: []string{"a", "abab c", "cc"},
		},
		{
			expr:   "((a))",
			accept: []string{"a"},
			reject: []string{""},
		},
		{
			expr:   "é+ü",
			accept: []string{"éü", "ééü"},
			reject: []string{"ü", "é"},
		},
	}
	for i := range testcases {
		tc := &testcases[i]
		t.Run(tc.expr, func(t *testing.T) {
			e, err := Compile(tc.expr)
			if err != nil {
				t.Fatal(err)
			}
			d, err := e.ToDFA()
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tc.accept {
				if !e.AcceptsWord(w) {
					t.Errorf("ε-NFA rejects %q", w)
				}
				if !d.AcceptsWord(w) {
					t.Errorf("DFA rejects %q", w)
				}
			}
			for _, w := range tc.reject {
				if e.AcceptsWord(w) {
					t.Errorf("ε-NFA accepts %q", w)
				}
				if d.AcceptsWord(w) {
					t.Errorf("DFA accepts %q", w)
				}
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	testcases := []struct {
		expr string
		kind ErrorKind
		pos  int
	}{
		{"", EmptyRegex, 0},
		{"(a", UnterminatedParen, 2},
		{"a(b", UnterminatedParen, 3},
		{"*a", MissingOperand, 0},
		{"a(+b)", MissingOperand, 2},
		{")", UnmatchedCloseParen, 0},
		{"(a))", UnmatchedCloseParen, 3},
		{"|a", AlternationMissingOperand, 0},
		{"a|", AlternationMissingRightOperand, 2},
		{"a|*", AlternationMissingRightOperand, 2},
		{"a|)", AlternationMissingRightOperand, 2},
		{"()", EmptyRegex, 1},
		{"a(b|)", AlternationMissingRightOperand, 4},
		{"(a|*)", AlternationMissingRightOperand, 3},
		{"ab(c(d)", UnterminatedParen, 7},
	}
	for _, tc := range testcases {
		_, err := Compile(tc.expr)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("%q: expected a *SyntaxError, got %v", tc.expr, err)
			continue
		}
		if se.Kind != tc.kind || se.Pos != tc.pos {
			t.Errorf("%q: got %v at %d, want %v at %d (%s)", tc.expr, se.Kind, se.Pos, tc.kind, tc.pos, se)
		}
		if errors.Is(err, automaton.ErrInternal) {
			t.Errorf("%q: syntax error reported as internal", tc.expr)
		}
	}
}

func TestSyntaxErrorDetails(t *testing.T) {
	_, err := Compile("(a")
	se := err.(*SyntaxError)
	if se.Open != 0 {
		t.Errorf("open parenthesis at %d, want 0", se.Open)
	}
	if !strings.HasPrefix(se.Error(), "at position 2: ") {
		t.Errorf("message %q", se.Error())
	}

	_, err = Compile("a|(b+?)|?")
	se = err.(*SyntaxError)
	if se.Kind != AlternationMissingRightOperand || se.Pos != 8 {
		t.Errorf("got %v at %d", se.Kind, se.Pos)
	}

	_, err = Compile("+")
	se = err.(*SyntaxError)
	if se.Op != '+' {
		t.Errorf("operator %q, want '+'", se.Op)
	}
}

func TestThompsonShape(t *testing.T) {
	testcases := []struct {
		expr   string
		states int
	}{
		{"a", 2},
		{"a*", 4},
		{"ab", 4},
		{"a|b", 6},
		{"ab|c", 8},
		{"(a|b)+", 8},
	}
	for _, tc := range testcases {
		e := MustCompile(tc.expr)
		if e.StateCount() != tc.states {
			t.Errorf("%q: %d states, want %d", tc.expr, e.StateCount(), tc.states)
		}
		if n := len(e.InitialStates()); n != 1 {
			t.Errorf("%q: %d initial states", tc.expr, n)
		}
		if n := len(e.FinalStates()); n != 1 {
			t.Errorf("%q: %d final states", tc.expr, n)
		}
	}
}

func TestOptions(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	if _, err := Compile("(a", WithLogger(logger)); err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(buf.String(), `"(a"`) {
		t.Errorf("log output %q", buf.String())
	}
	buf.Reset()
	e, err := Compile("a", WithLogger(logger), WithLabel("x"))
	if err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected log output %q", buf.String())
	}
	if got := e.StateNames(); !slices.Equal(got, []string{"IxS0", "FxS0"}) {
		t.Errorf("state names %v", got)
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("no panic")
		}
	}()
	MustCompile("a|")
}

// randomExpr generates an expression over {a,b}
// with the usual precedence rules
func randomExpr(rng *rand.Rand, depth int) string {
	var sb strings.Builder
	alts := 1 + rng.Intn(2)
	for i := 0; i < alts; i++ {
		if i > 0 {
			sb.WriteByte('|')
		}
		atoms := 1 + rng.Intn(3)
		for j := 0; j < atoms; j++ {
			if depth > 0 && rng.Intn(4) == 0 {
				sb.WriteByte('(')
				sb.WriteString(randomExpr(rng, depth-1))
				sb.WriteByte(')')
			} else {
				sb.WriteByte("ab"[rng.Intn(2)])
			}
			switch rng.Intn(6) {
			case 0:
				sb.WriteByte('*')
			case 1:
				sb.WriteByte('+')
			case 2:
				sb.WriteByte('?')
			}
		}
	}
	return sb.String()
}

func TestCompileAgainstRegexp(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		expr := randomExpr(rng, 2)
		re := regexp.MustCompile("^(?:" + expr + ")$")
		e, err := Compile(expr)
		if err != nil {
			t.Fatalf("%q: %s", expr, err)
		}
		d, err := e.ToDFA()
		if err != nil {
			t.Fatal(err)
		}
		automaton.Words(ab, 6, func(w string) bool {
			want := re.MatchString(w)
			if got := e.AcceptsWord(w); got != want {
				t.Fatalf("%q: ε-NFA on %q: got %v, want %v", expr, w, got, want)
			}
			if got := d.AcceptsWord(w); got != want {
				t.Fatalf("%q: DFA on %q: got %v, want %v", expr, w, got, want)
			}
			return true
		})
	}
}

func FuzzCompile(f *testing.F) {
	for _, s := range []string{"a*", "ab|c", "(a|b)+", "(a", "a|", "*", "((a)b)?|c"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, expr string) {
		if !utf8.ValidString(expr) {
			return
		}
		e, err := Compile(expr)
		if err != nil {
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("%q: unexpected error %v", expr, err)
			}
			if se.Pos < 0 || se.Pos > utf8.RuneCountInString(expr) {
				t.Fatalf("%q: position %d out of range", expr, se.Pos)
			}
			return
		}
		d, err := automaton.Convert(e, automaton.VariantDFA, automaton.WithMaxStates(1000))
		if errors.Is(err, automaton.ErrTooManyStates) {
			return
		}
		if err != nil {
			t.Fatal(err)
		}
		if w, ok := automaton.Equivalent(e, d, 3); !ok {
			t.Fatalf("%q: ε-NFA and DFA differ on %q", expr, w)
		}
	})
}
