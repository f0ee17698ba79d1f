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

// Package regex compiles regular expressions into
// ε-NFAs using the Thompson construction.
//
// The syntax is minimal: every rune other than
// '|', '*', '+', '?', '(' and ')' is a literal symbol.
// Postfix operators bind tightest, then concatenation,
// then alternation.
package regex

import (
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/KoKoKotlin/AutomataPlayground/automaton"
)

// Option is an optional argument to Compile.
type Option func(c *compiler)

// WithLogger is an option that makes Compile
// log rejected expressions to l.
func WithLogger(l *log.Logger) Option {
	return func(c *compiler) {
		c.logger = l
	}
}

// WithLabel sets the prefix of the debug
// names of the states of the result.
func WithLabel(label string) Option {
	return func(c *compiler) {
		c.label = label
	}
}

type compiler struct {
	logger *log.Logger
	label  string
}

func (c *compiler) logf(f string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Printf(f, args...)
	}
}

// Compile builds an ε-NFA accepting the language of expr.
// Invalid expressions yield a *SyntaxError; any other
// error wraps automaton.ErrInternal.
func Compile(expr string, opts ...Option) (*automaton.ENFA, error) {
	c := &compiler{}
	for i := range opts {
		opts[i](c)
	}
	e, err := c.parse([]rune(expr), 0, c.label)
	if err != nil {
		c.logf("regex %q: %s", expr, err)
		return nil, err
	}
	return e, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *automaton.ENFA {
	e, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("regex: Compile(%q): %s", expr, err))
	}
	return e
}

// fold concatenates operands left to right
func fold(operands []*automaton.ENFA) (*automaton.ENFA, error) {
	acc := operands[0]
	for _, e := range operands[1:] {
		var err error
		acc, err = concat(acc, e)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// parse compiles src, which starts at offset base
// of the outermost expression
func (c *compiler) parse(src []rune, base int, label string) (*automaton.ENFA, error) {
	lex := newLexer(src, base)
	var stack []*automaton.ENFA
	counter := 0
	name := func(kind string) string {
		s := fmt.Sprintf("%s%s%d", label, kind, counter)
		counter++
		return s
	}

	for tok := lex.NextToken(); tok.Kind != EndOfInput; tok = lex.NextToken() {
		switch tok.Kind {
		case OpenParen:
			sub := lex.Parentheses()
			if sub.Kind == Error {
				return nil, sub.Err
			}
			e, err := c.parse([]rune(sub.Text), sub.Pos, name("RX"))
			if err != nil {
				return nil, err
			}
			stack = append(stack, e)

		case CloseParen:
			return nil, errsyntax(UnmatchedCloseParen, tok.Pos,
				"parenthesis at %d has no matching opening parenthesis", tok.Pos)

		case Symbol:
			r, _ := utf8.DecodeRuneInString(tok.Text)
			e, err := primitive(automaton.Symbol(r), name("S"))
			if err != nil {
				return nil, err
			}
			stack = append(stack, e)

		case Star, Plus, Question:
			if len(stack) == 0 {
				err := errsyntax(MissingOperand, tok.Pos,
					"operator '%s' at %d has no expression in front", tok.Text, tok.Pos)
				err.Op, _ = utf8.DecodeRuneInString(tok.Text)
				return nil, err
			}
			top := stack[len(stack)-1]
			var e *automaton.ENFA
			var err error
			switch tok.Kind {
			case Star:
				e, err = star(top, name("*"))
			case Plus:
				e, err = plus(top, name("+"))
			case Question:
				e, err = question(top, name("?"))
			}
			if err != nil {
				return nil, err
			}
			stack[len(stack)-1] = e

		case Pipe:
			if next := lex.LookAhead(); next.Kind == EndOfInput {
				return nil, errsyntax(AlternationMissingRightOperand, next.Pos,
					"unexpected end of input after '|' at %d", tok.Pos)
			}
			if len(stack) == 0 {
				return nil, errsyntax(AlternationMissingOperand, tok.Pos,
					"operator '|' at %d needs two subexpressions", tok.Pos)
			}
			left, err := fold(stack)
			if err != nil {
				return nil, err
			}
			stack = stack[:0]

			// the right operand extends over every
			// group and postfix operator up to the
			// next '|' or ')'
			start := lex.pos
			for {
				g := lex.NextGroup()
				if g.Kind == Error {
					return nil, g.Err
				}
				for lex.LookAhead().Kind.postfix() {
					lex.NextToken()
				}
				if k := lex.LookAhead().Kind; k != Symbol && k != OpenParen {
					break
				}
			}
			alt := name("|")
			right, err := c.parse(src[start:lex.pos], base+start, alt+"PX")
			if err != nil {
				return nil, err
			}
			e, err := alternation(left, right, alt)
			if err != nil {
				return nil, err
			}
			stack = append(stack, e)
		}
	}

	if len(stack) == 0 {
		return nil, errsyntax(EmptyRegex, base, "empty or invalid regex")
	}
	return fold(stack)
}
