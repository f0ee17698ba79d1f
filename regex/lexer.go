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

import "fmt"

// TokenKind is the kind of a Token.
type TokenKind int

const (
	Symbol TokenKind = iota
	Pipe
	Question
	Star
	Plus
	OpenParen
	CloseParen
	EndOfInput
	// SubRegex is a captured part of the expression
	// (see Lexer.Parentheses and Lexer.NextGroup).
	SubRegex
	// Error carries a *SyntaxError in Token.Err.
	Error
)

func (k TokenKind) String() string {
	switch k {
	case Symbol:
		return "symbol"
	case Pipe:
		return "'|'"
	case Question:
		return "'?'"
	case Star:
		return "'*'"
	case Plus:
		return "'+'"
	case OpenParen:
		return "'('"
	case CloseParen:
		return "')'"
	case EndOfInput:
		return "end of input"
	case SubRegex:
		return "subexpression"
	case Error:
		return "error"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

func (k TokenKind) postfix() bool {
	return k == Star || k == Plus || k == Question
}

// Token is a lexical token.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int // offset (in runes) in the outermost expression
	Err  *SyntaxError
}

func errtoken(err *SyntaxError) Token {
	return Token{Kind: Error, Text: err.Message, Pos: err.Pos, Err: err}
}

// Lexer splits an expression into tokens
// with one rune of lookahead.
type Lexer struct {
	src  []rune
	pos  int
	base int // offset of src in the outermost expression
}

// NewLexer returns a Lexer for expr.
func NewLexer(expr string) *Lexer {
	return newLexer([]rune(expr), 0)
}

func newLexer(src []rune, base int) *Lexer {
	return &Lexer{src: src, base: base}
}

// LookAhead returns the next token without consuming it.
func (l *Lexer) LookAhead() Token {
	if l.pos >= len(l.src) {
		return Token{Kind: EndOfInput, Pos: l.base + l.pos}
	}
	r := l.src[l.pos]
	kind := Symbol
	switch r {
	case '|':
		kind = Pipe
	case '+':
		kind = Plus
	case '?':
		kind = Question
	case '*':
		kind = Star
	case '(':
		kind = OpenParen
	case ')':
		kind = CloseParen
	}
	return Token{Kind: kind, Text: string(r), Pos: l.base + l.pos}
}

// NextToken consumes and returns the next token.
// At the end of the input it keeps returning EndOfInput.
func (l *Lexer) NextToken() Token {
	t := l.LookAhead()
	if t.Kind != EndOfInput {
		l.pos++
	}
	return t
}

// Parentheses must be called right after an OpenParen
// has been consumed. It consumes the input up to and
// including the matching ')' and returns the text in
// between as a SubRegex.
func (l *Lexer) Parentheses() Token {
	open := l.base + l.pos - 1
	start := l.pos
	depth := 1
	for depth > 0 {
		t := l.NextToken()
		switch t.Kind {
		case EndOfInput:
			err := errsyntax(UnterminatedParen, t.Pos, "parenthesis at %d not closed", open)
			err.Open = open
			return errtoken(err)
		case OpenParen:
			depth++
		case CloseParen:
			depth--
		}
	}
	return Token{Kind: SubRegex, Text: string(l.src[start : l.pos-1]), Pos: l.base + start}
}

// NextGroup consumes the next operand: a single symbol
// or a parenthesized group, together with one postfix
// operator that immediately follows it.
func (l *Lexer) NextGroup() Token {
	start := l.pos
	t := l.NextToken()
	switch t.Kind {
	case Pipe, Plus, Star, Question:
		return errtoken(errsyntax(AlternationMissingRightOperand, t.Pos, "group cannot start with operator %s", t.Kind))
	case EndOfInput:
		return errtoken(errsyntax(AlternationMissingRightOperand, t.Pos, "group cannot be empty"))
	case CloseParen:
		return errtoken(errsyntax(AlternationMissingRightOperand, t.Pos, "group cannot start with ')'"))
	case OpenParen:
		if p := l.Parentheses(); p.Kind == Error {
			return p
		}
	}
	if l.LookAhead().Kind.postfix() {
		l.NextToken()
	}
	return Token{Kind: SubRegex, Text: string(l.src[start:l.pos]), Pos: l.base + start}
}
