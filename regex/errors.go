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

// ErrorKind classifies a SyntaxError.
type ErrorKind int

const (
	// UnterminatedParen: a '(' without matching ')'.
	UnterminatedParen ErrorKind = iota
	// UnmatchedCloseParen: a ')' without matching '('.
	UnmatchedCloseParen
	// MissingOperand: '*', '+' or '?' with nothing in front.
	MissingOperand
	// AlternationMissingOperand: '|' with nothing in front.
	AlternationMissingOperand
	// AlternationMissingRightOperand: '|' followed by
	// the end of the input, an operator or ')'.
	AlternationMissingRightOperand
	// EmptyRegex: an empty expression or group.
	EmptyRegex
)

func (k ErrorKind) String() string {
	switch k {
	case UnterminatedParen:
		return "unterminated-parenthesis"
	case UnmatchedCloseParen:
		return "unmatched-closing-parenthesis"
	case MissingOperand:
		return "operator-missing-operand"
	case AlternationMissingOperand:
		return "alternation-missing-operand"
	case AlternationMissingRightOperand:
		return "alternation-missing-right-operand"
	case EmptyRegex:
		return "empty-regex"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// SyntaxError describes an invalid regular expression.
type SyntaxError struct {
	Kind    ErrorKind
	Pos     int    // offset (in runes) in the expression
	Open    int    // offset of the unclosed '(' for UnterminatedParen
	Op      rune   // the operator for MissingOperand
	Message string // textual description of the error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("at position %d: %s", e.Pos, e.Message)
}

func errsyntax(kind ErrorKind, pos int, f string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Kind: kind, Pos: pos, Message: fmt.Sprintf(f, args...)}
}
