/*
 * pdp8i - PAL-style assembler token classes
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package assemble implements a two-pass PAL-style assembler for PDP-8/I
// source: a lexer that recognizes tokens by racing a set of small
// per-class recognizers character by character, a symbol table, and an
// opcode table whose entries combine into a single instruction word
// according to the microcode group they belong to.
package assemble

// TokenClass identifies what a lexed token represents.
type TokenClass int

const (
	Unknown TokenClass = iota
	EndOfFile
	WhiteSpace
	EndOfLine
	Comment
	Literal
	Label
	OpCode
	Number
	LabelDefine // trailing ','
	LabelAssign // '='
	Location    // leading '*'
	ProgramCounter
	Addition
	Subtraction
	EndOfInstruction // ';'
	Octal
	Decimal
	Automatic
)

// IsValue reports whether class stands for a value in an expression.
func IsValue(class TokenClass) bool {
	switch class {
	case Number, Label, ProgramCounter:
		return true
	default:
		return false
	}
}

// IsOperator reports whether class is a binary arithmetic operator.
func IsOperator(class TokenClass) bool {
	return class == Addition || class == Subtraction
}

// IsEndOfLine reports whether class ends a physical line.
func IsEndOfLine(class TokenClass) bool {
	return class == EndOfLine || class == EndOfFile
}

// IsEndOfCodeLine reports whether class ends the code portion of a line
// (a trailing comment also counts, since nothing meaningful follows it).
func IsEndOfCodeLine(class TokenClass) bool {
	return class == EndOfLine || class == EndOfFile || class == Comment
}

// Token is a single lexed unit: its class, the text that matched, and
// its source position for error reporting.
type Token struct {
	Class   TokenClass
	Literal string
	Line    int
	Column  int
}

// recognizerState tracks how far a single recognizer has gotten through
// the current token, mirroring the original implementation's four-state
// per-character race.
type recognizerState int

const (
	undetermined recognizerState = iota
	passing
	failed
	failedOn
)

// recognizer matches one token class one character at a time. match
// advances state given the previous state, how many characters have
// passed so far, and the next input character.
type recognizer struct {
	class        TokenClass
	state        recognizerState
	passingCount int
	match        func(prev recognizerState, passingCount int, ch rune) recognizerState
}

func (r *recognizer) reset() {
	r.state = undetermined
	r.passingCount = 0
}

func (r *recognizer) step(ch rune) recognizerState {
	r.state = r.match(r.state, r.passingCount, ch)
	if r.state == passing {
		r.passingCount++
	}
	return r.state
}

// singleChar builds a recognizer for a token that is exactly one
// character wide, such as '=', ',', '*', '.', ';', '+' or '-'.
func singleChar(class TokenClass, want rune) *recognizer {
	return &recognizer{class: class, match: func(prev recognizerState, _ int, ch rune) recognizerState {
		switch prev {
		case undetermined:
			if ch == want {
				return passing
			}
			return failed
		case passing:
			return failedOn
		case failedOn:
			return failed
		default:
			return failed
		}
	}}
}

func newCommentRecognizer() *recognizer {
	return &recognizer{class: Comment, match: func(prev recognizerState, _ int, ch rune) recognizerState {
		switch prev {
		case undetermined:
			if ch == '/' {
				return passing
			}
			return failed
		case passing:
			if ch == '\n' || ch == '\r' {
				return failedOn
			}
			return passing
		case failedOn:
			return failed
		default:
			return failed
		}
	}}
}

func newEndOfLineRecognizer() *recognizer {
	isEOL := func(ch rune) bool { return ch == '\n' || ch == '\r' }
	return &recognizer{class: EndOfLine, match: func(prev recognizerState, _ int, ch rune) recognizerState {
		switch prev {
		case undetermined:
			if isEOL(ch) {
				return passing
			}
			return failed
		case passing:
			if isEOL(ch) {
				return passing
			}
			return failedOn
		case failedOn:
			return failed
		default:
			return failed
		}
	}}
}

func isLineSpace(ch rune) bool {
	return (ch == ' ' || ch == '\t') && ch != '\n' && ch != '\r'
}

func newWhiteSpaceRecognizer() *recognizer {
	return &recognizer{class: WhiteSpace, match: func(prev recognizerState, _ int, ch rune) recognizerState {
		switch prev {
		case undetermined:
			if isLineSpace(ch) {
				return passing
			}
			return failed
		case passing:
			if isLineSpace(ch) {
				return passing
			}
			return failedOn
		case failedOn:
			return failed
		default:
			return failed
		}
	}}
}

func isLiteralStart(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isLiteralCont(ch rune) bool {
	return isLiteralStart(ch) || (ch >= '0' && ch <= '9')
}

func newLiteralRecognizer() *recognizer {
	return &recognizer{class: Literal, match: func(prev recognizerState, _ int, ch rune) recognizerState {
		switch prev {
		case undetermined:
			if isLiteralStart(ch) {
				return passing
			}
			return failed
		case passing:
			if !isLiteralCont(ch) {
				return failedOn
			}
			return passing
		default:
			return failed
		}
	}}
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// newNumberRecognizer matches a run of decimal digits, or a "0x"/"0X"
// prefixed run of hex digits.
func newNumberRecognizer() *recognizer {
	hex := false
	sawPrefix := false
	return &recognizer{class: Number, match: func(prev recognizerState, passingCount int, ch rune) recognizerState {
		switch prev {
		case undetermined:
			hex, sawPrefix = false, false
			if isDigit(ch) {
				return passing
			}
			return failed
		case passing:
			if passingCount == 1 && (ch == 'x' || ch == 'X') && !sawPrefix {
				sawPrefix, hex = true, true
				return passing
			}
			if hex {
				if isHexDigit(ch) {
					return passing
				}
				return failedOn
			}
			if isDigit(ch) {
				return passing
			}
			return failedOn
		default:
			return failed
		}
	}}
}

// defaultRecognizers returns a fresh recognizer set in the same priority
// order the original assembler races them in: comments first, then the
// single-character punctuation classes, then literals, numbers, end of
// line and white space.
func defaultRecognizers() []*recognizer {
	return []*recognizer{
		newCommentRecognizer(),
		singleChar(LabelAssign, '='),
		singleChar(LabelDefine, ','),
		singleChar(Location, '*'),
		singleChar(ProgramCounter, '.'),
		singleChar(Addition, '+'),
		singleChar(Subtraction, '-'),
		singleChar(EndOfInstruction, ';'),
		newLiteralRecognizer(),
		newNumberRecognizer(),
		newEndOfLineRecognizer(),
		newWhiteSpaceRecognizer(),
	}
}
