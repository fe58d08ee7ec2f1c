/*
 * pdp8i - PAL-style assembler lexer
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

package assemble

import "fmt"

// Lexer converts a rune stream into a token stream by racing a set of
// recognizers over each character: every recognizer still in contention
// sees the character, and the first character where exactly one
// recognizer reports failedOn (it matched up to but not including this
// character) ends the token at that recognizer's class. More than one
// failedOn on the same character is an ambiguous token.
type Lexer struct {
	runes []rune
	pos   int
	line  int
	col   int
}

// NewLexer returns a Lexer over source.
func NewLexer(source string) *Lexer {
	return &Lexer{runes: []rune(source), line: 1, col: 1}
}

func (l *Lexer) peek() (rune, bool) {
	if l.pos >= len(l.runes) {
		return 0, false
	}
	return l.runes[l.pos], true
}

func (l *Lexer) advance() {
	if l.pos >= len(l.runes) {
		return
	}
	if l.runes[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

// Next returns the next token in the stream.
func (l *Lexer) Next() (Token, error) {
	recognizers := defaultRecognizers()
	for _, r := range recognizers {
		r.reset()
	}

	line, col := l.line, l.col
	var literal []rune

	for {
		ch, ok := l.peek()
		if !ok {
			break
		}

		failedOnCount := 0
		var winner *recognizer
		passingScore := 0
		for _, r := range recognizers {
			if r.passingCount < passingScore {
				break
			}
			switch r.step(ch) {
			case failedOn:
				failedOnCount++
				winner = r
			}
			if r.passingCount > passingScore {
				passingScore = r.passingCount
			}
		}

		if failedOnCount > 1 {
			return Token{}, fmt.Errorf("ambiguous token at line %d char %d", line, col)
		}
		if failedOnCount == 1 {
			return Token{Class: winner.class, Literal: string(literal), Line: line, Column: col}, nil
		}

		literal = append(literal, ch)
		l.advance()
	}

	if len(literal) == 0 {
		return Token{Class: EndOfFile, Line: line, Column: col}, nil
	}

	// Input ended mid-token: whichever recognizer is still passing wins.
	for _, r := range recognizers {
		if r.state == passing {
			return Token{Class: r.class, Literal: string(literal), Line: line, Column: col}, nil
		}
	}
	return Token{Class: Unknown, Literal: string(literal), Line: line, Column: col}, nil
}
