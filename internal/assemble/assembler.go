/*
 * pdp8i - PAL-style two-pass assembler
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

import (
	"fmt"
	"strconv"
	"strings"
)

// Word is one assembled memory location: the address it loads at and
// the 12-bit value to deposit there.
type Word struct {
	Address uint16
	Data    uint16
}

// Program is the result of a successful assembly: the sequence of
// assembled words in address order, and the final symbol table (useful
// for a listing or a "show symbols" console command).
type Program struct {
	Words   []Word
	Symbols map[string]*Symbol
}

type radix int

const (
	radixOctal radix = iota
	radixDecimal
	radixAutomatic
)

type assembler struct {
	tokens       []Token
	instructions map[string]Instruction
	symbols      map[string]*Symbol
	radix        radix
	pc           uint16
	pass2        bool
	words        []Word
}

// Assemble lexes and assembles source into a Program. Errors report the
// source line of the token that triggered them; the column is not
// reported.
func Assemble(source string) (*Program, error) {
	a := &assembler{
		instructions: newInstructionTable(),
		symbols:      newSymbolTable(),
	}
	tokens, err := a.tokenize(source)
	if err != nil {
		return nil, err
	}
	a.tokens = tokens

	if err := a.run(); err != nil {
		return nil, fmt.Errorf("pass 1: %w", err)
	}
	a.pc = 0
	a.radix = radixOctal
	a.pass2 = true
	a.words = nil
	if err := a.run(); err != nil {
		return nil, fmt.Errorf("pass 2: %w", err)
	}

	return &Program{Words: a.words, Symbols: a.symbols}, nil
}

// tokenize runs the lexer to completion, classifies LITERAL tokens as
// keywords, opcodes, or labels, and resolves forward label references
// created by a later LabelDefine/LabelAssign or by a prior mention.
func (a *assembler) tokenize(source string) ([]Token, error) {
	lexer := NewLexer(source)
	var tokens []Token
	for {
		tok, err := lexer.Next()
		if err != nil {
			return nil, err
		}
		if tok.Class == WhiteSpace {
			continue
		}
		if tok.Class == Literal {
			switch tok.Literal {
			case "OCTAL":
				tok.Class = Octal
			case "DECIMAL":
				tok.Class = Decimal
			case "AUTOMATIC":
				tok.Class = Automatic
			default:
				upper := strings.ToUpper(tok.Literal)
				if _, ok := a.instructions[tok.Literal]; ok {
					tok.Class = OpCode
				} else if _, ok := a.instructions[upper]; ok {
					tok.Class = OpCode
				} else if _, ok := a.symbols[tok.Literal]; ok {
					tok.Class = Label
				} else {
					a.symbols[tok.Literal] = &Symbol{}
				}
			}
		}
		tokens = append(tokens, tok)
		if tok.Class == EndOfFile {
			break
		}
	}

	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Class == Literal && (tokens[i+1].Class == LabelDefine || tokens[i+1].Class == LabelAssign) {
			if _, ok := a.symbols[tokens[i].Literal]; !ok {
				a.symbols[tokens[i].Literal] = &Symbol{}
			}
			tokens[i].Class = Label
		}
	}
	for i := range tokens {
		if tokens[i].Class == Literal {
			if _, ok := a.symbols[tokens[i].Literal]; ok {
				tokens[i].Class = Label
			}
		}
	}
	return tokens, nil
}

// run walks the token stream one line at a time, the way pass1/pass2
// share parseLine in the original assembler; a.pass2 selects whether
// assembled words are actually recorded.
func (a *assembler) run() error {
	idx := 0
	for idx < len(a.tokens) && a.tokens[idx].Class != EndOfFile {
		next, err := a.parseLine(idx)
		if err != nil {
			return fmt.Errorf("line %d: %w", a.tokens[idx].Line, err)
		}
		if next <= idx {
			next = idx + 1
		}
		idx = next
	}
	return nil
}

func (a *assembler) class(idx int) TokenClass {
	if idx >= len(a.tokens) {
		return EndOfFile
	}
	return a.tokens[idx].Class
}

func (a *assembler) parseLine(idx int) (int, error) {
	switch a.class(idx) {
	case Octal:
		a.radix = radixOctal
		idx++
	case Decimal:
		a.radix = radixDecimal
		idx++
	case Automatic:
		a.radix = radixAutomatic
		idx++
	case Label:
		if a.class(idx+1) == LabelAssign {
			value, next, err := a.evaluateExpression(idx + 2)
			if err != nil {
				return 0, err
			}
			a.setLabel(a.tokens[idx].Literal, value)
			idx = next
		} else if a.class(idx+1) == LabelDefine {
			a.setLabel(a.tokens[idx].Literal, a.pc)
			idx += 2
		}
	case Location:
		value, next, err := a.evaluateExpression(idx + 1)
		if err != nil {
			return 0, err
		}
		a.pc = value
		idx = next
	}

	var codeValue *uint16
	if IsValue(a.class(idx)) {
		value, next, err := a.evaluateExpression(idx)
		if err != nil {
			return 0, err
		}
		codeValue = &value
		idx = next
	} else if a.class(idx) == OpCode {
		value, next, err := a.evaluateOpCode(idx)
		if err != nil {
			return 0, err
		}
		codeValue = &value
		idx = next
	}

	for !IsEndOfCodeLine(a.class(idx)) {
		idx++
	}
	if a.class(idx) == Comment {
		idx++
	}
	if IsEndOfLine(a.class(idx)) {
		if codeValue != nil {
			if a.pass2 {
				a.words = append(a.words, Word{Address: a.pc, Data: *codeValue})
			}
			a.pc = (a.pc + 1) & 07777
		}
		idx++
	}
	return idx, nil
}

func (a *assembler) setLabel(name string, value uint16) {
	if sym, ok := a.symbols[name]; ok {
		sym.Value = value
		sym.Defined = true
		return
	}
	a.symbols[name] = &Symbol{Value: value, Defined: true}
}

// evaluateExpression parses a value followed by any number of
// '+'/'-' operator and value pairs, folded left to right, the shape
// PAL source expressions use (e.g. "LABEL+3", ".-1").
func (a *assembler) evaluateExpression(idx int) (uint16, int, error) {
	var left uint16
	haveLeft := false
	op := Unknown

	for idx < len(a.tokens) {
		cls := a.class(idx)
		switch {
		case !haveLeft && op == Unknown && IsValue(cls):
			v, err := a.valueOf(idx)
			if err != nil {
				return 0, idx, err
			}
			left, haveLeft = v, true
			idx++
		case haveLeft && op == Unknown && IsOperator(cls):
			op = cls
			idx++
		case haveLeft && op != Unknown && IsValue(cls):
			right, err := a.valueOf(idx)
			if err != nil {
				return 0, idx, err
			}
			if op == Addition {
				left += right
			} else {
				left -= right
			}
			op = Unknown
			idx++
		default:
			if haveLeft && op == Unknown {
				return left & 07777, idx, nil
			}
			return 0, idx, fmt.Errorf("bad expression")
		}
	}
	if haveLeft {
		return left & 07777, idx, nil
	}
	return 0, idx, fmt.Errorf("bad expression")
}

func (a *assembler) valueOf(idx int) (uint16, error) {
	tok := a.tokens[idx]
	switch tok.Class {
	case Number:
		return a.convertNumber(tok.Literal)
	case Label:
		return a.convertLabel(tok.Literal)
	case ProgramCounter:
		return a.pc, nil
	default:
		return 0, fmt.Errorf("not a value")
	}
}

func (a *assembler) convertNumber(literal string) (uint16, error) {
	base := 8
	switch a.radix {
	case radixDecimal:
		base = 10
	case radixAutomatic:
		base = 0
	}
	v, err := strconv.ParseUint(literal, base, 32)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", literal, err)
	}
	return uint16(v) & 07777, nil
}

func (a *assembler) convertLabel(literal string) (uint16, error) {
	sym, ok := a.symbols[literal]
	if ok && sym.Defined {
		return sym.Value, nil
	}
	if a.pass2 {
		return 0, fmt.Errorf("undefined symbol %q", literal)
	}
	return 0, nil
}

const pageMask = 07600

// evaluateOpCode folds every OpCode/value token on the remainder of
// the line into a single instruction word, enforcing the microcode
// group combination rules and memory-reference page addressing.
func (a *assembler) evaluateOpCode(idx int) (uint16, int, error) {
	var code, arg uint16
	haveOpCode := false
	memoryRef := false
	zeroPage := false
	group := CombineGroup

	for idx < len(a.tokens) {
		cls := a.class(idx)
		if IsEndOfCodeLine(cls) {
			break
		}
		switch cls {
		case Number, Literal, Label, ProgramCounter:
			v, next, err := a.evaluateExpression(idx)
			if err != nil {
				return 0, idx, err
			}
			arg, idx = v, next
			continue
		case OpCode:
			in, ok := a.instructions[a.tokens[idx].Literal]
			if !ok {
				in, ok = a.instructions[strings.ToUpper(a.tokens[idx].Literal)]
			}
			if !ok {
				return 0, idx, fmt.Errorf("unknown opcode %q", a.tokens[idx].Literal)
			}
			haveOpCode = true
			switch in.Combination {
			case CombineMemory:
				code = in.OpCode
				memoryRef = true
			case CombineFlag, CombineGroup:
				code |= in.OpCode
			case CombineMask:
				if memoryRef && in.OpCode == 07577 {
					zeroPage = true
				} else {
					code &= in.OpCode
				}
			default:
				next, err := combine(group, in.Combination)
				if err != nil {
					return 0, idx, err
				}
				group = next
				code |= in.OpCode
			}
		}
		idx++
	}

	if !haveOpCode {
		return arg, idx, nil
	}
	if memoryRef {
		code |= arg & 0177
		if arg > 0177 {
			if (arg & pageMask) != (a.pc & pageMask) {
				return 0, idx, fmt.Errorf("memory location %04o out of page range", arg)
			}
			code |= 0200
		}
		if zeroPage {
			code &= 07577
		}
	}
	return code, idx, nil
}
