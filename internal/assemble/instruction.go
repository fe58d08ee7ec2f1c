/*
 * pdp8i - PAL-style assembler opcode table
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

// CombinationType says how an opcode's bits combine with the bits of
// other opcodes already accumulated on the same source line. A memory
// reference instruction replaces whatever came before it; the operate
// microcode groups OR their bits together but only within the same
// group, since mixing e.g. a Group 1 and a Group 2 mnemonic on one line
// does not correspond to any single PDP-8/I instruction word.
type CombinationType int

const (
	CombineMemory CombinationType = iota // memory reference, replaces
	CombineFlag                          // ORs in (the indirect bit 'I')
	CombineMask                          // ANDs in (the zero-page force 'Z')
	CombineGroup                         // group-agnostic operate bits (CLA, NOP)
	CombineGroup1
	CombineGroup2
	CombineGroup2Or
	CombineGroup2And
	CombineGroup3
)

// Instruction is one opcode table entry: its fixed bit pattern and how
// it combines with whatever else is on the same source line.
type Instruction struct {
	OpCode      uint16
	Mnemonic    string
	Combination CombinationType
}

// instructionSet mirrors the original assembler's opcode table: memory
// reference mnemonics at their base encoding (page/indirect bits are
// filled in by the address resolver), the three operate microcode
// groups, common two-mnemonic macros, the memory-extension IOTs, and
// the reference peripherals' IOTs.
var instructionSet = []Instruction{
	{00400, "I", CombineFlag},
	{07577, "Z", CombineMask},

	{00000, "AND", CombineMemory},
	{01000, "TAD", CombineMemory},
	{02000, "ISZ", CombineMemory},
	{03000, "DCA", CombineMemory},
	{04000, "JMS", CombineMemory},
	{05000, "JMP", CombineMemory},

	{07000, "NOP", CombineGroup},
	{07200, "CLA", CombineGroup},

	{07100, "CLL", CombineGroup1},
	{07040, "CMA", CombineGroup1},
	{07020, "CML", CombineGroup1},
	{07001, "IAC", CombineGroup1},
	{07041, "CIA", CombineGroup1},
	{07010, "RAR", CombineGroup1},
	{07004, "RAL", CombineGroup1},
	{07012, "RTR", CombineGroup1},
	{07006, "RTL", CombineGroup1},
	{07002, "BSW", CombineGroup1},

	{07500, "SMA", CombineGroup2Or},
	{07440, "SZA", CombineGroup2Or},
	{07420, "SNL", CombineGroup2Or},
	{07510, "SPA", CombineGroup2And},
	{07450, "SNA", CombineGroup2And},
	{07430, "SZL", CombineGroup2And},
	{07404, "OSR", CombineGroup2},
	{07402, "HLT", CombineGroup2},
	{07540, "SLE", CombineGroup2},
	{07550, "SGZ", CombineGroup2},

	{07621, "CAM", CombineGroup3},
	{07501, "MQA", CombineGroup3},
	{07421, "MQL", CombineGroup3},
	{07521, "SWP", CombineGroup3},
	{07431, "SWAB", CombineGroup3},
	{07447, "SWBA", CombineGroup3},
	{07405, "SCA", CombineGroup3},
	{07411, "MUY", CombineGroup3},
	{07407, "DVI", CombineGroup3},
	{07415, "NMI", CombineGroup3},
	{07403, "SHL", CombineGroup3},
	{07413, "ASR", CombineGroup3},
	{07417, "LSR", CombineGroup3},

	{06201, "CDF", CombineMemory},
	{06202, "CIF", CombineMemory},
	{06214, "RDF", CombineMemory},
	{06224, "RIF", CombineMemory},
	{06234, "RIB", CombineMemory},
	{06244, "RMF", CombineMemory},

	{06000, "SKON", CombineMemory},
	{06001, "ION", CombineMemory},
	{06002, "IOF", CombineMemory},
	{06003, "SRQ", CombineMemory},
	{06004, "GTF", CombineMemory},
	{06005, "RTF", CombineMemory},
	{06006, "SGT", CombineMemory},
	{06007, "CAF", CombineMemory},

	{06131, "CLEI", CombineMemory},
	{06132, "CLDI", CombineMemory},
	{06133, "CLSK", CombineMemory},

	{06030, "KCF", CombineMemory},
	{06031, "KSF", CombineMemory},
	{06034, "KRS", CombineMemory},
	{06035, "KIE", CombineMemory},
	{06036, "KRB", CombineMemory},
	{06040, "TFL", CombineMemory},
	{06041, "TSF", CombineMemory},
	{06042, "TCF", CombineMemory},
	{06044, "TPC", CombineMemory},
	{06045, "TSK", CombineMemory},
	{06046, "TLS", CombineMemory},
}

// predefinedSymbols seeds the symbol table with the eight autoincrement
// register names, so programs can write "TAD I _AutoIndex1" instead of
// the bare octal address.
var predefinedSymbols = []struct {
	Name  string
	Value uint16
}{
	{"_AutoIndex0", 0010},
	{"_AutoIndex1", 0011},
	{"_AutoIndex2", 0012},
	{"_AutoIndex3", 0013},
	{"_AutoIndex4", 0014},
	{"_AutoIndex5", 0015},
	{"_AutoIndex6", 0016},
	{"_AutoIndex7", 0017},
}

// Instructions returns the opcode table, for callers (the disassembler)
// that need the mnemonic set without duplicating it.
func Instructions() []Instruction {
	out := make([]Instruction, len(instructionSet))
	copy(out, instructionSet)
	return out
}

func newInstructionTable() map[string]Instruction {
	table := make(map[string]Instruction, len(instructionSet))
	for _, in := range instructionSet {
		table[in.Mnemonic] = in
	}
	return table
}

// combine folds next's opcode group into current per the matrix the
// original assembler enforces with evaluateOpCode's per-case switch:
// a group-agnostic mnemonic combines into anything, but Group 1/2/3
// mnemonics must stay within their own group on one instruction word.
func combine(current, next CombinationType) (CombinationType, error) {
	switch next {
	case CombineGroup1:
		if current == CombineGroup || current == CombineGroup1 {
			return CombineGroup1, nil
		}
	case CombineGroup2:
		if current == CombineGroup || current == CombineGroup2 {
			return CombineGroup2, nil
		}
	case CombineGroup2Or:
		if current == CombineGroup || current == CombineGroup2 || current == CombineGroup2Or {
			return CombineGroup2Or, nil
		}
	case CombineGroup2And:
		if current == CombineGroup || current == CombineGroup2 || current == CombineGroup2And {
			return CombineGroup2And, nil
		}
	case CombineGroup3:
		if current == CombineGroup || current == CombineGroup3 {
			return CombineGroup3, nil
		}
	default:
		return current, nil
	}
	return current, fmt.Errorf("invalid microcode combination")
}
