/*
 * pdp8i - instruction disassembler
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

// Package disassemble turns a 12-bit instruction word back into PAL-style
// mnemonic text, the mirror image of the assemble package's opcode table.
// Memory reference and IOT words resolve to a single canonical mnemonic;
// operate words are decomposed bit by bit for Group 1 and Group 2, since
// those groups assign every bit to an independent microcode line and any
// combination of bits is a legal (if unnamed) instruction. Group 3 (EAE)
// only recognizes the combinations the opcode table names explicitly.
package disassemble

import (
	"fmt"

	"pdp8i/internal/assemble"
)

var (
	memMnemonic = map[uint16]string{}
	iotMnemonic = map[uint16]string{}
	opMnemonic  = map[uint16]string{} // exact full-word operate mnemonics (all three groups)
)

func init() {
	for _, in := range assemble.Instructions() {
		switch in.Combination {
		case assemble.CombineMemory:
			if in.OpCode < 06000 {
				memMnemonic[in.OpCode] = in.Mnemonic
			} else {
				iotMnemonic[in.OpCode] = in.Mnemonic
			}
		case assemble.CombineGroup, assemble.CombineGroup1, assemble.CombineGroup2,
			assemble.CombineGroup2Or, assemble.CombineGroup2And, assemble.CombineGroup3:
			opMnemonic[in.OpCode] = in.Mnemonic
		}
	}
}

// Decode disassembles the instruction word found at addr, returning its
// mnemonic text. addr is needed to resolve a current-page memory reference
// to its effective address.
func Decode(addr, word uint16) string {
	word &= 07777
	switch word & 07000 {
	case 06000:
		return decodeIOT(word)
	case 07000:
		return decodeOperate(word)
	default:
		return decodeMRI(addr, word)
	}
}

func decodeMRI(addr, word uint16) string {
	mnemonic, ok := memMnemonic[word&07000]
	if !ok {
		mnemonic = "???"
	}

	var effAddr uint16
	if word&00200 == 0 {
		effAddr = word & 00177
	} else {
		effAddr = (addr & 07600) | (word & 00177)
	}

	if word&00400 != 0 {
		return fmt.Sprintf("%s I %04o", mnemonic, effAddr)
	}
	return fmt.Sprintf("%s %04o", mnemonic, effAddr)
}

func decodeIOT(word uint16) string {
	if mnemonic, ok := iotMnemonic[word]; ok {
		return mnemonic
	}
	device := (word >> 3) & 077
	pulse := word & 07
	return fmt.Sprintf("IOT %02o %o", device, pulse)
}

func decodeOperate(word uint16) string {
	if mnemonic, ok := opMnemonic[word]; ok {
		return mnemonic
	}
	switch {
	case word&00400 == 0:
		return decodeGroup1(word)
	case word&00001 == 0:
		return decodeGroup2(word)
	default:
		return fmt.Sprintf("OPR3 %04o", word)
	}
}

// decodeGroup1 covers every Group 1 word: CLA, CLL, CMA/IAC (combined as
// CIA when both are set), CML and the rotate field (RAR, RAL, RTR, RTL,
// BSW) are each assigned an independent bit, so no word is unrepresentable.
func decodeGroup1(word uint16) string {
	var names []string
	if word&00200 != 0 {
		names = append(names, "CLA")
	}
	if word&00100 != 0 {
		names = append(names, "CLL")
	}
	switch word & 00041 {
	case 00041:
		names = append(names, "CIA")
	case 00040:
		names = append(names, "CMA")
	case 00001:
		names = append(names, "IAC")
	}
	if word&00020 != 0 {
		names = append(names, "CML")
	}
	switch word & 00016 {
	case 00012:
		names = append(names, "RTR")
	case 00006:
		names = append(names, "RTL")
	case 00010:
		names = append(names, "RAR")
	case 00004:
		names = append(names, "RAL")
	case 00002:
		names = append(names, "BSW")
	case 00014:
		names = append(names, "RAR", "RAL")
	case 00016:
		names = append(names, "RTR", "RTL")
	}
	if len(names) == 0 {
		return "NOP"
	}
	return joinMnemonics(names)
}

// decodeGroup2 covers every Group 2 word: CLA, the skip conditions (the
// same three bits mean SMA/SZA/SNL in the OR group and SPA/SNA/SZL in the
// AND group, selected by bit 8), OSR and HLT are each independent.
func decodeGroup2(word uint16) string {
	var names []string
	if word&00200 != 0 {
		names = append(names, "CLA")
	}
	andGroup := word&00010 != 0
	if word&00100 != 0 {
		names = append(names, cond(andGroup, "SPA", "SMA"))
	}
	if word&00040 != 0 {
		names = append(names, cond(andGroup, "SNA", "SZA"))
	}
	if word&00020 != 0 {
		names = append(names, cond(andGroup, "SZL", "SNL"))
	}
	if andGroup && word&00160 == 0 {
		names = append(names, "SKP")
	}
	if word&00004 != 0 {
		names = append(names, "OSR")
	}
	if word&00002 != 0 {
		names = append(names, "HLT")
	}
	if len(names) == 0 {
		return "NOP"
	}
	return joinMnemonics(names)
}

func cond(b bool, ifTrue, ifFalse string) string {
	if b {
		return ifTrue
	}
	return ifFalse
}

func joinMnemonics(names []string) string {
	out := names[0]
	for _, n := range names[1:] {
		out += " " + n
	}
	return out
}
