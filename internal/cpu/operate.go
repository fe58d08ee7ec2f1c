/*
 * pdp8i - Operate instruction microcode
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

package cpu

// executeOPR decodes and runs the three OPR microcode groups.
func (c *CPU) executeOPR() {
	bits := irOprBits.Get(c.IR)
	if bits == 0 {
		return // NOP
	}
	switch {
	case bits&0400 == 0:
		c.operateGroup1(bits)
	case bits&01 == 0:
		c.operateGroup2(bits)
	default:
		c.operateGroup3(bits)
	}
}

// operateGroup1 runs the four sequence groups of Group 1 in order:
// CLA/CLL, CMA/CML, IAC, then the rotate/swap select.
func (c *CPU) operateGroup1(bits uint16) {
	if bits&0200 != 0 {
		c.SetAC(0) // CLA
	}
	if bits&0100 != 0 {
		c.SetL(0) // CLL
	}
	if bits&040 != 0 {
		c.SetAC(^c.AC() & 07777) // CMA
	}
	if bits&020 != 0 {
		c.SetL(^c.L() & 1) // CML
	}
	if bits&01 != 0 {
		arithmetic.Set(&c.LAC, arithmetic.Get(c.LAC)+1) // IAC, carries into L
	}
	switch bits & 016 {
	case 000: // NOP
	case 012, 010: // RTR, RAR (RTR falls through to a second RAR-style rotate)
		c.rotateRight()
		if bits&016 == 012 {
			c.rotateRight()
		}
	case 006, 004: // RTL, RAL
		c.rotateLeft()
		if bits&016 == 006 {
			c.rotateLeft()
		}
	case 002: // BSW
		c.SetAC((lowerNibble.Get(c.AC()) << 6) | upperNibble.Get(c.AC()))
	}
}

func (c *CPU) rotateRight() {
	arithmetic.Set(&c.LAC, (leastSignf.Get(c.AC())<<12)|(arithmetic.Get(c.LAC)>>1))
}

func (c *CPU) rotateLeft() {
	arithmetic.Set(&c.LAC, (arithmetic.Get(c.LAC)<<1)|c.L())
}

// operateGroup2 evaluates the skip predicate (OR'd or AND'd selected
// conditions per IR<8>), then CLA, OSR, HLT in that order.
func (c *CPU) operateGroup2(bits uint16) {
	skip := false
	if bits&010 != 0 { // IR<8> selects AND combination
		skip = true
		if bits&0100 != 0 {
			skip = skip && c.AC()&04000 == 0 // SPA
		}
		if bits&040 != 0 {
			skip = skip && c.AC() != 0 // SNA
		}
		if bits&020 != 0 {
			skip = skip && c.L() == 0 // SZL
		}
	} else {
		if bits&0100 != 0 {
			skip = skip || c.AC()&04000 != 0 // SMA
		}
		if bits&040 != 0 {
			skip = skip || c.AC() == 0 // SZA
		}
		if bits&020 != 0 {
			skip = skip || c.L() != 0 // SNL
		}
	}
	if skip {
		c.PC = (c.PC + 1) & 07777
	}
	if bits&0200 != 0 {
		c.SetAC(0) // CLA
	}
	if bits&04 != 0 {
		c.SetAC(c.AC() | c.SR) // OSR
	}
	if bits&02 != 0 {
		c.Halt = true // HLT
	}
}

// operateGroup3 implements the MQ/AC exchange and EAE microcode.
// SWAB/SWBA switch EAE mode and decode no further microcode in the
// same instruction. Mode A reproduces the original PDP-8/I
// instruction set; mode B adds the extended double-precision and
// shift operations. Both modes share the seven-way <6,8:10> select.
func (c *CPU) operateGroup3(bits uint16) {
	if bits&0200 != 0 {
		c.SetAC(0) // CLA
	}
	mqa := bits&0100 != 0
	mql := bits&020 != 0
	temp := c.MQ
	if mql {
		c.MQ = c.AC()
		c.SetAC(0)
	}
	if mqa {
		c.SetAC(c.AC() | temp)
	}

	switch c.IR {
	case 07431: // SWAB
		c.EAEModeB = true
		return
	case 07447: // SWBA
		c.EAEModeB = false
		c.GreaterThan = false
		return
	}
	if !c.EAEModeB {
		c.GreaterThan = false
	}

	switch (c.IR >> 1) & 027 {
	case 020: // SCA (both modes)
		c.SetAC(c.AC() | c.SC)
	case 000: // NOP
	case 021: // mode B: DAD
		if c.EAEModeB {
			c.eaeDAD()
		} else {
			c.SetAC(c.AC() | c.SC)
			c.eaeACS()
		}
	case 022: // mode B: DST
		if c.EAEModeB {
			c.eaeDST()
		} else {
			c.SetAC(c.AC() | c.SC)
			c.eaeMUY()
		}
	case 023: // mode B: SWBA (no-op if not caught above)
		if !c.EAEModeB {
			c.SetAC(c.AC() | c.SC)
			c.eaeDVI()
		}
	case 024: // mode B: DPSZ
		if c.EAEModeB {
			c.eaeDPSZ()
		} else {
			c.SetAC(c.AC() | c.SC)
			c.eaeNMI()
		}
	case 025: // mode B: DPIC
		if c.EAEModeB {
			c.eaeDPIC()
		} else {
			c.SetAC(c.AC() | c.SC)
			c.eaeSHL()
		}
	case 026: // mode B: DCM
		if c.EAEModeB {
			c.eaeDCM()
		} else {
			c.SetAC(c.AC() | c.SC)
			c.eaeASR()
		}
	case 027: // mode B: SAM
		if c.EAEModeB {
			c.eaeSAM()
		} else {
			c.SetAC(c.AC() | c.SC)
			c.eaeLSR()
		}
	case 001: // mode B: ACS
		if c.EAEModeB {
			c.eaeACS()
		}
	case 002: // MUY (both modes, mode B defers through memory first)
		c.eaeMUY()
	case 003: // DVI (both modes, mode B defers through memory first)
		c.eaeDVI()
	case 004: // NMI (both modes)
		c.eaeNMI()
	case 5: // SHL (both modes)
		c.eaeSHL()
	case 6: // ASR (both modes)
		c.eaeASR()
	case 7: // LSR (both modes)
		c.eaeLSR()
	}
}

// eaeOperand fetches the word the EAE operates on: in mode A this is
// always the word following the instruction (SC is loaded from it);
// in mode B it is a deferred (possibly autoincremented) memory
// reference, matching the DEFER sub-state's own autoincrement rule.
func (c *CPU) eaeOperand() uint16 {
	addr := c.PC
	field := int(c.IF())
	if c.EAEModeB {
		if (addr&pageMask) == 0 && (addr&0170) == 0010 {
			cur := c.readWord(field, addr)
			c.writeWord(field, addr, cur+1)
		}
		addr = c.readWord(field, addr)
		field = int(c.DF())
	}
	c.PC = (c.PC + 1) & 07777
	return c.readWord(field, addr)
}

func (c *CPU) eaeACS() {
	c.SC = c.AC() & 037
	c.SetAC(0)
}

func (c *CPU) eaeMUY() {
	operand := c.eaeOperand()
	product := uint32(c.MQ) * uint32(operand)
	product += uint32(c.AC())
	c.SetAC(uint16(product>>12) & 07777)
	c.MQ = uint16(product) & 07777
	c.SC = 014
}

func (c *CPU) eaeDVI() {
	operand := c.eaeOperand()
	if operand == 0 || c.AC() >= operand {
		c.SetL(1)
		c.MQ = ((c.MQ << 1) + 1) & 07777
		c.SC = 0
		return
	}
	dividend := uint32(c.AC())<<12 | uint32(c.MQ)
	c.MQ = uint16(dividend / uint32(operand) & 07777)
	arithmetic.Set(&c.LAC, uint16(dividend%uint32(operand)))
	c.SC = 015
}

func (c *CPU) eaeNMI() {
	temp := uint32(c.LAC)<<12 | uint32(c.MQ)
	sc := uint16(0)
	for (temp&017777777) != 0 && (temp&040000000) == ((temp<<1)&040000000) {
		temp <<= 1
		sc++
	}
	c.SC = sc
	arithmetic.Set(&c.LAC, uint16(temp>>12)&017777)
	c.MQ = uint16(temp) & 07777
	if c.EAEModeB && c.AC() == 04000 && c.MQ == 0 {
		c.SetAC(0)
	}
}

func (c *CPU) eaeShiftCount() uint16 {
	operand := c.eaeOperand()
	extra := uint16(1)
	if c.EAEModeB {
		extra = 0
	}
	return (operand & 037) + extra
}

func (c *CPU) eaeSHL() {
	sc := c.eaeShiftCount()
	var temp uint32
	if sc <= 25 {
		temp = (uint32(c.LAC)<<12 | uint32(c.MQ)) << sc
	}
	arithmetic.Set(&c.LAC, uint16(temp>>12)&017777)
	c.MQ = uint16(temp) & 07777
	if c.EAEModeB {
		c.SC = 037
	} else {
		c.SC = 0
	}
}

func (c *CPU) eaeASR() {
	sc := c.eaeShiftCount()
	temp := int32(uint32(c.AC())<<12 | uint32(c.MQ))
	if c.L() != 0 {
		temp |= ^int32(037777777)
	}
	if c.EAEModeB && sc != 0 {
		c.GreaterThan = ((temp >> (sc - 1)) & 1) != 0
	}
	if sc > 25 {
		if c.L() != 0 {
			temp = -1
		} else {
			temp = 0
		}
	} else {
		temp >>= sc
	}
	arithmetic.Set(&c.LAC, uint16(temp>>12)&017777)
	c.MQ = uint16(temp) & 07777
	if c.EAEModeB {
		c.SC = 037
	} else {
		c.SC = 0
	}
}

func (c *CPU) eaeLSR() {
	sc := c.eaeShiftCount()
	temp := (uint32(c.AC())<<12 | uint32(c.MQ)) >> sc
	arithmetic.Set(&c.LAC, uint16(temp>>12)&017777)
	c.MQ = uint16(temp) & 07777
	if c.EAEModeB {
		c.SC = 037
	} else {
		c.SC = 0
	}
}

// Double-precision mode B operations. Grounded on the fuller EAE
// microcode table; implemented at reasonable fidelity rather than
// exhaustively, per the open question on EAE completeness.
func (c *CPU) eaeDAD() {
	addr := c.PC
	field := int(c.IF())
	if (addr&pageMask) == 0 && (addr&0170) == 0010 {
		cur := c.readWord(field, addr)
		c.writeWord(field, addr, cur+1)
		addr = cur + 1
	} else {
		addr = c.readWord(field, addr)
	}
	field = int(c.DF())
	lo := c.readWord(field, addr)
	sum := uint32(c.MQ) + uint32(lo)
	c.MQ = uint16(sum) & 07777
	carry := sum >> 12
	addr = (addr + 1) & 07777
	hi := c.readWord(field, addr)
	arithmetic.Set(&c.LAC, uint16((uint32(c.AC())+uint32(hi)+carry)&017777))
	c.PC = (c.PC + 1) & 07777
}

func (c *CPU) eaeDST() {
	addr := c.PC
	field := int(c.IF())
	addr = c.readWord(field, addr)
	field = int(c.DF())
	c.writeWord(field, addr, c.MQ)
	addr = (addr + 1) & 07777
	c.writeWord(field, addr, c.AC())
	c.PC = (c.PC + 1) & 07777
}

func (c *CPU) eaeDPSZ() {
	if c.AC() == 0 && c.MQ == 0 {
		c.PC = (c.PC + 1) & 07777
	}
}

func (c *CPU) eaeDPIC() {
	temp := (c.LAC + 1) & 07777
	carry := uint16(0)
	if temp == 0 {
		carry = 1
	}
	arithmetic.Set(&c.LAC, c.MQ+carry)
	c.MQ = temp
}

func (c *CPU) eaeDCM() {
	temp := (-c.LAC) & 07777
	carry := uint16(0)
	if temp == 0 {
		carry = 1
	}
	arithmetic.Set(&c.LAC, (c.MQ^07777)+carry)
	c.MQ = temp
}

func (c *CPU) eaeSAM() {
	temp := c.AC()
	arithmetic.Set(&c.LAC, c.MQ+(temp^07777)+1)
	c.GreaterThan = (temp <= c.MQ) != ((temp^c.MQ)&04000 != 0)
}
