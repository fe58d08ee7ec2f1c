/*
 * pdp8i - Instruction cycle
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

import (
	"pdp8i/internal/memory"
	"pdp8i/internal/trace"
)

// pageMask covers the 5 page-select bits (bits 7-11) of a 12-bit address.
const pageMask = 07600

// readWord reads a word from the given field/address and returns it
// already masked to 12 bits, tracking the init flag in MB.
func (c *CPU) readWord(field int, addr uint16) uint16 {
	b := c.Mem.Read(field, addr)
	c.MB = uint16(b.Data)
	mbInit.Set(&c.MB, boolBit(b.Init))
	return b.Data
}

func boolBit(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

func (c *CPU) writeWord(field int, addr uint16, data uint16) {
	c.Mem.Write(field, addr, data)
}

// fetch reads the next instruction, advances PC, and computes the
// memory-reference address bits when applicable.
func (c *CPU) fetch() {
	c.MA = c.PC
	c.MAField = int(c.IF())
	instructionPage := c.MA & pageMask
	word := c.readWord(c.MAField, c.MA)
	c.IR = word
	c.Instruction = irOpcode.Get(word)
	c.PC = (c.PC + 1) & memory.WordMask

	if c.Instruction < OpIOT {
		c.MA = irAddr.Get(word)
		if irMemPage.Get(word) != 0 {
			c.MA |= instructionPage
		}
	}
}

// defer resolves one level of indirection, honoring the eight
// autoincrement cells 010-017 of page 0 in the current instruction
// field (every field has its own autoincrement registers, not just
// field 0).
func (c *CPU) defer_() {
	if (c.MA&pageMask) == 0 && (c.MA&0170) == 0010 {
		cur := c.readWord(c.MAField, c.MA)
		c.writeWord(c.MAField, c.MA, cur+1)
	}
	word := c.readWord(c.MAField, c.MA)
	c.MA = word
}

// pollDeviceInterrupts ORs every attached device's interrupt request
// line into the architectural interrupt request flag, so a flag an
// asynchronous device goroutine raised between instructions (the
// clock tick, a keyboard character) is visible at this instruction's
// C3 check. It only ever sets the flag; it is cleared either by
// actually entering interrupt service or by RTF loading a fresh value
// from AC, matching the flag's save/restore role in GTF/RTF.
func (c *CPU) pollDeviceInterrupts() {
	for _, d := range c.Devices {
		if d != nil && d.InterruptRequest() {
			c.InterruptRequest = true
		}
	}
}

// Step advances the instruction cycle by exactly one sub-state, the
// front panel's SING STEP granularity. skipInterrupt, when true, causes
// a completed Interrupt sub-state to fall straight through to the next
// Fetch in the same call; InstructionStep always passes false so each
// of its Step calls stops at a single sub-state boundary.
func (c *CPU) Step(skipInterrupt bool) {
	for again := true; again; {
		switch c.CycleState {
		case Fetch:
			c.fetch()
			if c.Instruction < OpIOT && irIndirect.Get(c.IR) != 0 {
				c.CycleState = Defer
			} else {
				c.CycleState = Execute
			}
			again = false

		case Defer:
			c.defer_()
			c.CycleState = Execute
			again = false

		case Execute:
			c.execute()
			c.CycleState = Interrupt
			again = false

		case Interrupt:
			c.pollDeviceInterrupts()
			if !c.InterruptDeferred && c.InterruptEnable && c.InterruptRequest {
				c.SaveField = c.Field
				fieldIF.Set(&c.Field, 0)
				fieldDF.Set(&c.Field, 0)
				fieldIF.Set(&c.InstBuffer, 0)
				c.InterruptEnable = false
				c.InterruptRequest = false
				c.writeWord(0, 0, c.PC)
				c.PC = 1
				trace.Interruptf("service: save=%04o pc->1", c.SaveField)
			}
			if c.InterruptDelayed > 0 {
				c.InterruptDelayed--
				if c.InterruptDelayed == 0 {
					c.InterruptEnable = true
				}
			}
			c.CycleState = Fetch
			again = skipInterrupt

		case Pause:
			again = false
		}
	}
}

// InstructionStep runs the cycle state machine for exactly one full
// instruction (fetch through its trailing interrupt check), leaving
// CycleState back at Fetch. Callers always invoke it with the CPU
// parked at a Fetch boundary, so the first Step always leaves Fetch
// before the loop below walks it back.
func (c *CPU) InstructionStep() {
	c.Step(false)
	for c.CycleState != Fetch {
		c.Step(false)
	}
}

// execute dispatches on the decoded opcode.
func (c *CPU) execute() {
	switch c.Instruction {
	case OpAND:
		v := c.readWord(int(c.DF()), c.MA)
		c.SetAC(c.AC() & v)
	case OpTAD:
		v := c.readWord(int(c.DF()), c.MA)
		arithmetic.Set(&c.LAC, arithmetic.Get(c.LAC)+v)
	case OpISZ:
		v := (c.readWord(int(c.DF()), c.MA) + 1) & memory.WordMask
		c.writeWord(int(c.DF()), c.MA, v)
		if v == 0 {
			c.PC = (c.PC + 1) & memory.WordMask
		}
	case OpDCA:
		c.writeWord(int(c.DF()), c.MA, c.AC())
		c.SetAC(0)
	case OpJMS:
		c.writeWord(c.MAField, c.MA, c.PC)
		c.PC = (c.MA + 1) & memory.WordMask
		c.InterruptDeferred = false
		fieldIF.Set(&c.Field, c.IB())
	case OpJMP:
		c.executeJMP()
	case OpIOT:
		c.executeIOT()
	case OpOPR:
		c.executeOPR()
	}
}

// executeJMP implements direct-JMP idle/halt detection (§4.4) before
// committing the jump.
func (c *CPU) executeJMP() {
	if irIndirect.Get(c.IR) == 0 {
		if (c.PC-2) == c.MA {
			w := c.readWord(c.MAField, c.MA)
			if w == OpKSF || w == OpCLSC {
				c.Idle = true
			}
		} else if (c.PC - 1) == c.MA {
			if c.InterruptEnable || c.InterruptDelayed > 0 {
				c.Idle = true
			} else {
				c.Halt = true
			}
		}
	}
	c.PC = c.MA
	c.InterruptDeferred = false
	fieldIF.Set(&c.Field, c.IB())
}
