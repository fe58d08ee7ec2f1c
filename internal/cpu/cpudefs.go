/*
 * pdp8i - CPU state
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

// Package cpu implements the PDP-8/I fetch/defer/execute/interrupt cycle,
// the operate-instruction microcode groups, and the IOT dispatcher.
package cpu

import (
	"pdp8i/internal/device"
	"pdp8i/internal/memory"
	"pdp8i/internal/register"
)

// CycleState is one sub-state of the instruction cycle state machine.
type CycleState int

const (
	Fetch CycleState = iota
	Defer
	Execute
	Interrupt
	Pause
)

func (c CycleState) String() string {
	switch c {
	case Fetch:
		return "Fetch"
	case Defer:
		return "Defer"
	case Execute:
		return "Execute"
	case Interrupt:
		return "Interrupt"
	default:
		return "Pause"
	}
}

// Memory-reference and other opcodes, decoded from IR<0:2>.
const (
	OpAND uint16 = iota
	OpTAD
	OpISZ
	OpDCA
	OpJMS
	OpJMP
	OpIOT
	OpOPR
)

// OpKSF and OpCLSC are the two instructions the JMP idle detector
// recognizes when scanning the word before a JMP .-1 target.
const (
	OpKSF  uint16 = 06031
	OpCLSC uint16 = 06053
)

// Register slices. Most operate on more than one backing word: the
// same (width, offset) pair that decodes IR's device/field bits is
// reused to pack and unpack the GTF/RTF accumulator image, exactly as
// the slice carries no state of its own.
var (
	arithmetic     = register.Slice{Width: 13, Offset: 0} // LAC as one 13-bit value
	linkBit        = register.Slice{Width: 1, Offset: 12} // L
	acWord         = register.Slice{Width: 12, Offset: 0} // AC
	mostSignf      = register.Slice{Width: 1, Offset: 11} // AC<0>, sign bit
	leastSignf     = register.Slice{Width: 1, Offset: 0}  // AC<11>
	upperNibble    = register.Slice{Width: 6, Offset: 6}
	lowerNibble    = register.Slice{Width: 6, Offset: 0}

	irOpcode    = register.Slice{Width: 3, Offset: 9} // IR<0:2>
	irIndirect  = register.Slice{Width: 1, Offset: 8}  // IR<3>
	irMemPage   = register.Slice{Width: 1, Offset: 7}  // IR<4>
	irPageAddr  = register.Slice{Width: 5, Offset: 7}  // IR<0:4>, the same bits pageMask selects
	irAddr      = register.Slice{Width: 7, Offset: 0}  // IR<5:11>
	irOprBits   = register.Slice{Width: 9, Offset: 0}  // IR<3:11>, the OPR microcode field
	irDevSel    = register.Slice{Width: 6, Offset: 3}  // IR<3:8>, IOT device select
	irDevOpr    = register.Slice{Width: 3, Offset: 0}  // IR<9:11>, IOT pulse

	fieldIF = register.Slice{Width: 3, Offset: 3} // instruction field within a Field register
	fieldDF = register.Slice{Width: 3, Offset: 0} // data field within a Field register

	mbInit = register.Slice{Width: 1, Offset: 12} // MB's "cell has been written" flag

	gtfLink    = register.Slice{Width: 1, Offset: 11} // bit0 of the PDP-8/I manual's GTF/RTF layout
	gtfGT      = register.Slice{Width: 1, Offset: 10} // bit1
	gtfIR      = register.Slice{Width: 1, Offset: 9}  // bit2
	gtfIE      = register.Slice{Width: 1, Offset: 7}  // bit4
)

// CPU is one PDP-8/I processor: registers, cycle state, and the
// attached IOT device table.
type CPU struct {
	Mem *memory.Memory

	PC  uint16 // 12-bit program counter within the current IF
	LAC uint16 // 13-bit link+accumulator (bit 12 = link)
	MQ  uint16 // 12-bit multiplier-quotient (EAE)
	SC  uint16 // 5-bit step counter (EAE)
	SR  uint16 // 12-bit switch register (panel)

	IR uint16 // decoded instruction register
	MB uint16 // memory buffer: data in bits 0-11, init flag in bit 12
	MA uint16 // 12-bit address within MAField
	MAField int

	Field      uint16 // IF@bits 3-5, DF@bits 0-2
	InstBuffer uint16 // IB, buffered IF applied at next JMP/JMS
	SaveField  uint16 // (IF,DF) snapshot taken on interrupt entry

	EAEModeB bool // EAE mode B (extended) vs mode A (PDP-8/I compatible)

	CycleState  CycleState
	Instruction uint16

	InterruptEnable   bool
	InterruptRequest  bool
	InterruptDeferred bool
	InterruptDelayed  int
	GreaterThan       bool
	ShortJmp          bool
	Halt              bool
	Run               bool
	Idle              bool
	Error             bool

	Devices [64]device.Device
}

// New returns a CPU attached to mem, reset to its power-up condition.
func New(mem *memory.Memory) *CPU {
	c := &CPU{Mem: mem}
	c.Reset()
	return c
}

// Reset restores power-up condition: cleared registers, interrupts
// disabled, cycle state poised to begin at Fetch.
func (c *CPU) Reset() {
	c.LAC = 0
	c.MQ = 0
	c.SC = 0
	c.InterruptDelayed = 0
	c.InterruptEnable = false
	c.InterruptDeferred = false
	c.InterruptRequest = false
	c.Error = false
	c.Halt = false
	c.Idle = false
	c.ShortJmp = false
	c.CycleState = Fetch
}

// AC returns the 12-bit accumulator.
func (c *CPU) AC() uint16 { return acWord.Get(c.LAC) }

// SetAC replaces the accumulator, leaving the link untouched.
func (c *CPU) SetAC(v uint16) { acWord.Set(&c.LAC, v) }

// L returns the link bit (0 or 1).
func (c *CPU) L() uint16 { return linkBit.Get(c.LAC) }

// SetL replaces the link bit, leaving the accumulator untouched.
func (c *CPU) SetL(v uint16) { linkBit.Set(&c.LAC, v) }

// IF returns the current instruction field.
func (c *CPU) IF() uint16 { return fieldIF.Get(c.Field) }

// DF returns the current data field.
func (c *CPU) DF() uint16 { return fieldDF.Get(c.Field) }

// SetIF sets the current instruction field directly, the panel's
// LOAD ADD action rather than a CIF IOT pulse (which instead buffers
// into InstBuffer for the next JMP/JMS).
func (c *CPU) SetIF(v uint16) { fieldIF.Set(&c.Field, v) }

// SetDF sets the current data field directly, the panel's LOAD ADD
// action.
func (c *CPU) SetDF(v uint16) { fieldDF.Set(&c.Field, v) }

// IB returns the buffered instruction field, applied on the next JMP/JMS.
func (c *CPU) IB() uint16 { return fieldIF.Get(c.InstBuffer) }

// SetIB sets the buffered instruction field (the value a CIF IOT pulse
// loads), committed to IF by the next JMP/JMS.
func (c *CPU) SetIB(v uint16) { fieldIF.Set(&c.InstBuffer, v) }

// AttachDevice registers d at the given 6-bit device number. Device 0
// and the memory-extension range 020-027 are answered internally by
// the CPU and may not be overridden.
func (c *CPU) AttachDevice(dev uint8, d device.Device) bool {
	if device.Reserved(dev) || dev >= 64 {
		return false
	}
	c.Devices[dev] = d
	return true
}
