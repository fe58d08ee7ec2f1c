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

import (
	"testing"

	"pdp8i/internal/device"
)

// runOPR pokes ir as the current instruction and runs the Group 2
// microcode directly, returning whether PC advanced (the skip taken).
func runOPR(c *CPU, ir uint16) bool {
	c.IR = ir
	pc := c.PC
	c.executeOPR()
	return c.PC != pc
}

func TestGroup2SMASkipsOnNegativeAC(t *testing.T) {
	c := newTestCPU()
	c.SetAC(04000) // sign bit set
	if !runOPR(c, 07500) {
		t.Errorf("SMA: expected skip on negative AC")
	}
	c.SetAC(00001)
	if runOPR(c, 07500) {
		t.Errorf("SMA: expected no skip on positive AC")
	}
}

func TestGroup2SPASkipsOnPositiveAC(t *testing.T) {
	c := newTestCPU()
	c.SetAC(00001)
	if !runOPR(c, 07510) {
		t.Errorf("SPA: expected skip on positive AC")
	}
	c.SetAC(04000)
	if runOPR(c, 07510) {
		t.Errorf("SPA: expected no skip on negative AC")
	}
}

func TestGroup2SZASkipsOnZeroAC(t *testing.T) {
	c := newTestCPU()
	c.SetAC(0)
	if !runOPR(c, 07440) {
		t.Errorf("SZA: expected skip when AC == 0")
	}
	c.SetAC(1)
	if runOPR(c, 07440) {
		t.Errorf("SZA: expected no skip when AC != 0")
	}
}

func TestGroup2SNASkipsOnNonzeroAC(t *testing.T) {
	c := newTestCPU()
	c.SetAC(1)
	if !runOPR(c, 07450) {
		t.Errorf("SNA: expected skip when AC != 0")
	}
	c.SetAC(0)
	if runOPR(c, 07450) {
		t.Errorf("SNA: expected no skip when AC == 0")
	}
}

func TestGroup2SNLSkipsOnLinkSet(t *testing.T) {
	c := newTestCPU()
	c.SetL(1)
	if !runOPR(c, 07420) {
		t.Errorf("SNL: expected skip when L == 1")
	}
	c.SetL(0)
	if runOPR(c, 07420) {
		t.Errorf("SNL: expected no skip when L == 0")
	}
}

func TestGroup2SZLSkipsOnLinkClear(t *testing.T) {
	c := newTestCPU()
	c.SetL(0)
	if !runOPR(c, 07430) {
		t.Errorf("SZL: expected skip when L == 0")
	}
	c.SetL(1)
	if runOPR(c, 07430) {
		t.Errorf("SZL: expected no skip when L == 1")
	}
}

func TestGroup2SKPAlwaysSkips(t *testing.T) {
	c := newTestCPU()
	c.SetAC(0)
	c.SetL(1)
	if !runOPR(c, 07410) {
		t.Errorf("SKP: expected unconditional skip")
	}
}

// fakeDevice asserts an interrupt request with no IOT behavior of its
// own, standing in for a peripheral like the clock or teleprinter.
type fakeDevice struct {
	irq bool
	srq bool
}

func (d *fakeDevice) Operate(pulse uint8, ac uint16) device.Result { return device.Result{} }
func (d *fakeDevice) InterruptRequest() bool                       { return d.irq }
func (d *fakeDevice) ServiceRequest() bool                         { return d.srq }
func (d *fakeDevice) SetServiceRequest(v bool)                     { d.srq = v }

func TestDeviceInterruptRequestReachesInterruptCheck(t *testing.T) {
	c := newTestCPU()
	c.Mem.Write(0, 0200, 07000) // NOP
	c.PC = 0200
	c.InterruptEnable = true

	dev := &fakeDevice{irq: true}
	if !c.AttachDevice(010, dev) {
		t.Fatalf("AttachDevice failed")
	}

	c.InstructionStep()

	if c.PC != 1 {
		t.Errorf("PC = %04o, want 1 (interrupt entered from device flag)", c.PC)
	}
	if c.InterruptRequest {
		t.Errorf("InterruptRequest still set after interrupt entry")
	}
}

func TestDeviceInterruptRequestLeavesFlagClearWhenIdle(t *testing.T) {
	c := newTestCPU()
	c.Mem.Write(0, 0200, 07000) // NOP
	c.PC = 0200
	c.InterruptEnable = true

	dev := &fakeDevice{irq: false}
	c.AttachDevice(010, dev)

	c.InstructionStep()

	if c.InterruptRequest {
		t.Errorf("InterruptRequest set though no device is asserting")
	}
	if c.PC != 0201 {
		t.Errorf("PC = %04o, want 0201 (no interrupt taken)", c.PC)
	}
}
