/*
 * pdp8i - IOT dispatcher
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

import "pdp8i/internal/trace"

// executeIOT decodes IR's device/pulse fields and routes to the
// CPU-internal device, the memory-extension control unit, or an
// external device registered with AttachDevice.
func (c *CPU) executeIOT() {
	dev := uint8(irDevSel.Get(c.IR))
	pulse := uint8(irDevOpr.Get(c.IR))

	switch {
	case dev == 0:
		c.iotCPU(pulse)
	case dev >= 020 && dev <= 027:
		c.iotMemExt()
	default:
		d := c.Devices[dev]
		if d == nil {
			trace.IOTf(dev, "unattached device, pulse %o ignored", pulse)
			return
		}
		result := d.Operate(pulse, c.AC())
		if result.Skip {
			c.PC = (c.PC + 1) & 07777
		}
		if result.Halt {
			c.Halt = true
		}
		if result.SetAC {
			c.SetAC(result.NewAC)
		} else if result.ORAC {
			c.SetAC(c.AC() | result.NewAC)
		}
		trace.IOTf(dev, "pulse %o -> skip=%v halt=%v", pulse, result.Skip, result.Halt)
	}
}

// iotCPU implements device 0, the CPU-internal pseudo-device: SKON,
// ION, IOF, SRQ, GTF, RTF, SGT, CAF.
func (c *CPU) iotCPU(pulse uint8) {
	switch pulse {
	case 0: // SKON
		if c.InterruptEnable {
			c.PC = (c.PC + 1) & 07777
		}
		c.InterruptEnable = false
	case 1: // ION
		c.InterruptDelayed = 2
	case 2: // IOF
		c.InterruptEnable = false
	case 3: // SRQ
		if c.InterruptRequest {
			c.PC = (c.PC + 1) & 07777
		}
	case 4: // GTF
		c.SetAC(0)
		gtfLink.Set(&c.LAC, c.L())
		gtfGT.Set(&c.LAC, boolBit(c.GreaterThan))
		gtfIR.Set(&c.LAC, boolBit(c.InterruptRequest))
		gtfIE.Set(&c.LAC, boolBit(c.InterruptEnable))
		fieldIF.Set(&c.LAC, c.IF())
		fieldDF.Set(&c.LAC, c.DF())
	case 5: // RTF
		c.SetL(gtfLink.Get(c.LAC))
		c.GreaterThan = gtfGT.Get(c.LAC) == 1
		c.InterruptRequest = gtfIR.Get(c.LAC) == 1
		if gtfIE.Get(c.LAC) != 0 {
			c.InterruptDelayed = 2
		} else {
			c.InterruptDelayed = 0
		}
		fieldIF.Set(&c.InstBuffer, fieldIF.Get(c.LAC))
		fieldDF.Set(&c.Field, fieldDF.Get(c.LAC))
	case 6: // SGT
		if c.GreaterThan {
			c.PC = (c.PC + 1) & 07777
		}
	case 7: // CAF
		c.PC = 0
		c.SetAC(0)
		c.SetL(0)
		c.InterruptEnable = false
		c.GreaterThan = false
		for i := range c.Devices {
			if c.Devices[i] != nil {
				c.Devices[i].SetServiceRequest(false)
			}
		}
	}
}

// iotMemExt implements the memory-extension control unit occupying
// device numbers 020-027: CDF, CIF, RDF, RIF, RIB, RMF.
func (c *CPU) iotMemExt() {
	word := c.IR
	switch word {
	case 06214: // RDF: read data field into AC<6:8>
		fieldIF.Set(&c.LAC, c.DF())
		return
	case 06224: // RIF: read instruction field into AC<6:8>
		fieldIF.Set(&c.LAC, c.IF())
		return
	case 06234: // RIB: read interrupt save field into AC<6:11>
		c.SetAC(c.SaveField & 077)
		return
	case 06244: // RMF: restore field register from the interrupt save field
		c.Field = c.SaveField
		return
	}
	if word&06200 == 06200 {
		if word&01 != 0 { // CDF
			fieldDF.Set(&c.Field, fieldIF.Get(word))
		}
		if word&02 != 0 { // CIF
			fieldIF.Set(&c.InstBuffer, fieldIF.Get(word))
			c.InterruptDeferred = true
		}
	}
}
