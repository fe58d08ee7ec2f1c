/*
 * pdp8i - DECwriter console (keyboard + printer)
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

// Package teleprinter implements the DECwriter console: a keyboard
// device and a printer device sharing one interrupt line, backed by
// an external io.Reader (keyboard source) and io.Writer (printer
// sink) rather than a telnet terminal.
package teleprinter

import (
	"bufio"
	"io"
	"sync"

	"pdp8i/internal/device"
)

// Teleprinter holds the shared state of the DECwriter console.
// Register its Keyboard and Printer views at two distinct IOT device
// numbers (conventionally 3 and 4).
type Teleprinter struct {
	mu sync.Mutex

	in  *bufio.Reader
	out io.Writer

	keyboardBuffer  uint16
	printerBuffer   uint16
	interruptEnable bool
	printerFlag     bool
	keyboardFlag    bool
	srq             bool
}

// New returns a Teleprinter reading keyboard bytes from in and
// writing printed bytes to out.
func New(in io.Reader, out io.Writer) *Teleprinter {
	return &Teleprinter{in: bufio.NewReader(in), out: out, printerFlag: true}
}

// Keyboard adapts Teleprinter to device.Device for the keyboard's
// device number: KCF, KSF, KRS, KIE, KRB.
type Keyboard struct{ *Teleprinter }

// Printer adapts Teleprinter to device.Device for the printer's
// device number: TFL, TSF, TCF, TPC, TSK, TLS.
type Printer struct{ *Teleprinter }

var (
	_ device.Device = Keyboard{}
	_ device.Device = Printer{}
)

// Operate implements the keyboard pulses. KRS ORs the last character
// read into AC; KRB clears the flag, polls for the next character,
// and loads AC outright; KIE reads the enable bit from AC<11>.
func (k Keyboard) Operate(pulse uint8, ac uint16) device.Result {
	t := k.Teleprinter
	t.mu.Lock()
	defer t.mu.Unlock()
	switch pulse {
	case 0: // KCF
		t.keyboardFlag = false
		t.pollKeyboardLocked()
	case 1: // KSF
		if t.keyboardFlag {
			return device.Result{Skip: true}
		}
	case 4: // KRS
		return device.Result{ORAC: true, NewAC: t.keyboardBuffer & 0377}
	case 5: // KIE
		t.interruptEnable = ac&01 == 01
	case 6: // KRB
		t.keyboardFlag = false
		buf := t.keyboardBuffer & 0377
		t.pollKeyboardLocked()
		return device.Result{SetAC: true, NewAC: buf}
	}
	return device.Result{}
}

func (k Keyboard) InterruptRequest() bool   { return k.Teleprinter.interruptRequest() }
func (k Keyboard) ServiceRequest() bool     { return k.Teleprinter.serviceRequest() }
func (k Keyboard) SetServiceRequest(v bool) { k.Teleprinter.setServiceRequest(v) }

// Operate implements the printer pulses. TPC and TLS load the
// character to print from AC's low 8 bits (the accumulator's ASCII
// view); TLS also drains it to the sink.
func (p Printer) Operate(pulse uint8, ac uint16) device.Result {
	t := p.Teleprinter
	t.mu.Lock()
	defer t.mu.Unlock()
	switch pulse {
	case 0: // TFL
		t.printerFlag = true
	case 1: // TSF
		if t.printerFlag {
			return device.Result{Skip: true}
		}
	case 2: // TCF
		t.printerFlag = false
	case 4: // TPC
		t.printerBuffer = ac & 0377
	case 5: // TSK
		if t.printerFlag || t.keyboardFlag {
			return device.Result{Skip: true}
		}
	case 6: // TLS
		t.printerBuffer = ac & 0377
		t.printerFlag = false
		t.drainPrinterLocked()
	}
	return device.Result{}
}

func (p Printer) InterruptRequest() bool   { return p.Teleprinter.interruptRequest() }
func (p Printer) ServiceRequest() bool     { return p.Teleprinter.serviceRequest() }
func (p Printer) SetServiceRequest(v bool) { p.Teleprinter.setServiceRequest(v) }

func (t *Teleprinter) interruptRequest() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return (t.printerFlag || t.keyboardFlag) && t.interruptEnable
}

func (t *Teleprinter) serviceRequest() bool { t.mu.Lock(); defer t.mu.Unlock(); return t.srq }

func (t *Teleprinter) setServiceRequest(v bool) {
	t.mu.Lock()
	t.srq = v
	t.mu.Unlock()
}

// drainPrinterLocked writes the loaded character to the sink. Caller
// holds t.mu.
func (t *Teleprinter) drainPrinterLocked() {
	if t.out != nil {
		t.out.Write([]byte{byte(t.printerBuffer & 0377)})
	}
	t.printerFlag = true
}

// pollKeyboardLocked pulls the next byte from the input source if the
// keyboard flag is clear. Caller holds t.mu.
func (t *Teleprinter) pollKeyboardLocked() {
	if t.keyboardFlag || t.in == nil {
		return
	}
	b, err := t.in.ReadByte()
	if err != nil {
		return
	}
	t.keyboardBuffer = uint16(b)
	t.keyboardFlag = true
}
