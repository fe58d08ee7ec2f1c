/*
 * pdp8i - IOT peripheral contract
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

// Package device declares the capability set an IOT peripheral must
// implement to be addressed from the CPU's device table. Unlike the
// channel-attached devices of a mainframe, a PDP-8 peripheral is
// reached directly by a single IOT instruction: device number in
// IR<3:8>, a 3-bit pulse in IR<9:11>. There is no command chaining and
// no channel end/device end protocol, so the interface is much smaller
// than a mainframe Device: one entry point to execute a pulse, plus the
// two asynchronous signal lines a peripheral may assert between
// instructions.
package device

// Result carries back what operating on a device asked the CPU to do.
// A device that needs to read or change the accumulator (KRS, KIE,
// TPC and the like) does so through AC/SetAC rather than a CPU
// reference, keeping the capability set small and avoiding an import
// cycle back to the cpu package.
type Result struct {
	Skip   bool   // request PC++ (pulse's skip condition was satisfied)
	Halt   bool   // request the CPU enter the Halt condition
	SetAC  bool   // if true, the CPU replaces AC with NewAC
	ORAC   bool   // if true, the CPU ORs NewAC into AC instead of replacing it
	NewAC  uint16 // value used by SetAC/ORAC
}

// Device is an IOT peripheral addressable at a 6-bit device number.
// Operate is called once per IOT instruction targeting that device,
// with the 3-bit pulse decoded from IR<9:11> and the accumulator's
// current contents (for pulses like KIE that branch on an AC bit).
type Device interface {
	// Operate executes one IOT pulse and reports any skip/halt/AC
	// update request.
	Operate(pulse uint8, ac uint16) Result

	// InterruptRequest reports whether the device currently asserts an
	// interrupt; ORed with every other attached device and the CPU's
	// own pending flags to form the architectural interrupt line.
	InterruptRequest() bool

	// ServiceRequest and SetServiceRequest expose an optional
	// asynchronous service line used by devices that also need to be
	// polled outside of an IOT pulse (the PDP-8/I's "SRQ" bus signal).
	ServiceRequest() bool
	SetServiceRequest(bool)
}

// Reserved device numbers. The CPU itself answers device 0; devices
// 020-027 are the memory-extension control unit. Both are dispatched
// internally by the CPU and may never be occupied by an external
// Device registration.
const (
	CPUDevice       = 000
	MemExtDeviceLow = 020
	MemExtDeviceHi  = 027
)

// Reserved reports whether dev is one of the device numbers the CPU
// answers internally, and so may not carry an external registration.
func Reserved(dev uint8) bool {
	return dev == CPUDevice || (dev >= MemExtDeviceLow && dev <= MemExtDeviceHi)
}
