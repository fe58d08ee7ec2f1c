/*
 * pdp8i - front panel switch register operations
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

package machine

import "pdp8i/internal/memory"

// SetSwitches dials in the panel switch register. LoadAddressFromSwitches
// and DepositAtPC below read it; ExamineAtPC does not use it.
func (m *Machine) SetSwitches(v uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CPU.SR = v & 07777
}

// Switches reports the current switch register setting.
func (m *Machine) Switches() uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CPU.SR
}

// LoadAddressFromSwitches is the panel's LOAD ADD action: PC takes the
// full switch register, IF takes SR<3:5> and DF takes SR<0:2> (bits 6-8
// and 9-11 counted from the least significant bit).
func (m *Machine) LoadAddressFromSwitches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	sr := m.CPU.SR
	m.CPU.PC = sr
	m.CPU.SetIF((sr >> 6) & 07)
	m.CPU.SetDF((sr >> 9) & 07)
}

// Status is a point-in-time snapshot of the registers a front panel
// displays, taken under the executor's lock.
type Status struct {
	PC, AC, L, SR, IF, DF uint16
	Halt, Idle, Running   bool
}

// Snapshot returns the current panel-visible register state.
func (m *Machine) Snapshot() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{
		PC:      m.CPU.PC,
		AC:      m.CPU.AC(),
		L:       m.CPU.L(),
		SR:      m.CPU.SR,
		IF:      m.CPU.IF(),
		DF:      m.CPU.DF(),
		Halt:    m.CPU.Halt,
		Idle:    m.CPU.Idle,
		Running: m.running,
	}
}

// DepositAtPC is the panel's DEPOSIT action: the switch register is
// written to the current instruction field at PC, then PC advances.
func (m *Machine) DepositAtPC() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Mem.Write(int(m.CPU.IF()), m.CPU.PC, m.CPU.SR)
	m.CPU.PC = (m.CPU.PC + 1) & 07777
}

// ExamineAtPC is the panel's EXAMINE action: the word at the current
// instruction field and PC is returned, then PC advances.
func (m *Machine) ExamineAtPC() memory.Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	cell := m.Mem.Read(int(m.CPU.IF()), m.CPU.PC)
	m.CPU.PC = (m.CPU.PC + 1) & 07777
	return cell
}
