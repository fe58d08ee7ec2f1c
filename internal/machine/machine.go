/*
 * pdp8i - machine executor and panel primitives
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

// Package machine wraps a CPU and its memory in the executor goroutine
// and the small set of panel-level operations (deposit, examine, load
// address, run/stop) a front end drives it with. The executor loop and
// its command channel are adapted from the teacher's emu/core.
package machine

import (
	"log/slog"
	"sync"
	"time"

	"pdp8i/internal/cpu"
	"pdp8i/internal/memory"
)

// Command selects the operation a Packet carries across the command
// channel to the executor goroutine.
type Command int

const (
	CmdStart Command = iota
	CmdStop
	CmdContinue
	CmdStep
	CmdLoadAddress
)

// Packet is one request sent to the running Machine.
type Packet struct {
	Cmd     Command
	Address uint16
}

// Machine owns one CPU, its memory, and the goroutine that advances
// the CPU when running. Deposit/Examine/InstallRIMLoader are safe to
// call concurrently with a running executor; they take the same mutex
// the executor checks before each instruction.
type Machine struct {
	mu  sync.Mutex
	CPU *cpu.CPU
	Mem *memory.Memory

	wg      sync.WaitGroup
	done    chan struct{}
	command chan Packet
	running bool
}

// New returns a Machine with fields memory fields and a freshly reset
// CPU, not yet running.
func New(fields int) *Machine {
	mem := memory.New(fields)
	return &Machine{
		Mem:     mem,
		CPU:     cpu.New(mem),
		done:    make(chan struct{}),
		command: make(chan Packet, 8),
	}
}

// Run starts the executor goroutine. It advances one instruction at a
// time while running, and otherwise blocks waiting for a command.
func (m *Machine) Run() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for {
			select {
			case <-m.done:
				slog.Info("machine executor stopped")
				return
			case pkt := <-m.command:
				m.handle(pkt)
			default:
			}

			m.mu.Lock()
			running := m.running
			m.mu.Unlock()
			if !running {
				time.Sleep(time.Millisecond)
				continue
			}

			m.mu.Lock()
			if m.CPU.Idle || m.CPU.Halt {
				m.running = false
				m.mu.Unlock()
				continue
			}
			m.CPU.InstructionStep()
			m.mu.Unlock()
		}
	}()
}

// Stop signals the executor to exit and waits up to a second for it.
func (m *Machine) Stop() {
	close(m.done)
	finished := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		slog.Warn("timed out waiting for machine executor to stop")
	}
}

// Submit enqueues a panel command for the executor goroutine.
func (m *Machine) Submit(pkt Packet) {
	m.command <- pkt
}

func (m *Machine) handle(pkt Packet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch pkt.Cmd {
	case CmdStart:
		m.CPU.Reset()
		m.CPU.PC = pkt.Address
		m.running = true
	case CmdStop:
		m.running = false
	case CmdContinue:
		m.CPU.Halt = false
		m.CPU.Idle = false
		m.running = true
	case CmdStep:
		m.CPU.InstructionStep()
	case CmdLoadAddress:
		m.CPU.PC = pkt.Address
	}
}

// Deposit writes data into the given field/address, marking the cell
// initialized. Safe to call while the executor is running.
func (m *Machine) Deposit(field int, addr uint16, data uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Mem.Write(field, addr, data)
}

// Examine returns the contents of the given field/address without
// altering memory's initialized-cell tracking.
func (m *Machine) Examine(field int, addr uint16) memory.Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Mem.Read(field, addr)
}

// LoadAddress sets PC directly, the panel's "load address" switch
// action, without touching run state.
func (m *Machine) LoadAddress(addr uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CPU.PC = addr
}

// Running reports whether the executor is currently advancing the CPU.
func (m *Machine) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
