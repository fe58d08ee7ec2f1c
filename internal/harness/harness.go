/*
 * pdp8i - scenario test harness
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

// Package harness assembles PAL source directly into memory for
// scenario tests, so a test reads as a program rather than a list of
// hand-poked opcodes.
package harness

import (
	"testing"

	"pdp8i/internal/assemble"
	"pdp8i/internal/cpu"
	"pdp8i/internal/memory"
)

// maxSteps bounds a runaway program; a scenario test that needs more
// than this many instructions to reach HLT is almost certainly wrong.
const maxSteps = 100000

// AssembleAndRun assembles source, loads it into field 0 of a fresh
// memory, and runs the CPU from its first assembled address until it
// halts or goes idle. It fails the test on an assembly error or if the
// program never stops within maxSteps instructions.
func AssembleAndRun(t *testing.T, source string) *cpu.CPU {
	t.Helper()

	mem := memory.New(1)
	c := cpu.New(mem)
	prog := Load(t, mem, source)
	if len(prog.Words) > 0 {
		c.PC = prog.Words[0].Address
	}

	for i := 0; i < maxSteps; i++ {
		if c.Halt || c.Idle {
			return c
		}
		c.InstructionStep()
	}
	t.Fatalf("program did not halt within %d instructions", maxSteps)
	return nil
}

// Load assembles source and deposits its words into field 0 of mem,
// without touching any CPU state. Useful for tests that want to poke
// registers before starting execution.
func Load(t *testing.T, mem *memory.Memory, source string) *assemble.Program {
	t.Helper()

	prog, err := assemble.Assemble(source)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	for _, w := range prog.Words {
		mem.Write(0, w.Address, w.Data)
	}
	return prog
}
