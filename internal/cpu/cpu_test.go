package cpu

import (
	"testing"

	"pdp8i/internal/memory"
)

func newTestCPU() *CPU {
	mem := memory.New(1)
	c := New(mem)
	c.Run = true
	return c
}

// Scenario A: CLA CLL CMA IAC, HLT.
func TestScenarioTrivialOPR(t *testing.T) {
	c := newTestCPU()
	c.Mem.Write(0, 0200, 07341) // CLA CLL CMA IAC
	c.Mem.Write(0, 0201, 07402) // HLT
	c.PC = 0200

	c.InstructionStep()
	c.InstructionStep()

	if c.AC() != 0 {
		t.Errorf("AC = %04o, want 0", c.AC())
	}
	if c.L() != 1 {
		t.Errorf("L = %d, want 1", c.L())
	}
	if !c.Halt {
		t.Errorf("Halt not set")
	}
	if c.PC != 0202 {
		t.Errorf("PC = %04o, want 0202", c.PC)
	}
}

// Scenario B: TAD I 010 through an autoincrement slot.
func TestScenarioIndirectAutoincrement(t *testing.T) {
	c := newTestCPU()
	c.Mem.Write(0, 010, 0000)
	c.Mem.Write(0, 001, 0001)   // operand at the incremented pointer
	c.Mem.Write(0, 0200, 07300) // CLA CLL
	c.Mem.Write(0, 0201, 01410) // TAD I 010
	c.Mem.Write(0, 0202, 07402) // HLT
	c.PC = 0200

	c.InstructionStep()
	c.InstructionStep()
	c.InstructionStep()

	if got := c.Mem.Read(0, 010).Data; got != 0001 {
		t.Errorf("autoincrement cell = %04o, want 0001", got)
	}
	if c.AC() != 0001 {
		t.Errorf("AC = %04o, want 0001", c.AC())
	}
	if c.L() != 0 {
		t.Errorf("L = %d, want 0", c.L())
	}
}

// Scenario C: KSF, JMP 0200 -- idle loop.
func TestScenarioJMPIdle(t *testing.T) {
	c := newTestCPU()
	c.Mem.Write(0, 0200, 06031) // KSF
	c.Mem.Write(0, 0201, 05200) // JMP 0200
	c.Mem.Write(0, 0202, 07402) // HLT
	c.PC = 0200

	c.InstructionStep()
	c.InstructionStep()

	if !c.Idle {
		t.Errorf("Idle not set")
	}
	if c.Halt {
		t.Errorf("Halt unexpectedly set")
	}
}

// Scenario D: IOF, JMP . -- halt loop.
func TestScenarioJMPHalt(t *testing.T) {
	c := newTestCPU()
	c.Mem.Write(0, 0200, 06002) // IOF
	c.Mem.Write(0, 0201, 05201) // JMP .
	c.PC = 0200

	c.InstructionStep()
	c.InstructionStep()

	if !c.Halt {
		t.Errorf("Halt not set")
	}
}

// Scenario E: ISZ wrap at 07777 -> 0.
func TestScenarioISZBoundary(t *testing.T) {
	c := newTestCPU()
	c.Mem.Write(0, 0177, 07777)
	c.Mem.Write(0, 0200, 02177) // ISZ 0177
	c.Mem.Write(0, 0201, 07402) // HLT (skipped)
	c.Mem.Write(0, 0202, 07402) // HLT (landed on)
	c.PC = 0200

	c.InstructionStep()
	c.InstructionStep()

	if c.PC != 0203 {
		t.Errorf("PC = %04o, want 0203", c.PC)
	}
	if got := c.Mem.Read(0, 0177).Data; got != 0 {
		t.Errorf("memory[0177] = %04o, want 0", got)
	}
}

// Invariant 3: Fetch advances PC by exactly one (mod 4096), observed
// via a NOP (OPR with bits==0) landing at a page boundary.
func TestFetchAdvancesPCWithWrap(t *testing.T) {
	c := newTestCPU()
	c.Mem.Write(0, 07777, 07000) // NOP
	c.PC = 07777

	c.InstructionStep()

	if c.PC != 0 {
		t.Errorf("PC = %04o, want 0 (wrapped)", c.PC)
	}
}

// Invariant 5: while interrupts are disabled, an Interrupt sub-state
// must not modify any register even with a request pending.
func TestDisabledInterruptDoesNotFire(t *testing.T) {
	c := newTestCPU()
	c.Mem.Write(0, 0200, 07000) // NOP
	c.PC = 0200
	c.InterruptEnable = false
	c.InterruptRequest = true

	c.InstructionStep()

	if c.PC != 0201 {
		t.Errorf("PC = %04o, want 0201 (no interrupt taken)", c.PC)
	}
	if got := c.Mem.Read(0, 0).Data; got != 0 {
		t.Errorf("memory[0,0] = %04o, want 0 (untouched)", got)
	}
}

func TestInterruptServiceSavesPCAndEntersField0(t *testing.T) {
	c := newTestCPU()
	c.Mem.Write(0, 0200, 07000) // NOP
	c.PC = 0200
	c.InterruptEnable = true
	c.InterruptRequest = true

	c.InstructionStep()

	if c.PC != 1 {
		t.Errorf("PC = %04o, want 1 after interrupt entry", c.PC)
	}
	if got := c.Mem.Read(0, 0).Data; got != 0201 {
		t.Errorf("memory[0,0] = %04o, want 0201 (saved return address)", got)
	}
	if c.InterruptEnable {
		t.Errorf("InterruptEnable still set after interrupt entry")
	}
}

func TestGTFThenRTFRestoresFlags(t *testing.T) {
	c := newTestCPU()
	c.SetL(1)
	c.GreaterThan = true
	c.InterruptRequest = true
	c.InterruptEnable = true
	fieldIF.Set(&c.Field, 3)
	fieldDF.Set(&c.Field, 5)

	c.iotCPU(4) // GTF
	packed := c.LAC

	c.SetL(0)
	c.GreaterThan = false
	c.InterruptRequest = false
	c.InterruptEnable = false
	fieldIF.Set(&c.Field, 0)
	fieldDF.Set(&c.Field, 0)
	c.LAC = packed

	c.iotCPU(5) // RTF
	fieldIF.Set(&c.Field, fieldIF.Get(c.InstBuffer))

	if c.L() != 1 {
		t.Errorf("L after RTF = %d, want 1", c.L())
	}
	if !c.GreaterThan {
		t.Errorf("GreaterThan after RTF = false, want true")
	}
	if !c.InterruptRequest {
		t.Errorf("InterruptRequest after RTF = false, want true")
	}
	if fieldIF.Get(c.Field) != 3 {
		t.Errorf("IF after RTF = %o, want 3", fieldIF.Get(c.Field))
	}
	if fieldDF.Get(c.Field) != 5 {
		t.Errorf("DF after RTF = %o, want 5", fieldDF.Get(c.Field))
	}
}
