package machine

import "testing"

func TestLoadAddressFromSwitchesSplitsFields(t *testing.T) {
	m := New(8)
	m.SetSwitches(03612) // PC=03612, IF=(03612>>6)&07=6, DF=(03612>>9)&07=3
	m.LoadAddressFromSwitches()
	if m.CPU.PC != 03612 {
		t.Errorf("PC = %04o, want 03612", m.CPU.PC)
	}
	if m.CPU.IF() != (03612>>6)&07 {
		t.Errorf("IF = %o, want %o", m.CPU.IF(), (03612>>6)&07)
	}
	if m.CPU.DF() != (03612>>9)&07 {
		t.Errorf("DF = %o, want %o", m.CPU.DF(), (03612>>9)&07)
	}
}

func TestDepositAndExamineAtPCAdvancePC(t *testing.T) {
	m := New(1)
	m.LoadAddressFromSwitches() // PC=0, IF=0
	m.SetSwitches(01234)
	m.DepositAtPC()
	if m.CPU.PC != 1 {
		t.Errorf("PC after deposit = %04o, want 1", m.CPU.PC)
	}
	cell := m.Examine(0, 0)
	if !cell.Init || cell.Data != 01234 {
		t.Errorf("memory[0,0] = %04o (init=%v), want 01234", cell.Data, cell.Init)
	}

	m.CPU.PC = 0
	examined := m.ExamineAtPC()
	if examined.Data != 01234 {
		t.Errorf("ExamineAtPC = %04o, want 01234", examined.Data)
	}
	if m.CPU.PC != 1 {
		t.Errorf("PC after examine = %04o, want 1", m.CPU.PC)
	}
}

func TestSnapshotReportsSwitches(t *testing.T) {
	m := New(1)
	m.SetSwitches(0777)
	s := m.Snapshot()
	if s.SR != 0777 {
		t.Errorf("Snapshot.SR = %04o, want 0777", s.SR)
	}
	if s.Running {
		t.Errorf("Snapshot.Running = true before Run()")
	}
}
