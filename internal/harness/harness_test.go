package harness

import "testing"

func TestAssembleAndRunHaltsOnHLT(t *testing.T) {
	c := AssembleAndRun(t, `
		*0200
		CLA CLL
		TAD VALUE
		HLT
		VALUE, 0017
	`)
	if c.AC() != 017 {
		t.Errorf("AC = %04o, want 0017", c.AC())
	}
	if !c.Halt {
		t.Errorf("expected CPU halted")
	}
}

func TestAssembleAndRunStopsOnIdleLoop(t *testing.T) {
	c := AssembleAndRun(t, `
		*0200
		KSF
		JMP .-1
	`)
	if !c.Idle {
		t.Errorf("expected KSF/JMP-back idle loop to report idle")
	}
	if c.Halt {
		t.Errorf("Halt unexpectedly set")
	}
}
