package assemble

import "testing"

func wordAt(p *Program, addr uint16) (uint16, bool) {
	for _, w := range p.Words {
		if w.Address == addr {
			return w.Data, true
		}
	}
	return 0, false
}

func TestAssembleSimpleLoop(t *testing.T) {
	src := `
*0200
LOOP,	CLA CLL
	TAD LOOP
	ISZ COUNT
	JMP LOOP
COUNT,	0
`
	p, err := Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	cla, ok := wordAt(p, 0200)
	if !ok || cla != 07300 {
		t.Errorf("CLA CLL = %04o, ok=%v, want 07300", cla, ok)
	}
	tad, ok := wordAt(p, 0201)
	if !ok || tad != 01200 {
		t.Errorf("TAD LOOP = %04o, want 01200", tad)
	}
	isz, ok := wordAt(p, 0202)
	if !ok || isz != 02204 {
		t.Errorf("ISZ COUNT = %04o, want 02204", isz)
	}
	jmp, ok := wordAt(p, 0203)
	if !ok || jmp != 05200 {
		t.Errorf("JMP LOOP = %04o, want 05200", jmp)
	}
}

func TestIndirectFlagCombines(t *testing.T) {
	p, err := Assemble("*0200\nTAD I 0010\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	word, ok := wordAt(p, 0200)
	if !ok || word != 01410 {
		t.Errorf("TAD I 0010 = %04o, want 01410", word)
	}
}

func TestZeroPageForcesPageZero(t *testing.T) {
	p, err := Assemble("*0600\nAND Z 0010\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	word, ok := wordAt(p, 0600)
	if !ok || word != 00010 {
		t.Errorf("AND Z 0010 = %04o, want 00010", word)
	}
}

func TestOutOfPageReferenceFails(t *testing.T) {
	_, err := Assemble("*0200\nTAD 0400\n")
	if err == nil {
		t.Fatalf("expected an out-of-page error")
	}
}

func TestMixedMicrocodeGroupsRejected(t *testing.T) {
	_, err := Assemble("CLL SZA\n")
	if err == nil {
		t.Fatalf("expected a microcode combination error mixing Group 1 and Group 2")
	}
}

func TestForwardLabelReferenceResolves(t *testing.T) {
	p, err := Assemble("*0200\nJMP DONE\nDONE,\tNOP\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	word, ok := wordAt(p, 0200)
	if !ok || word != 05201 {
		t.Errorf("JMP DONE = %04o, want 05201", word)
	}
}

func TestUndefinedSymbolFails(t *testing.T) {
	_, err := Assemble("*0200\nJMP NOWHERE\n")
	if err == nil {
		t.Fatalf("expected an undefined symbol error")
	}
}

func TestLabelAssignSetsConstant(t *testing.T) {
	p, err := Assemble("COUNT=0017\n*0200\nTAD COUNT\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	word, ok := wordAt(p, 0200)
	if !ok || word != 01017 {
		t.Errorf("TAD COUNT = %04o, want 01017", word)
	}
}

func TestDecimalRadixDirective(t *testing.T) {
	p, err := Assemble("*0200\nDECIMAL\n10\n")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	word, ok := wordAt(p, 0200)
	if !ok || word != 10 {
		t.Errorf("decimal literal 10 = %04o, want 10 decimal", word)
	}
}
