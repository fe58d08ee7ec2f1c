package console

import (
	"testing"

	"pdp8i/internal/machine"
)

func TestLoadAddressAndExamineRoundTrip(t *testing.T) {
	m := machine.New(1)
	if _, err := ProcessCommand("loadaddress 0200", m); err != nil {
		t.Fatalf("loadaddress: %v", err)
	}
	if _, err := ProcessCommand("switches 1234", m); err != nil {
		t.Fatalf("switches: %v", err)
	}
	if _, err := ProcessCommand("dep", m); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if got := m.Snapshot().PC; got != 0201 {
		t.Errorf("PC after deposit = %04o, want 0201", got)
	}

	if _, err := ProcessCommand("loadaddress 0200", m); err != nil {
		t.Fatalf("loadaddress: %v", err)
	}
	cell := m.Examine(0, 0200)
	if cell.Data != 01234 {
		t.Errorf("memory[0200] = %04o, want 01234", cell.Data)
	}
}

func TestAmbiguousPrefixRejected(t *testing.T) {
	m := machine.New(1)
	if _, err := ProcessCommand("s 0200", m); err == nil {
		t.Errorf("expected error for ambiguous/too-short prefix \"s\"")
	}
}

func TestStepUniquePrefixAmongStartStop(t *testing.T) {
	m := machine.New(1)
	// "st" uniquely matches "step" since start/stop both require length >= 3.
	if _, err := ProcessCommand("st", m); err != nil {
		t.Errorf("ProcessCommand(\"st\") = %v, want step to match uniquely", err)
	}
}

func TestQuitSignalsExit(t *testing.T) {
	m := machine.New(1)
	quit, err := ProcessCommand("quit", m)
	if err != nil {
		t.Fatalf("quit: %v", err)
	}
	if !quit {
		t.Errorf("quit command did not signal exit")
	}
}

func TestUnknownCommandErrors(t *testing.T) {
	m := machine.New(1)
	if _, err := ProcessCommand("bogus", m); err == nil {
		t.Errorf("expected error for unknown command")
	}
}
