package machine

import (
	"testing"
	"time"
)

func TestDepositThenExamineRoundTrips(t *testing.T) {
	m := New(1)
	m.Deposit(0, 0200, 01234)
	cell := m.Examine(0, 0200)
	if !cell.Init || cell.Data != 01234 {
		t.Errorf("Examine = %04o (init=%v), want 01234", cell.Data, cell.Init)
	}
}

func TestInstallRIMLoaderDepositsAtFixedAddress(t *testing.T) {
	m := New(1)
	m.InstallRIMLoader()
	cell := m.Examine(0, RIMLoaderStart)
	if !cell.Init || cell.Data != 06014 {
		t.Errorf("RIM loader first word = %04o, want 06014", cell.Data)
	}
}

func TestInstallHelpLoaderDepositsAtFixedAddress(t *testing.T) {
	m := New(1)
	m.InstallHelpLoader()
	cell := m.Examine(0, HELPLoaderStart)
	if !cell.Init || cell.Data != 06031 {
		t.Errorf("HELP loader first word = %04o, want 06031", cell.Data)
	}
}

func TestRunHaltsOnHLT(t *testing.T) {
	m := New(1)
	// CLA CLL; HLT  -- clears AC/L and halts.
	m.Deposit(0, 0200, 07300)
	m.Deposit(0, 0201, 07402)
	m.Run()
	defer m.Stop()

	m.Submit(Packet{Cmd: CmdStart, Address: 0200})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if m.CPU.Halt {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("CPU did not halt within the deadline")
}
