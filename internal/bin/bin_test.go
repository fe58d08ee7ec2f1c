package bin

import (
	"bytes"
	"testing"

	"pdp8i/internal/assemble"
	"pdp8i/internal/memory"
)

func TestRoundTripThroughBinTape(t *testing.T) {
	src := `
*0200
LOOP,	CLA CLL
	TAD LOOP
	JMP LOOP
`
	prog, err := assemble.Assemble(src)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	var tape bytes.Buffer
	if err := Write(&tape, prog); err != nil {
		t.Fatalf("Write: %v", err)
	}

	mem := memory.New(1)
	if err := Load(bytes.NewReader(tape.Bytes()), mem, 0); err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, w := range prog.Words {
		cell := mem.Read(0, w.Address)
		if !cell.Init || cell.Data != w.Data {
			t.Errorf("address %04o: got %04o (init=%v), want %04o", w.Address, cell.Data, cell.Init, w.Data)
		}
	}
}

func TestLoadSkipsLeaderAndTrailer(t *testing.T) {
	tape := []byte{0377, 0377, 0101, 000, 000, 002, 0377}
	mem := memory.New(1)
	if err := Load(bytes.NewReader(tape), mem, 0); err != nil {
		t.Fatalf("Load: %v", err)
	}
	cell := mem.Read(0, 0100)
	if !cell.Init || cell.Data != 0002 {
		t.Errorf("address 0100 = %04o (init=%v), want 0002", cell.Data, cell.Init)
	}
}

func TestWriteOmitsAddressFrameForContiguousWords(t *testing.T) {
	prog := &assemble.Program{Words: []assemble.Word{
		{Address: 0200, Data: 07000},
		{Address: 0201, Data: 07001},
	}}
	var tape bytes.Buffer
	if err := Write(&tape, prog); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// One address frame (2 bytes) + two data frames (2 bytes each) = 6 bytes.
	if tape.Len() != 6 {
		t.Errorf("tape length = %d, want 6 (single address frame, no re-emission)", tape.Len())
	}
}
