package disassemble

import "testing"

func TestDecodeMemoryReferenceCurrentPage(t *testing.T) {
	// TAD I, current page (bit 0200 set), address field 0045, at PC 0600.
	got := Decode(00600, 01645)
	want := "TAD I 0645"
	if got != want {
		t.Errorf("Decode() = %q, want %q", got, want)
	}
}

func TestDecodeMemoryReferenceZeroPage(t *testing.T) {
	// JMP, zero page (bit 0200 clear), address 0020.
	got := Decode(03000, 05020)
	want := "JMP 0020"
	if got != want {
		t.Errorf("Decode() = %q, want %q", got, want)
	}
}

func TestDecodeIOTExactMatch(t *testing.T) {
	cases := map[uint16]string{
		06201: "CDF",
		06031: "KSF",
		06131: "CLEI",
	}
	for word, want := range cases {
		if got := Decode(0, word); got != want {
			t.Errorf("Decode(%04o) = %q, want %q", word, got, want)
		}
	}
}

func TestDecodeIOTUnknownFallsBackToFields(t *testing.T) {
	got := Decode(0, 06600)
	want := "IOT 60 0"
	if got != want {
		t.Errorf("Decode() = %q, want %q", got, want)
	}
}

func TestDecodeGroup1NamedCombination(t *testing.T) {
	cases := map[uint16]string{
		07000: "NOP",
		07041: "CIA",
		07012: "RTR",
		07006: "RTL",
		07002: "BSW",
	}
	for word, want := range cases {
		if got := Decode(0, word); got != want {
			t.Errorf("Decode(%04o) = %q, want %q", word, got, want)
		}
	}
}

func TestDecodeGroup1UnnamedCombinationDecomposes(t *testing.T) {
	// CLA + CLL + RAR, not its own opcode table entry.
	got := Decode(0, 07300|00010)
	want := "CLA CLL RAR"
	if got != want {
		t.Errorf("Decode() = %q, want %q", got, want)
	}
}

func TestDecodeGroup2NamedCombination(t *testing.T) {
	cases := map[uint16]string{
		07402: "HLT",
		07404: "OSR",
		07540: "SLE",
		07550: "SGZ",
	}
	for word, want := range cases {
		if got := Decode(0, word); got != want {
			t.Errorf("Decode(%04o) = %q, want %q", word, got, want)
		}
	}
}

func TestDecodeGroup2UnnamedCombinationDecomposes(t *testing.T) {
	// CLA + SZA + HLT: not a table entry, decomposed bit by bit.
	got := Decode(0, 07000|00400|00200|00040|00002)
	want := "CLA SZA HLT"
	if got != want {
		t.Errorf("Decode() = %q, want %q", got, want)
	}
}

func TestDecodeGroup3NamedCombination(t *testing.T) {
	cases := map[uint16]string{
		07411: "MUY",
		07407: "DVI",
		07621: "CAM",
	}
	for word, want := range cases {
		if got := Decode(0, word); got != want {
			t.Errorf("Decode(%04o) = %q, want %q", word, got, want)
		}
	}
}

func TestDecodeGroup3UnnamedFallsBackToRaw(t *testing.T) {
	got := Decode(0, 07777)
	want := "OPR3 7777"
	if got != want {
		t.Errorf("Decode() = %q, want %q", got, want)
	}
}
