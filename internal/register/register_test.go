package register

import "testing"

func TestSetMasksAndPreservesOutsideBits(t *testing.T) {
	link := Slice{Width: 1, Offset: 12}
	acc := Slice{Width: 12, Offset: 0}

	var lac uint16 = 0
	acc.Set(&lac, 07777)
	link.Set(&lac, 1)

	if got := acc.Get(lac); got != 07777 {
		t.Fatalf("acc.Get() = %04o, want 07777", got)
	}
	if got := link.Get(lac); got != 1 {
		t.Fatalf("link.Get() = %d, want 1", got)
	}

	// Writing a wider value through acc must not touch link.
	acc.Set(&lac, 0177777)
	if got := acc.Get(lac); got != 07777 {
		t.Fatalf("acc.Get() after oversized write = %04o, want 07777 (masked)", got)
	}
	if got := link.Get(lac); got != 1 {
		t.Fatalf("link bit disturbed by acc.Set: got %d, want 1", got)
	}
}

func TestIncrementWraps(t *testing.T) {
	sc := Slice{Width: 5, Offset: 0}
	var word uint16 = 037
	sc.Increment(&word)
	if got := sc.Get(word); got != 0 {
		t.Fatalf("SC after wrap = %o, want 0", got)
	}
}

func TestOverlappingSlicesShareBackingWord(t *testing.T) {
	arithmetic := Slice{Width: 13, Offset: 0}
	link := Slice{Width: 1, Offset: 12}
	acc := Slice{Width: 12, Offset: 0}

	var lac uint16
	arithmetic.Set(&lac, 010000) // sets link bit through the 13-bit view
	if got := link.Get(lac); got != 1 {
		t.Fatalf("link.Get() = %d, want 1", got)
	}
	if got := acc.Get(lac); got != 0 {
		t.Fatalf("acc.Get() = %04o, want 0", got)
	}
}
