package memory

/*
 * pdp8i - Core memory
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

import "testing"

func TestWriteThenReadRoundTrips(t *testing.T) {
	m := New(1)
	m.Write(0, 0200, 04321)
	b := m.Read(0, 0200)
	if b.Data != 04321 {
		t.Errorf("Read data got: %04o expected: %04o", b.Data, 04321)
	}
	if !b.Init {
		t.Errorf("Read init flag got false, expected true")
	}
}

func TestReadUninitializedCellIsZero(t *testing.T) {
	m := New(1)
	b := m.Read(0, 0100)
	if b.Data != 0 || b.Init {
		t.Errorf("uninitialized cell got {%04o %v}, expected {0 false}", b.Data, b.Init)
	}
}

func TestWriteMasksToTwelveBits(t *testing.T) {
	m := New(1)
	m.Write(0, 0, 0177777)
	b := m.Read(0, 0)
	if b.Data != 07777 {
		t.Errorf("Write did not mask to 12 bits, got: %04o", b.Data)
	}
}

func TestOutOfRangeFieldIsNoOp(t *testing.T) {
	m := New(2)
	m.Write(5, 0100, 01234)
	b := m.Read(5, 0100)
	if b.Data != 0 || b.Init {
		t.Errorf("out of range field read got {%04o %v}, expected {0 false}", b.Data, b.Init)
	}
}

func TestFieldsDoNotAlias(t *testing.T) {
	m := New(2)
	m.Write(0, 0100, 01111)
	m.Write(1, 0100, 02222)
	if got := m.Read(0, 0100).Data; got != 01111 {
		t.Errorf("field 0 got: %04o expected: %04o", got, 01111)
	}
	if got := m.Read(1, 0100).Data; got != 02222 {
		t.Errorf("field 1 got: %04o expected: %04o", got, 02222)
	}
}

func TestInitFlagIsMonotonic(t *testing.T) {
	m := New(1)
	m.Write(0, 010, 1)
	m.Write(0, 010, 0) // writing zero must not clear the flag
	if !m.Read(0, 010).Init {
		t.Errorf("init flag cleared by write of zero")
	}
}

func TestAddressWrapsToTwelveBits(t *testing.T) {
	m := New(1)
	m.Write(0, 010000|0100, 0777) // high bits above 12 must be masked off
	if got := m.Read(0, 0100).Data; got != 0777 {
		t.Errorf("address not masked to 12 bits, got: %04o", got)
	}
}
