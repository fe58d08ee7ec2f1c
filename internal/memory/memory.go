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

const (
	NumFields  = 8    // Maximum fields a PDP-8/I can be configured with.
	FieldWords = 4096  // Words per field.
	WordMask   = 07777 // Mask a value to 12 bits.
)

// Buffer is the value read back from a core memory cell: the 12-bit word
// plus the "has this cell ever been written" flag carried by MB<12>.
type Buffer struct {
	Data uint16
	Init bool
}

// Memory is up to NumFields fields of FieldWords 12-bit words, each word
// also carrying an initialized flag.
type Memory struct {
	data   [NumFields][FieldWords]uint16
	init   [NumFields][FieldWords]bool
	fields int
}

// New returns a Memory configured with the given number of fields
// (clamped to the 1..NumFields range).
func New(fields int) *Memory {
	if fields < 1 {
		fields = 1
	}
	if fields > NumFields {
		fields = NumFields
	}
	return &Memory{fields: fields}
}

// Fields returns the number of configured fields.
func (m *Memory) Fields() int {
	return m.fields
}

// Read returns the cell at (field, addr). An out-of-range field yields a
// zeroed, uninitialized Buffer rather than an error: the RIM loader and
// some panel actions deliberately probe fields that may not exist.
func (m *Memory) Read(field int, addr uint16) Buffer {
	if field < 0 || field >= m.fields {
		return Buffer{}
	}
	addr &= WordMask
	return Buffer{Data: m.data[field][addr], Init: m.init[field][addr]}
}

// Write stores data at (field, addr) and sets the cell's initialized
// flag. Out-of-range fields are silently dropped. The initialized flag is
// monotonic: once set it is never cleared by Write.
func (m *Memory) Write(field int, addr uint16, data uint16) {
	if field < 0 || field >= m.fields {
		return
	}
	addr &= WordMask
	m.data[field][addr] = data & WordMask
	m.init[field][addr] = true
}

// Clear resets every configured field to all-zero, uninitialized cells.
func (m *Memory) Clear() {
	for f := 0; f < m.fields; f++ {
		for a := range m.data[f] {
			m.data[f][a] = 0
			m.init[f][a] = false
		}
	}
}
