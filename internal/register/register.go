/*
 * pdp8i - Bit-slice register algebra
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

// Package register implements typed bit-slice views over a single backing
// word, as used by the PDP-8/I's overlapping registers (LAC's link and
// accumulator sharing one word, IR's decoded fields, and so on).
//
// The original simulator expressed this with C++ template classes
// projecting multiple views onto one integer. Go has no safe equivalent
// of that aliasing trick, so a Slice here is a plain value carrying its
// own (width, offset) and operating on a *uint16 passed in by the
// caller - no pointer aliasing, no undefined behavior.
package register

// Slice describes a bit-field of Width bits starting at bit Offset
// (offset 0 is the least significant bit) within a 16-bit backing word.
type Slice struct {
	Width  uint
	Offset uint
}

func (s Slice) mask() uint16 {
	return uint16((1 << s.Width) - 1)
}

// Get returns the slice's bits from word, right-justified.
func (s Slice) Get(word uint16) uint16 {
	return (word >> s.Offset) & s.mask()
}

// Set writes v into the slice of word, masking v to Width bits first and
// leaving every bit outside the slice untouched.
func (s Slice) Set(word *uint16, v uint16) {
	clear := ^(s.mask() << s.Offset)
	*word = (*word & clear) | ((v & s.mask()) << s.Offset)
}

// Increment adds one to the slice's value, wrapping modulo 1<<Width.
func (s Slice) Increment(word *uint16) {
	s.Set(word, s.Get(*word)+1)
}

// Clear zeroes the slice's bits within word.
func (s Slice) Clear(word *uint16) {
	s.Set(word, 0)
}

// Whole is the identity slice covering an entire 12-bit PDP-8 word.
var Whole = Slice{Width: 12, Offset: 0}
