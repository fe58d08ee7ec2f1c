/*
 * pdp8i - DEC BIN paper-tape format
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

// Package bin reads and writes the DEC BIN absolute paper-tape format:
// each 12-bit word split into two 6-bit halves, one per tape byte, an
// address frame whenever
// the write cursor needs to move, and a data frame per word otherwise.
package bin

import (
	"bufio"
	"fmt"
	"io"

	"pdp8i/internal/assemble"
	"pdp8i/internal/memory"
)

const leaderTrailer = 0377

// Write emits prog as a BIN tape image. An address frame is emitted
// only when the running cursor does not already point at the word
// being written, matching BinaryInputFormatter's address-frame dedup.
func Write(w io.Writer, prog *assemble.Program) error {
	bw := bufio.NewWriter(w)
	var cursor uint16
	haveCursor := false

	for _, word := range prog.Words {
		if !haveCursor || cursor != word.Address {
			if err := writeAddressFrame(bw, word.Address); err != nil {
				return err
			}
			cursor = word.Address
			haveCursor = true
		}
		if err := writeDataFrame(bw, word.Data); err != nil {
			return err
		}
		cursor = (cursor + 1) & memory.WordMask
	}
	return bw.Flush()
}

func writeAddressFrame(w *bufio.Writer, address uint16) error {
	hi := byte((address>>6)&077) | 0100
	lo := byte(address & 077)
	_, err := w.Write([]byte{hi, lo})
	return err
}

func writeDataFrame(w *bufio.Writer, data uint16) error {
	hi := byte((data >> 6) & 077)
	lo := byte(data & 077)
	_, err := w.Write([]byte{hi, lo})
	return err
}

// Load reads a BIN tape from r and deposits its words into mem's given
// field. Bytes equal to leaderTrailer (0377) are skipped as blank
// leader/trailer tape; an address frame (high bit of the first byte
// set) repositions the deposit cursor instead of depositing a word.
func Load(r io.Reader, mem *memory.Memory, field int) error {
	br := bufio.NewReader(r)
	var cursor uint16
	for {
		first, err := nextTapeByte(br)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		second, err := nextTapeByte(br)
		if err == io.EOF {
			return fmt.Errorf("bin: truncated frame")
		}
		if err != nil {
			return err
		}

		if first&0100 != 0 {
			cursor = (uint16(first&077) << 6) | uint16(second&077)
			continue
		}
		word := (uint16(first&077) << 6) | uint16(second&077)
		mem.Write(field, cursor, word)
		cursor = (cursor + 1) & memory.WordMask
	}
}

func nextTapeByte(r *bufio.Reader) (byte, error) {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b == leaderTrailer {
			continue
		}
		return b, nil
	}
}
