/*
 * pdp8i - Log trace data to a file
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

// Package trace provides mask-gated debug tracing for the CPU, IOT
// dispatcher and assembler, written to an optional file configured by
// internal/config's DEBUGFILE directive.
package trace

import (
	"fmt"
	"os"
)

// Trace mask bits, combined with Set to enable one or more subsystems.
const (
	Inst Mask = 1 << iota
	IOT
	Interrupt
	Assemble
)

type Mask int

var (
	logFile *os.File
	enabled Mask
)

// Set replaces the active trace mask.
func Set(mask Mask) {
	enabled = mask
}

// Instf emits a fetch/execute trace line when Inst tracing is enabled.
func Instf(format string, a ...interface{}) {
	emit(Inst, "inst", format, a...)
}

// IOTf emits an IOT dispatch trace line when IOT tracing is enabled.
func IOTf(device uint8, format string, a ...interface{}) {
	if enabled&IOT == 0 || logFile == nil {
		return
	}
	fmt.Fprintf(logFile, "iot %02o: "+format+"\n", append([]interface{}{device}, a...)...)
}

// Interruptf emits an interrupt sub-state trace line.
func Interruptf(format string, a ...interface{}) {
	emit(Interrupt, "irq", format, a...)
}

// Assemblef emits an assembler trace line.
func Assemblef(format string, a ...interface{}) {
	emit(Assemble, "asm", format, a...)
}

func emit(mask Mask, tag string, format string, a ...interface{}) {
	if enabled&mask == 0 || logFile == nil {
		return
	}
	fmt.Fprintf(logFile, tag+": "+format+"\n", a...)
}

// SetFile directs trace output to an already-open file.
func SetFile(f *os.File) {
	logFile = f
}

// Open creates the named trace file and directs output to it.
func Open(fileName string) error {
	if logFile != nil {
		return fmt.Errorf("trace file already open: %s", logFile.Name())
	}
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("unable to create trace file: %w", err)
	}
	logFile = file
	return nil
}
