/*
 * pdp8i - RIM/HELP bootstrap loaders
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

package machine

// RIMLoaderStart is the address the RIM (Read-In Mode) bootstrap is
// deposited at: near the top of field 0, inside its last page (07600-07777).
const RIMLoaderStart = 07756

// rimLoader reads a BIN-format high-speed paper tape through the PC8-E
// reader and deposits it starting at address 0, looping until the
// reader raises its done flag.
var rimLoader = [18]uint16{
	06014, 06011, 05357, 06016, 07106, 07006,
	07510, 05357, 07006, 06011, 05367, 06016,
	07420, 03776, 03376, 05357, 0, 0,
}

// HELPLoaderStart is the address the tiny keyboard-driven HELP loader
// is deposited at.
const HELPLoaderStart = 0027

// helpLoader reads octal-digit keystrokes from the console keyboard
// and assembles them into consecutive memory cells.
var helpLoader = [10]uint16{
	06031, 05027, 06036, 07450, 05027, 07012, 07010, 03007, 02036, 05027,
}

// InstallRIMLoader deposits the RIM bootstrap into field 0 at
// RIMLoaderStart.
func (m *Machine) InstallRIMLoader() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, word := range rimLoader {
		m.Mem.Write(0, RIMLoaderStart+uint16(i), word)
	}
}

// InstallHelpLoader deposits the HELP bootstrap into field 0 at
// HELPLoaderStart.
func (m *Machine) InstallHelpLoader() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, word := range helpLoader {
		m.Mem.Write(0, HELPLoaderStart+uint16(i), word)
	}
}
