/*
 * pdp8i - DECwriter console (keyboard + printer)
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

package teleprinter

import (
	"fmt"
	"os"

	"pdp8i/internal/config"
	"pdp8i/internal/cpu"
)

// KeyboardDeviceNumber and PrinterDeviceNumber are the DECwriter's
// conventional fixed IOT device addresses.
const (
	KeyboardDeviceNumber = 003
	PrinterDeviceNumber  = 004
)

func init() {
	config.RegisterDevice("TELEPRINTER", attach)
}

// attach wires a Teleprinter's two device.Device views to the
// console's keyboard and printer device numbers. It reads from stdin
// and writes to stdout; a future "port=" option could redirect either
// end to a file or network socket.
func attach(c *cpu.CPU, _ []config.Option) error {
	t := New(os.Stdin, os.Stdout)
	if !c.AttachDevice(KeyboardDeviceNumber, Keyboard{t}) {
		return fmt.Errorf("teleprinter: device %02o is reserved or out of range", KeyboardDeviceNumber)
	}
	if !c.AttachDevice(PrinterDeviceNumber, Printer{t}) {
		return fmt.Errorf("teleprinter: device %02o is reserved or out of range", PrinterDeviceNumber)
	}
	return nil
}
