/*
 * pdp8i - DK8-EA real-time clock
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

// Package clock implements the DK8-EA line-frequency real-time clock:
// an IOT device that raises a flag at a fixed rate and can request an
// interrupt while that flag is set.
package clock

import (
	"sync/atomic"
	"time"

	"pdp8i/internal/device"
)

// Rate is the line-frequency tick period the DK8-EA polls at (60 Hz).
const Rate = 16667 * time.Microsecond

// Clock is a DK8-EA device. It runs its own goroutine ticking at Rate
// and must be stopped with Stop when the machine is torn down.
type Clock struct {
	flag    atomic.Bool
	enabled atomic.Bool
	srq     atomic.Bool
	done    chan struct{}
}

// New returns a running Clock. Call Stop to release its goroutine.
func New() *Clock {
	c := &Clock{done: make(chan struct{})}
	go c.run()
	return c
}

func (c *Clock) run() {
	t := time.NewTicker(Rate)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.flag.Store(true)
		case <-c.done:
			return
		}
	}
}

// Stop terminates the clock's ticking goroutine.
func (c *Clock) Stop() {
	close(c.done)
}

// Operate implements device.Device. Pulse 1 enables interrupts on the
// flag (CLEI), 2 disables them (CLDI), 3 skips and clears the flag if
// set (CLSK).
func (c *Clock) Operate(pulse uint8, _ uint16) device.Result {
	switch pulse {
	case 1:
		c.enabled.Store(true)
	case 2:
		c.enabled.Store(false)
	case 3:
		if c.flag.Load() {
			c.flag.Store(false)
			return device.Result{Skip: true}
		}
	}
	return device.Result{}
}

// InterruptRequest reports true while the flag is set and interrupts
// are enabled.
func (c *Clock) InterruptRequest() bool {
	return c.flag.Load() && c.enabled.Load()
}

func (c *Clock) ServiceRequest() bool     { return c.srq.Load() }
func (c *Clock) SetServiceRequest(v bool) { c.srq.Store(v) }

var _ device.Device = (*Clock)(nil)
