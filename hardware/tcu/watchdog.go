// This file is part of tcusim.
//
// tcusim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// tcusim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with tcusim.  If not, see <https://www.gnu.org/licenses/>.


package tcu

import (
	"github.com/OpenNoah/qemu-sub000/hardware/irq"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/channel"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/registers"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
)

// Watchdog is the 16-bit watchdog timer. When the counter reaches TDR the
// Reset line is raised. Resetting the SoC is the job of whatever is listening
// to the line. The request is withdrawn by writing to TCER or to the counter.
type Watchdog struct {
	Counter *channel.Counter
	Reset   *irq.Line

	csr  uint32
	tcer uint32
}

func newWatchdog(tb channel.Timebase, reset *irq.Line) *Watchdog {
	w := &Watchdog{
		Reset: reset,
	}
	w.Counter = channel.NewCounter("wdt", channel.Width16, tb, w)
	w.Counter.TopMask = 1
	return w
}

// Match implements the channel.Host interface.
func (w *Watchdog) Match(flags uint32) {
	w.Reset.Set(true)
}

// CSR returns the value of the watchdog's control register.
func (w *Watchdog) CSR() uint32 {
	return w.csr
}

func (w *Watchdog) reset() {
	w.Counter.Reset()
	w.csr = 0
	w.tcer = 0
	w.Reset.Set(false)
}

func (t *TCU) readWatchdog(now vtime.Time, addr uint32) uint32 {
	switch addr {
	case registers.TDR:
		return t.WDT.Counter.Top
	case registers.TCER:
		return t.WDT.tcer
	case registers.WCNT:
		return t.WDT.Counter.Value(now)
	}
	return t.WDT.csr
}

func (t *TCU) writeWatchdog(now vtime.Time, addr uint32, data uint32) {
	w := t.WDT
	switch addr {
	case registers.TDR:
		w.Counter.SetTop(now, data)
	case registers.TCER:
		w.tcer = data & registers.TCERMask
		w.Reset.Set(false)
	case registers.WCNT:
		w.Counter.SetCount(now, data)
		w.Reset.Set(false)
	case registers.WCSR:
		old := w.csr
		w.csr = data & registers.WatchdogCSRMask
		if registers.ClockChanged(old, w.csr) {
			t.resolve(now, w.Counter, w.csr)
		}
	}
}
