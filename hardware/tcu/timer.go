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
	"fmt"

	"github.com/OpenNoah/qemu-sub000/hardware/tcu/channel"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/registers"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
)

// Timer is one of the six 16-bit timer channels.
type Timer struct {
	Counter *channel.Counter

	idx int
	csr uint32

	// TCU2 channels accept the CLRZ bit
	tcu2 bool
}

func newTimer(idx int, tcu2 bool, tb channel.Timebase, host channel.Host) *Timer {
	tm := &Timer{
		idx:     idx,
		tcu2:    tcu2,
		Counter: channel.NewCounter(fmt.Sprintf("tcu%d", idx), channel.Width16, tb, host),
	}
	tm.Counter.TopMask = registers.FullBit(idx)
	tm.Counter.CompMask = registers.HalfBit(idx)
	return tm
}

// CSR returns the value of the channel's control register.
func (tm *Timer) CSR() uint32 {
	return tm.csr
}

func (tm *Timer) reset() {
	tm.Counter.Reset()
	tm.csr = 0
}

func (t *TCU) readTimer(now vtime.Time, tm *Timer, offset uint32) uint32 {
	switch offset {
	case registers.TDFR:
		return tm.Counter.Top
	case registers.TDHR:
		return tm.Counter.Compare
	case registers.TCNT:
		return tm.Counter.Value(now)
	case registers.TCSR:
		return tm.csr
	}
	return 0
}

func (t *TCU) writeTimer(now vtime.Time, tm *Timer, offset uint32, data uint32) {
	switch offset {
	case registers.TDFR:
		tm.Counter.SetTop(now, data)
	case registers.TDHR:
		tm.Counter.SetCompare(now, data)
	case registers.TCNT:
		tm.Counter.SetCount(now, data)
	case registers.TCSR:
		old := tm.csr
		tm.csr = data & registers.ChannelCSRMask
		if registers.ClockChanged(old, tm.csr) {
			t.resolve(now, tm.Counter, tm.csr)
		}
		if tm.tcu2 && data&registers.CSRClearZero != 0 {
			tm.Counter.SetCount(now, 0)
		}
	}
}
