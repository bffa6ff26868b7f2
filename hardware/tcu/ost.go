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
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/channel"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/registers"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
)

// OST is the 32-bit operating system timer. In the default mode it counts up
// to OSTDR and wraps to zero. With CNT_MD set in OSTCSR it wraps only at the
// top of its range and OSTDR is a compare value. Either way, the OST flag is
// raised when the counter reaches OSTDR.
type OST struct {
	Counter *channel.Counter

	csr uint32
	dr  uint32
}

func newOST(tb channel.Timebase, host channel.Host) *OST {
	o := &OST{
		Counter: channel.NewCounter("ost", channel.Width32, tb, host),
	}
	o.Counter.CompMask = registers.OSTBit
	return o
}

// CSR returns the value of OSTCSR.
func (o *OST) CSR() uint32 {
	return o.csr
}

// DR returns the value of OSTDR.
func (o *OST) DR() uint32 {
	return o.dr
}

func (o *OST) reset() {
	o.Counter.Reset()
	o.csr = 0
	o.dr = 0
}

// apply the data register and the count mode to the counter.
func (o *OST) apply(now vtime.Time) {
	o.Counter.SetCompare(now, o.dr)
	if o.csr&registers.CSRCountMode != 0 {
		o.Counter.SetTop(now, channel.Width32)
	} else {
		o.Counter.SetTop(now, o.dr)
	}
}

func (t *TCU) readOST(now vtime.Time, addr uint32) uint32 {
	switch addr {
	case registers.OSTDR:
		return t.OST.dr
	case registers.OSTCNT:
		return t.OST.Counter.Value(now)
	}
	return t.OST.csr
}

func (t *TCU) writeOST(now vtime.Time, addr uint32, data uint32) {
	o := t.OST
	switch addr {
	case registers.OSTDR:
		o.dr = data
		o.apply(now)
	case registers.OSTCNT:
		o.Counter.SetCount(now, data)
	case registers.OSTCSR:
		old := o.csr
		o.csr = data & registers.OSTCSRMask
		if registers.ClockChanged(old, o.csr) {
			t.resolve(now, o.Counter, o.csr)
		}
		if (old^o.csr)&registers.CSRCountMode != 0 {
			o.apply(now)
		}
	}
}
