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

package channel

import (
	"math"
	"math/bits"

	"github.com/OpenNoah/qemu-sub000/hardware/clocks"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
)

// the epoch is a fixed-point time with the same number of fractional bits
// as a clocks.Period. the integer part is State.Epoch and the fractional part
// is State.EpochFrac. keeping the fraction means that moving the epoch forward
// by a whole number of ticks is exact, whatever the clock period.

// ticksSince returns the number of whole ticks between the epoch and now.
func (c *Counter) ticksSince(now vtime.Time) uint64 {
	d := now - c.Epoch
	if d < 0 || c.Period == 0 {
		return 0
	}

	hi, lo := bits.Mul64(uint64(d), 1<<clocks.PeriodShift)
	if hi == 0 && lo < uint64(c.EpochFrac) {
		return 0
	}
	var borrow uint64
	lo, borrow = bits.Sub64(lo, uint64(c.EpochFrac), 0)
	hi -= borrow

	p := uint64(c.Period)
	if hi >= p {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, p)
	return q
}

// timeOfTick returns the earliest virtual time at which n ticks will have
// passed since the epoch. the boolean is false if that time cannot be
// represented.
func (c *Counter) timeOfTick(n uint64) (vtime.Time, bool) {
	hi, lo := bits.Mul64(n, uint64(c.Period))
	var carry uint64
	lo, carry = bits.Add64(lo, uint64(c.EpochFrac), 0)
	hi += carry

	if hi >= 1<<(64-clocks.PeriodShift) {
		return 0, false
	}

	ns := hi<<(64-clocks.PeriodShift) | lo>>clocks.PeriodShift
	if lo&(1<<clocks.PeriodShift-1) != 0 {
		ns++
	}
	if ns > uint64(math.MaxInt64-c.Epoch) {
		return 0, false
	}

	return c.Epoch + vtime.Time(ns), true
}

// rebase moves the epoch forward by the ticks already accounted for. the
// counter value is not changed.
func (c *Counter) rebase() {
	hi, lo := bits.Mul64(c.Ticks, uint64(c.Period))
	var carry uint64
	lo, carry = bits.Add64(lo, uint64(c.EpochFrac), 0)
	hi += carry

	c.Epoch += vtime.Time(hi<<(64-clocks.PeriodShift) | lo>>clocks.PeriodShift)
	c.EpochFrac = uint32(lo)
	c.Ticks = 0
}

// origin restarts the epoch at now.
func (c *Counter) origin(now vtime.Time) {
	c.Epoch = now
	c.EpochFrac = 0
	c.Ticks = 0
}
