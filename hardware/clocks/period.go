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

package clocks

import (
	"fmt"
	"math"
	"math/bits"
)

// Period is the duration of one clock tick, in nanoseconds as a fixed-point
// number with PeriodShift fractional bits. A Period of zero means that no
// clock is running.
type Period uint64

// PeriodShift is the number of fractional bits in a Period.
const PeriodShift = 32

// OneSecond is one second expressed as a Period.
const OneSecond Period = 1_000_000_000 << PeriodShift

// PeriodFromNs returns the Period of a clock that ticks every ns nanoseconds.
func PeriodFromNs(ns uint64) Period {
	return Period(ns << PeriodShift)
}

// PeriodFromHz returns the Period of a clock running at the specified
// frequency, divided by div. Returns zero if either value is zero.
func PeriodFromHz(hz uint64, div uint32) Period {
	if hz == 0 || div == 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(OneSecond), uint64(div))
	if hi >= hz {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, hz)
	return Period(q)
}

// Hz returns the frequency of the clock, rounded down.
func (p Period) Hz() uint64 {
	if p == 0 {
		return 0
	}
	return uint64(OneSecond / p)
}

func (p Period) String() string {
	if p == 0 {
		return "stopped"
	}
	return fmt.Sprintf("%dHz", p.Hz())
}
