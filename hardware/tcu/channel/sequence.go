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

// the functions in this file answer questions about the counter sequence
// without stepping through it. all arithmetic is done in 64 bits so that the
// cycle length of a 32 bit counter (top+1) cannot overflow.

// distance returns the number of ticks before the counter next arrives at
// the target value. the boolean is false if the counter will never arrive
// at the target.
func distance(count, top, max, target uint32) (uint64, bool) {
	c, tp, m, x := uint64(count), uint64(top), uint64(max), uint64(target)

	if c <= tp {
		if x > tp {
			return 0, false
		}
		if x > c {
			return x - c, true
		}
		return tp - c + 1 + x, true
	}

	// counter is above top. it will count up to max and wrap before joining
	// the 0..top cycle
	if x > c {
		return x - c, true
	}
	if x <= tp {
		return m - c + 1 + x, true
	}
	return 0, false
}

// arrivals returns the number of times the counter arrives at the target
// value in the next n ticks.
func arrivals(count, top, max, target uint32, n uint64) uint64 {
	d, ok := distance(count, top, max, target)
	if !ok || d > n {
		return 0
	}

	// a target above top can only be visited once, on the way to the wrap
	if target > top {
		return 1
	}

	return 1 + (n-d)/(uint64(top)+1)
}

// advance returns the value of the counter after n ticks.
func advance(count, top, max uint32, n uint64) uint32 {
	c, tp, m := uint64(count), uint64(top), uint64(max)
	cycle := tp + 1

	if c <= tp {
		return uint32((c + n%cycle) % cycle)
	}

	leg := m - c + 1
	if n < leg {
		return uint32(c + n)
	}
	return uint32((n - leg) % cycle)
}
