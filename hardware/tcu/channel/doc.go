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

// Package channel implements a single counter/compare unit of the timer
// bank. The same engine drives the six TCU channels, the operating system
// timer and the watchdog.
//
// A Counter is never stepped one tick at a time. Instead it remembers the
// virtual time at which it started counting (the epoch) and the number of
// ticks already folded into the counter value. Whenever somebody needs the
// real value, Recompute() works out how many ticks have passed since then
// and applies them all at once. The flags that would have been raised had
// the counter been stepped tick by tick are worked out arithmetically.
//
// The counter behaves like this on every tick:
//
//	if count == top {
//		count = 0
//	} else {
//		count = (count + 1) & max
//	}
//	if count == compare { raise compare (half) flag }
//	if count == top { raise top (full) flag }
//
// Note that a counter that is above its top value must count all the way to
// the maximum value of its width, and wrap to zero, before it can match top
// again.
//
// The Counter keeps itself up to date by arming a wake-up for the next
// point in time at which a flag would be raised. The wake-up is never more
// than the Rebase duration in the future. This is also the point at which
// the epoch is moved forward so that the tick arithmetic stays small.
package channel
