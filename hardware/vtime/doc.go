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

// Package vtime is the discrete-event loop that drives the emulated
// hardware. Time is virtual: it only moves forward when the loop is told to
// run, and it jumps directly from one scheduled event to the next.
//
// Components that need to do something at a future point in time create a
// Timer with NewTimer(). A Timer is single-shot. Once it has expired it will
// not fire again until it is armed once more, usually from inside its own
// callback.
//
// The loop is not safe for concurrent use. All callbacks run to completion
// on the goroutine that called Run(), RunUntil() or Step().
package vtime
