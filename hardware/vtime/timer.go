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

package vtime

// Timer is a single-shot alarm in virtual time.
type Timer struct {
	loop    *Loop
	cb      func()
	expires Time
	pending bool
	next    *Timer
}

// Mod arms the timer to expire at the specified time. Any previous arming is
// replaced.
func (t *Timer) Mod(expires Time) {
	if t.pending {
		t.loop.remove(t)
	}
	t.expires = expires
	t.pending = true
	t.loop.insert(t)
}

// Anticipate arms the timer only if it is not already pending or if the new
// expiry time is earlier than the current one.
func (t *Timer) Anticipate(expires Time) {
	if t.pending && t.expires <= expires {
		return
	}
	t.Mod(expires)
}

// Del disarms the timer. It is safe to call Del() on a timer that is not
// pending.
func (t *Timer) Del() {
	if !t.pending {
		return
	}
	t.loop.remove(t)
	t.pending = false
}

// Pending returns true if the timer is armed.
func (t *Timer) Pending() bool {
	return t.pending
}

// Expires returns the time at which the timer will fire. The value is only
// meaningful if Pending() is true.
func (t *Timer) Expires() Time {
	return t.expires
}
