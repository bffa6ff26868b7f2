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

import (
	"fmt"
	"time"
)

// Time is a point in virtual time, measured in nanoseconds since the loop
// was created.
type Time int64

// Common durations expressed as Time.
const (
	Nanosecond  Time = 1
	Microsecond Time = 1000 * Nanosecond
	Millisecond Time = 1000 * Microsecond
	Second      Time = 1000 * Millisecond
)

func (t Time) String() string {
	return time.Duration(t).String()
}

// Clock is implemented by anything that can tell the current virtual time.
type Clock interface {
	Now() Time
}

// Loop keeps virtual time and the list of pending timers. The list is kept
// in expiry order. Timers with the same expiry time fire in the order they
// were armed.
type Loop struct {
	now     Time
	pending *Timer

	// number of timer callbacks that have been run
	fired uint64
}

// NewLoop is the preferred method of initialisation for the Loop type.
func NewLoop() *Loop {
	return &Loop{}
}

func (l *Loop) String() string {
	if l.pending == nil {
		return fmt.Sprintf("now=%v idle", l.now)
	}
	return fmt.Sprintf("now=%v next=%v", l.now, l.pending.expires)
}

// Now implements the Clock interface.
func (l *Loop) Now() Time {
	return l.now
}

// Fired returns the number of timer callbacks run so far.
func (l *Loop) Fired() uint64 {
	return l.fired
}

// NewTimer creates a timer that will call cb when it expires. The timer is
// not armed.
func (l *Loop) NewTimer(cb func()) *Timer {
	return &Timer{
		loop: l,
		cb:   cb,
	}
}

// Next returns the expiry time of the earliest pending timer. The boolean is
// false if no timer is pending.
func (l *Loop) Next() (Time, bool) {
	if l.pending == nil {
		return 0, false
	}
	return l.pending.expires, true
}

// insert timer into list, after any timers with the same expiry time.
func (l *Loop) insert(t *Timer) {
	if l.pending == nil || t.expires < l.pending.expires {
		t.next = l.pending
		l.pending = t
		return
	}

	p := l.pending
	for p.next != nil && p.next.expires <= t.expires {
		p = p.next
	}

	t.next = p.next
	p.next = t
}

// remove timer from the list. returns false if the timer was not found.
func (l *Loop) remove(t *Timer) bool {
	if l.pending == t {
		l.pending = t.next
		t.next = nil
		return true
	}

	for p := l.pending; p != nil; p = p.next {
		if p.next == t {
			p.next = t.next
			t.next = nil
			return true
		}
	}

	return false
}

// Step runs the earliest pending timer, advancing virtual time to its expiry
// time. Returns false if there was no timer to run.
func (l *Loop) Step() bool {
	t := l.pending
	if t == nil {
		return false
	}

	l.pending = t.next
	t.next = nil
	t.pending = false

	// virtual time never goes backwards. a timer armed in the past fires
	// "now"
	if t.expires > l.now {
		l.now = t.expires
	}

	l.fired++
	t.cb()

	return true
}

// RunUntil runs every timer that expires at or before the target time and
// then sets virtual time to the target. Timers armed by callbacks are
// honoured if they also fall inside the window.
func (l *Loop) RunUntil(target Time) {
	for l.pending != nil && l.pending.expires <= target {
		l.Step()
	}
	if target > l.now {
		l.now = target
	}
}

// Advance is the same as RunUntil(Now() + d).
func (l *Loop) Advance(d Time) {
	l.RunUntil(l.now + d)
}
