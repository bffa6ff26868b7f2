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
	"fmt"

	"github.com/OpenNoah/qemu-sub000/hardware/clocks"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
	"github.com/OpenNoah/qemu-sub000/logger"
)

// Maximum counter values for the supported widths.
const (
	Width16 uint32 = 0xffff
	Width32 uint32 = 0xffffffff
)

// DefaultRebase is the amount of virtual time after which the epoch is moved
// forward. It is also the longest time a Counter will sleep between wake-ups.
const DefaultRebase = vtime.Second

// Host receives the flags raised by a Counter. Flags are the TopMask and/or
// CompMask bits of the counter.
type Host interface {
	Match(flags uint32)
}

// Timebase is the source of virtual time and of the single-shot timers used
// for wake-ups.
type Timebase interface {
	vtime.Clock
	NewTimer(cb func()) *vtime.Timer
}

// Events counts the number of times each threshold has been matched.
type Events struct {
	Top     uint64
	Compare uint64
}

// State is the part of a Counter that changes during emulation. It is
// everything needed to restore a counter with Plumb().
type State struct {
	// full match threshold
	Top uint32

	// half match threshold
	Compare uint32

	// the counter value. only exact immediately after Recompute()
	Count uint32

	// duration of one tick. zero if no clock is selected
	Period clocks.Period

	// number of ticks since the epoch already folded into Count
	Ticks uint64

	// virtual time from which ticks are counted. EpochFrac is in units of
	// 2^-32 nanoseconds
	Epoch     vtime.Time
	EpochFrac uint32

	Enabled bool

	// flag bits raised on a top or compare match
	TopMask  uint32
	CompMask uint32

	Events Events
}

// Counter is a single counter/compare unit.
type Counter struct {
	State

	name string
	max  uint32

	host  Host
	clk   vtime.Clock
	alarm wakeup

	// Rebase is the amount of elapsed time after which the epoch is moved
	// forward. DefaultRebase is used if the value is not positive
	Rebase vtime.Time

	// permission for log entries
	Log logger.Permission
}

// NewCounter is the preferred method of initialisation for the Counter type.
// The max argument is the largest value the counter can hold (Width16 or
// Width32).
func NewCounter(name string, max uint32, tb Timebase, host Host) *Counter {
	c := &Counter{
		name: name,
		max:  max,
		host: host,
		clk:  tb,
		Log:  logger.Allow,
	}
	c.alarm.tmr = tb.NewTimer(c.wake)
	return c
}

func (c *Counter) String() string {
	return fmt.Sprintf("%s: cnt=%#x top=%#x cmp=%#x clk=%v en=%v",
		c.name, c.Count, c.Top, c.Compare, c.Period, c.Enabled)
}

// Name returns the name given to the counter at creation.
func (c *Counter) Name() string {
	return c.name
}

// Max returns the largest value the counter can hold.
func (c *Counter) Max() uint32 {
	return c.max
}

func (c *Counter) rebaseThreshold() vtime.Time {
	if c.Rebase <= 0 {
		return DefaultRebase
	}
	return c.Rebase
}

// Recompute brings Count up to date with the specified time, raising any
// flags that would have been raised had the counter been ticking.
func (c *Counter) Recompute(now vtime.Time) {
	if !c.Enabled || c.Period == 0 {
		return
	}

	var flags uint32

	total := c.ticksSince(now)
	if total > c.Ticks {
		n := total - c.Ticks

		if m := arrivals(c.Count, c.Top, c.max, c.Compare, n); m > 0 {
			c.Events.Compare += m
			flags |= c.CompMask
		}
		if m := arrivals(c.Count, c.Top, c.max, c.Top, n); m > 0 {
			c.Events.Top += m
			flags |= c.TopMask
		}

		c.Count = advance(c.Count, c.Top, c.max, n)
		c.Ticks = total
	}

	if now-c.Epoch > c.rebaseThreshold() {
		c.rebase()
	}

	// the host is told last so that the counter is in a consistent state if
	// the host decides to reconfigure it
	if flags != 0 && c.host != nil {
		c.host.Match(flags)
	}
}

// Value returns the up to date counter value.
func (c *Counter) Value(now vtime.Time) uint32 {
	c.Recompute(now)
	return c.Count
}

// Enable starts or stops the counter. A counter with no clock or with a top
// value of zero cannot be started.
func (c *Counter) Enable(now vtime.Time, en bool) {
	if en == c.Enabled {
		return
	}

	if !en {
		c.Recompute(now)
		c.alarm.cancel()
		c.Enabled = false
		return
	}

	if c.Period == 0 || c.Top == 0 {
		logger.Logf(c.Log, "tcu", "%s: cannot enable (clk=%v top=%#x)", c.name, c.Period, c.Top)
		return
	}

	c.Enabled = true
	c.origin(now)
	c.ScheduleNext(now)
	c.Recompute(now)
}

// Sync the enabled state of the counter with the requested run state. The
// counter only runs if it is requested to and if its configuration is valid.
func (c *Counter) Sync(now vtime.Time, run bool) {
	c.Enable(now, run && c.Period != 0 && c.Top != 0)
}

// SetTop changes the full match threshold. Setting top to zero disables the
// counter.
func (c *Counter) SetTop(now vtime.Time, v uint32) {
	c.Recompute(now)
	c.Top = v & c.max
	if !c.Enabled {
		return
	}
	if c.Top == 0 {
		logger.Logf(c.Log, "tcu", "%s: top is zero, counter disabled", c.name)
		c.Enable(now, false)
		return
	}
	c.ScheduleNext(now)
}

// SetCompare changes the half match threshold.
func (c *Counter) SetCompare(now vtime.Time, v uint32) {
	c.Recompute(now)
	c.Compare = v & c.max
	if c.Enabled {
		c.ScheduleNext(now)
	}
}

// SetCount overwrites the counter value. Counting continues from the new
// value at the next tick of the clock, measured from now.
func (c *Counter) SetCount(now vtime.Time, v uint32) {
	c.Recompute(now)
	c.Count = v & c.max
	if c.Enabled {
		c.origin(now)
		c.ScheduleNext(now)
	}
}

// SetPeriod changes the clock period of the counter. Ticks already passed
// under the old period are applied first. A period of zero disables the
// counter.
func (c *Counter) SetPeriod(now vtime.Time, p clocks.Period) {
	if p == c.Period {
		return
	}

	c.Recompute(now)
	c.Period = p
	if !c.Enabled {
		return
	}
	if c.Period == 0 {
		logger.Logf(c.Log, "tcu", "%s: clock stopped, counter disabled", c.name)
		c.Enable(now, false)
		return
	}
	c.origin(now)
	c.ScheduleNext(now)
}

// Reset the counter to its quiescent state. The flag masks are part of the
// static configuration and are not changed.
func (c *Counter) Reset() {
	c.alarm.cancel()
	c.State = State{
		TopMask:  c.TopMask,
		CompMask: c.CompMask,
	}
}

// Snapshot returns a copy of the counter state.
func (c *Counter) Snapshot() State {
	return c.State
}

// Plumb a previously snapshotted state into the counter. The wake-up is
// re-armed if the counter is enabled.
func (c *Counter) Plumb(now vtime.Time, s State) {
	c.State = s
	c.Count &= c.max
	c.Top &= c.max
	c.Compare &= c.max
	if c.Enabled && (c.Period == 0 || c.Top == 0) {
		c.Enabled = false
	}
	if c.Enabled {
		c.ScheduleNext(now)
	} else {
		c.alarm.cancel()
	}
}
