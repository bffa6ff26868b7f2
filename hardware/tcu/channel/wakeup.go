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

	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
	"github.com/OpenNoah/qemu-sub000/logger"
)

// wakeup is the bridge between the counter and the event loop. there is at
// most one pending wake-up for a counter and arming it always replaces the
// previous arming.
type wakeup struct {
	tmr *vtime.Timer
}

func (w *wakeup) armAt(t vtime.Time) {
	w.tmr.Mod(t)
}

func (w *wakeup) cancel() {
	w.tmr.Del()
}

// Deadline returns the time of the pending wake-up. The boolean is false if
// no wake-up is pending.
func (c *Counter) Deadline() (vtime.Time, bool) {
	if !c.alarm.tmr.Pending() {
		return 0, false
	}
	return c.alarm.tmr.Expires(), true
}

// ScheduleNext arms the wake-up for the next tick at which a flag would be
// raised. The wake-up is never further away than the rebase threshold.
func (c *Counter) ScheduleNext(now vtime.Time) {
	if !c.Enabled {
		c.alarm.cancel()
		return
	}

	if c.Top == 0 || c.Period == 0 {
		logger.Logf(c.Log, "tcu", "%s: invalid configuration, counter disabled", c.name)
		c.Enable(now, false)
		return
	}

	d := uint64(math.MaxUint64)
	if c.CompMask != 0 {
		if n, ok := distance(c.Count, c.Top, c.max, c.Compare); ok && n < d {
			d = n
		}
	}
	if c.TopMask != 0 {
		if n, ok := distance(c.Count, c.Top, c.max, c.Top); ok && n < d {
			d = n
		}
	}

	at := now + c.rebaseThreshold()
	if d != math.MaxUint64 {
		if t, ok := c.timeOfTick(c.Ticks + d); ok && t < at {
			at = t
		}
	}

	c.alarm.armAt(at)
}

// wake is called by the event loop when the armed time is reached. the
// counter keeps re-arming itself for as long as it is enabled.
func (c *Counter) wake() {
	now := c.clk.Now()
	c.Recompute(now)
	c.ScheduleNext(now)
}
