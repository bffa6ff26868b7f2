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

package channel_test

import (
	"math/rand"
	"testing"

	"github.com/OpenNoah/qemu-sub000/hardware/clocks"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/channel"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
	"github.com/OpenNoah/qemu-sub000/logger"
	"github.com/OpenNoah/qemu-sub000/test"
)

const (
	topFlag  = 0x0001
	compFlag = 0x0100
)

// host records the flags raised by a counter and when they were raised.
type host struct {
	clk     vtime.Clock
	flags   uint32
	matches []vtime.Time
}

func (h *host) Match(flags uint32) {
	h.flags |= flags
	h.matches = append(h.matches, h.clk.Now())
}

// jumpClock provides timers that never fire and a time that can be set to
// anything. used to test recomputation without wake-ups.
type jumpClock struct {
	*vtime.Loop
	now vtime.Time
}

func (j *jumpClock) Now() vtime.Time {
	return j.now
}

func newCounter(tb channel.Timebase, max uint32) (*channel.Counter, *host) {
	h := &host{clk: tb}
	c := channel.NewCounter("test", max, tb, h)
	c.Log = logger.Deny
	c.TopMask = topFlag
	c.CompMask = compFlag
	return c, h
}

// 1000ns per tick
var microsecond = clocks.PeriodFromNs(1000)

func TestWraparound(t *testing.T) {
	l := vtime.NewLoop()
	c, h := newCounter(l, channel.Width16)

	c.SetPeriod(0, microsecond)
	c.SetTop(0, 9)
	c.SetCompare(0, 4)
	c.Enable(0, true)
	test.DemandSuccess(t, c.Enabled)

	l.RunUntil(11 * vtime.Microsecond)
	test.ExpectEquality(t, c.Value(l.Now()), uint32(1))
	test.ExpectEquality(t, h.flags, uint32(topFlag|compFlag))
	test.ExpectEquality(t, c.Events.Compare, uint64(1))
	test.ExpectEquality(t, c.Events.Top, uint64(1))

	// matches happened at the exact tick
	test.DemandEquality(t, len(h.matches), 2)
	test.ExpectEquality(t, h.matches[0], 4*vtime.Microsecond)
	test.ExpectEquality(t, h.matches[1], 9*vtime.Microsecond)

	// no second compare match before tick 14
	l.RunUntil(13 * vtime.Microsecond)
	test.ExpectEquality(t, c.Events.Compare, uint64(1))
	l.RunUntil(14 * vtime.Microsecond)
	test.ExpectEquality(t, c.Events.Compare, uint64(2))
	test.ExpectEquality(t, c.Value(l.Now()), uint32(4))
}

func TestMaskedMatch(t *testing.T) {
	l := vtime.NewLoop()
	c, h := newCounter(l, channel.Width16)
	c.CompMask = 0

	c.SetPeriod(0, microsecond)
	c.SetTop(0, 9)
	c.SetCompare(0, 4)
	c.Enable(0, true)

	// the compare match is counted but not reported
	l.RunUntil(11 * vtime.Microsecond)
	test.ExpectEquality(t, h.flags, uint32(topFlag))
	test.ExpectEquality(t, c.Events.Compare, uint64(1))
	test.DemandEquality(t, len(h.matches), 1)
	test.ExpectEquality(t, h.matches[0], 9*vtime.Microsecond)

	// masks are static configuration and survive a reset
	c.Reset()
	test.ExpectEquality(t, c.TopMask, uint32(topFlag))
	test.ExpectEquality(t, c.CompMask, uint32(0))
	test.ExpectFailure(t, c.Enabled)
}

func TestScenario(t *testing.T) {
	l := vtime.NewLoop()
	c, h := newCounter(l, channel.Width16)

	c.SetPeriod(0, microsecond)
	c.SetTop(0, 0xffff)
	c.SetCompare(0, 0x8000)
	c.Enable(0, true)

	l.RunUntil(8_000_000)
	test.ExpectEquality(t, c.Value(l.Now()), uint32(8000))
	test.ExpectEquality(t, h.flags, uint32(0))

	l.RunUntil(0x8000 * 1000)
	test.ExpectEquality(t, h.flags, uint32(compFlag))
	test.ExpectEquality(t, c.Events.Compare, uint64(1))
	test.ExpectEquality(t, c.Value(l.Now()), uint32(0x8000))
	test.ExpectEquality(t, len(h.matches), 1)
}

func TestTickEquivalence(t *testing.T) {
	rnd := rand.New(rand.NewSource(2600))

	for i := 0; i < 50; i++ {
		top := uint32(rnd.Intn(200))
		compare := uint32(rnd.Intn(250))
		count := uint32(rnd.Intn(300))
		period := clocks.PeriodFromHz(uint64(1_000_000+rnd.Intn(5_000_000)), 1)
		ticks := 1 + rnd.Intn(2000)

		stepLoop := vtime.NewLoop()
		stepped, stepHost := newCounter(stepLoop, 0x1ff)
		jumpLoop := vtime.NewLoop()
		jumped, jumpHost := newCounter(jumpLoop, 0x1ff)

		for _, c := range []*channel.Counter{stepped, jumped} {
			c.SetPeriod(0, period)
			c.SetTop(0, top)
			c.SetCompare(0, compare)
			c.SetCount(0, count)
			c.Sync(0, true)
		}

		// step through every tick boundary, looking at the counter each time
		var end vtime.Time
		for n := 1; n <= ticks; n++ {
			end = vtime.Time((uint64(period)*uint64(n) + (1<<clocks.PeriodShift - 1)) >> clocks.PeriodShift)
			stepLoop.RunUntil(end)
			stepped.Recompute(stepLoop.Now())
		}

		jumpLoop.RunUntil(end)
		jumped.Recompute(jumpLoop.Now())

		test.ExpectEquality(t, jumped.Count, stepped.Count, i)
		test.ExpectEquality(t, jumped.Events, stepped.Events, i)
		test.ExpectEquality(t, jumpHost.flags, stepHost.flags, i)
		test.ExpectEquality(t, jumped.Enabled, stepped.Enabled, i)
	}
}

func TestDisableEnable(t *testing.T) {
	l := vtime.NewLoop()
	c, h := newCounter(l, channel.Width16)

	c.SetPeriod(0, microsecond)
	c.SetTop(0, 100)
	c.SetCompare(0, 50)
	c.Enable(0, true)

	l.RunUntil(60 * vtime.Microsecond)
	count := c.Value(l.Now())
	flags := h.flags
	deadline, ok := c.Deadline()
	test.DemandSuccess(t, ok)

	c.Enable(l.Now(), false)
	_, ok = c.Deadline()
	test.ExpectFailure(t, ok)

	c.Enable(l.Now(), true)
	test.ExpectEquality(t, c.Value(l.Now()), count)
	test.ExpectEquality(t, h.flags, flags)

	d, ok := c.Deadline()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, d, deadline)
}

func TestZeroTop(t *testing.T) {
	l := vtime.NewLoop()
	c, h := newCounter(l, channel.Width16)

	c.SetPeriod(0, microsecond)
	c.SetTop(0, 10)
	c.SetCompare(0, 0)
	c.Enable(0, true)
	test.DemandSuccess(t, c.Enabled)

	c.SetTop(0, 0)
	test.ExpectFailure(t, c.Enabled)
	_, ok := c.Deadline()
	test.ExpectFailure(t, ok)

	l.RunUntil(vtime.Millisecond)
	test.ExpectEquality(t, h.flags, uint32(0))
	test.ExpectEquality(t, c.Value(l.Now()), uint32(0))

	// a counter with top of zero cannot be started
	c.Sync(l.Now(), true)
	test.ExpectFailure(t, c.Enabled)
}

func TestZeroPeriod(t *testing.T) {
	l := vtime.NewLoop()
	c, _ := newCounter(l, channel.Width16)

	c.SetTop(0, 10)
	c.Enable(0, true)
	test.ExpectFailure(t, c.Enabled)

	c.SetPeriod(0, microsecond)
	c.Sync(0, true)
	test.ExpectSuccess(t, c.Enabled)

	l.RunUntil(5 * vtime.Microsecond)
	c.SetPeriod(l.Now(), 0)
	test.ExpectFailure(t, c.Enabled)
	test.ExpectEquality(t, c.Count, uint32(5))
}

func TestLongIdle(t *testing.T) {
	const idle = 1_000_000 * vtime.Second

	// counter looked at once, after 10^6 seconds
	jump := &jumpClock{Loop: vtime.NewLoop()}
	a, ah := newCounter(jump, channel.Width16)

	// counter looked at every second
	step := &jumpClock{Loop: vtime.NewLoop()}
	b, bh := newCounter(step, channel.Width16)

	for _, c := range []*channel.Counter{a, b} {
		c.SetPeriod(0, microsecond)
		c.SetTop(0, 0xffff)
		c.SetCompare(0, 0x1234)
		c.Enable(0, true)
	}

	jump.now = idle
	a.Recompute(jump.now)

	for step.now < idle {
		step.now += vtime.Second
		b.Recompute(step.now)
	}

	// one tick per microsecond
	const ticks = uint64(idle / vtime.Microsecond)

	test.ExpectEquality(t, a.Count, uint32(ticks%0x10000))
	test.ExpectEquality(t, b.Count, a.Count)
	test.ExpectEquality(t, b.Events, a.Events)
	test.ExpectEquality(t, bh.flags, ah.flags)
	test.ExpectEquality(t, a.Events.Top, ticks/0x10000)

	// epoch has been moved forward in the stepped counter
	test.ExpectInequality(t, b.Epoch, vtime.Time(0))
}

func TestRebaseIsExact(t *testing.T) {
	// a period that is not a whole number of nanoseconds
	period := clocks.PeriodFromHz(clocks.DefaultEXT, 1)

	step := &jumpClock{Loop: vtime.NewLoop()}
	a, _ := newCounter(step, channel.Width32)
	a.SetPeriod(0, period)
	a.SetTop(0, 0xffffffff)
	a.Enable(0, true)

	for i := 0; i < 100; i++ {
		step.now += 1700 * vtime.Millisecond
		a.Recompute(step.now)
	}

	// 12MHz for 170 seconds
	test.ExpectEquality(t, a.Count, uint32(12_000_000*170))
}

func TestWakeupClamp(t *testing.T) {
	l := vtime.NewLoop()
	c, _ := newCounter(l, channel.Width32)
	c.Rebase = 10 * vtime.Millisecond

	c.SetPeriod(0, microsecond)
	c.SetTop(0, 0xffffffff)
	c.SetCompare(0, 0xfffffff0)
	c.Enable(0, true)

	d, ok := c.Deadline()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, d, 10*vtime.Millisecond)

	// the counter keeps waking itself up
	l.RunUntil(vtime.Second)
	test.ExpectEquality(t, l.Fired(), uint64(100))
	test.ExpectEquality(t, c.Value(l.Now()), uint32(1_000_000))
}

func TestSetCount(t *testing.T) {
	l := vtime.NewLoop()
	c, h := newCounter(l, channel.Width16)

	c.SetPeriod(0, microsecond)
	c.SetTop(0, 1000)
	c.SetCompare(0, 500)
	c.Enable(0, true)

	l.RunUntil(100 * vtime.Microsecond)
	c.SetCount(l.Now(), 490)

	l.RunUntil(109 * vtime.Microsecond)
	test.ExpectEquality(t, h.flags, uint32(0))
	l.RunUntil(110 * vtime.Microsecond)
	test.ExpectEquality(t, h.flags, uint32(compFlag))

	// values are masked to the width of the counter
	c.SetCompare(l.Now(), 0x12345)
	test.ExpectEquality(t, c.Compare, uint32(0x2345))
}

func TestAboveTop(t *testing.T) {
	l := vtime.NewLoop()
	c, h := newCounter(l, channel.Width16)

	c.SetPeriod(0, microsecond)
	c.SetCount(0, 0xfff0)
	c.SetTop(0, 0x10)
	c.SetCompare(0, 0x8)
	c.Enable(0, true)

	// counter must wrap at the width of the counter before matching
	d, ok := c.Deadline()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, d, vtime.Time(0x10+0x8)*vtime.Microsecond)

	l.RunUntil(0x10 * vtime.Microsecond)
	test.ExpectEquality(t, c.Value(l.Now()), uint32(0))
	test.ExpectEquality(t, h.flags, uint32(0))

	l.RunUntil(0x20 * vtime.Microsecond)
	test.ExpectEquality(t, h.flags, uint32(topFlag|compFlag))
}

func TestSnapshot(t *testing.T) {
	l := vtime.NewLoop()
	c, _ := newCounter(l, channel.Width16)

	c.SetPeriod(0, microsecond)
	c.SetTop(0, 1000)
	c.SetCompare(0, 800)
	c.Enable(0, true)
	l.RunUntil(300 * vtime.Microsecond)
	c.Recompute(l.Now())

	s := c.Snapshot()

	l.RunUntil(900 * vtime.Microsecond)
	test.ExpectEquality(t, c.Events.Compare, uint64(1))

	c.Plumb(l.Now(), s)
	test.ExpectEquality(t, c.Count, uint32(300))
	test.ExpectEquality(t, c.Events.Compare, uint64(0))

	// plumbed state is behind virtual time. the wake-up catches up
	_, ok := c.Deadline()
	test.ExpectSuccess(t, ok)
	l.Step()
	test.ExpectEquality(t, c.Events.Compare, uint64(1))

	c.Reset()
	test.ExpectFailure(t, c.Enabled)
	test.ExpectEquality(t, c.Count, uint32(0))
	test.ExpectEquality(t, c.TopMask, uint32(topFlag))
}
