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


package tcu

import (
	"fmt"
	"strings"

	"github.com/OpenNoah/qemu-sub000/curated"
	"github.com/OpenNoah/qemu-sub000/hardware/clocks"
	"github.com/OpenNoah/qemu-sub000/hardware/irq"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/channel"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/registers"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
	"github.com/OpenNoah/qemu-sub000/logger"
)

// TCU is the timer/counter unit.
type TCU struct {
	model  Model
	layout modelLayout

	tb  channel.Timebase
	res clocks.Resolver

	Channels [registers.NumChannels]*Timer
	OST      *OST
	WDT      *Watchdog

	// bank registers
	ter  uint32
	tsr  uint32
	tfr  uint32
	tmr  uint32
	tstr uint32

	lines [numIRQ]*irq.Line

	// permission for log entries about the configuration of the TCU
	Log logger.Permission

	// permission for log entries about every register access
	Trace logger.Permission
}

// NewTCU is the preferred method of initialisation for the TCU type. The
// Timebase is usually a *vtime.Loop. The sink receives the interrupt and reset
// request lines and may be nil.
func NewTCU(model Model, tb channel.Timebase, res clocks.Resolver, sink irq.Sink) (*TCU, error) {
	layout, ok := models[model]
	if !ok {
		return nil, curated.Errorf(UnknownModel, model)
	}

	t := &TCU{
		model:  model,
		layout: layout,
		tb:     tb,
		res:    res,
		Log:    logger.Allow,
		Trace:  logger.Deny,
	}

	for i := range t.lines {
		t.lines[i] = irq.NewLine(fmt.Sprintf("tcu%d", i), i, sink)
	}

	for i := range t.Channels {
		t.Channels[i] = newTimer(i, layout.tcu2[i], tb, t)
	}
	t.OST = newOST(tb, t)
	t.WDT = newWatchdog(tb, irq.NewLine("wdt", ResetLine, sink))

	t.Reset()

	return t, nil
}

// Model returns the SoC model the TCU was created for.
func (t *TCU) Model() Model {
	return t.model
}

func (t *TCU) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s TCU: ter=%#04x tsr=%#05x tfr=%#06x tmr=%#06x tstr=%#05x\n",
		t.model, t.ter, t.tsr, t.tfr, t.tmr, t.tstr))
	for _, c := range t.Counters() {
		s.WriteString(c.String())
		s.WriteString("\n")
	}
	for _, l := range t.lines {
		s.WriteString(l.String())
		s.WriteString(" ")
	}
	s.WriteString(t.WDT.Reset.String())
	return s.String()
}

// Counters returns every counter in the TCU. The six channels first, then
// the OST and finally the watchdog.
func (t *TCU) Counters() []*channel.Counter {
	c := make([]*channel.Counter, 0, registers.NumChannels+2)
	for _, ch := range t.Channels {
		c = append(c, ch.Counter)
	}
	return append(c, t.OST.Counter, t.WDT.Counter)
}

// Line returns the interrupt line with the specified number. ResetLine
// returns the watchdog's reset request line.
func (t *TCU) Line(n int) *irq.Line {
	if n == ResetLine {
		return t.WDT.Reset
	}
	if n < 0 || n >= numIRQ {
		return nil
	}
	return t.lines[n]
}

// SetRebase changes the epoch rebase threshold of every counter.
func (t *TCU) SetRebase(d vtime.Time) {
	for _, c := range t.Counters() {
		c.Rebase = d
	}
}

// SetLog changes the log permission of the TCU and of every counter.
func (t *TCU) SetLog(perm logger.Permission) {
	t.Log = perm
	for _, c := range t.Counters() {
		c.Log = perm
	}
}

// Match implements the channel.Host interface for the channels and the OST.
func (t *TCU) Match(flags uint32) {
	t.tfr |= flags & registers.FlagMask
	t.updateIRQ()
}

// an interrupt line is high if any of the unmasked flags in its group are
// set.
func (t *TCU) updateIRQ() {
	pending := t.tfr &^ t.tmr
	for i, g := range t.layout.groups {
		t.lines[i].Set(pending&g != 0)
	}
}

// sync every counter with the run state implied by the enable and stop
// registers.
func (t *TCU) sync(now vtime.Time) {
	for i, ch := range t.Channels {
		b := registers.FullBit(i)
		ch.Counter.Sync(now, t.ter&b != 0 && t.tsr&b == 0)
	}
	t.OST.Counter.Sync(now, t.ter&registers.OSTBit != 0 && t.tsr&registers.OSTBit == 0)
	t.WDT.Counter.Sync(now, t.WDT.tcer&registers.TCERMask != 0 && t.tsr&registers.WatchdogBit == 0)
}

// ask the resolver for the period selected by the control register value and
// give it to the counter.
func (t *TCU) resolve(now vtime.Time, c *channel.Counter, csr uint32) {
	src, div := registers.ClockSelect(csr)
	var p clocks.Period
	if src != clocks.None && div != 0 && t.res != nil {
		p = t.res.ClockPeriod(src, div)
	}
	if p != c.Period && p != 0 {
		logger.Logf(t.Log, "tcu", "%s: timer freq %dHz (%v/%d)", c.Name(), p.Hz(), src, div)
	}
	c.SetPeriod(now, p)
}

// ClockChanged must be called when the rate of any clock source changes. The
// period of every counter is queried again.
func (t *TCU) ClockChanged() {
	now := t.tb.Now()
	for _, ch := range t.Channels {
		t.resolve(now, ch.Counter, ch.csr)
	}
	t.resolve(now, t.OST.Counter, t.OST.csr)
	t.resolve(now, t.WDT.Counter, t.WDT.csr)
	t.sync(now)
}
