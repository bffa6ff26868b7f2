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
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/channel"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/registers"
)

// ChannelState is the snapshot of a timer channel.
type ChannelState struct {
	TCSR    uint32
	Counter channel.State
}

// OSTState is the snapshot of the OST.
type OSTState struct {
	OSTCSR  uint32
	OSTDR   uint32
	Counter channel.State
}

// WatchdogState is the snapshot of the watchdog.
type WatchdogState struct {
	TCSR    uint32
	TCER    uint32
	Reset   bool
	Counter channel.State
}

// State is a snapshot of the entire TCU.
type State struct {
	Model Model

	TER  uint32
	TSR  uint32
	TFR  uint32
	TMR  uint32
	TSTR uint32

	Channels [registers.NumChannels]ChannelState
	OST      OSTState
	WDT      WatchdogState
}

// Snapshot creates a copy of the TCU state. Counters are brought up to date
// first.
func (t *TCU) Snapshot() *State {
	now := t.tb.Now()
	for _, c := range t.Counters() {
		c.Recompute(now)
	}

	s := &State{
		Model: t.model,
		TER:   t.ter,
		TSR:   t.tsr,
		TFR:   t.tfr,
		TMR:   t.tmr,
		TSTR:  t.tstr,
	}
	for i, ch := range t.Channels {
		s.Channels[i] = ChannelState{
			TCSR:    ch.csr,
			Counter: ch.Counter.Snapshot(),
		}
	}
	s.OST = OSTState{
		OSTCSR:  t.OST.csr,
		OSTDR:   t.OST.dr,
		Counter: t.OST.Counter.Snapshot(),
	}
	s.WDT = WatchdogState{
		TCSR:    t.WDT.csr,
		TCER:    t.WDT.tcer,
		Reset:   t.WDT.Reset.Level(),
		Counter: t.WDT.Counter.Snapshot(),
	}

	return s
}

// Plumb a snapshot into the TCU. The snapshot should have been created from a
// TCU of the same model. Wake-ups are re-armed relative to the current time.
func (t *TCU) Plumb(s *State) {
	if s == nil {
		return
	}

	now := t.tb.Now()

	t.ter = s.TER
	t.tsr = s.TSR
	t.tfr = s.TFR
	t.tmr = s.TMR
	t.tstr = s.TSTR

	for i, ch := range t.Channels {
		ch.csr = s.Channels[i].TCSR
		ch.Counter.Plumb(now, s.Channels[i].Counter)
	}

	t.OST.csr = s.OST.OSTCSR
	t.OST.dr = s.OST.OSTDR
	t.OST.Counter.Plumb(now, s.OST.Counter)

	t.WDT.csr = s.WDT.TCSR
	t.WDT.tcer = s.WDT.TCER
	t.WDT.Counter.Plumb(now, s.WDT.Counter)
	t.WDT.Reset.Set(s.WDT.Reset)

	t.updateIRQ()
}
