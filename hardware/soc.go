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


package hardware

import (
	"github.com/OpenNoah/qemu-sub000/curated"
	"github.com/OpenNoah/qemu-sub000/hardware/clocks"
	"github.com/OpenNoah/qemu-sub000/hardware/irq"
	"github.com/OpenNoah/qemu-sub000/hardware/preferences"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
	"github.com/OpenNoah/qemu-sub000/logger"
)

// SoC is the main container for the emulated components.
type SoC struct {
	Prefs *preferences.Preferences

	Loop   *vtime.Loop
	Clocks *clocks.Generator
	TCU    *tcu.TCU

	// every interrupt line transition is recorded
	IRQ *irq.Recorder

	// the watchdog has asked for a reset. the reset happens between events
	resetPending bool

	// number of resets caused by the watchdog
	WatchdogResets int
}

// NewSoC creates a new SoC and everything associated with the hardware. If
// prefs is nil then the default model and clock rates are used. Additional
// sinks receive every interrupt line transition after it is recorded.
func NewSoC(prefs *preferences.Preferences, sinks ...irq.Sink) (*SoC, error) {
	soc := &SoC{
		Prefs:  prefs,
		Loop:   vtime.NewLoop(),
		Clocks: clocks.NewGenerator(),
	}

	soc.IRQ = irq.NewRecorder(soc.Loop)
	soc.IRQ.Forward = append(soc.IRQ.Forward, sinks...)
	soc.IRQ.Forward = append(soc.IRQ.Forward, soc)

	model := tcu.JZ4740
	if prefs != nil {
		model = prefs.TCUModel()
		prefs.ApplyClocks(soc.Clocks)
	}

	var err error
	soc.TCU, err = tcu.NewTCU(model, soc.Loop, soc.Clocks, soc.IRQ)
	if err != nil {
		return nil, curated.Errorf("soc: %v", err)
	}

	if prefs != nil {
		prefs.ApplyTCU(soc.TCU)
	}

	return soc, nil
}

func (soc *SoC) String() string {
	return soc.TCU.String()
}

// SetIRQ implements the irq.Sink interface. Only the watchdog's reset line is
// of interest.
func (soc *SoC) SetIRQ(line int, level bool) {
	if line == tcu.ResetLine && level {
		soc.resetPending = true
	}
}

// Read a TCU register.
func (soc *SoC) Read(addr uint32) (uint32, error) {
	return soc.TCU.Read(addr)
}

// Write a TCU register.
func (soc *SoC) Write(addr uint32, data uint32) error {
	return soc.TCU.Write(addr, data)
}

// Now returns the current virtual time.
func (soc *SoC) Now() vtime.Time {
	return soc.Loop.Now()
}

// SetRate changes the rate of a clock source and tells the TCU about it.
func (soc *SoC) SetRate(src clocks.Source, hz uint64) {
	soc.Clocks.SetRate(src, hz)
	soc.TCU.ClockChanged()
}

// Reset the SoC. Virtual time is not affected. The clock rates are reverted
// to the preferred values.
func (soc *SoC) Reset() {
	soc.resetPending = false
	if soc.Prefs != nil {
		soc.Prefs.ApplyClocks(soc.Clocks)
	}
	soc.TCU.Reset()
	soc.TCU.ClockChanged()
}

// performs a reset if the watchdog has requested one.
func (soc *SoC) serviceReset() {
	if !soc.resetPending {
		return
	}
	soc.WatchdogResets++
	logger.Logf(soc.TCU.Log, "soc", "watchdog reset at %v", soc.Loop.Now())
	soc.Reset()
}
