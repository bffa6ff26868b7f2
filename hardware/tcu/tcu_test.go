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


package tcu_test

import (
	"testing"

	"github.com/OpenNoah/qemu-sub000/curated"
	"github.com/OpenNoah/qemu-sub000/hardware/clocks"
	"github.com/OpenNoah/qemu-sub000/hardware/irq"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/registers"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
	"github.com/OpenNoah/qemu-sub000/logger"
	"github.com/OpenNoah/qemu-sub000/test"
)

type rig struct {
	t    *testing.T
	bank *tcu.TCU
	loop *vtime.Loop
	rec  *irq.Recorder
	gen  *clocks.Generator
}

// the EXT clock runs at 1MHz so that one tick is one microsecond
func newRig(t *testing.T, model tcu.Model) *rig {
	t.Helper()

	r := &rig{
		t:    t,
		loop: vtime.NewLoop(),
		gen:  clocks.NewGenerator(),
	}
	r.gen.SetRate(clocks.EXT, 1_000_000)
	r.rec = irq.NewRecorder(r.loop)

	var err error
	r.bank, err = tcu.NewTCU(model, r.loop, r.gen, r.rec)
	test.DemandSuccess(t, err)
	r.bank.SetLog(logger.Deny)

	return r
}

func (r *rig) write(addr uint32, data uint32) {
	r.t.Helper()
	test.DemandSuccess(r.t, r.bank.Write(addr, data))
}

func (r *rig) read(addr uint32) uint32 {
	r.t.Helper()
	v, err := r.bank.Read(addr)
	test.DemandSuccess(r.t, err)
	return v
}

func (r *rig) runUntil(us vtime.Time) {
	r.loop.RunUntil(us * vtime.Microsecond)
}

func (r *rig) channel(n int, top uint32, compare uint32) {
	r.write(registers.ChannelAddress(n, registers.TDFR), top)
	r.write(registers.ChannelAddress(n, registers.TDHR), compare)
	r.write(registers.ChannelAddress(n, registers.TCSR), registers.CSREXT)
}

func TestModel(t *testing.T) {
	m, err := tcu.ModelFromString("jz4755")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, m, tcu.JZ4755)
	test.ExpectEquality(t, m.String(), "JZ4755")

	_, err = tcu.ModelFromString("jz4780")
	test.ExpectSuccess(t, curated.Is(err, tcu.UnknownModel))

	_, err = tcu.NewTCU(tcu.Model(99), vtime.NewLoop(), clocks.NewGenerator(), nil)
	test.ExpectSuccess(t, curated.Is(err, tcu.UnknownModel))
}

func TestFlagAggregation(t *testing.T) {
	r := newRig(t, tcu.JZ4740)

	r.channel(0, 10, 5)
	r.channel(1, 20, 15)

	// compare is beyond top and so is never reached
	r.channel(2, 30, 40)

	r.write(registers.TESR, 0x07)
	test.ExpectEquality(t, r.read(registers.TER), uint32(0x07))

	r.runUntil(30)

	expected := registers.FullBit(0) | registers.HalfBit(0) |
		registers.FullBit(1) | registers.HalfBit(1) |
		registers.FullBit(2)
	test.ExpectEquality(t, r.read(registers.TFR), expected)
	test.ExpectEquality(t, r.read(registers.TFR), uint32(0x00030007))

	test.ExpectSuccess(t, r.rec.Level(tcu.IRQ0))
	test.ExpectSuccess(t, r.rec.Level(tcu.IRQ1))
	test.ExpectSuccess(t, r.rec.Level(tcu.IRQ2))
	test.ExpectEquality(t, r.rec.Count(tcu.IRQ2), 1)

	// masking a flag lowers the line but leaves the flag set
	r.write(registers.TMSR, registers.FullBit(2))
	test.ExpectFailure(t, r.rec.Level(tcu.IRQ2))
	test.ExpectEquality(t, r.read(registers.TFR), expected)
	test.ExpectEquality(t, r.read(registers.TMR), registers.FullBit(2))

	r.write(registers.TMCR, registers.FullBit(2))
	test.ExpectSuccess(t, r.rec.Level(tcu.IRQ2))
	test.ExpectEquality(t, r.rec.Count(tcu.IRQ2), 2)

	r.write(registers.TFCR, registers.FullBit(2))
	test.ExpectFailure(t, r.rec.Level(tcu.IRQ2))

	// line 0 stays high until both flags of channel 0 are cleared
	r.write(registers.TFCR, registers.FullBit(0))
	test.ExpectSuccess(t, r.rec.Level(tcu.IRQ0))
	r.write(registers.TFCR, registers.HalfBit(0))
	test.ExpectFailure(t, r.rec.Level(tcu.IRQ0))

	// flags can be raised by software
	r.write(registers.TFSR, registers.HalfBit(0))
	test.ExpectSuccess(t, r.rec.Level(tcu.IRQ0))

	// bits outside the flag register are ignored
	r.write(registers.TFSR, 0xffffffff)
	test.ExpectEquality(t, r.read(registers.TFR), registers.FlagMask)
}

func TestControlRegister(t *testing.T) {
	r := newRig(t, tcu.JZ4740)
	r.gen.SetRate(clocks.EXT, clocks.DefaultEXT)

	addr := registers.ChannelAddress(3, registers.TCSR)
	data := registers.CSRPCLK | registers.CSREXT | 2<<3 |
		registers.CSRPWM | registers.CSRInitL | registers.CSRShutdown |
		registers.CSRClearZero | 1<<6
	r.write(addr, data)
	test.ExpectEquality(t, r.read(addr), data&registers.ChannelCSRMask)
	test.ExpectEquality(t, r.bank.Channels[3].Counter.Period, r.gen.ClockPeriod(clocks.EXT, 16))

	// reserved prescale value stops the clock
	r.write(addr, registers.CSREXT|6<<3)
	test.ExpectEquality(t, r.bank.Channels[3].Counter.Period, clocks.Period(0))

	r.write(addr, registers.CSRRTC|5<<3)
	test.ExpectEquality(t, r.bank.Channels[3].Counter.Period, r.gen.ClockPeriod(clocks.RTC, 1024))

	// no source selected
	r.write(addr, 5<<3)
	test.ExpectEquality(t, r.bank.Channels[3].Counter.Period, clocks.Period(0))
}

func TestClearZero(t *testing.T) {
	for _, m := range []tcu.Model{tcu.JZ4740, tcu.JZ4755} {
		r := newRig(t, m)
		r.channel(1, 1000, 1000)
		r.write(registers.TESR, registers.FullBit(1))

		r.runUntil(50)
		cnt := registers.ChannelAddress(1, registers.TCNT)
		test.ExpectEquality(t, r.read(cnt), uint32(50), m)

		r.write(registers.ChannelAddress(1, registers.TCSR), registers.CSREXT|registers.CSRClearZero)
		test.ExpectEquality(t, r.read(registers.ChannelAddress(1, registers.TCSR)), registers.CSREXT, m)

		r.runUntil(60)
		if m == tcu.JZ4755 {
			test.ExpectEquality(t, r.read(cnt), uint32(10), m)
		} else {
			test.ExpectEquality(t, r.read(cnt), uint32(60), m)
		}
	}
}

func TestStopAndClockChange(t *testing.T) {
	r := newRig(t, tcu.JZ4740)
	r.channel(0, 1000, 1000)
	r.write(registers.TESR, registers.FullBit(0))

	cnt := registers.ChannelAddress(0, registers.TCNT)

	r.runUntil(100)
	test.ExpectEquality(t, r.read(cnt), uint32(100))

	r.write(registers.TSSR, registers.FullBit(0))
	test.ExpectFailure(t, r.bank.Channels[0].Counter.Enabled)
	r.runUntil(200)
	test.ExpectEquality(t, r.read(cnt), uint32(100))

	// the enable bit is untouched by the stop
	test.ExpectEquality(t, r.read(registers.TER), registers.FullBit(0))

	r.write(registers.TSCR, registers.FullBit(0))
	r.runUntil(250)
	test.ExpectEquality(t, r.read(cnt), uint32(150))

	r.gen.SetRate(clocks.EXT, 2_000_000)
	r.bank.ClockChanged()
	r.runUntil(260)
	test.ExpectEquality(t, r.read(cnt), uint32(170))

	// disable. the counter holds its value
	r.write(registers.TECR, registers.FullBit(0))
	r.runUntil(300)
	test.ExpectEquality(t, r.read(cnt), uint32(170))
	_, ok := r.bank.Channels[0].Counter.Deadline()
	test.ExpectFailure(t, ok)
}

func TestOST(t *testing.T) {
	r := newRig(t, tcu.JZ4740)

	r.write(registers.OSTCSR, registers.CSREXT)
	r.write(registers.OSTDR, 100)
	r.write(registers.TESR, registers.OSTBit)

	r.runUntil(150)
	test.ExpectEquality(t, r.read(registers.OSTCNT), uint32(49))
	test.ExpectEquality(t, r.read(registers.TFR), registers.OSTBit)
	test.ExpectSuccess(t, r.rec.Level(tcu.IRQ2))

	r.write(registers.TFCR, registers.OSTBit)
	test.ExpectFailure(t, r.rec.Level(tcu.IRQ2))

	// counter no longer wraps at OSTDR but still raises the flag
	r.write(registers.OSTCSR, registers.CSREXT|registers.CSRCountMode)
	test.ExpectEquality(t, r.read(registers.OSTCSR), registers.CSREXT|registers.CSRCountMode)
	test.ExpectEquality(t, r.read(registers.OSTDR), uint32(100))

	r.runUntil(250)
	test.ExpectEquality(t, r.read(registers.OSTCNT), uint32(149))
	test.ExpectEquality(t, r.read(registers.TFR), registers.OSTBit)
	test.ExpectSuccess(t, r.rec.Level(tcu.IRQ2))

	r.runUntil(400)
	test.ExpectEquality(t, r.read(registers.OSTCNT), uint32(299))

	// the OST is 32-bit
	r.write(registers.OSTCNT, 0xfffffff0)
	r.runUntil(416)
	test.ExpectEquality(t, r.read(registers.OSTCNT), uint32(0))
}

func TestWatchdog(t *testing.T) {
	r := newRig(t, tcu.JZ4740)

	r.write(registers.WCSR, registers.CSREXT)
	r.write(registers.TDR, 1000)
	r.write(registers.TCER, 1)

	r.runUntil(999)
	test.ExpectFailure(t, r.rec.Level(tcu.ResetLine))
	test.ExpectEquality(t, r.read(registers.WCNT), uint32(999))

	r.runUntil(1000)
	test.ExpectSuccess(t, r.rec.Level(tcu.ResetLine))
	test.ExpectSuccess(t, r.bank.Line(tcu.ResetLine).Level())

	// the watchdog does not contribute to the flag register
	test.ExpectEquality(t, r.read(registers.TFR), uint32(0))

	r.write(registers.TCER, 1)
	test.ExpectFailure(t, r.rec.Level(tcu.ResetLine))

	r.runUntil(2001)
	test.ExpectSuccess(t, r.rec.Level(tcu.ResetLine))

	// writing the counter withdraws the request
	r.write(registers.WCNT, 0)
	test.ExpectFailure(t, r.rec.Level(tcu.ResetLine))

	// a stopped watchdog never fires
	r.write(registers.TSSR, registers.WatchdogBit)
	r.runUntil(5000)
	test.ExpectFailure(t, r.rec.Level(tcu.ResetLine))
	test.ExpectEquality(t, r.rec.Count(tcu.ResetLine), 2)
}

func TestRegisterErrors(t *testing.T) {
	r := newRig(t, tcu.JZ4740)

	_, err := r.bank.Read(0xa0)
	test.ExpectSuccess(t, curated.Is(err, tcu.UnmappedRegister))
	test.ExpectEquality(t, err.Error(), "tcu: unmapped register: 0xa0")

	_, err = r.bank.Read(0xe4)
	test.ExpectSuccess(t, curated.Is(err, tcu.UnmappedRegister))

	err = r.bank.Write(0x100, 0)
	test.ExpectSuccess(t, curated.Is(err, tcu.UnmappedRegister))

	// unaligned addresses in the channel area are unmapped
	r.write(registers.ChannelAddress(0, registers.TCSR), 0x4)
	_, err = r.bank.Read(0x4d)
	test.ExpectSuccess(t, curated.Is(err, tcu.UnmappedRegister))
	test.ExpectEquality(t, err.Error(), "tcu: unmapped register: 0x4d")
	err = r.bank.Write(0x42, 1)
	test.ExpectSuccess(t, curated.Is(err, tcu.UnmappedRegister))
	test.ExpectEquality(t, r.read(registers.ChannelAddress(0, registers.TDHR)), uint32(0))

	err = r.bank.Write(registers.TFR, 1)
	test.ExpectSuccess(t, curated.Is(err, tcu.ReadOnlyRegister))
	test.ExpectEquality(t, err.Error(), "tcu: register is read only: TFR")
	test.ExpectEquality(t, r.read(registers.TFR), uint32(0))

	_, err = r.bank.Read(registers.TMSR)
	test.ExpectSuccess(t, curated.Is(err, tcu.WriteOnlyRegister))

	_, err = r.bank.Peek(registers.TESR)
	test.ExpectSuccess(t, curated.Is(err, tcu.WriteOnlyRegister))
}

func TestSnapshot(t *testing.T) {
	r := newRig(t, tcu.JZ4740)
	r.channel(0, 1000, 500)
	r.write(registers.TESR, registers.FullBit(0))

	r.runUntil(100)
	s := r.bank.Snapshot()
	test.ExpectEquality(t, s.Channels[0].Counter.Count, uint32(100))
	test.ExpectEquality(t, s.TER, registers.FullBit(0))
	test.ExpectEquality(t, s.Channels[0].TCSR, registers.CSREXT)

	r.write(registers.ChannelAddress(0, registers.TDFR), 99)
	r.write(registers.TMSR, registers.FlagMask)
	r.write(registers.TECR, registers.FullBit(0))

	r.bank.Plumb(s)
	test.ExpectEquality(t, r.read(registers.ChannelAddress(0, registers.TDFR)), uint32(1000))
	test.ExpectEquality(t, r.read(registers.TMR), uint32(0))
	test.ExpectEquality(t, r.read(registers.TER), registers.FullBit(0))
	test.ExpectEquality(t, r.read(registers.ChannelAddress(0, registers.TCNT)), uint32(100))

	_, ok := r.bank.Channels[0].Counter.Deadline()
	test.ExpectSuccess(t, ok)

	r.runUntil(500)
	test.ExpectEquality(t, r.read(registers.TFR), registers.HalfBit(0))
}

func TestReset(t *testing.T) {
	r := newRig(t, tcu.JZ4740)
	r.channel(0, 10, 5)
	r.write(registers.OSTCSR, registers.CSREXT)
	r.write(registers.OSTDR, 100)
	r.write(registers.TESR, registers.FullBit(0)|registers.OSTBit)

	r.runUntil(10)
	test.ExpectSuccess(t, r.rec.Level(tcu.IRQ0))

	r.bank.Reset()
	test.ExpectFailure(t, r.rec.Level(tcu.IRQ0))

	for _, a := range []uint32{registers.TER, registers.TFR, registers.TMR, registers.OSTDR, registers.OSTCSR} {
		test.ExpectEquality(t, r.read(a), uint32(0), registers.Symbol(a))
	}
	for n := 0; n < registers.NumChannels; n++ {
		for _, o := range []uint32{registers.TDFR, registers.TDHR, registers.TCNT, registers.TCSR} {
			a := registers.ChannelAddress(n, o)
			test.ExpectEquality(t, r.read(a), uint32(0), registers.Symbol(a))
		}
	}

	for _, c := range r.bank.Counters() {
		_, ok := c.Deadline()
		test.ExpectFailure(t, ok, c.Name())
	}

	// nothing fires after the reset
	r.rec.Clear()
	r.runUntil(1000)
	test.ExpectEquality(t, len(r.rec.Transitions), 0)
}
