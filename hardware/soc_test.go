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


package hardware_test

import (
	"testing"

	"github.com/OpenNoah/qemu-sub000/hardware"
	"github.com/OpenNoah/qemu-sub000/hardware/clocks"
	"github.com/OpenNoah/qemu-sub000/hardware/irq"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/registers"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
	"github.com/OpenNoah/qemu-sub000/logger"
	"github.com/OpenNoah/qemu-sub000/test"
)

func newSoC(t *testing.T, sinks ...irq.Sink) *hardware.SoC {
	t.Helper()
	soc, err := hardware.NewSoC(nil, sinks...)
	test.DemandSuccess(t, err)
	soc.TCU.SetLog(logger.Deny)
	soc.SetRate(clocks.EXT, 1_000_000)
	return soc
}

func TestWatchdogReset(t *testing.T) {
	soc := newSoC(t)

	test.DemandSuccess(t, soc.Write(registers.WCSR, registers.CSREXT))
	test.DemandSuccess(t, soc.Write(registers.TDR, 100))
	test.DemandSuccess(t, soc.Write(registers.TCER, 1))

	soc.RunUntil(99 * vtime.Microsecond)
	test.ExpectEquality(t, soc.WatchdogResets, 0)

	soc.RunUntil(150 * vtime.Microsecond)
	test.ExpectEquality(t, soc.WatchdogResets, 1)
	test.ExpectEquality(t, soc.Now(), 150*vtime.Microsecond)

	// the reset stopped the watchdog
	v, err := soc.Read(registers.TCER)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0))
	test.ExpectFailure(t, soc.IRQ.Level(tcu.ResetLine))

	soc.RunUntil(1000 * vtime.Microsecond)
	test.ExpectEquality(t, soc.WatchdogResets, 1)
}

type counter struct {
	rising int
}

func (c *counter) SetIRQ(line int, level bool) {
	if line == tcu.IRQ0 && level {
		c.rising++
	}
}

func TestRun(t *testing.T) {
	c := &counter{}
	soc := newSoC(t, c)

	test.DemandSuccess(t, soc.Write(registers.ChannelAddress(0, registers.TDFR), 10))
	test.DemandSuccess(t, soc.Write(registers.ChannelAddress(0, registers.TDHR), 10))
	test.DemandSuccess(t, soc.Write(registers.ChannelAddress(0, registers.TCSR), registers.CSREXT))
	test.DemandSuccess(t, soc.Write(registers.TESR, registers.FullBit(0)))

	// clear the flags every time the line goes high. stop after five
	err := soc.Run(vtime.Second, func() (bool, error) {
		if soc.IRQ.Level(tcu.IRQ0) {
			if err := soc.Write(registers.TFCR, registers.FlagMask); err != nil {
				return false, err
			}
		}
		return c.rising < 5, nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, c.rising, 5)

	// cycle is eleven ticks long
	test.ExpectEquality(t, soc.Now(), 54*vtime.Microsecond)

	// run to the limit
	err = soc.Run(100*vtime.Microsecond, nil)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, soc.Now(), 100*vtime.Microsecond)
}

func TestSnapshot(t *testing.T) {
	soc := newSoC(t)

	test.DemandSuccess(t, soc.Write(registers.OSTCSR, registers.CSREXT))
	test.DemandSuccess(t, soc.Write(registers.OSTDR, 1000))
	test.DemandSuccess(t, soc.Write(registers.TESR, registers.OSTBit))
	soc.RunUntil(100 * vtime.Microsecond)

	s := soc.Snapshot()
	test.ExpectEquality(t, s.EXT, uint64(1_000_000))
	test.ExpectEquality(t, s.TCU.OST.Counter.Count, uint32(100))

	soc.SetRate(clocks.EXT, 2_000_000)
	soc.Reset()

	soc.Plumb(s)
	test.ExpectEquality(t, soc.Clocks.Rate(clocks.EXT), uint64(1_000_000))
	v, err := soc.Read(registers.OSTCNT)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint32(100))
}
