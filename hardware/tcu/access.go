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
	"github.com/OpenNoah/qemu-sub000/curated"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/registers"
	"github.com/OpenNoah/qemu-sub000/logger"
)

// Peek returns the value of the register at the address. Reading a counter
// brings it up to date, which may raise flags, but there are no other side
// effects.
func (t *TCU) Peek(addr uint32) (uint32, error) {
	now := t.tb.Now()

	if n, o, ok := registers.Channel(addr); ok {
		return t.readTimer(now, t.Channels[n], o), nil
	}

	switch addr {
	case registers.TDR, registers.TCER, registers.WCNT, registers.WCSR:
		return t.readWatchdog(now, addr), nil
	case registers.OSTDR, registers.OSTCNT, registers.OSTCSR:
		return t.readOST(now, addr), nil
	case registers.TER:
		return t.ter, nil
	case registers.TSR:
		return t.tsr, nil
	case registers.TFR:
		return t.tfr, nil
	case registers.TMR:
		return t.tmr, nil
	case registers.TSTR:
		return t.tstr, nil
	case registers.TESR, registers.TECR, registers.TSSR, registers.TSCR,
		registers.TFSR, registers.TFCR, registers.TMSR, registers.TMCR,
		registers.TSTSR, registers.TSTCR:
		return 0, curated.Errorf(WriteOnlyRegister, registers.Symbol(addr))
	}

	return 0, curated.Errorf(UnmappedRegister, addr)
}

// Read is the same as Peek() except that the access is logged. Errors are
// always logged.
func (t *TCU) Read(addr uint32) (uint32, error) {
	data, err := t.Peek(addr)
	if err != nil {
		logger.Log(t.Log, "tcu", err)
		return 0, err
	}
	logger.Logf(t.Trace, "tcu", "read %s: %#x", registers.Symbol(addr), data)
	return data, nil
}

// Write a value to the register at the address. Bits that are not writable
// are ignored.
func (t *TCU) Write(addr uint32, data uint32) error {
	logger.Logf(t.Trace, "tcu", "write %s: %#x", registers.Symbol(addr), data)

	now := t.tb.Now()

	if n, o, ok := registers.Channel(addr); ok {
		t.writeTimer(now, t.Channels[n], o, data)
		t.sync(now)
		return nil
	}

	switch addr {
	case registers.TDR, registers.TCER, registers.WCNT, registers.WCSR:
		t.writeWatchdog(now, addr, data)
	case registers.OSTDR, registers.OSTCNT, registers.OSTCSR:
		t.writeOST(now, addr, data)
	case registers.TESR:
		t.ter |= data & registers.EnableMask
		logger.Logf(t.Log, "tcu", "timer enables %#04x", t.ter)
	case registers.TECR:
		t.ter &^= data & registers.EnableMask
		logger.Logf(t.Log, "tcu", "timer enables %#04x", t.ter)
	case registers.TSSR:
		t.tsr |= data & registers.StopMask
	case registers.TSCR:
		t.tsr &^= data & registers.StopMask
	case registers.TFSR:
		t.tfr |= data & registers.FlagMask
		t.updateIRQ()
	case registers.TFCR:
		t.tfr &^= data & registers.FlagMask
		t.updateIRQ()
	case registers.TMSR:
		t.tmr |= data & registers.FlagMask
		t.updateIRQ()
	case registers.TMCR:
		t.tmr &^= data & registers.FlagMask
		t.updateIRQ()
	case registers.TSTSR:
		t.tstr |= data & registers.StatusMask
	case registers.TSTCR:
		t.tstr &^= data & registers.StatusMask
	case registers.TER, registers.TSR, registers.TFR, registers.TMR, registers.TSTR:
		err := curated.Errorf(ReadOnlyRegister, registers.Symbol(addr))
		logger.Log(t.Log, "tcu", err)
		return err
	default:
		err := curated.Errorf(UnmappedRegister, addr)
		logger.Log(t.Log, "tcu", err)
		return err
	}

	t.sync(now)

	return nil
}
