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


package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/OpenNoah/qemu-sub000/hardware"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/registers"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
	"github.com/OpenNoah/qemu-sub000/logger"
	"github.com/OpenNoah/qemu-sub000/macro"
	"github.com/OpenNoah/qemu-sub000/modalflag"
	"github.com/OpenNoah/qemu-sub000/terminal"
)

func monitor(md *modalflag.Modes) error {
	md.NewMode()

	opts := addSessionFlags(md)
	step := md.AddDuration("step", time.Millisecond, "virtual time advanced by the n key")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) > 1 {
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	sess, err := newSession(opts)
	if err != nil {
		return err
	}

	// an optional script sets up the bank before the monitor starts
	if len(md.RemainingArgs()) == 1 {
		mcr, err := macro.NewMacro(md.GetArg(0), sess.soc)
		if err != nil {
			return err
		}
		mcr.Output = md.Output
		if err := mcr.Run(); err != nil {
			return err
		}
	}

	var term terminal.Terminal
	err = term.Initialise(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer term.CleanUp()
	term.CBreakMode()

	// cbreak mode still delivers the interrupt signal. restore the terminal
	// before exiting
	defer onInterrupt(func() {
		term.CanonicalMode()
		os.Exit(0)
	})()

	mon := &monitorState{
		soc:  sess.soc,
		out:  &term,
		step: vtime.Time(step.Nanoseconds()),
	}
	mon.help()

	for {
		k, err := term.ReadKey()
		if err != nil {
			return err
		}
		if mon.key(k) {
			break
		}
	}

	return sess.end()
}

type monitorState struct {
	soc  *hardware.SoC
	out  io.Writer
	step vtime.Time

	// number of interrupt transitions already printed
	seen int
}

func (mon *monitorState) help() {
	fmt.Fprintln(mon.out, "space: next event   n: advance step   r: registers   c: counters")
	fmt.Fprintln(mon.out, "i: interrupts   l: log   x: reset   h: help   q: quit")
}

// key handles a single key press. returns true if the monitor should end.
func (mon *monitorState) key(k byte) bool {
	switch k {
	case 'q', terminal.KeyEsc, terminal.KeyCtrlC, terminal.KeyCtrlD:
		return true

	case terminal.KeySpace:
		if !mon.soc.Step() {
			fmt.Fprintln(mon.out, "no pending events")
		}
		mon.status()

	case 'n':
		mon.soc.RunUntil(mon.soc.Now() + mon.step)
		mon.status()

	case 'r':
		dumpRegisters(mon.out, mon.soc)

	case 'c':
		// snapshot brings the counters up to date
		mon.soc.TCU.Snapshot()
		for _, c := range mon.soc.TCU.Counters() {
			fmt.Fprintln(mon.out, c)
		}

	case 'i':
		mon.interrupts()

	case 'l':
		logger.Tail(mon.out, 10)

	case 'x':
		mon.soc.Reset()
		mon.status()

	case 'h', '?':
		mon.help()
	}

	return false
}

func (mon *monitorState) status() {
	mon.interrupts()
	fmt.Fprintf(mon.out, "time %v\n", mon.soc.Now())
}

// print interrupt transitions that have not yet been printed.
func (mon *monitorState) interrupts() {
	tr := mon.soc.IRQ.Transitions
	if mon.seen > len(tr) {
		mon.seen = 0
	}
	for _, t := range tr[mon.seen:] {
		fmt.Fprintln(mon.out, t)
	}
	mon.seen = len(tr)
}

// readable registers in address order
var dumpAddresses []uint32

func init() {
	for a := range registers.Symbols {
		dumpAddresses = append(dumpAddresses, a)
	}
	for n := 0; n < registers.NumChannels; n++ {
		for _, o := range []uint32{registers.TDFR, registers.TDHR, registers.TCNT, registers.TCSR} {
			dumpAddresses = append(dumpAddresses, registers.ChannelAddress(n, o))
		}
	}
	sort.Slice(dumpAddresses, func(i, j int) bool {
		return dumpAddresses[i] < dumpAddresses[j]
	})
}

func dumpRegisters(w io.Writer, soc *hardware.SoC) {
	for _, a := range dumpAddresses {
		v, err := soc.TCU.Peek(a)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%03x %-7s %#08x\n", a, registers.Symbol(a), v)
	}
}
