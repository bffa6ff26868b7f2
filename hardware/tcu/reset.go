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

// the order of the steps matters. counters must be quiet before the
// interrupt lines are brought down.
var resetSteps = []struct {
	name string
	step func(t *TCU)
}{
	{name: "bank", step: (*TCU).resetBank},
	{name: "channels", step: (*TCU).resetChannels},
	{name: "ost", step: (*TCU).resetOST},
	{name: "watchdog", step: (*TCU).resetWatchdog},
	{name: "irq", step: (*TCU).updateIRQ},
}

// Reset the TCU to its power-on state. Every counter is stopped and every
// register is zeroed.
func (t *TCU) Reset() {
	for _, s := range resetSteps {
		s.step(t)
	}
}

func (t *TCU) resetBank() {
	t.ter = 0
	t.tsr = 0
	t.tfr = 0
	t.tmr = 0
	t.tstr = 0
}

func (t *TCU) resetChannels() {
	for _, ch := range t.Channels {
		ch.reset()
	}
}

func (t *TCU) resetOST() {
	t.OST.reset()
}

func (t *TCU) resetWatchdog() {
	t.WDT.reset()
}
