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
	"github.com/OpenNoah/qemu-sub000/hardware/clocks"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
)

// State stores the SoC sub-systems. It is produced by the Snapshot() function
// and can be restored with the Plumb() function.
//
// Note that virtual time cannot be restored. The Time field records when the
// snapshot was taken.
type State struct {
	Time vtime.Time

	PCLK uint64
	RTC  uint64
	EXT  uint64

	TCU *tcu.State
}

// Snapshot the state of the SoC sub-systems.
func (soc *SoC) Snapshot() *State {
	return &State{
		Time: soc.Loop.Now(),
		PCLK: soc.Clocks.Rate(clocks.PCLK),
		RTC:  soc.Clocks.Rate(clocks.RTC),
		EXT:  soc.Clocks.Rate(clocks.EXT),
		TCU:  soc.TCU.Snapshot(),
	}
}

// Plumb a previously snapshotted system.
func (soc *SoC) Plumb(state *State) {
	if state == nil {
		panic("soc: cannot plumb in a nil state")
	}

	soc.Clocks.SetRate(clocks.PCLK, state.PCLK)
	soc.Clocks.SetRate(clocks.RTC, state.RTC)
	soc.Clocks.SetRate(clocks.EXT, state.EXT)
	soc.TCU.Plumb(state.TCU)
}
