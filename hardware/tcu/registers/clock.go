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


package registers

import "github.com/OpenNoah/qemu-sub000/hardware/clocks"

// prescale field to divider. the two reserved encodings stop the clock
var prescale = [8]uint32{1, 4, 16, 64, 256, 1024, 0, 0}

// ClockSelect decodes the clock selection of a control register. If more than
// one source is selected then EXT takes priority over RTC, which takes
// priority over PCLK. A divider of zero means the clock is stopped.
func ClockSelect(csr uint32) (clocks.Source, uint32) {
	div := prescale[(csr&CSRPrescale)>>3]

	switch {
	case csr&CSREXT != 0:
		return clocks.EXT, div
	case csr&CSRRTC != 0:
		return clocks.RTC, div
	case csr&CSRPCLK != 0:
		return clocks.PCLK, div
	}

	return clocks.None, div
}

// ClockChanged returns true if the clock selection differs between the two
// control register values.
func ClockChanged(a, b uint32) bool {
	return (a^b)&CSRClock != 0
}
