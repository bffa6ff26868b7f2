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

// Writable bits of the bank registers.
const (
	EnableMask = uint32(0x0000803f)
	StopMask   = uint32(0x0001803f)
	FlagMask   = uint32(0x003f803f)
	StatusMask = uint32(0x00060006)
)

// Writable bits of the control registers.
const (
	ChannelCSRMask  = uint32(0x03bf)
	OSTCSRMask      = uint32(0x803f)
	WatchdogCSRMask = uint32(0x003f)
	TCERMask        = uint32(0x0001)
)

// Bit positions shared by the enable, stop, flag and mask registers.
const (
	OSTBit      = uint32(1 << 15)
	WatchdogBit = uint32(1 << 16)
)

// FullBit returns the full match (top) flag bit for channel n.
func FullBit(n int) uint32 {
	return 1 << uint(n)
}

// HalfBit returns the half match (compare) flag bit for channel n.
func HalfBit(n int) uint32 {
	return 1 << uint(n+16)
}

// Fields of the control registers (TCSR, OSTCSR and the watchdog's TCSR).
const (
	CSRPCLK     = uint32(1 << 0)
	CSRRTC      = uint32(1 << 1)
	CSREXT      = uint32(1 << 2)
	CSRPrescale = uint32(0x7 << 3)
	CSRClock    = CSRPCLK | CSRRTC | CSREXT | CSRPrescale

	CSRPWM      = uint32(1 << 7)
	CSRInitL    = uint32(1 << 8)
	CSRShutdown = uint32(1 << 9)

	// on TCU2 channels only. the bit is a pulse and is never stored
	CSRClearZero = uint32(1 << 10)

	// OSTCSR only. when set the counter does not wrap at OSTDR
	CSRCountMode = uint32(1 << 15)
)
