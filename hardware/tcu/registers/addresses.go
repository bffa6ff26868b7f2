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

// Watchdog timer.
const (
	TDR  = uint32(0x00)
	TCER = uint32(0x04)
	WCNT = uint32(0x08)
	WCSR = uint32(0x0c)
)

// Timer enable.
const (
	TER  = uint32(0x10)
	TESR = uint32(0x14)
	TECR = uint32(0x18)
)

// Timer stop.
const (
	TSR  = uint32(0x1c)
	TSSR = uint32(0x2c)
	TSCR = uint32(0x3c)
)

// Timer flags.
const (
	TFR  = uint32(0x20)
	TFSR = uint32(0x24)
	TFCR = uint32(0x28)
)

// Timer interrupt mask.
const (
	TMR  = uint32(0x30)
	TMSR = uint32(0x34)
	TMCR = uint32(0x38)
)

// Operating system timer.
const (
	OSTDR  = uint32(0xe0)
	OSTCNT = uint32(0xe8)
	OSTCSR = uint32(0xec)
)

// Timer status.
const (
	TSTR  = uint32(0xf0)
	TSTSR = uint32(0xf4)
	TSTCR = uint32(0xf8)
)

// Per channel registers. The register for channel n is at ChannelBase +
// n*ChannelStride + the offset.
const (
	ChannelBase   = uint32(0x40)
	ChannelStride = uint32(0x10)

	TDFR = uint32(0x00)
	TDHR = uint32(0x04)
	TCNT = uint32(0x08)
	TCSR = uint32(0x0c)
)

// NumChannels is the number of 16-bit timer channels.
const NumChannels = 6

// Size of the memory region occupied by the TCU.
const Size = uint32(0x1000)

// Channel decodes an address in the per channel area. The returned offset is
// one of TDFR, TDHR, TCNT or TCSR. The boolean is false if the address is not
// in the per channel area or is not word aligned.
func Channel(addr uint32) (int, uint32, bool) {
	if addr < ChannelBase || addr >= ChannelBase+NumChannels*ChannelStride {
		return 0, 0, false
	}
	if addr&0x3 != 0 {
		return 0, 0, false
	}
	addr -= ChannelBase
	return int(addr / ChannelStride), addr % ChannelStride, true
}

// ChannelAddress is the inverse of Channel().
func ChannelAddress(n int, offset uint32) uint32 {
	return ChannelBase + uint32(n)*ChannelStride + offset
}
