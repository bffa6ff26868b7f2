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

import "fmt"

// Symbols lists the canonical names of the bank level registers. The per
// channel registers are named by Symbol().
var Symbols = map[uint32]string{
	TDR:    "TDR",
	TCER:   "TCER",
	WCNT:   "TCNT",
	WCSR:   "TCSR",
	TER:    "TER",
	TESR:   "TESR",
	TECR:   "TECR",
	TSR:    "TSR",
	TSSR:   "TSSR",
	TSCR:   "TSCR",
	TFR:    "TFR",
	TFSR:   "TFSR",
	TFCR:   "TFCR",
	TMR:    "TMR",
	TMSR:   "TMSR",
	TMCR:   "TMCR",
	OSTDR:  "OSTDR",
	OSTCNT: "OSTCNT",
	OSTCSR: "OSTCSR",
	TSTR:   "TSTR",
	TSTSR:  "TSTSR",
	TSTCR:  "TSTCR",
}

var channelSymbols = map[uint32]string{
	TDFR: "TDFR",
	TDHR: "TDHR",
	TCNT: "TCNT",
	TCSR: "TCSR",
}

// Symbol returns the canonical name of the register at the address. Channel
// registers have the channel number appended. Unknown addresses are returned
// in hex.
func Symbol(addr uint32) string {
	if n, o, ok := Channel(addr); ok {
		return fmt.Sprintf("%s%d", channelSymbols[o], n)
	}
	if s, ok := Symbols[addr]; ok {
		return s
	}
	return fmt.Sprintf("%#x", addr)
}

// Address is the inverse of Symbol(). The search is case sensitive.
func Address(symbol string) (uint32, bool) {
	for a, s := range Symbols {
		if s == symbol {
			return a, true
		}
	}
	for n := 0; n < NumChannels; n++ {
		for o, s := range channelSymbols {
			if fmt.Sprintf("%s%d", s, n) == symbol {
				return ChannelAddress(n, o), true
			}
		}
	}
	return 0, false
}
