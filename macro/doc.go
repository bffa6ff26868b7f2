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


// Package macro runs simple register scripts against the timer bank. A macro
// file is a text file. The first line must be "tcumacro" and the second line
// is a version string, which is currently ignored.
//
// Each following line contains one instruction:
//
//	WRITE addr value      write value to the register
//	READ addr             print the register value to the output
//	EXPECT addr value     stop the script if the register has another value
//	WAIT duration         advance virtual time (eg. 100us, or nanoseconds)
//	RUNTO time            advance virtual time to the absolute time
//	RATE source hz        change the rate of a clock source (PCLK, RTC, EXT)
//	RESET                 reset the timer bank
//	DO n [name]           repeat the block up to the matching LOOP n times
//	LOOP                  end of a DO block
//	QUIT                  end the script
//	-- comment            ignored, as are empty lines
//
// Addresses can be register names (TESR, TCSR2, OSTCNT, etc.) or numbers.
// Numbers can be given in decimal, or in hex with either a 0x or $ prefix.
//
// A named DO counter can be referenced by any numeric argument, or as the
// suffix of a register name, by prefixing the name with a percent sign:
//
//	DO 6 ch
//	  WRITE TDFR%ch 100
//	LOOP
//
// Scripts run synchronously. Quit() can be called from another goroutine to
// stop a script at the next instruction.
package macro
