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


// Package hardware is the base package for the emulated SoC. The SoC type
// ties the components together: the virtual time event loop, the clock
// generator, the timer/counter unit and the recording of interrupt lines.
//
// Sub-packages contain the emulation of the individual components. The tcu
// package and its sub-packages are the most important of these.
package hardware
