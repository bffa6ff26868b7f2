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


// Package tcu emulates the timer/counter unit of the Ingenic JZ4740 and JZ4755
// SoCs. The unit has six 16-bit timer channels, a 32-bit operating system
// timer (OST) and a watchdog. All of them are built on the counter engine in
// the channel package and so none of them tick in real time. Counter values
// are computed when they are read and wake-ups are only scheduled for the
// next time a flag would be raised.
//
// The TCU type presents the register file with the Read(), Write() and Peek()
// functions. Interrupt lines are driven through an irq.Sink, and the
// watchdog's reset request is an irq.Line of its own. Clock rates are
// obtained from a clocks.Resolver given at construction. If the rates change
// then ClockChanged() must be called.
package tcu
