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

import (
	"strings"

	"github.com/OpenNoah/qemu-sub000/curated"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/registers"
)

// Model identifies the SoC being emulated.
type Model int

// List of valid Model values.
const (
	JZ4740 Model = iota
	JZ4755
)

func (m Model) String() string {
	switch m {
	case JZ4740:
		return "JZ4740"
	case JZ4755:
		return "JZ4755"
	}
	return "unknown model"
}

// ModelFromString is the inverse of Model.String(). The comparison is case
// insensitive.
func ModelFromString(s string) (Model, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "JZ4740":
		return JZ4740, nil
	case "JZ4755":
		return JZ4755, nil
	}
	return JZ4740, curated.Errorf(UnknownModel, s)
}

// Interrupt lines driven by the TCU. The numbers are those passed to the
// irq.Sink.
const (
	IRQ0 = iota
	IRQ1
	IRQ2

	// watchdog reset request
	ResetLine

	NumLines
)

// numIRQ is the number of lines driven by the flag register.
const numIRQ = IRQ2 + 1

// the fixed differences between models.
type modelLayout struct {
	// flag bits that contribute to each interrupt line
	groups [numIRQ]uint32

	// channels that accept the CLRZ bit in TCSR
	tcu2 [registers.NumChannels]bool
}

func channelFlags(n ...int) uint32 {
	var f uint32
	for _, c := range n {
		f |= registers.FullBit(c) | registers.HalfBit(c)
	}
	return f
}

var models = map[Model]modelLayout{
	JZ4740: {
		groups: [numIRQ]uint32{
			channelFlags(0),
			channelFlags(1),
			channelFlags(2, 3, 4, 5) | registers.OSTBit,
		},
	},
	JZ4755: {
		groups: [numIRQ]uint32{
			channelFlags(0),
			channelFlags(1),
			channelFlags(2, 3, 4, 5) | registers.OSTBit,
		},
		tcu2: [registers.NumChannels]bool{false, true, true},
	},
}
