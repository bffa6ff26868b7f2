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

package clocks

import (
	"fmt"

	"github.com/OpenNoah/qemu-sub000/curated"
)

// Source identifies one of the clock inputs that a timer channel can select.
type Source int

// List of valid Source values.
const (
	None Source = iota
	PCLK
	RTC
	EXT
	numSources
)

func (src Source) String() string {
	switch src {
	case None:
		return "none"
	case PCLK:
		return "pclk"
	case RTC:
		return "rtc"
	case EXT:
		return "ext"
	}
	panic("unknown clock source")
}

// SourceFromString is the inverse of Source.String().
func SourceFromString(s string) (Source, error) {
	for src := None; src < numSources; src++ {
		if src.String() == s {
			return src, nil
		}
	}
	return None, curated.Errorf("clocks: unknown source %q", s)
}

// Resolver returns the tick period of the clock source divided by div.
// Implementations return zero for a source that is not running or for a
// divider of zero.
type Resolver interface {
	ClockPeriod(src Source, div uint32) Period
}

// Default rates of the clock inputs on the Ingenic SoCs.
const (
	DefaultEXT  = 12_000_000
	DefaultRTC  = 32_768
	DefaultPCLK = 60_000_000
)

// Generator is a Resolver with a fixed, settable, rate for each source. It
// stands in for the clock generation unit.
type Generator struct {
	rates [numSources]uint64
}

// NewGenerator is the preferred method of initialisation for the Generator
// type.
func NewGenerator() *Generator {
	g := &Generator{}
	g.rates[PCLK] = DefaultPCLK
	g.rates[RTC] = DefaultRTC
	g.rates[EXT] = DefaultEXT
	return g
}

func (g *Generator) String() string {
	return fmt.Sprintf("pclk=%d rtc=%d ext=%d", g.rates[PCLK], g.rates[RTC], g.rates[EXT])
}

// SetRate changes the rate of a source. Users of the Generator must be told
// separately that the rate has changed.
func (g *Generator) SetRate(src Source, hz uint64) {
	if src <= None || src >= numSources {
		return
	}
	g.rates[src] = hz
}

// Rate returns the current rate of the source in Hz.
func (g *Generator) Rate(src Source) uint64 {
	if src <= None || src >= numSources {
		return 0
	}
	return g.rates[src]
}

// ClockPeriod implements the Resolver interface.
func (g *Generator) ClockPeriod(src Source, div uint32) Period {
	return PeriodFromHz(g.Rate(src), div)
}
