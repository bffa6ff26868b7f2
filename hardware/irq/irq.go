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

// Package irq models interrupt request lines as seen from the device that
// drives them. A Line remembers its current level and only tells the Sink
// (usually the interrupt controller) when the level changes.
package irq

import "fmt"

// Sink receives level changes of interrupt lines.
type Sink interface {
	SetIRQ(line int, level bool)
}

// Line is a single interrupt output.
type Line struct {
	Name  string
	num   int
	level bool
	sink  Sink
}

// NewLine is the preferred method of initialisation for the Line type. The
// sink may be nil, in which case level changes are remembered but not
// pushed anywhere.
func NewLine(name string, num int, sink Sink) *Line {
	return &Line{
		Name: name,
		num:  num,
		sink: sink,
	}
}

func (l *Line) String() string {
	if l.level {
		return fmt.Sprintf("%s=high", l.Name)
	}
	return fmt.Sprintf("%s=low", l.Name)
}

// Set the level of the line. The sink is only called if the level changes.
func (l *Line) Set(level bool) {
	if l.level == level {
		return
	}
	l.level = level
	if l.sink != nil {
		l.sink.SetIRQ(l.num, level)
	}
}

// Level returns the current level of the line.
func (l *Line) Level() bool {
	return l.level
}

// Num returns the line number given to the sink.
func (l *Line) Num() int {
	return l.num
}

// Connect the line to a different sink. The current level is pushed to the
// new sink if it is high.
func (l *Line) Connect(sink Sink) {
	l.sink = sink
	if l.sink != nil && l.level {
		l.sink.SetIRQ(l.num, l.level)
	}
}
