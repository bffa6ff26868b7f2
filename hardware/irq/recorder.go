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

package irq

import (
	"fmt"
	"strings"

	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
)

// Transition is a recorded level change.
type Transition struct {
	Time  vtime.Time
	Line  int
	Level bool
}

func (tr Transition) String() string {
	l := "low"
	if tr.Level {
		l = "high"
	}
	return fmt.Sprintf("%v irq%d %s", tr.Time, tr.Line, l)
}

// Recorder is a Sink that keeps every level change along with the virtual
// time at which it happened. Further sinks can be chained with Forward.
type Recorder struct {
	clk         vtime.Clock
	levels      map[int]bool
	Transitions []Transition

	// level changes are passed on to these sinks after they are recorded
	Forward []Sink
}

// NewRecorder is the preferred method of initialisation for the Recorder
// type.
func NewRecorder(clk vtime.Clock) *Recorder {
	return &Recorder{
		clk:    clk,
		levels: make(map[int]bool),
	}
}

// SetIRQ implements the Sink interface.
func (r *Recorder) SetIRQ(line int, level bool) {
	var now vtime.Time
	if r.clk != nil {
		now = r.clk.Now()
	}
	r.levels[line] = level
	r.Transitions = append(r.Transitions, Transition{Time: now, Line: line, Level: level})
	for _, f := range r.Forward {
		f.SetIRQ(line, level)
	}
}

// Level returns the most recent level of the line.
func (r *Recorder) Level(line int) bool {
	return r.levels[line]
}

// Count returns the number of rising edges seen on the line.
func (r *Recorder) Count(line int) int {
	n := 0
	for _, tr := range r.Transitions {
		if tr.Line == line && tr.Level {
			n++
		}
	}
	return n
}

// Clear forgets all recorded transitions. Current levels are kept.
func (r *Recorder) Clear() {
	r.Transitions = r.Transitions[:0]
}

func (r *Recorder) String() string {
	s := strings.Builder{}
	for _, tr := range r.Transitions {
		s.WriteString(tr.String())
		s.WriteString("\n")
	}
	return s.String()
}
