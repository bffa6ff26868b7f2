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


package macro

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/OpenNoah/qemu-sub000/curated"
	"github.com/OpenNoah/qemu-sub000/hardware/clocks"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu/registers"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
	"github.com/OpenNoah/qemu-sub000/logger"
)

// Emulation defines the functions required by a macro script.
type Emulation interface {
	Read(addr uint32) (uint32, error)
	Write(addr uint32, data uint32) error
	Now() vtime.Time
	RunUntil(target vtime.Time)
	SetRate(src clocks.Source, hz uint64)
	Reset()
}

// Sentinal error patterns.
const (
	NotMacroFile      = "macro: %s: not a macro file"
	ScriptError       = "macro: %s: %d: %v"
	ExpectationFailed = "expectation failed: %s = %#08x (wanted %#08x)"
)

// Macro is a loaded macro script.
type Macro struct {
	emulation Emulation
	filename  string

	instructions []string

	// output for the READ instruction. defaults to os.Stdout
	Output io.Writer

	quit atomic.Bool
}

const (
	headerLineID = iota
	headerLineVersion
	headerNumLines
)

const headerID = "tcumacro"

// NewMacro loads the macro file. The script is not run until Run() is called.
func NewMacro(filename string, emulation Emulation) (*Macro, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf("macro: %v", err)
	}
	buffer, err := io.ReadAll(f)
	if err != nil {
		_ = f.Close()
		return nil, curated.Errorf("macro: %v", err)
	}
	err = f.Close()
	if err != nil {
		return nil, curated.Errorf("macro: %v", err)
	}

	mcr := &Macro{
		emulation: emulation,
		filename:  filename,
		Output:    os.Stdout,
	}

	// convert file contents to an array of lines
	mcr.instructions = strings.Split(strings.ReplaceAll(string(buffer), "\r\n", "\n"), "\n")
	if len(mcr.instructions) < headerNumLines {
		return nil, curated.Errorf(NotMacroFile, filename)
	}
	if strings.TrimSpace(mcr.instructions[headerLineID]) != headerID {
		return nil, curated.Errorf(NotMacroFile, filename)
	}

	// we no longer need the header
	mcr.instructions = mcr.instructions[headerNumLines:]

	return mcr, nil
}

// Filename returns the name of the loaded macro file.
func (mcr *Macro) Filename() string {
	return mcr.filename
}

// Quit stops the script at the next instruction. Safe to call from any
// goroutine.
func (mcr *Macro) Quit() {
	mcr.quit.Store(true)
}

type loop struct {
	line int

	// loop counters count upwards because it is more natural when
	// referencing the counter value
	count    int
	countEnd int

	// named counters are also entered into the variables table
	countName string
}

// the state of a single run of the script
type runner struct {
	mcr       *Macro
	loops     []loop
	variables map[string]int
}

// Run the script from the beginning. Returns an error if the script is badly
// formed or if an EXPECT instruction fails.
func (mcr *Macro) Run() error {
	mcr.quit.Store(false)

	r := runner{
		mcr:       mcr,
		variables: make(map[string]int),
	}

	for ln := 0; ln < len(mcr.instructions); ln++ {
		if mcr.quit.Load() {
			logger.Logf(logger.Allow, "macro", "%s: quit at line %d", mcr.filename, ln+headerNumLines+1)
			return nil
		}

		toks := strings.Fields(mcr.instructions[ln])
		if len(toks) == 0 {
			continue // for loop
		}

		next, quit, err := r.instruction(ln, toks)
		if err != nil {
			return curated.Errorf(ScriptError, mcr.filename, ln+headerNumLines+1, err)
		}
		if quit {
			return nil
		}
		ln = next
	}

	if len(r.loops) > 0 {
		return curated.Errorf(ScriptError, mcr.filename, len(mcr.instructions)+headerNumLines,
			"DO without a LOOP")
	}

	return nil
}

// instruction returns the index of the line that was executed. a LOOP
// instruction returns the index of the matching DO line.
func (r *runner) instruction(ln int, toks []string) (int, bool, error) {
	emu := r.mcr.emulation
	cmd := strings.ToUpper(toks[0])
	args := toks[1:]

	nargs := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("too few arguments for %s", cmd)
		}
		if len(args) > n {
			return fmt.Errorf("too many arguments for %s", cmd)
		}
		return nil
	}

	switch cmd {
	default:
		return ln, false, fmt.Errorf("unrecognised command: %s", toks[0])

	case "--":
		// ignore comment lines

	case "DO":
		if len(args) == 0 {
			return ln, false, fmt.Errorf("too few arguments for DO")
		}
		if len(args) > 2 {
			return ln, false, fmt.Errorf("too many arguments for DO")
		}
		ct, err := r.value(args[0])
		if err != nil {
			return ln, false, err
		}
		lp := loop{
			line:     ln,
			countEnd: int(ct),
		}
		if len(args) == 2 {
			lp.countName = args[1]
			if _, ok := r.variables[lp.countName]; ok {
				return ln, false, fmt.Errorf("loop counter '%s' already in use", lp.countName)
			}
			r.variables[lp.countName] = lp.count
		}
		r.loops = append(r.loops, lp)

		// a loop with a zero count is skipped entirely
		if lp.countEnd <= 0 {
			return r.skip(ln)
		}

	case "LOOP":
		if err := nargs(0); err != nil {
			return ln, false, err
		}

		idx := len(r.loops) - 1
		if idx == -1 {
			return ln, false, fmt.Errorf("LOOP without a DO")
		}

		lp := &r.loops[idx]
		lp.count++

		if lp.count < lp.countEnd {
			if lp.countName != "" {
				r.variables[lp.countName] = lp.count
			}
			return lp.line, false, nil
		}

		// loop has ended. remove from loop stack and delete variable name
		delete(r.variables, lp.countName)
		r.loops = r.loops[:idx]

	case "WRITE":
		if err := nargs(2); err != nil {
			return ln, false, err
		}
		addr, err := r.address(args[0])
		if err != nil {
			return ln, false, err
		}
		v, err := r.value(args[1])
		if err != nil {
			return ln, false, err
		}
		if err := emu.Write(addr, v); err != nil {
			return ln, false, err
		}

	case "READ":
		if err := nargs(1); err != nil {
			return ln, false, err
		}
		addr, err := r.address(args[0])
		if err != nil {
			return ln, false, err
		}
		v, err := emu.Read(addr)
		if err != nil {
			return ln, false, err
		}
		if r.mcr.Output != nil {
			fmt.Fprintf(r.mcr.Output, "%s = %#08x\n", registers.Symbol(addr), v)
		}

	case "EXPECT":
		if err := nargs(2); err != nil {
			return ln, false, err
		}
		addr, err := r.address(args[0])
		if err != nil {
			return ln, false, err
		}
		want, err := r.value(args[1])
		if err != nil {
			return ln, false, err
		}
		v, err := emu.Read(addr)
		if err != nil {
			return ln, false, err
		}
		if v != want {
			return ln, false, curated.Errorf(ExpectationFailed, registers.Symbol(addr), v, want)
		}

	case "WAIT":
		if err := nargs(1); err != nil {
			return ln, false, err
		}
		d, err := r.duration(args[0])
		if err != nil {
			return ln, false, err
		}
		emu.RunUntil(emu.Now() + d)

	case "RUNTO":
		if err := nargs(1); err != nil {
			return ln, false, err
		}
		t, err := r.duration(args[0])
		if err != nil {
			return ln, false, err
		}

		// time never goes backwards. a target in the past is ignored
		if t > emu.Now() {
			emu.RunUntil(t)
		}

	case "RATE":
		if err := nargs(2); err != nil {
			return ln, false, err
		}
		src, err := clocks.SourceFromString(strings.ToLower(args[0]))
		if err != nil {
			return ln, false, err
		}
		hz, err := r.value(args[1])
		if err != nil {
			return ln, false, err
		}
		emu.SetRate(src, uint64(hz))

	case "RESET":
		if err := nargs(0); err != nil {
			return ln, false, err
		}
		emu.Reset()

	case "QUIT":
		if err := nargs(0); err != nil {
			return ln, false, err
		}
		return ln, true, nil
	}

	return ln, false, nil
}

// skip forward to the LOOP that matches the most recent DO.
func (r *runner) skip(ln int) (int, bool, error) {
	depth := 0
	for i := ln + 1; i < len(r.mcr.instructions); i++ {
		toks := strings.Fields(r.mcr.instructions[i])
		if len(toks) == 0 {
			continue
		}
		switch strings.ToUpper(toks[0]) {
		case "DO":
			depth++
		case "LOOP":
			if depth == 0 {
				lp := r.loops[len(r.loops)-1]
				delete(r.variables, lp.countName)
				r.loops = r.loops[:len(r.loops)-1]
				return i, false, nil
			}
			depth--
		}
	}
	return ln, false, fmt.Errorf("DO without a LOOP")
}

// lookup a variable. the bool return value is false if the string is not a
// variable reference.
func (r *runner) variable(s string) (int, bool, error) {
	if !strings.HasPrefix(s, "%") {
		return 0, false, nil
	}
	n := s[1:]
	v, ok := r.variables[n]
	if !ok {
		return 0, true, fmt.Errorf("variable '%s' does not exist", n)
	}
	return v, true, nil
}

func (r *runner) value(s string) (uint32, error) {
	v, ok, err := r.variable(s)
	if err != nil {
		return 0, err
	}
	if ok {
		return uint32(v), nil
	}

	// convert hex indicator to one that ParseUint can deal with
	if strings.HasPrefix(s, "$") {
		s = fmt.Sprintf("0x%s", s[1:])
	}

	n, err := strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unrecognised value: %s", s)
	}
	return uint32(n), nil
}

func (r *runner) address(s string) (uint32, error) {
	// a variable suffix selects a numbered register
	if i := strings.IndexByte(s, '%'); i > 0 {
		v, _, err := r.variable(s[i:])
		if err != nil {
			return 0, err
		}
		s = fmt.Sprintf("%s%d", s[:i], v)
	}

	if a, ok := registers.Address(strings.ToUpper(s)); ok {
		return a, nil
	}

	a, err := r.value(s)
	if err != nil {
		return 0, fmt.Errorf("unrecognised address: %s", s)
	}
	return a, nil
}

// durations are either go style durations (100us, 2ms) or a number of
// nanoseconds.
func (r *runner) duration(s string) (vtime.Time, error) {
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, fmt.Errorf("negative duration: %s", s)
		}
		return vtime.Time(d.Nanoseconds()), nil
	}

	v, ok, err := r.variable(s)
	if err != nil {
		return 0, err
	}
	if ok {
		return vtime.Time(v), nil
	}

	n, err := strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognised duration: %s", s)
	}
	return vtime.Time(n), nil
}
