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


package modalflag_test

import (
	"testing"
	"time"

	"github.com/OpenNoah/qemu-sub000/modalflag"
	"github.com/OpenNoah/qemu-sub000/test"
)

func TestNoModesNoFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, md.Path(), "")
}

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-wav", "irq.wav", "script.tcu", "extra"})
	wav := md.AddString("wav", "", "wav file")
	test.ExpectEquality(t, *wav, "")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "")
	test.ExpectEquality(t, *wav, "irq.wav")
	test.ExpectEquality(t, len(md.RemainingArgs()), 2)
	test.ExpectEquality(t, md.GetArg(0), "script.tcu")
	test.ExpectEquality(t, md.GetArg(5), "")
}

func TestBadFlag(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-nosuchflag"})

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}

func TestModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"monitor", "-log", "script.tcu"})
	md.AddSubModes("run", "monitor")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "MONITOR")

	md.NewMode()
	log := md.AddBool("log", false, "echo log")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, *log)
	test.ExpectEquality(t, md.GetArg(0), "script.tcu")
	test.ExpectEquality(t, md.Path(), "MONITOR")

	var visited []string
	md.Visit(func(f string) {
		visited = append(visited, f)
	})
	test.ExpectEquality(t, len(visited), 1)
}

func TestDefaultMode(t *testing.T) {
	// flags for the default mode are not known at the top level
	md := modalflag.Modes{}
	md.NewArgs([]string{"-log", "script.tcu"})
	md.AddSubModes("run", "monitor")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, md.Mode(), "RUN")

	md.NewMode()
	log := md.AddBool("log", false, "echo log")
	_, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, *log)
	test.ExpectEquality(t, md.GetArg(0), "script.tcu")
}

func TestNoHelpAvailable(t *testing.T) {
	tw := &test.Writer{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)
	test.ExpectSuccess(t, tw.Compare("No help available\n"))
}

func TestHelpFlags(t *testing.T) {
	tw := &test.Writer{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n"
	test.ExpectEquality(t, tw.String(), expectedHelp)
}

func TestHelpFlagsAndModes(t *testing.T) {
	tw := &test.Writer{}

	md := modalflag.Modes{Output: tw}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")
	md.AddSubModes("run", "monitor")
	md.AdditionalHelp("scripts begin with tcumacro")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n" +
		"\n" +
		"  available sub-modes: RUN, MONITOR\n" +
		"    default: RUN\n" +
		"\n" +
		"scripts begin with tcumacro\n"
	test.ExpectEquality(t, tw.String(), expectedHelp)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("TCUSIM_MODEL", "jz4755")
	t.Setenv("TCUSIM_LOG", "true")
	t.Setenv("TCUSIM_STEP_SIZE", "2ms")

	md := modalflag.Modes{EnvPrefix: "TCUSIM"}
	md.NewArgs([]string{"-model", "jz4740"})
	model := md.AddString("model", "", "SoC model")
	log := md.AddBool("log", false, "echo log")
	step := md.AddDuration("step-size", time.Millisecond, "step")
	rate := md.AddUint64("rate", 100, "rate")

	p, err := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseContinue)
	test.ExpectSuccess(t, err)

	// the command line takes priority
	test.ExpectEquality(t, *model, "jz4740")
	test.ExpectSuccess(t, *log)
	test.ExpectEquality(t, *step, 2*time.Millisecond)
	test.ExpectEquality(t, *rate, uint64(100))
	test.ExpectEquality(t, md.EnvName("step-size"), "TCUSIM_STEP_SIZE")

	var visited []string
	md.Visit(func(f string) {
		visited = append(visited, f)
	})
	test.ExpectEquality(t, len(visited), 3)

	// bad values in the environment are errors
	t.Setenv("TCUSIM_RATE", "fast")
	md.NewArgs([]string{})
	md.AddUint64("rate", 100, "rate")
	p, err = md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseError)
	test.ExpectFailure(t, err)
}

func TestEnvironmentHelp(t *testing.T) {
	tw := &test.Writer{}

	md := modalflag.Modes{Output: tw, EnvPrefix: "TCUSIM"}
	md.NewArgs([]string{"-help"})
	md.AddBool("test", true, "test flag")

	p, _ := md.Parse()
	test.ExpectEquality(t, p, modalflag.ParseHelp)

	expectedHelp := "Usage:\n" +
		"  -test\n" +
		"    	test flag (default true)\n" +
		"  flags can also be set with TCUSIM_<FLAG>\n"
	test.ExpectEquality(t, tw.String(), expectedHelp)
}
