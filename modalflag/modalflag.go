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


package modalflag

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

const modeSeparator = "/"

// the flags and sub-modes of a single layer of arguments
type layer struct {
	flags    *flag.FlagSet
	subModes []string
	help     string
	parsed   bool
}

func newLayer() layer {
	return layer{
		flags: flag.NewFlagSet("", flag.ContinueOnError),
	}
}

// Modes handles a command line in layers. Each layer has its own flags and
// an optional list of sub-modes. Output must be set before calling Parse()
// for help messages to be seen.
type Modes struct {
	Output io.Writer

	// if EnvPrefix is not empty then flags that are not given on the command
	// line take their value from the environment. the variable for the flag
	// "rebase" with the prefix "TCUSIM" is TCUSIM_REBASE
	EnvPrefix string

	args    []string
	argsIdx int

	// the modes selected by every call to Parse(). never reset
	path []string

	cur layer
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns every selected mode joined with a separator.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs starts again with a new list of arguments.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.NewMode()
}

// NewMode starts a new layer. Flags and sub-modes added after this call
// apply to the remaining arguments.
func (md *Modes) NewMode() {
	md.cur = newLayer()
}

// AdditionalHelp is printed after the flags and sub-modes of the current
// layer when help is requested.
func (md *Modes) AdditionalHelp(help string) {
	md.cur.help = help
}

// Parsed returns true if Parse() has been called for the current layer,
// whatever the result.
func (md *Modes) Parsed() bool {
	return md.cur.parsed
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// command line processing should continue. check Mode() if sub-modes
	// were added
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// the error is returned as the second return value
	ParseError
)

// Parse the current layer of arguments. A request for help is printed to
// Output and results in ParseHelp.
func (md *Modes) Parse() (ParseResult, error) {
	md.cur.parsed = true

	hw := &helpWriter{}
	md.cur.flags.SetOutput(hw)

	err := md.cur.flags.Parse(md.args[md.argsIdx:])
	if err == flag.ErrHelp {
		hw.help(md.Output, md.Path(), md.cur.subModes, md.envHelp(), md.cur.help)
		return ParseHelp, nil
	}

	if err != nil {
		// an unknown flag may belong to the default sub-mode. the sub-mode
		// is selected and parses the arguments again
		if len(md.cur.subModes) == 0 {
			return ParseError, err
		}
		md.path = append(md.path, md.cur.subModes[0])
		return ParseContinue, nil
	}

	if err := md.fromEnvironment(); err != nil {
		return ParseError, err
	}

	md.selectMode()

	return ParseContinue, nil
}

func (md *Modes) selectMode() {
	if len(md.cur.subModes) == 0 {
		return
	}

	arg := strings.ToUpper(md.cur.flags.Arg(0))
	for _, m := range md.cur.subModes {
		if m == arg {
			md.argsIdx++
			md.path = append(md.path, m)
			return
		}
	}
	md.path = append(md.path, md.cur.subModes[0])
}

// EnvName returns the name of the environment variable for the flag. Returns
// the empty string if EnvPrefix is not set.
func (md *Modes) EnvName(flagName string) string {
	if md.EnvPrefix == "" {
		return ""
	}
	n := strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
	return fmt.Sprintf("%s_%s", md.EnvPrefix, n)
}

// set every flag that was not on the command line from the environment.
func (md *Modes) fromEnvironment() error {
	if md.EnvPrefix == "" {
		return nil
	}

	given := make(map[string]bool)
	md.cur.flags.Visit(func(f *flag.Flag) {
		given[f.Name] = true
	})

	var err error
	md.cur.flags.VisitAll(func(f *flag.Flag) {
		if err != nil || given[f.Name] {
			return
		}
		env := md.EnvName(f.Name)
		if v, ok := os.LookupEnv(env); ok {
			if e := md.cur.flags.Set(f.Name, v); e != nil {
				err = fmt.Errorf("invalid value %q for %s: %v", v, env, e)
			}
		}
	})

	return err
}

func (md *Modes) envHelp() string {
	if md.EnvPrefix == "" {
		return ""
	}
	n := 0
	md.cur.flags.VisitAll(func(_ *flag.Flag) { n++ })
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("flags can also be set with %s", md.EnvName("<flag>"))
}

// RemainingArgs returns the arguments that are neither flags nor a selected
// sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.cur.flags.Args()
}

// GetArg returns a remaining argument or the empty string if there is no
// such argument.
func (md *Modes) GetArg(i int) string {
	return md.cur.flags.Arg(i)
}

// AddSubModes to the current layer. The first sub-mode added is the default.
func (md *Modes) AddSubModes(submodes ...string) {
	for _, m := range submodes {
		md.cur.subModes = append(md.cur.subModes, strings.ToUpper(m))
	}
}

// AddBool flag to the current layer.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.cur.flags.Bool(name, value, usage)
}

// AddDuration flag to the current layer.
func (md *Modes) AddDuration(name string, value time.Duration, usage string) *time.Duration {
	return md.cur.flags.Duration(name, value, usage)
}

// AddInt flag to the current layer.
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.cur.flags.Int(name, value, usage)
}

// AddUint64 flag to the current layer.
func (md *Modes) AddUint64(name string, value uint64, usage string) *uint64 {
	return md.cur.flags.Uint64(name, value, usage)
}

// AddString flag to the current layer.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.cur.flags.String(name, value, usage)
}

// Visit calls fn for every flag that has been set, either on the command line
// or from the environment, in lexicographical order.
func (md *Modes) Visit(fn func(flag string)) {
	md.cur.flags.Visit(func(f *flag.Flag) {
		fn(f.Name)
	})
}
