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


package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/OpenNoah/qemu-sub000/macro"
	"github.com/OpenNoah/qemu-sub000/modalflag"
	"github.com/OpenNoah/qemu-sub000/version"
)

func main() {
	md := &modalflag.Modes{
		Output:    os.Stdout,
		EnvPrefix: strings.ToUpper(version.ApplicationName),
	}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "MONITOR", "VERSION")
	md.AdditionalHelp("scripts begin with tcumacro")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "MONITOR":
		err = monitor(md)

	case "VERSION":
		fmt.Fprintln(md.Output, version.String())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	opts := addSessionFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("a single macro file is required")
	}

	sess, err := newSession(opts)
	if err != nil {
		return err
	}

	mcr, err := macro.NewMacro(md.GetArg(0), sess.soc)
	if err != nil {
		return err
	}
	mcr.Output = md.Output

	// stop the script on interrupt
	defer onInterrupt(mcr.Quit)()

	err = mcr.Run()
	if err != nil {
		_ = sess.end()
		return err
	}

	fmt.Fprintf(md.Output, "finished at %v\n", sess.soc.Now())

	return sess.end()
}
