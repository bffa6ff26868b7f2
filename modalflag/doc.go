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


// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas with flag.FlagSet you call Parse() with the array of strings as the
// only argument, with modalflag you first call NewArgs() with the array of
// arguments and then Parse() with no arguments. This allows the arguments to
// be parsed in layers, one layer per mode.
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "MONITOR")
//	_, _ = md.Parse()
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		wav := md.AddString("wav", "", "write interrupt trace to file")
//		switch p, err := md.Parse(); p {
//		case modalflag.ParseError:
//			return err
//		case modalflag.ParseHelp:
//			return nil
//		}
//		run(md.GetArg(0), *wav)
//	}
//
// The first sub-mode in the list is the default mode. It is selected if the
// first argument after the flags is not one of the listed modes. Sub-mode
// comparisons are case insensitive and Mode() always returns the name in
// upper case.
//
// Help messages are printed automatically by Parse() when the -help flag is
// given, in which case Parse() returns ParseHelp.
//
// When Modes.EnvPrefix is set, a flag missing from the command line is looked
// for in the environment. With the prefix "TCUSIM" the -model flag can be
// given as TCUSIM_MODEL. The command line always takes priority.
package modalflag
