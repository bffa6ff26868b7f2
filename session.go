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

	"github.com/OpenNoah/qemu-sub000/curated"
	"github.com/OpenNoah/qemu-sub000/hardware"
	"github.com/OpenNoah/qemu-sub000/hardware/preferences"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu"
	"github.com/OpenNoah/qemu-sub000/logger"
	"github.com/OpenNoah/qemu-sub000/modalflag"
	"github.com/OpenNoah/qemu-sub000/prefs"
	"github.com/OpenNoah/qemu-sub000/statsview"
	"github.com/OpenNoah/qemu-sub000/version"
	"github.com/OpenNoah/qemu-sub000/wavwriter"
	"github.com/bradleyjkemp/memviz"
)

// flags shared by the RUN and MONITOR modes.
type sessionFlags struct {
	model     *string
	prefs     *string
	log       *bool
	wav       *string
	memviz    *string
	statsview *bool
}

func addSessionFlags(md *modalflag.Modes) sessionFlags {
	return sessionFlags{
		model:     md.AddString("model", "", "SoC model: JZ4740, JZ4755 (default from preferences)"),
		prefs:     md.AddString("prefs", "", "preferences for this session (key::value; key::value)"),
		log:       md.AddBool("log", false, "echo log to stderr"),
		wav:       md.AddString("wav", "", "record interrupt lines to wav file"),
		memviz:    md.AddString("memviz", "", "write graph of final state to dot file"),
		statsview: md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.DefaultAddress)),
	}
}

type session struct {
	flags sessionFlags
	soc   *hardware.SoC
	wav   *wavwriter.WavWriter
}

func newSession(flags sessionFlags) (*session, error) {
	if *flags.log {
		logger.SetEcho(os.Stderr)
	}

	// command line preferences take priority over the preferences file. the
	// model flag is added to the same group and so takes priority over a model
	// given in the -prefs string
	cl := *flags.prefs
	if *flags.model != "" {
		cl = fmt.Sprintf("%s; hardware.model::%s", cl, *flags.model)
	}
	prefs.PushCommandLineStack(cl)

	p, err := preferences.NewPreferences("")
	unused := prefs.PopCommandLineStack()
	if err != nil {
		return nil, err
	}
	if unused != "" {
		logger.Logf(logger.Allow, "tcusim", "unused command line preferences: %s", unused)
	}

	sess := &session{flags: flags}

	sess.soc, err = hardware.NewSoC(p)
	if err != nil {
		return nil, err
	}

	if *flags.wav != "" {
		sess.wav, err = wavwriter.New(*flags.wav, sess.soc.Loop, tcu.NumLines)
		if err != nil {
			return nil, err
		}
		sess.soc.IRQ.Forward = append(sess.soc.IRQ.Forward, sess.wav)
	}

	if *flags.statsview {
		statsview.Launch(os.Stdout, "")
	}

	logger.Logf(logger.Allow, "tcusim", "%s: %s", version.String(), sess.soc)

	return sess, nil
}

// end the session. the wav file and memviz graph are written at this point.
func (sess *session) end() error {
	if sess.wav != nil {
		if err := sess.wav.Close(); err != nil {
			return err
		}
	}

	if *sess.flags.memviz != "" {
		if err := writeMemviz(*sess.flags.memviz, sess.soc.Snapshot()); err != nil {
			return err
		}
	}

	return nil
}

func writeMemviz(filename string, state *hardware.State) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("memviz: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("memviz: %v", err)
		}
	}()

	memviz.Map(f, state)

	return nil
}
