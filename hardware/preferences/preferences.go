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


// Package preferences holds the preference values that describe the emulated
// hardware: the SoC model, the rates of the clock inputs and the epoch rebase
// threshold of the timer counters and whether the TCU logs its activity.
package preferences

import (
	"sync/atomic"
	"time"

	"github.com/OpenNoah/qemu-sub000/curated"
	"github.com/OpenNoah/qemu-sub000/hardware/clocks"
	"github.com/OpenNoah/qemu-sub000/hardware/tcu"
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
	"github.com/OpenNoah/qemu-sub000/logger"
	"github.com/OpenNoah/qemu-sub000/paths"
	"github.com/OpenNoah/qemu-sub000/prefs"
)

// Preferences defines and collates all the preference values used by the
// hardware packages.
type Preferences struct {
	dsk *prefs.Disk

	// the SoC model. one of the strings returned by tcu.Model.String()
	Model prefs.String

	// clock input rates in Hz
	PCLK prefs.Int
	RTC  prefs.Int
	EXT  prefs.Int

	// the amount of virtual time after which a counter's epoch is moved
	// forward. also the longest sleep between counter wake-ups
	Rebase prefs.Duration

	// log register accesses and counter events
	Log prefs.Bool

	// the parsed model. updated automatically when Model is set
	model atomic.Value // tcu.Model
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. If path is empty then the default preferences file in the resource
// path is used.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}

	p.Model.SetHookPre(func(v prefs.Value) error {
		_, err := tcu.ModelFromString(v.(string))
		return err
	})
	p.Model.SetHookPost(func(v prefs.Value) error {
		m, _ := tcu.ModelFromString(v.(string))
		p.model.Store(m)
		return nil
	})

	positive := func(v prefs.Value) error {
		if v.(int) <= 0 {
			return curated.Errorf("preferences: clock rate must be positive (%d)", v.(int))
		}
		return nil
	}
	p.PCLK.SetHookPre(positive)
	p.RTC.SetHookPre(positive)
	p.EXT.SetHookPre(positive)

	p.Rebase.SetHookPre(func(v prefs.Value) error {
		if v.(time.Duration) <= 0 {
			return curated.Errorf("preferences: rebase threshold must be positive (%v)", v)
		}
		return nil
	})

	p.SetDefaults()

	var err error

	if path == "" {
		path, err = paths.ResourcePath("", prefs.DefaultPrefsFile)
		if err != nil {
			return nil, curated.Errorf("preferences: %v", err)
		}
	}

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	for _, e := range []struct {
		key string
		p   interface {
			Set(prefs.Value) error
			Get() prefs.Value
			Reset() error
			String() string
		}
	}{
		{key: "hardware.model", p: &p.Model},
		{key: "clocks.pclk", p: &p.PCLK},
		{key: "clocks.rtc", p: &p.RTC},
		{key: "clocks.ext", p: &p.EXT},
		{key: "tcu.rebase", p: &p.Rebase},
		{key: "tcu.log", p: &p.Log},
	} {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, curated.Errorf("preferences: %v", err)
		}
	}

	if err := p.dsk.Load(true); err != nil {
		return nil, curated.Errorf("preferences: %v", err)
	}

	return p, nil
}

// SetDefaults reverts all hardware preferences to the default values.
func (p *Preferences) SetDefaults() {
	// errors are not possible with these values
	_ = p.Model.Set(tcu.JZ4740.String())
	_ = p.PCLK.Set(clocks.DefaultPCLK)
	_ = p.RTC.Set(clocks.DefaultRTC)
	_ = p.EXT.Set(clocks.DefaultEXT)
	_ = p.Rebase.Set(time.Second)
	_ = p.Log.Set(true)
}

// Reset all hardware preferences to the default values. Unlike Load() and
// Save(), this does not touch the disk.
func (p *Preferences) Reset() error {
	p.SetDefaults()
	return nil
}

// Load current hardware preference from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current hardware preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// TCUModel returns the model named by the Model preference.
func (p *Preferences) TCUModel() tcu.Model {
	if m, ok := p.model.Load().(tcu.Model); ok {
		return m
	}
	return tcu.JZ4740
}

// ApplyClocks sets the rates of the clock generator to the preferred values.
func (p *Preferences) ApplyClocks(gen *clocks.Generator) {
	gen.SetRate(clocks.PCLK, uint64(p.PCLK.Get().(int)))
	gen.SetRate(clocks.RTC, uint64(p.RTC.Get().(int)))
	gen.SetRate(clocks.EXT, uint64(p.EXT.Get().(int)))
}

// ApplyTCU applies the rebase threshold and the log preference to the TCU. If
// the clock generator has been changed with ApplyClocks() then the TCU is told
// about it.
func (p *Preferences) ApplyTCU(bank *tcu.TCU) {
	bank.SetRebase(vtime.Time(p.Rebase.Get().(time.Duration)))
	if p.Log.Get().(bool) {
		bank.SetLog(logger.Allow)
	} else {
		bank.SetLog(logger.Deny)
	}
	bank.ClockChanged()
}
