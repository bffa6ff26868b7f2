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


package hardware

import (
	"github.com/OpenNoah/qemu-sub000/hardware/vtime"
)

// Step runs the next event. Returns false if there are no events pending.
func (soc *SoC) Step() bool {
	ok := soc.Loop.Step()
	soc.serviceReset()
	return ok
}

// RunUntil runs every event up to and including the target time. Virtual time
// is then set to the target.
func (soc *SoC) RunUntil(target vtime.Time) {
	for {
		t, ok := soc.Loop.Next()
		if !ok || t > target {
			break
		}
		soc.Step()
	}
	soc.Loop.RunUntil(target)
}

// Run events until the continueCheck function returns false or an error.
// Events beyond the limit are not run. The continueCheck function is called
// before every event.
func (soc *SoC) Run(limit vtime.Time, continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	for {
		cont, err := continueCheck()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}

		t, ok := soc.Loop.Next()
		if !ok || t > limit {
			soc.Loop.RunUntil(limit)
			return nil
		}
		soc.Step()
	}
}
