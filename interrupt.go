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
	"os"
	"os/signal"
)

// onInterrupt calls fn the first time the program is interrupted. The returned
// function stops the handler and must be called before the mode returns.
func onInterrupt(fn func()) func() {
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	stop := watchSignal(intChan, fn)
	return func() {
		signal.Stop(intChan)
		stop()
	}
}

// watchSignal calls fn if a value arrives on sig. the returned function waits
// for the watching goroutine to end.
func watchSignal(sig <-chan os.Signal, fn func()) func() {
	done := make(chan struct{})
	ended := make(chan struct{})

	go func() {
		defer close(ended)
		select {
		case <-sig:
			fn()
		case <-done:
		}
	}()

	return func() {
		close(done)
		<-ended
	}
}
