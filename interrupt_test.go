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
	"sync/atomic"
	"testing"

	"github.com/OpenNoah/qemu-sub000/test"
)

func TestWatchSignal(t *testing.T) {
	var calls atomic.Int32

	// the watcher ends without a signal
	sig := make(chan os.Signal, 1)
	stop := watchSignal(sig, func() { calls.Add(1) })
	stop()
	test.ExpectEquality(t, calls.Load(), int32(0))

	// a signal is handled once and stop still returns
	sig = make(chan os.Signal, 2)
	handled := make(chan struct{})
	stop = watchSignal(sig, func() {
		calls.Add(1)
		close(handled)
	})
	sig <- os.Interrupt
	<-handled
	sig <- os.Interrupt
	stop()
	test.ExpectEquality(t, calls.Load(), int32(1))
	test.ExpectEquality(t, len(sig), 1)
}

func TestOnInterrupt(t *testing.T) {
	stop := onInterrupt(func() {})
	stop()
}
