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


//go:build windows

package terminal

import (
	"fmt"
	"os"

	"github.com/OpenNoah/qemu-sub000/curated"
	"github.com/mattn/go-tty"
)

// Geometry of the terminal in characters.
type Geometry struct {
	Rows uint16
	Cols uint16
}

// Terminal wraps the console. The input and output files given to
// Initialise() are ignored because the console is opened directly.
type Terminal struct {
	tty      *tty.TTY
	restore  func() error
	geometry Geometry
}

// Initialise opens the console.
func (pt *Terminal) Initialise(inputFile, outputFile *os.File) error {
	var err error
	pt.tty, err = tty.Open()
	if err != nil {
		return curated.Errorf("terminal: %v", err)
	}
	_ = pt.UpdateGeometry()
	return nil
}

// CleanUp restores canonical mode and closes the console.
func (pt *Terminal) CleanUp() {
	pt.CanonicalMode()
	_ = pt.tty.Close()
}

// Print a formatted string to the console.
func (pt *Terminal) Print(s string, a ...interface{}) {
	fmt.Fprintf(pt.tty.Output(), s, a...)
}

// Write implements the io.Writer interface.
func (pt *Terminal) Write(p []byte) (int, error) {
	return pt.tty.Output().Write(p)
}

// UpdateGeometry queries the size of the console.
func (pt *Terminal) UpdateGeometry() error {
	w, h, err := pt.tty.Size()
	if err != nil {
		return curated.Errorf("terminal: geometry: %v", err)
	}
	pt.geometry.Rows = uint16(h)
	pt.geometry.Cols = uint16(w)
	return nil
}

// Geometry returns the most recent size of the console.
func (pt *Terminal) Geometry() Geometry {
	return pt.geometry
}

// CanonicalMode restores the console mode from before CBreakMode().
func (pt *Terminal) CanonicalMode() {
	if pt.restore != nil {
		_ = pt.restore()
		pt.restore = nil
	}
}

// CBreakMode makes key presses available immediately and without echo.
func (pt *Terminal) CBreakMode() {
	if pt.restore != nil {
		return
	}
	restore, err := pt.tty.Raw()
	if err == nil {
		pt.restore = restore
	}
}

// Flush is not required for the console.
func (pt *Terminal) Flush() error {
	return nil
}

// ReadKey blocks until a key is pressed. Keys outside of the ASCII range are
// returned as zero.
func (pt *Terminal) ReadKey() (byte, error) {
	r, err := pt.tty.ReadRune()
	if err != nil {
		return 0, curated.Errorf("terminal: %v", err)
	}
	if r > 0x7f {
		return 0, nil
	}
	return byte(r), nil
}
