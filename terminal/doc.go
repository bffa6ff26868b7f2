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


// Package terminal is a thin layer over the host terminal. It is used by the
// interactive monitor to read single key presses without waiting
// for the return key.
//
// Terminal modes are changed with the termios package from
// "github.com/pkg/term" and the terminal size is queried with an ioctl from
// "golang.org/x/sys/unix". On Windows the console is driven by
// "github.com/mattn/go-tty" instead.
package terminal
