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

// Package test contains helper functions to remove common boilerplate from
// package tests.
//
// The Expect functions report a failure with t.Errorf() and allow the test
// to continue. The Demand functions stop the test with t.Fatalf(). Both
// families accept optional tags which are prepended to the failure message,
// useful when the check happens inside a loop.
//
// ExpectSuccess and ExpectFailure interpret their argument according to
// type: a bool is a success if it is true and an error is a success if it is
// nil. An untyped nil is always a success.
//
// The Writer type implements io.Writer and should be used to capture output.
// Writer.Compare() can then be used to test for equality.
package test
