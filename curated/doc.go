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

// Package curated wraps the plain Go error type with a pattern-keyed
// variety. Errors are created with Errorf(), which takes the same arguments
// as fmt.Errorf(), and can later be identified by the pattern they were
// created with.
//
//	const UnmappedRegister = "tcu: unmapped register: %#x"
//
//	err := curated.Errorf(UnmappedRegister, addr)
//	if curated.Is(err, UnmappedRegister) {
//		...
//	}
//
// Has() is similar to Is() but looks for the pattern anywhere in the chain of
// curated errors.
//
//	f := curated.Errorf("macro: %v", err)
//	curated.Has(f, UnmappedRegister) // true
//	curated.Is(f, UnmappedRegister)  // false
//
// Chains are thought of as parts separated by ": ". The Error() function
// removes adjacent duplicate parts so that callers can wrap errors with their
// package prefix without worrying about whether the callee has already done
// so.
//
// Sentinel patterns should be exported as string constants by the package
// that creates them.
package curated
