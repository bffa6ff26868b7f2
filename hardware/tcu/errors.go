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


package tcu

// Sentinal error patterns.
const (
	UnmappedRegister  = "tcu: unmapped register: %#x"
	ReadOnlyRegister  = "tcu: register is read only: %s"
	WriteOnlyRegister = "tcu: register is write only: %s"
	UnknownModel      = "tcu: unknown model: %s"
)
