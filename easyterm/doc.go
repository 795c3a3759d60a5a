// This file is part of tvafe.
//
// tvafe is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// tvafe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with tvafe.  If not, see <https://www.gnu.org/licenses/>.


// Package easyterm is a wrapper for a raw mode terminal. It is used for the
// plain monitor where single key presses control a port without the need for
// the return key.
//
// Output written with Print() has newlines translated to carriage-return
// newline pairs because the terminal is in raw mode while it is open.
package easyterm
