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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a pattern
// and placeholder values in the same way as fmt.Errorf(). The pattern is
// remembered and is what distinguishes one curated error from another. For
// example, the decoder package exports the pattern for a closed port:
//
//	const PortClosed = "decoder: port %d is closed"
//
// and callers test for it with:
//
//	if curated.Is(err, decoder.PortClosed) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain. A chain is formed whenever a curated error is used as one
// of the placeholder values of another curated error.
//
// The Error() function normalises the message by removing duplicate adjacent
// parts of the chain. This means that a function can wrap an error with its
// package prefix without worrying whether the prefix is already present.
package curated
