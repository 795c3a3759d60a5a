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


// Package random provides random numbers that are tied to the position in the
// input. The same field of the same scenario always produces the same number
// for a given seed, so a simulated run with measurement jitter can be
// repeated exactly.
//
// If the same random numbers are required every single time then set
// ZeroSeed to true. This is useful for testing purposes.
package random
