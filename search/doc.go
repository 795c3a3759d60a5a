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

// Package search implements the format search state machine. The machine is
// either Searching for a format or Locked onto one.
//
// While Searching, the machine waits for the signal to settle and then
// compares the aggregated status with what is expected of the current
// candidate format. The comparison is made by the decision table in
// table.go, which either confirms the candidate or names the next candidate
// to try. If no candidate is confirmed after a number of tries a fallback
// format is chosen from the line count and colour system alone and the
// machine locks onto it regardless.
//
// While Locked, the machine checks every poll that the status is still
// consistent with the locked format. Inconsistencies are counted and when the
// count exceeds a threshold the machine returns to Searching. Consistent
// polls decrease the count so that occasional glitches are forgiven.
//
// The Machine does not touch the hardware. Step() returns an Action which
// tells the caller which format profile or chroma probe to apply.
package search
