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


// Package monitor drives a single port field by field and shows the state of
// format detection as it happens. There are two front ends. The TEA monitor
// is a full screen terminal program built with bubbletea. The PLAIN monitor
// prints a new line whenever the detected format changes and is suitable for
// terminals that do not support cursor movement.
//
// Both monitors accept the same keys:
//
//	1 to 8	select a manual format in the order of format.List
//	a	return to automatic detection
//	q	quit
package monitor
