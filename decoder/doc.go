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

// Package decoder ties together the signal aggregator, the non-standard
// signal detector, the format search state machine and the adaptive tuning
// loops for a single composite video input port.
//
// A Port is driven from outside. The Field() function should be called once
// per video field and the Tick() function on a coarser timer. Tick() only
// polls the status and advances the format search and does nothing while a
// format is locked.
//
// All Port functions are safe to call from different goroutines but only one
// evaluation is ever in flight for a port. Ports share no state and can be
// driven concurrently.
package decoder
