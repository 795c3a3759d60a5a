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


// Package statsview runs a local HTTP server offering runtime statistics for
// a tvafe process. It is only functional when the statsview build constraint
// is present. Without the constraint Available() returns false and Launch()
// does nothing.
//
// The runtime statistics are useful when watching the memory and goroutine
// usage of many ports being monitored at once. After launch the graphs are
// viewable at:
//
//	localhost:12600/debug/statsview
//
// And the standard Go pprof statistics are available at:
//
//	localhost:12600/debug/pprof/
package statsview
