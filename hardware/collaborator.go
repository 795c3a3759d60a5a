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

// Package hardware defines the interface between the decoder logic and the
// CVBS decoder registers. Nothing in this module touches registers directly.
// A Collaborator implementation is responsible for register access, including
// waiting on any busy bits, before returning.
//
// The simulation package provides a Collaborator that requires no hardware.
package hardware

import (
	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/signal"
)

// Collaborator is the set of register operations required by the decoder.
// Calls are synchronous and are never made concurrently for the same port.
type Collaborator interface {
	// ReadStatus returns the current status registers as a single sample.
	ReadStatus() (signal.Sample, error)

	// ApplyFormatProfile writes the register tables for the format.
	ApplyFormatProfile(format.Format) error

	// ApplyProfile writes one of the auxiliary register profiles.
	ApplyProfile(Profile) error

	// Read and Write access individual named parameters.
	Read(Param) (uint32, error)
	Write(Param, uint32) error
}
