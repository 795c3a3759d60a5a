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

// Package tuning contains the closed loops that correct the decoder while a
// format is locked. Each loop keeps a short history of a measured value in a
// ring.Ring and acts on the trimmed average of the history, either every
// poll after a settle period (Gain) or once per window of polls (Chroma,
// HTiming, VTiming).
//
// The loops do not access the hardware. They are given the measured values
// and return the values that should be written. The decoder package is
// responsible for reading and writing the registers.
//
// Every loop has a Reset() function which must be called when a new format
// is tried. Corrections computed under one standard are meaningless under
// another.
package tuning

import (
	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/hardware"
)

// depth of the measurement history for all loops
const depth = 4

// HCountNominal returns the nominal horizontal period count for the format.
// Only PAL-I and NTSC-M have nominal counts. The second return value is
// false for all other formats.
func HCountNominal(gen hardware.Generation, f format.Format) (uint32, bool) {
	switch gen {
	case hardware.Legacy:
		switch f {
		case format.PALI, format.NTSCM:
			return 0x17a00, true
		}
	default:
		switch f {
		case format.PALI:
			return 0x31380, true
		case format.NTSCM:
			return 0x30e0e, true
		}
	}
	return 0, false
}

func absDiff[T ~int64 | ~uint64 | ~uint32](a, b T) T {
	if a > b {
		return a - b
	}
	return b - a
}
