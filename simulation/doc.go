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

// Package simulation provides a hardware.Collaborator that requires no
// hardware. The simulated decoder is driven by a Scenario, a list of
// segments each describing the input signal for a number of fields.
//
// The simulated status registers respond to the registers written by the
// decoder in a limited way. Chroma lock is only reported when the chroma DTO
// is close to the DTO of the incoming standard, and the measured digital gain
// falls as the analogue gain (PGA) is raised. This is enough to exercise the
// format search and the adaptive loops.
//
// Scenarios are YAML files:
//
//	name: PAL-CN with a noisy start
//	segments:
//	  - fields: 20
//	    nosignal: true
//	  - fields: 400
//	    standard: PAL-CN
//	    dgain: 0x2a0
//	    wss: 0x08
//
// Numeric values can be given in decimal or hexadecimal. A segment with a
// sample entry uses that sample verbatim instead of generating one from the
// standard.
package simulation
