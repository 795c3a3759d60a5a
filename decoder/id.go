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

package decoder

import (
	"fmt"
	"strings"
)

// PortID identifies a composite video input.
type PortID int

// List of valid PortID values.
const (
	CVBS0 PortID = iota
	CVBS1
	CVBS2
	CVBS3
)

// Ports lists all valid PortID values.
var Ports = []PortID{CVBS0, CVBS1, CVBS2, CVBS3}

func (id PortID) String() string {
	if id.Valid() {
		return fmt.Sprintf("CVBS%d", int(id))
	}
	return fmt.Sprintf("unknown port (%d)", int(id))
}

// Valid returns true if the PortID is one of the values in Ports.
func (id PortID) Valid() bool {
	return id >= CVBS0 && id <= CVBS3
}

// IsTuner returns true if the port is fed by the RF tuner rather than an AV
// input. The tuner has its own gain control.
func (id PortID) IsTuner() bool {
	return id == CVBS3
}

// ParsePortID accepts "CVBS2" or "2".
func ParsePortID(s string) (PortID, error) {
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "CVBS")
	for _, id := range Ports {
		if s == fmt.Sprintf("%d", int(id)) {
			return id, nil
		}
	}
	return CVBS0, fmt.Errorf("decoder: unrecognised port %q", s)
}
