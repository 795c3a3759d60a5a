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

package hardware

import (
	"fmt"
	"strings"
)

// Param names a register value that the decoder reads or writes.
type Param int

// List of valid Param values.
const (
	// analogue gain of the front end amplifier. 8 bit
	ParamPGA Param = iota

	// digital gain applied after the ADC, as measured by the decoder. 12 bit
	ParamDigitalGain

	// chroma DTO (frequency synthesis) value. 32 bit
	ParamChromaDTO

	// horizontal period as a count of 64 line periods
	ParamHCount

	// number of lines in the most recent field. 8 bit
	ParamVLines

	// sum of chroma energy over the field
	ParamChromaSum

	// measured sync noise
	ParamSyncNoise

	// horizontal active video start
	ParamHActiveStart

	// ACD horizontal window. start and end in the upper and lower 16 bits
	ParamACDHWindow

	// comb filter threshold
	ParamCombLevel

	// 2D comb filter enable
	ParamComb2D

	// 3D comb filter error status
	ParamComb3DStatus

	// aspect ratio as decoded from the wide screen signalling line
	ParamWSS
)

var paramNames = []string{
	"pga", "dgain", "cdto", "hcnt64", "vlines", "chromasum", "syncnoise",
	"hstart", "acdh", "comblevel", "comb2d", "comb3d", "wss",
}

func (p Param) String() string {
	if p >= 0 && int(p) < len(paramNames) {
		return paramNames[p]
	}
	return fmt.Sprintf("unknown param (%d)", int(p))
}

// Profile names one of the auxiliary register profiles.
type Profile int

// List of valid Profile values.
const (
	// profiles for standard and non-standard signals
	ProfileStandard Profile = iota
	ProfileNonStandard

	// horizontal timing filter profiles
	ProfileHTimingDefault
	ProfileHTimingAdjust

	// chroma DTO probes used to separate NTSC-M from PAL-M
	ProfileProbeNTSCM
	ProfileProbePALM

	// reset the 3D comb filter after an error
	ProfileComb3DReset
)

var profileNames = []string{
	"standard", "non-standard", "htiming default", "htiming adjust",
	"probe ntsc-m", "probe pal-m", "comb3d reset",
}

func (p Profile) String() string {
	if p >= 0 && int(p) < len(profileNames) {
		return profileNames[p]
	}
	return fmt.Sprintf("unknown profile (%d)", int(p))
}

// Generation of the decoder hardware. The horizontal period counts differ
// between generations.
type Generation int

// List of valid Generation values.
const (
	GXTVBB Generation = iota
	Legacy
)

// Generations lists the names of the generations as accepted by
// ParseGeneration().
var Generations = []string{"GXTVBB", "LEGACY"}

func (g Generation) String() string {
	if g >= 0 && int(g) < len(Generations) {
		return Generations[g]
	}
	return fmt.Sprintf("unknown generation (%d)", int(g))
}

// ParseGeneration returns the Generation for the name. Names are not case
// sensitive.
func ParseGeneration(s string) (Generation, error) {
	for i, g := range Generations {
		if strings.EqualFold(g, strings.TrimSpace(s)) {
			return Generation(i), nil
		}
	}
	return GXTVBB, fmt.Errorf("hardware: unrecognised generation %q", s)
}
