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

// Package format enumerates the analog broadcast standards that can be
// detected on a CVBS input. Each Format knows its line count, colour system,
// chroma subcarrier class and the nominal chroma DTO value used to decode it.
package format

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/tvafe/curated"
)

// UnrecognisedFormat is returned by Parse() when the name is not recognised.
const UnrecognisedFormat = "format: unrecognised format name (%s)"

// Format identifies a broadcast standard. The zero value, Auto, is not a
// standard. It means that no format is locked or, when used as a manual
// override, that automatic detection should be used.
type Format int

// List of valid Format values. The order is significant because it matches
// the numbering used by the hardware profile tables.
const (
	Auto Format = iota
	NTSCM
	NTSC443
	PALI
	PALM
	PAL60
	PALCN
	SECAM
	NTSC50
)

// List is every valid Format, in numerical order.
var List = []Format{NTSCM, NTSC443, PALI, PALM, PAL60, PALCN, SECAM, NTSC50}

var names = map[Format]string{
	Auto:    "AUTO",
	NTSCM:   "NTSC-M",
	NTSC443: "NTSC-443",
	PALI:    "PAL-I",
	PALM:    "PAL-M",
	PAL60:   "PAL-60",
	PALCN:   "PAL-CN",
	SECAM:   "SECAM",
	NTSC50:  "NTSC-50",
}

func (f Format) String() string {
	if s, ok := names[f]; ok {
		return s
	}
	return fmt.Sprintf("unknown format (%d)", int(f))
}

// Valid returns true if the format is one of the supported standards. Auto is
// not a valid format.
func (f Format) Valid() bool {
	return f >= NTSCM && f <= NTSC50
}

// Parse a format name. The comparison ignores case and hyphens so "pal-cn",
// "PALCN" and "PAL_CN" are all PALCN.
func Parse(s string) (Format, error) {
	norm := func(s string) string {
		s = strings.ToUpper(strings.TrimSpace(s))
		s = strings.ReplaceAll(s, "-", "")
		return strings.ReplaceAll(s, "_", "")
	}
	n := norm(s)
	for f, name := range names {
		if norm(name) == n {
			return f, nil
		}
	}
	return Auto, curated.Errorf(UnrecognisedFormat, s)
}

// Lines625 returns true if the standard has 625 lines per frame. All other
// formats have 525 lines.
func (f Format) Lines625() bool {
	switch f {
	case PALI, PALCN, SECAM, NTSC50:
		return true
	}
	return false
}

// Lines returns the number of lines per frame. Auto returns zero.
func (f Format) Lines() int {
	if !f.Valid() {
		return 0
	}
	if f.Lines625() {
		return 625
	}
	return 525
}

// PAL returns true if the standard uses PAL colour encoding.
func (f Format) PAL() bool {
	switch f {
	case PALI, PALM, PAL60, PALCN:
		return true
	}
	return false
}

// NTSC returns true if the standard uses NTSC colour encoding.
func (f Format) NTSC() bool {
	switch f {
	case NTSCM, NTSC443, NTSC50:
		return true
	}
	return false
}

// Burst is the class of the chroma subcarrier frequency.
type Burst int

// List of valid Burst values.
const (
	BurstNone Burst = iota
	Burst358
	Burst443
)

func (b Burst) String() string {
	switch b {
	case Burst358:
		return "3.58MHz"
	case Burst443:
		return "4.43MHz"
	}
	return "none"
}

// Burst returns the subcarrier class expected of the standard. SECAM uses FM
// colour carriers and has no burst class.
func (f Format) Burst() Burst {
	switch f {
	case PALCN, PALM, NTSCM, NTSC50:
		return Burst358
	case PALI, PAL60, NTSC443:
		return Burst443
	}
	return BurstNone
}

// Nominal chroma DTO values.
const (
	DTONTSCM   = 0x262e8ba2
	DTONTSC443 = 0x2f4abc24
	DTOPALI    = 0x2f4abc24
	DTOPALM    = 0x26285a6f
	DTOPAL60   = 0x2f4abc24
	DTOPALCN   = 0x263566cf
	DTOSECAM   = 0x2db7a328
	DTONTSC50  = 0x262e8ba2
)

// DTO returns the nominal chroma DTO value for the standard. Auto returns
// zero.
func (f Format) DTO() uint32 {
	switch f {
	case NTSCM:
		return DTONTSCM
	case NTSC443:
		return DTONTSC443
	case PALI:
		return DTOPALI
	case PALM:
		return DTOPALM
	case PAL60:
		return DTOPAL60
	case PALCN:
		return DTOPALCN
	case SECAM:
		return DTOSECAM
	case NTSC50:
		return DTONTSC50
	}
	return 0
}
