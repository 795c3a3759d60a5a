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

package tuning

import (
	"fmt"

	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/hardware"
	"github.com/jetsetilly/tvafe/ring"
)

// HTimingWindow is the number of polls between level decisions.
const HTimingWindow = 300

// distance from the nominal count at which each level begins. the first entry
// is the distance at which adjustment begins at all
var hTimingThresholds = [...]uint32{0x260, 0x4f0, 0x770, 0x9e0, 0xc50}

// MaxLevel is the largest level returned by HTiming and VTiming.
const MaxLevel = 4

// default and limit register values for the horizontal timing adjustment
const (
	hStartDefault = 0x8c
	hStartLimit   = 0x5c
	combDefault   = 0x14
	combLimit     = 0x1f
	acdHDefault   = 0x890359
	acdHSpread    = 0x94 - 0x88
)

// HTiming measures how far the horizontal period is from nominal and
// expresses the distance as a level between zero and four.
type HTiming struct {
	gen     hardware.Generation
	hcnt    *ring.Ring[uint32]
	counter int

	adjusting bool
	level     int
	above     bool
}

// NewHTiming is the preferred method of initialisation for the HTiming type.
func NewHTiming(gen hardware.Generation) *HTiming {
	return &HTiming{
		gen:  gen,
		hcnt: ring.New[uint32](depth),
	}
}

func (h *HTiming) String() string {
	if !h.adjusting {
		return "htiming: nominal"
	}
	dir := "below"
	if h.above {
		dir = "above"
	}
	return fmt.Sprintf("htiming: level %d %s", h.level, dir)
}

// Reset the loop.
func (h *HTiming) Reset() {
	h.hcnt.Reset()
	h.counter = 0
	h.adjusting = false
	h.level = 0
	h.above = false
}

// Adjusting returns true if the horizontal period is far enough from nominal
// for adjustment.
func (h *HTiming) Adjusting() bool {
	return h.adjusting
}

// Level returns the adjustment level. Zero if not adjusting.
func (h *HTiming) Level() int {
	return h.level
}

// Above returns true if the measured period is longer than nominal.
func (h *HTiming) Above() bool {
	return h.above
}

// Update the loop with the measured horizontal period count. The format
// selects the nominal count. Returns true if the level, direction or
// adjustment state has changed. Formats without a nominal count return false.
func (h *HTiming) Update(f format.Format, hcnt uint32) bool {
	nominal, ok := HCountNominal(h.gen, f)
	if !ok {
		return false
	}

	h.hcnt.Push(hcnt)

	h.counter++
	if h.counter < HTimingWindow {
		return false
	}
	h.counter = 0

	ave := uint32(ring.TrimmedAverage(h.hcnt))
	diff := absDiff(ave, nominal)

	adjusting := false
	level := 0
	above := false

	if diff > hTimingThresholds[0] {
		adjusting = true
		above = ave > nominal
		for l := MaxLevel; l > 0; l-- {
			if diff > hTimingThresholds[l] {
				level = l
				break
			}
		}
	}

	changed := adjusting != h.adjusting || level != h.level || above != h.above
	h.adjusting = adjusting
	h.level = level
	h.above = above

	return changed
}

// HTimingRegisters are the register values implied by the current level.
type HTimingRegisters struct {
	Profile      hardware.Profile
	HActiveStart uint32
	ACDHWindow   uint32
	CombLevel    uint32
	Comb2D       bool
}

// Registers returns the register values for the current state. When the
// measured period is long the active video start is brought forward. When it
// is short the comb filter threshold is raised and the 2D comb is disabled.
func (h *HTiming) Registers() HTimingRegisters {
	r := HTimingRegisters{
		Profile:      hardware.ProfileHTimingDefault,
		HActiveStart: hStartDefault,
		ACDHWindow:   acdHDefault,
		CombLevel:    combDefault,
		Comb2D:       true,
	}

	if !h.adjusting {
		return r
	}

	r.Profile = hardware.ProfileHTimingAdjust
	l := uint32(h.level)

	if h.above {
		d := (hStartDefault - hStartLimit) * l / MaxLevel
		r.HActiveStart = hStartDefault - d
		r.ACDHWindow = acdHDefault - (d<<16 | d)
	} else {
		r.CombLevel = combDefault + (combLimit-combDefault)*l/MaxLevel
		r.Comb2D = l == 0
		d := acdHSpread * l / MaxLevel
		r.ACDHWindow = acdHDefault + (d<<16 | d)
	}

	return r
}
