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

	"github.com/jetsetilly/tvafe/ring"
)

// VTimingWindow is the number of polls between level decisions.
const VTimingWindow = 100

// the line count register is eight bits and wraps at nominal. a short field
// reads slightly below the wrap and a long field reads slightly above it.
// thresholds are in level order
var (
	vTimingShort = [...]uint32{0xfa, 0xee, 0xe2, 0xdc, 0xd8}
	vTimingLong  = [...]uint32{0x06, 0x0c, 0x12, 0x20, 0x28}
)

// VTiming measures the number of lines per field and expresses the
// distance from nominal as a level.
type VTiming struct {
	lines   *ring.Ring[uint32]
	counter int

	level int
	valid bool
}

// NewVTiming is the preferred method of initialisation for the VTiming type.
func NewVTiming() *VTiming {
	return &VTiming{
		lines: ring.New[uint32](depth),
	}
}

func (v *VTiming) String() string {
	if !v.valid {
		return "vtiming: none"
	}
	return fmt.Sprintf("vtiming: level %d", v.level)
}

// Reset the loop.
func (v *VTiming) Reset() {
	v.lines.Reset()
	v.counter = 0
	v.level = 0
	v.valid = false
}

// Level returns the adjustment level. The second return value is false if
// the line count is outside the range of any level.
func (v *VTiming) Level() (int, bool) {
	return v.level, v.valid
}

// classify the averaged line count
func classifyLines(ave uint32) (int, bool) {
	for l, th := range vTimingShort {
		if ave > th {
			return l, true
		}
	}
	for l, th := range vTimingLong {
		if ave < th {
			return l, true
		}
	}
	return 0, false
}

// Update the loop with the measured line count. Returns true if the level has
// changed.
func (v *VTiming) Update(lines uint32) bool {
	v.lines.Push(lines & 0xff)

	v.counter++
	if v.counter < VTimingWindow {
		return false
	}
	v.counter = 0

	level, valid := classifyLines(uint32(ring.TrimmedAverage(v.lines)))
	changed := level != v.level || valid != v.valid
	v.level = level
	v.valid = valid

	return changed
}
