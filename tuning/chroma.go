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

// chroma loop constants
const (
	// number of polls between corrections
	ChromaWindow = 300

	// default difference between the target and nominal DTO below which the
	// signal is considered standard
	ChromaThreshold = 0x4cedb3

	// corrections are the remaining difference shifted by this amount
	ChromaStepExp = 3
)

// Chroma tracks the chroma subcarrier of a PAL-I signal whose line frequency
// is off nominal. The DTO is moved a fraction of the way towards the value
// implied by the measured horizontal period each window.
type Chroma struct {
	hcnt    *ring.Ring[uint32]
	counter int

	nominal   uint32
	threshold uint32

	worst bool
}

// NewChroma is the preferred method of initialisation for the Chroma type.
func NewChroma(gen hardware.Generation) *Chroma {
	c := &Chroma{
		hcnt:      ring.New[uint32](depth),
		threshold: ChromaThreshold,
	}
	c.nominal, _ = HCountNominal(gen, format.PALI)
	return c
}

func (c *Chroma) String() string {
	return fmt.Sprintf("chroma: worst=%v", c.worst)
}

// SetThreshold changes the threshold below which the DTO is returned to
// nominal.
func (c *Chroma) SetThreshold(th uint32) {
	c.threshold = th
}

// Reset the loop.
func (c *Chroma) Reset() {
	c.hcnt.Reset()
	c.counter = 0
	c.worst = false
}

// Worst returns true if the most recent window found the DTO far from
// nominal.
func (c *Chroma) Worst() bool {
	return c.worst
}

// tune moves cur towards dst. Large differences move by a fraction of the
// difference and small differences by one.
func tune(cur, dst uint32) uint32 {
	diff := absDiff(cur, dst)
	if diff == 0 {
		return cur
	}

	step := uint32(1)
	if diff > 1<<ChromaStepExp {
		step = diff >> ChromaStepExp
	}

	if dst > cur {
		return cur + step
	}
	return cur - step
}

// Update the loop with the measured horizontal period count and the current
// DTO value. Returns the new DTO and whether it should be written.
func (c *Chroma) Update(hcnt uint32, dto uint32) (uint32, bool) {
	c.hcnt.Push(hcnt)

	c.counter++
	if c.counter < ChromaWindow {
		return dto, false
	}
	c.counter = 0

	ave := ring.TrimmedAverage(c.hcnt)
	if ave <= 0 {
		return dto, false
	}

	target := uint64(format.DTOPALI) * uint64(c.nominal) / uint64(ave)

	if absDiff(target, format.DTOPALI) < uint64(c.threshold) {
		c.worst = false
		return format.DTOPALI, dto != format.DTOPALI
	}

	c.worst = true
	target = min(target, 0xffffffff)
	v := tune(dto, uint32(target))
	return v, v != dto
}
