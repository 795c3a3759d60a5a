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

// gain loop constants. the digital gain is a 12 bit value
const (
	GainMiddle    = 0x200
	GainWindow    = 0x0c
	GainLimitLow  = GainMiddle - GainWindow
	GainLimitHigh = GainMiddle + GainWindow

	// minimum number of polls between corrections. the step of the previous
	// correction is added to this value
	GainSettle = 5

	// step used when the average moves suddenly
	GainDeltaStep = 0x10

	PGADefault = 0x20
	PGAMin     = 2
	PGAMax     = 255
)

// Gain corrects the analogue gain (PGA) so that the digital gain measured by
// the decoder stays inside a window around GainMiddle.
type Gain struct {
	dgain   *ring.Ring[uint32]
	counter int

	// step of the most recent correction. larger corrections are followed
	// by longer settle periods
	step int

	lastAverage int64
}

// NewGain is the preferred method of initialisation for the Gain type.
func NewGain() *Gain {
	g := &Gain{
		dgain: ring.New[uint32](depth),
	}
	g.Reset()
	return g
}

func (g *Gain) String() string {
	return fmt.Sprintf("gain: ave=%#x step=%d", g.lastAverage, g.step)
}

// Reset the loop.
func (g *Gain) Reset() {
	g.dgain.Reset()
	g.counter = 0
	g.step = 0
	g.lastAverage = GainMiddle
}

// Step returns the size of the most recent correction.
func (g *Gain) Step() int {
	return g.step
}

// Update the loop with the measured digital gain and the current PGA value.
// Returns the new PGA value and whether it should be written.
func (g *Gain) Update(dgain uint32, pga uint32) (uint32, bool) {
	g.dgain.Push(dgain & 0xfff)

	g.counter++
	if g.counter < GainSettle+g.step {
		return pga, false
	}
	g.counter = 0

	ave := ring.TrimmedAverage(g.dgain)
	delta := absDiff(ave, g.lastAverage)
	g.lastAverage = ave

	if ave >= GainLimitLow && ave <= GainLimitHigh {
		g.step = 0
		return pga, false
	}

	dist := absDiff(ave, GainMiddle)

	var step int
	switch {
	case dist > GainMiddle:
		step = 16
	case dist > GainMiddle/2:
		step = 5
	case dist > GainMiddle/4:
		step = 2
	default:
		step = 1
	}

	// a sudden change or a gain that is not responding
	if delta > GainMiddle || (delta == 0 && dist > GainMiddle/4) {
		step = GainDeltaStep
	}

	g.step = step

	v := int(pga)
	if ave > GainLimitHigh {
		v += step
	} else {
		v -= step
	}
	v = min(max(v, PGAMin), PGAMax)

	return uint32(v), uint32(v) != pga
}
