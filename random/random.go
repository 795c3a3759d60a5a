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


package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

// initialise base seed
func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Position is the current position in the input. Implemented by the
// simulation.Hardware type.
type Position interface {
	Fields() int
}

// Random is a random number generator that is sensitive to the position in
// the input.
type Random struct {
	pos Position

	// use zero seed rather than the random base seed. random numbers are
	// then predictable for the same position
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(pos Position) *Random {
	return &Random{
		pos: pos,
	}
}

// new RNG from the standard library
func (rnd *Random) rand() *rand.Rand {
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(int64(rnd.pos.Fields())))
	}
	return rand.New(rand.NewSource(baseSeed + int64(rnd.pos.Fields())))
}

// Intn returns a number in the range 0 to n-1.
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}

// Jitter returns a number in the range -j to +j. A zero or negative j always
// returns zero.
func (rnd *Random) Jitter(j int) int {
	if j <= 0 {
		return 0
	}
	return rnd.Intn(2*j+1) - j
}
