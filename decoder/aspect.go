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

// Aspect is the aspect ratio of the picture as signalled by the wide screen
// signalling line.
type Aspect int

// List of valid Aspect values. AspectNull means the aspect ratio is not
// known.
const (
	AspectNull Aspect = iota
	Aspect4x3Full
	Aspect14x9Full
	Aspect14x9LBCenter
	Aspect14x9LBTop
	Aspect16x9Full
	Aspect16x9LBCenter
	Aspect16x9LBTop
	numAspects
)

var aspectNames = [numAspects]string{
	"none", "4:3", "14:9", "14:9 letterbox", "14:9 letterbox top",
	"16:9", "16:9 letterbox", "16:9 letterbox top",
}

func (a Aspect) String() string {
	if a >= 0 && a < numAspects {
		return aspectNames[a]
	}
	return aspectNames[AspectNull]
}

// AspectFromWSS converts the aspect ratio group of a WSS value to an Aspect.
// Only the lower four bits are used.
func AspectFromWSS(v uint32) Aspect {
	switch v & 0x0f {
	case 0x08:
		return Aspect4x3Full
	case 0x01:
		return Aspect14x9LBCenter
	case 0x02:
		return Aspect14x9LBTop
	case 0x0b, 0x0d:
		return Aspect16x9LBCenter
	case 0x04:
		return Aspect16x9LBTop
	case 0x0e:
		return Aspect14x9Full
	case 0x07:
		return Aspect16x9Full
	}
	return AspectNull
}

// the aspect vote is decided once per window
const (
	AspectWindow   = 40
	AspectMajority = 30
)

// aspectVote counts the aspect ratio of every field. once the window is
// complete the first aspect to be seen more than AspectMajority times is
// chosen. if no aspect is seen often enough the previous choice remains
type aspectVote struct {
	counts  [numAspects]int
	n       int
	current Aspect
}

func (v *aspectVote) reset() {
	*v = aspectVote{}
}

func (v *aspectVote) update(a Aspect) {
	if a < 0 || a >= numAspects {
		a = AspectNull
	}
	v.counts[a]++

	v.n++
	if v.n <= AspectWindow {
		return
	}

	for i, c := range v.counts {
		if c > AspectMajority {
			v.current = Aspect(i)
			break
		}
	}
	v.counts = [numAspects]int{}
	v.n = 0
}
