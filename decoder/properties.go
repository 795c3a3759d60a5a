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

	"github.com/jetsetilly/tvafe/tuning"
)

// ColorFormat of the video data.
type ColorFormat int

// List of valid ColorFormat values.
const (
	ColorYUV444 ColorFormat = iota
	ColorYUV422
)

func (c ColorFormat) String() string {
	if c == ColorYUV422 {
		return "YUV422"
	}
	return "YUV444"
}

// TransFormat is the 2D/3D arrangement of the video data. Composite video is
// always 2D.
type TransFormat int

// List of valid TransFormat values.
const (
	Trans2D TransFormat = iota
)

func (t TransFormat) String() string {
	return "2D"
}

// crop amounts for each horizontal and vertical timing level
var (
	cutH = [tuning.MaxLevel + 1]int{0, 10, 18, 20, 62}
	cutV = [tuning.MaxLevel + 1]int{4, 8, 14, 16, 24}
)

// CutVHLevel4 is the vertical crop used when the horizontal timing is at the
// highest level, regardless of the vertical timing.
const CutVHLevel4 = 4

// SkipFrames is the number of frames the consumer should discard after a
// format change.
const SkipFrames = 4

// Properties describe the decoded video to the consumer.
type Properties struct {
	Trans     TransFormat
	Color     ColorFormat
	DestColor ColorFormat
	Aspect    Aspect

	// crop window. number of pixels/lines to remove from each edge
	HS, HE int
	VS, VE int

	SkipFrames int
}

func (p Properties) String() string {
	return fmt.Sprintf("%s %s->%s aspect=%s crop=[h %d %d, v %d %d] skip=%d",
		p.Trans, p.Color, p.DestColor, p.Aspect, p.HS, p.HE, p.VS, p.VE, p.SkipFrames)
}

// properties derives the property record from the timing loops
func properties(ht *tuning.HTiming, vt *tuning.VTiming, aspect Aspect) Properties {
	p := Properties{
		Trans:      Trans2D,
		Color:      ColorYUV444,
		DestColor:  ColorYUV422,
		Aspect:     aspect,
		SkipFrames: SkipFrames,
	}

	if level, ok := vt.Level(); ok {
		p.VS = cutV[level]
		p.VE = cutV[level]
	}

	if ht.Adjusting() {
		level := ht.Level()
		cut := cutH[level]
		if level == tuning.MaxLevel {
			p.VS = CutVHLevel4
			p.VE = CutVHLevel4
		}
		if ht.Above() {
			p.HE = cut
		} else {
			p.HS = cut
		}
	}

	return p
}
