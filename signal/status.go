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

package signal

import "fmt"

// Sample is one poll of the decoder status registers.
type Sample struct {
	NoSignal      bool `yaml:"nosignal"`
	HLock         bool `yaml:"hlock"`
	VLock         bool `yaml:"vlock"`
	HNonStd       bool `yaml:"hnonstd"`
	VNonStd       bool `yaml:"vnonstd"`
	NoColorBurst  bool `yaml:"noburst"`
	Comb3DOff     bool `yaml:"comb3doff"`
	ChromaLock    bool `yaml:"chromalock"`
	PAL           bool `yaml:"pal"`
	SECAM         bool `yaml:"secam"`
	Line625       bool `yaml:"line625"`
	Noisy         bool `yaml:"noisy"`
	VCR           bool `yaml:"vcr"`
	VCRTrick      bool `yaml:"vcrtrick"`
	VCRFF         bool `yaml:"vcrff"`
	VCRRew        bool `yaml:"vcrrew"`
	SECAMDetected bool `yaml:"secamdetected"`
	SECAMPhase    bool `yaml:"secamphase"`

	// chroma phase error
	Cordic int8 `yaml:"cordic"`

	// burst frequency histogram. each count is the number of lines in the
	// field where the burst frequency fell into the bucket
	Acc4xx int `yaml:"acc4xx"`
	Acc425 int `yaml:"acc425"`
	Acc3xx int `yaml:"acc3xx"`
	Acc358 int `yaml:"acc358"`
}

// Status is the aggregated form of the most recent samples. The boolean
// fields have the same meaning as in Sample. The Fsc fields are derived from
// the burst histogram.
type Status struct {
	NoSignal      bool
	HLock         bool
	VLock         bool
	HNonStd       bool
	VNonStd       bool
	NoColorBurst  bool
	Comb3DOff     bool
	ChromaLock    bool
	PAL           bool
	SECAM         bool
	Line625       bool
	Noisy         bool
	VCR           bool
	VCRTrick      bool
	VCRFF         bool
	VCRRew        bool
	SECAMDetected bool
	SECAMPhase    bool

	Cordic int8

	Acc4xx int
	Acc425 int
	Acc3xx int
	Acc358 int

	// subcarrier classes
	Fsc358 bool
	Fsc425 bool
	Fsc443 bool
}

func (s Status) String() string {
	if s.NoSignal {
		return "no signal"
	}

	lines := 525
	if s.Line625 {
		lines = 625
	}

	colour := "ntsc"
	switch {
	case s.SECAM:
		colour = "secam"
	case s.PAL:
		colour = "pal"
	}

	fsc := "???"
	switch {
	case s.Fsc358:
		fsc = "358"
	case s.Fsc443:
		fsc = "443"
	case s.Fsc425:
		fsc = "425"
	}

	return fmt.Sprintf("%d %s fsc=%s hlock=%v vlock=%v clock=%v", lines, colour, fsc, s.HLock, s.VLock, s.ChromaLock)
}

// LockStatus is the lock state reported to the outside world.
type LockStatus int

// List of valid LockStatus values.
const (
	Unlocked LockStatus = iota
	HLocked
	VLocked
	HVLocked
)

func (l LockStatus) String() string {
	switch l {
	case HLocked:
		return "h-locked"
	case VLocked:
		return "v-locked"
	case HVLocked:
		return "hv-locked"
	}
	return "unlocked"
}

// Lock returns the lock status implied by the lock flags.
func (s Status) Lock() LockStatus {
	switch {
	case s.HLock && s.VLock:
		return HVLocked
	case s.HLock:
		return HLocked
	case s.VLock:
		return VLocked
	}
	return Unlocked
}
