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

// Package nonstd detects non-standard signals. A non-standard signal is one
// that the decoder hardware reports as having horizontal or vertical timing
// outside of the broadcast standard, which is common with VCR and other tape
// sources, and with poor cabling.
//
// Detection uses a bounded counter with hysteresis. The counter moves by one
// each poll and the flag changes only when the counter crosses one of two
// thresholds, so a single good or bad poll never changes the flag.
package nonstd

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/hardware"
	"github.com/jetsetilly/tvafe/ring"
	"github.com/jetsetilly/tvafe/signal"
)

// counter limits and thresholds
const (
	CounterMax   = 50
	OnThreshold  = 10
	OffThreshold = 2

	// filtered chroma sum at or above which the picture is colourful
	ColourfulThreshold = 0x80000

	// digital gain at or above which a PAL-I signal is treated as
	// non-standard regardless of the counter
	DigitalGainThreshold = 0x500
)

// number of calls to Config() before the first profile decision and between
// subsequent decisions
const (
	ConfigFirst    = 50
	ConfigInterval = 200
)

// Measurement is the information required by the Tracker for each poll.
type Measurement struct {
	Status      signal.Status
	Format      format.Format
	ChromaSum   uint32
	SyncNoise   uint32
	DigitalGain uint32
}

// Force overrides the register profile selection.
type Force int

// List of valid Force values.
const (
	// swap profiles when the non-standard state changes
	ForceAuto Force = iota

	// always use the standard profile
	ForceStandard

	// never swap profiles
	ForceFrozen
)

// Forces lists the names of the Force values as accepted by ParseForce().
var Forces = []string{"AUTO", "STANDARD", "FROZEN"}

func (f Force) String() string {
	if f >= 0 && int(f) < len(Forces) {
		return Forces[f]
	}
	return fmt.Sprintf("unknown force (%d)", int(f))
}

// ParseForce returns the Force for the name. Names are not case sensitive.
func ParseForce(s string) (Force, error) {
	for i, f := range Forces {
		if strings.EqualFold(f, strings.TrimSpace(s)) {
			return Force(i), nil
		}
	}
	return ForceAuto, fmt.Errorf("nonstd: unrecognised force %q", s)
}

// Tracker is the non-standard signal detector for one port.
type Tracker struct {
	counter int
	flag    bool
	active  bool

	chroma *ring.Ring[uint32]
	noise  *ring.Ring[uint32]

	colourful bool

	// whether the non-standard profile is currently applied
	applied bool

	// calls to Config() remaining before the next profile decision
	configWait int
}

// NewTracker is the preferred method of initialisation for the Tracker type.
func NewTracker() *Tracker {
	return &Tracker{
		chroma:     ring.New[uint32](3),
		noise:      ring.New[uint32](3),
		configWait: ConfigFirst,
	}
}

func (t *Tracker) String() string {
	return fmt.Sprintf("nonstd: counter=%d flag=%v active=%v noise=%#x", t.counter, t.flag, t.active, t.Noise())
}

// FormatApplied should be called whenever a format profile is applied,
// because the format profile restores the standard register profile. The
// counter and flag are measurements of the signal and are not affected.
func (t *Tracker) FormatApplied() {
	t.applied = false
}

// weighted low pass filter over a ring of three entries. missing entries are
// treated as zero
func filter(r *ring.Ring[uint32]) uint32 {
	a, _ := r.Recent(2)
	b, _ := r.Recent(1)
	c, _ := r.Recent(0)
	return uint32((uint64(a) + 2*uint64(b) + uint64(c)) >> 2)
}

// Update the tracker with a new measurement. Returns the value of Active().
func (t *Tracker) Update(m Measurement) bool {
	t.chroma.Push(m.ChromaSum)
	t.noise.Push(m.SyncNoise)
	t.colourful = filter(t.chroma) >= ColourfulThreshold

	st := m.Status
	if st.HNonStd || (st.VNonStd && t.colourful) {
		if t.counter < CounterMax {
			t.counter++
		}
	} else if !st.HNonStd && !st.VNonStd {
		if t.counter > 0 {
			t.counter--
		}
	}

	if t.counter <= OffThreshold {
		t.flag = false
	} else if t.counter >= OnThreshold {
		t.flag = true
	}

	t.active = t.flag
	if m.Format == format.PALI && st.Line625 {
		if m.DigitalGain >= DigitalGainThreshold || st.HNonStd {
			t.active = true
		}
	}

	return t.active
}

// Counter returns the current value of the hysteresis counter.
func (t *Tracker) Counter() int {
	return t.counter
}

// Flag returns the hysteresis flag.
func (t *Tracker) Flag() bool {
	return t.flag
}

// Active returns true if the signal should be treated as non-standard. This
// is the hysteresis flag, or for 625 line PAL-I signals, a high digital gain
// or a horizontal non-standard status.
func (t *Tracker) Active() bool {
	return t.active
}

// Colourful returns true if the filtered chroma sum is above the threshold.
func (t *Tracker) Colourful() bool {
	return t.colourful
}

// Noise returns the filtered sync noise estimate.
func (t *Tracker) Noise() uint32 {
	return filter(t.noise)
}

// Config returns the register profile that should be applied, if any. A
// profile is returned only when it differs from the previously applied one.
//
// Config should be called once per poll. A decision is only made on the
// call after ConfigFirst calls and then every ConfigInterval calls after
// that. Other calls never return a profile.
func (t *Tracker) Config(force Force) (hardware.Profile, bool) {
	if t.configWait > 0 {
		t.configWait--
		return hardware.ProfileStandard, false
	}
	t.configWait = ConfigInterval

	var want bool
	switch force {
	case ForceFrozen:
		return hardware.ProfileStandard, false
	case ForceStandard:
		want = false
	default:
		want = t.active
	}

	if want == t.applied {
		return hardware.ProfileStandard, false
	}
	t.applied = want

	if want {
		return hardware.ProfileNonStandard, true
	}
	return hardware.ProfileStandard, true
}
