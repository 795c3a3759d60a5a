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

package nonstd_test

import (
	"testing"

	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/hardware"
	"github.com/jetsetilly/tvafe/nonstd"
	"github.com/jetsetilly/tvafe/signal"
	"github.com/jetsetilly/tvafe/test"
)

func bad() nonstd.Measurement {
	return nonstd.Measurement{
		Status: signal.Status{HNonStd: true},
		Format: format.NTSCM,
	}
}

func good() nonstd.Measurement {
	return nonstd.Measurement{
		Format: format.NTSCM,
	}
}

func TestHysteresis(t *testing.T) {
	tr := nonstd.NewTracker()

	for i := 1; i < nonstd.OnThreshold; i++ {
		tr.Update(bad())
		test.ExpectFailure(t, tr.Flag(), i)
	}
	tr.Update(bad())
	test.ExpectSuccess(t, tr.Flag())
	test.ExpectEquality(t, tr.Counter(), nonstd.OnThreshold)

	// a single good poll does not turn the flag off
	tr.Update(good())
	test.ExpectSuccess(t, tr.Flag())

	// the flag stays on until the counter reaches the low threshold
	for tr.Counter() > nonstd.OffThreshold+1 {
		tr.Update(good())
		test.ExpectSuccess(t, tr.Flag(), tr.Counter())
	}
	tr.Update(good())
	test.ExpectEquality(t, tr.Counter(), nonstd.OffThreshold)
	test.ExpectFailure(t, tr.Flag())

	// and back up again needs the full climb
	for i := nonstd.OffThreshold + 1; i < nonstd.OnThreshold; i++ {
		tr.Update(bad())
		test.ExpectFailure(t, tr.Flag(), i)
	}
	tr.Update(bad())
	test.ExpectSuccess(t, tr.Flag())
}

func TestCounterLimits(t *testing.T) {
	tr := nonstd.NewTracker()
	for range nonstd.CounterMax * 2 {
		tr.Update(bad())
	}
	test.ExpectEquality(t, tr.Counter(), nonstd.CounterMax)

	for range nonstd.CounterMax * 2 {
		tr.Update(good())
	}
	test.ExpectEquality(t, tr.Counter(), 0)
}

func TestVerticalNeedsColour(t *testing.T) {
	tr := nonstd.NewTracker()
	m := nonstd.Measurement{
		Status: signal.Status{VNonStd: true},
		Format: format.NTSCM,
	}

	// vertical non-standard without colour neither increments nor
	// decrements the counter
	for range 20 {
		tr.Update(m)
	}
	test.ExpectEquality(t, tr.Counter(), 0)
	test.ExpectFailure(t, tr.Colourful())

	m.ChromaSum = nonstd.ColourfulThreshold
	tr.Update(m)
	test.ExpectFailure(t, tr.Colourful())
	tr.Update(m)
	test.ExpectFailure(t, tr.Colourful())
	tr.Update(m)
	test.ExpectSuccess(t, tr.Colourful())
	test.ExpectEquality(t, tr.Counter(), 1)
}

func TestActivePALI(t *testing.T) {
	tr := nonstd.NewTracker()
	m := nonstd.Measurement{
		Status:      signal.Status{Line625: true},
		Format:      format.PALI,
		DigitalGain: nonstd.DigitalGainThreshold,
	}
	test.ExpectSuccess(t, tr.Update(m))
	test.ExpectFailure(t, tr.Flag())

	m.Format = format.SECAM
	test.ExpectFailure(t, tr.Update(m))
}

func TestNoise(t *testing.T) {
	tr := nonstd.NewTracker()
	for _, n := range []uint32{4, 8, 12} {
		m := good()
		m.SyncNoise = n
		tr.Update(m)
	}
	test.ExpectEquality(t, tr.Noise(), 8)
}

// config calls Config() until a decision is made and returns the result
func config(tr *nonstd.Tracker, force nonstd.Force, wait int) (hardware.Profile, bool) {
	for range wait {
		tr.Config(force)
	}
	return tr.Config(force)
}

func TestConfig(t *testing.T) {
	tr := nonstd.NewTracker()

	for range nonstd.OnThreshold {
		tr.Update(bad())
	}
	test.DemandSuccess(t, tr.Active())

	// no decision until the first check
	for range nonstd.ConfigFirst {
		_, ok := tr.Config(nonstd.ForceAuto)
		test.ExpectFailure(t, ok)
	}
	p, ok := tr.Config(nonstd.ForceAuto)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, p, hardware.ProfileNonStandard)

	// no change, no swap
	_, ok = config(tr, nonstd.ForceAuto, nonstd.ConfigInterval)
	test.ExpectFailure(t, ok)

	// frozen never swaps
	_, ok = config(tr, nonstd.ForceFrozen, nonstd.ConfigInterval)
	test.ExpectFailure(t, ok)

	// standard pins the standard profile
	p, ok = config(tr, nonstd.ForceStandard, nonstd.ConfigInterval)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, p, hardware.ProfileStandard)
	_, ok = config(tr, nonstd.ForceStandard, nonstd.ConfigInterval)
	test.ExpectFailure(t, ok)
}

func TestConfigCadence(t *testing.T) {
	tr := nonstd.NewTracker()

	// nothing to do while standard
	_, ok := config(tr, nonstd.ForceAuto, nonstd.ConfigFirst)
	test.ExpectFailure(t, ok)

	for range nonstd.OnThreshold {
		tr.Update(bad())
	}
	test.DemandSuccess(t, tr.Active())

	// the signal became non-standard just after a decision. the swap waits
	// for the next one
	for range nonstd.ConfigInterval {
		_, ok = tr.Config(nonstd.ForceAuto)
		test.DemandFailure(t, ok)
	}
	p, ok := tr.Config(nonstd.ForceAuto)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, p, hardware.ProfileNonStandard)
}

func TestFormatApplied(t *testing.T) {
	tr := nonstd.NewTracker()
	for range nonstd.CounterMax {
		tr.Update(bad())
	}
	_, ok := config(tr, nonstd.ForceAuto, nonstd.ConfigFirst)
	test.DemandSuccess(t, ok)

	// a new format restores the standard profile but the signal is still
	// non-standard
	tr.FormatApplied()
	test.ExpectEquality(t, tr.Counter(), nonstd.CounterMax)
	test.ExpectSuccess(t, tr.Flag())
	test.ExpectSuccess(t, tr.Active())

	p, ok := config(tr, nonstd.ForceAuto, nonstd.ConfigInterval)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, p, hardware.ProfileNonStandard)
}

func TestParseForce(t *testing.T) {
	f, err := nonstd.ParseForce("frozen")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, f, nonstd.ForceFrozen)
	_, err = nonstd.ParseForce("x")
	test.ExpectFailure(t, err)
}
