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

package search_test

import (
	"testing"

	"github.com/jetsetilly/tvafe/curated"
	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/hardware"
	"github.com/jetsetilly/tvafe/search"
	"github.com/jetsetilly/tvafe/signal"
	"github.com/jetsetilly/tvafe/test"
)

var (
	palCN = signal.Status{HLock: true, VLock: true, Line625: true, Fsc358: true, PAL: true}
	palI  = signal.Status{HLock: true, VLock: true, Line625: true, Fsc443: true, PAL: true}
	ntscM = signal.Status{HLock: true, VLock: true, Fsc358: true, ChromaLock: true}
)

// run steps the machine until it locks or the limit is reached. returns the
// number of steps taken
func run(m *search.Machine, st signal.Status, in search.Inputs, s search.Settings, limit int) int {
	for i := 1; i <= limit; i++ {
		if act := m.Step(st, in, s); act.Locked {
			return i
		}
	}
	return limit + 1
}

func TestNewMachine(t *testing.T) {
	_, err := search.NewMachine(format.Auto)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, search.UnsupportedFormat))

	m, err := search.NewMachine(format.PALI)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, m.Format(), format.PALI)
	test.ExpectEquality(t, m.State(), search.Searching)
	test.ExpectEquality(t, m.LockedFormat(), format.Auto)
}

func TestAcquirePALCN(t *testing.T) {
	s := search.DefaultSettings()
	m, _ := search.NewMachine(format.PALI)

	var applied []format.Format
	var locked int
	for i := 1; i <= 100; i++ {
		act := m.Step(palCN, search.Inputs{}, s)
		if act.Apply != format.Auto {
			applied = append(applied, act.Apply)
		}
		if act.Locked {
			locked = i
			break
		}
	}

	// each candidate is given the full settle period
	test.ExpectEquality(t, locked, 2*(s.Settle+1))
	test.ExpectEquality(t, m.State(), search.Locked)
	test.ExpectEquality(t, m.LockedFormat(), format.PALCN)
	test.ExpectFailure(t, m.Forced())
	test.DemandEquality(t, len(applied), 1)
	test.ExpectEquality(t, applied[0], format.PALCN)
}

func TestNoSignalHoldsSearch(t *testing.T) {
	s := search.DefaultSettings()
	m, _ := search.NewMachine(format.PALI)

	for range 100 {
		act := m.Step(signal.Status{NoSignal: true}, search.Inputs{}, s)
		test.ExpectFailure(t, act.Locked)
	}
	test.ExpectEquality(t, m.State(), search.Searching)
	wait, retries, _ := m.Counters()
	test.ExpectEquality(t, wait, 0)
	test.ExpectEquality(t, retries, 0)

	// signal arriving mid-way through a settle period starts the count again
	for range 10 {
		m.Step(palI, search.Inputs{}, s)
	}
	m.Step(signal.Status{NoSignal: true}, search.Inputs{}, s)
	test.ExpectEquality(t, run(m, palI, search.Inputs{}, s, 100), s.Settle+1)
	test.ExpectEquality(t, m.LockedFormat(), format.PALI)
}

func TestFallback(t *testing.T) {
	s := search.DefaultSettings()
	m, _ := search.NewMachine(format.PALI)

	// a 525 line signal with no recognisable subcarrier
	st := signal.Status{HLock: true, VLock: true}

	bound := s.Retries * (s.Settle + 1)
	test.ExpectEquality(t, run(m, st, search.Inputs{}, s, 1000), bound)
	test.ExpectEquality(t, m.LockedFormat(), format.NTSCM)
	test.ExpectSuccess(t, m.Forced())

	// a forced lock is not abandoned because of a colour system mismatch
	st.PAL = true
	for range 100 {
		m.Step(st, search.Inputs{}, s)
	}
	test.ExpectEquality(t, m.LockedFormat(), format.NTSCM)
}

func TestForceFormat(t *testing.T) {
	s := search.DefaultSettings()
	s.ForceFormat = format.PAL60
	m, _ := search.NewMachine(format.PALI)

	run(m, signal.Status{HLock: true, VLock: true}, search.Inputs{}, s, 1000)
	test.ExpectEquality(t, m.LockedFormat(), format.PAL60)
	test.ExpectSuccess(t, m.Forced())
}

func TestShiftFromNTSCM(t *testing.T) {
	s := search.DefaultSettings()
	m, _ := search.NewMachine(format.NTSCM)

	test.ExpectEquality(t, run(m, ntscM, search.Inputs{}, s, 100), s.Settle+1)
	test.DemandEquality(t, m.LockedFormat(), format.NTSCM)

	// a consistent signal does not disturb the lock
	for range 100 {
		m.Step(ntscM, search.Inputs{}, s)
	}
	test.DemandEquality(t, m.LockedFormat(), format.NTSCM)

	st := ntscM
	st.Line625 = true

	var shifted int
	for i := 1; i <= 10; i++ {
		act := m.Step(st, search.Inputs{}, s)
		if act.Shifted {
			shifted = i
			test.ExpectEquality(t, act.Apply, format.PALI)
			break
		}
	}
	test.ExpectEquality(t, shifted, s.Shift)
	test.ExpectEquality(t, m.State(), search.Searching)
	test.ExpectEquality(t, m.Format(), format.PALI)

	// and re-acquire a 625 line format
	run(m, palI, search.Inputs{}, s, 100)
	test.ExpectEquality(t, m.LockedFormat(), format.PALI)
}

func TestShiftDebounce(t *testing.T) {
	s := search.DefaultSettings()
	m, _ := search.NewMachine(format.NTSCM)
	run(m, ntscM, search.Inputs{}, s, 100)

	bad := ntscM
	bad.Line625 = true

	// alternating good and bad polls never reach the threshold
	for i := range 100 {
		if i%2 == 0 {
			m.Step(bad, search.Inputs{}, s)
		} else {
			m.Step(ntscM, search.Inputs{}, s)
		}
	}
	test.ExpectEquality(t, m.LockedFormat(), format.NTSCM)
	_, _, shift := m.Counters()
	test.ExpectEquality(t, shift, 0)
}

func TestShiftNonStandard(t *testing.T) {
	s := search.DefaultSettings()
	m, _ := search.NewMachine(format.NTSCM)
	run(m, ntscM, search.Inputs{}, s, 100)

	bad := ntscM
	bad.Line625 = true

	in := search.Inputs{NonStd: true}
	var shifted int
	for i := 1; i <= 100; i++ {
		if m.Step(bad, in, s).Shifted {
			shifted = i
			break
		}
	}
	test.ExpectEquality(t, shifted, s.Shift*search.NonStdShiftFactor)
}

func TestSignalLossWhileLocked(t *testing.T) {
	s := search.DefaultSettings()
	m, _ := search.NewMachine(format.PALI)
	run(m, palI, search.Inputs{}, s, 100)
	test.DemandEquality(t, m.LockedFormat(), format.PALI)

	for range s.Shift {
		m.Step(signal.Status{NoSignal: true}, search.Inputs{}, s)
	}
	test.ExpectEquality(t, m.State(), search.Searching)
}

func TestPALIHolds(t *testing.T) {
	s := search.DefaultSettings()
	m, _ := search.NewMachine(format.PALI)
	run(m, palI, search.Inputs{}, s, 100)

	// a 3.58MHz burst would normally cause a shift but not while the chroma
	// loop is at its limit
	st := palI
	st.Fsc443 = false
	st.Fsc358 = true
	for range 100 {
		m.Step(st, search.Inputs{ChromaWorst: true}, s)
	}
	test.ExpectEquality(t, m.LockedFormat(), format.PALI)

	// or while ignoring the burst class
	s.IgnoreBurstClass = true
	for range 100 {
		m.Step(st, search.Inputs{}, s)
	}
	test.ExpectEquality(t, m.LockedFormat(), format.PALI)

	s.IgnoreBurstClass = false
	var shifted bool
	for range 100 {
		if m.Step(st, search.Inputs{}, s).Shifted {
			shifted = true
			break
		}
	}
	test.ExpectSuccess(t, shifted)
	test.ExpectEquality(t, m.State(), search.Searching)
}

func TestNTSCProbe(t *testing.T) {
	s := search.DefaultSettings()
	m, _ := search.NewMachine(format.NTSCM)
	run(m, ntscM, search.Inputs{}, s, 100)

	// without chroma lock the disambiguation counter cycles but never reaches
	// the point where the PAL-M probe would be used
	st := ntscM
	st.ChromaLock = false
	for i := range 1000 {
		act := m.Step(st, search.Inputs{}, s)
		test.ExpectFailure(t, act.Probe, i)
		test.ExpectInequality(t, act.ProbeProfile, hardware.ProfileProbePALM, i)
		test.ExpectSuccess(t, m.NTSCSwitch() <= search.NTSCSwitchMax, i)
	}
	test.ExpectEquality(t, m.LockedFormat(), format.NTSCM)
}

func TestManual(t *testing.T) {
	s := search.DefaultSettings()
	m, _ := search.NewMachine(format.PALI)

	ok, err := m.SetManual(format.PALM)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ok)

	// second call is a no-op
	ok, err = m.SetManual(format.PALM)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, ok)

	act := m.Step(palI, search.Inputs{}, s)
	test.ExpectEquality(t, act.Apply, format.PALM)
	act = m.Step(palI, search.Inputs{}, s)
	test.ExpectEquality(t, act.Apply, format.Auto)

	// the status is ignored and the manual format is locked once settled
	test.ExpectEquality(t, run(m, palI, search.Inputs{}, s, 100), s.Settle-1)
	test.ExpectEquality(t, m.LockedFormat(), format.PALM)

	// the locked manual format is never abandoned
	for range 100 {
		m.Step(palI, search.Inputs{}, s)
	}
	test.ExpectEquality(t, m.LockedFormat(), format.PALM)

	// re-targetting while locked is immediate
	_, _ = m.SetManual(format.SECAM)
	act = m.Step(palI, search.Inputs{}, s)
	test.ExpectEquality(t, act.Apply, format.SECAM)
	test.ExpectEquality(t, m.LockedFormat(), format.SECAM)

	// returning to auto
	_, _ = m.SetManual(format.Auto)
	test.ExpectEquality(t, m.Manual(), format.Auto)

	_, err = m.SetManual(format.Format(100))
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, m.Manual(), format.Auto)
}

func TestTryFormat(t *testing.T) {
	m, _ := search.NewMachine(format.PALI)

	ok, err := m.TryFormat(format.PALI)
	test.ExpectSuccess(t, err)
	test.ExpectFailure(t, ok)

	ok, err = m.TryFormat(format.SECAM)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, m.Format(), format.SECAM)

	_, err = m.TryFormat(format.Format(-1))
	test.ExpectSuccess(t, curated.Is(err, search.UnsupportedFormat))
	test.ExpectEquality(t, m.Format(), format.SECAM)
}
