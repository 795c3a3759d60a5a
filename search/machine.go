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

package search

import (
	"fmt"

	"github.com/jetsetilly/tvafe/curated"
	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/hardware"
	"github.com/jetsetilly/tvafe/signal"
)

// UnsupportedFormat is returned when a format outside of the supported list
// is requested.
const UnsupportedFormat = "search: unsupported format (%v)"

// State of the Machine.
type State int

// List of valid State values.
const (
	Searching State = iota
	Locked
)

func (s State) String() string {
	if s == Locked {
		return "locked"
	}
	return "searching"
}

// NTSC-M/PAL-M disambiguation counter limits. The counter resets once it
// passes NTSCSwitchMax and the PAL-M probe is only used once it passes
// NTSCSwitchMid
const (
	NTSCSwitchMax = 20
	NTSCSwitchMid = 40
)

// NonStdShiftFactor multiplies the shift threshold while the signal is
// non-standard.
const NonStdShiftFactor = 10

// counters are clamped to this value
const maxCount = 0xffff

// Settings are the tunable values of the Machine. They are passed to every
// call to Step() so that changes take effect immediately.
type Settings struct {
	// polls to wait for the signal to settle before each candidate is
	// judged
	Settle int

	// number of candidates to try before falling back
	Retries int

	// number of inconsistent polls before a locked format is abandoned
	Shift int

	// format chosen by the fallback. format.Auto to choose from the status
	ForceFormat format.Format

	// do not abandon a locked format because of a colour system mismatch
	IgnorePALNTSC bool

	// do not abandon a locked format because of a subcarrier class mismatch
	IgnoreBurstClass bool

	// consider NTSC-50 on all ports
	NTSC50 bool
}

// DefaultSettings returns the default values for the Settings type.
func DefaultSettings() Settings {
	return Settings{
		Settle:  15,
		Retries: 5,
		Shift:   6,
	}
}

// Inputs are values from other parts of the decoder that are needed by the
// Machine.
type Inputs struct {
	// the signal is non-standard
	NonStd bool

	// the chroma loop has found the DTO to be far from nominal
	ChromaWorst bool

	// the port is an AV input rather than a tuner input. NTSC-50 is only
	// considered on AV inputs unless Settings.NTSC50 is set
	AVPort bool
}

// Action is returned by Step() and describes what the caller should do.
type Action struct {
	// format profile to apply. format.Auto if no profile is to be applied.
	// applying a format profile also means resetting all loop state
	Apply format.Format

	// chroma probe profile to apply, if Probe is true
	Probe        bool
	ProbeProfile hardware.Profile

	// the machine has locked during this step
	Locked bool

	// the lock was forced by the fallback
	Forced bool

	// the machine has abandoned a locked format during this step
	Shifted bool
}

// Machine is the format search state machine for one port.
type Machine struct {
	format format.Format
	manual format.Format
	state  State

	wait       int
	retries    int
	shift      int
	ntscSwitch int

	// locked by fallback
	forced bool

	// most recent chroma probe
	probe hardware.Profile
}

// NewMachine is the preferred method of initialisation for the Machine type.
// The initial candidate must be a valid format.
func NewMachine(initial format.Format) (*Machine, error) {
	if !initial.Valid() {
		return nil, curated.Errorf(UnsupportedFormat, initial)
	}
	m := &Machine{}
	m.setFormat(initial)
	return m, nil
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s %s (wait=%d retries=%d shift=%d)", m.format, m.state, m.wait, m.retries, m.shift)
}

// Format returns the current candidate or locked format.
func (m *Machine) Format() format.Format {
	return m.format
}

// LockedFormat returns the locked format or format.Auto if the machine is
// Searching.
func (m *Machine) LockedFormat() format.Format {
	if m.state != Locked {
		return format.Auto
	}
	return m.format
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Manual returns the manual override. format.Auto if there is no override.
func (m *Machine) Manual() format.Format {
	return m.manual
}

// Forced returns true if the lock was forced by the fallback.
func (m *Machine) Forced() bool {
	return m.forced
}

// Counters returns the wait, retry and shift counters.
func (m *Machine) Counters() (wait, retries, shift int) {
	return m.wait, m.retries, m.shift
}

// NTSCSwitch returns the NTSC-M/PAL-M disambiguation counter.
func (m *Machine) NTSCSwitch() int {
	return m.ntscSwitch
}

// SetManual sets the manual override. Use format.Auto to remove the override.
// The override takes effect on the next call to Step(). Returns true if the
// override has changed.
func (m *Machine) SetManual(f format.Format) (bool, error) {
	if f != format.Auto && !f.Valid() {
		return false, curated.Errorf(UnsupportedFormat, f)
	}
	if f == m.manual {
		return false, nil
	}
	m.manual = f
	return true, nil
}

// TryFormat makes f the current candidate. Returns true if the candidate has
// changed. A change of candidate resets the shift and disambiguation
// counters. The state is not changed.
func (m *Machine) TryFormat(f format.Format) (bool, error) {
	if !f.Valid() {
		return false, curated.Errorf(UnsupportedFormat, f)
	}
	if f == m.format {
		return false, nil
	}
	m.setFormat(f)
	return true, nil
}

func (m *Machine) setFormat(f format.Format) {
	m.format = f
	m.wait = 0
	m.shift = 0
	m.ntscSwitch = 0
	m.forced = false

	// the NTSC-M format profile sets the chroma DTO to the NTSC-M value
	m.probe = hardware.ProfileProbeNTSCM
}

// Lost returns the machine to Searching after the signal has been lost. The
// current candidate is unchanged.
func (m *Machine) Lost() {
	m.state = Searching
	m.wait = 0
	m.retries = 0
	m.shift = 0
	m.ntscSwitch = 0
	m.forced = false
}

func (m *Machine) lock(act *Action) {
	m.state = Locked
	m.retries = 0
	m.shift = 0
	act.Locked = true
}

// try the format and note it in the action if it has changed
func (m *Machine) try(f format.Format, act *Action) {
	if ok, _ := m.TryFormat(f); ok {
		act.Apply = f
	}
}

// Step advances the machine by one poll.
func (m *Machine) Step(st signal.Status, in Inputs, s Settings) Action {
	var act Action

	// the manual override short-circuits everything
	if m.manual != format.Auto && m.manual != m.format {
		m.try(m.manual, &act)
	}

	switch m.state {
	case Searching:
		m.searching(st, in, s, &act)
	case Locked:
		m.locked(st, in, s, &act)
	}

	return act
}

func (m *Machine) searching(st signal.Status, in Inputs, s Settings, act *Action) {
	if st.NoSignal {
		m.wait = 0
		return
	}

	m.wait = min(m.wait+1, maxCount)

	if m.wait <= s.Settle {
		return
	}
	m.wait = 0

	if m.manual != format.Auto {
		m.lock(act)
		return
	}

	m.retries = min(m.retries+1, maxCount)
	if m.retries >= s.Retries {
		m.fallback(st, s, act)
		return
	}

	d := Decide(m.format, st, s.NTSC50 || in.AVPort)
	switch d.Outcome {
	case Confirm:
		m.lock(act)
	case Try:
		m.try(d.Next, act)
	case Fallback:
		m.fallback(st, s, act)
	}
}

func (m *Machine) fallback(st signal.Status, s Settings, act *Action) {
	m.try(ChooseFallback(st, s.ForceFormat), act)
	m.lock(act)
	m.forced = true
	act.Forced = true
}

func (m *Machine) locked(st signal.Status, in Inputs, s Settings, act *Action) {
	m.retries = 0

	if !m.shifting(st, in, s, act) {
		if m.shift > 0 {
			m.shift--
		}
		return
	}

	m.shift = min(m.shift+1, maxCount)

	limit := s.Shift
	if in.NonStd {
		limit *= NonStdShiftFactor
	}
	if m.shift < limit {
		return
	}

	m.try(format.PALI, act)
	m.Lost()
	act.Shifted = true
}

// shifting returns true if the status is inconsistent with the locked format.
func (m *Machine) shifting(st signal.Status, in Inputs, s Settings, act *Action) bool {
	if m.manual != format.Auto {
		return false
	}

	if st.NoSignal {
		return true
	}

	if st.Line625 != m.format.Lines625() {
		return true
	}

	// without a burst there is nothing more to check
	if st.NoColorBurst && m.format != format.SECAM {
		return false
	}

	if m.format == format.PALI && (in.ChromaWorst || st.HNonStd) {
		return false
	}

	if m.format == format.NTSCM && !st.ChromaLock {
		m.probeNTSC(act)
	}

	if m.forced || s.IgnorePALNTSC {
		return false
	}

	var mismatch bool
	switch {
	case m.format.PAL():
		mismatch = !st.PAL
	case m.format == format.SECAM:
		mismatch = !(st.SECAM && st.SECAMDetected)
	default:
		mismatch = st.PAL
	}

	if mismatch || s.IgnoreBurstClass {
		return mismatch
	}

	switch m.format.Burst() {
	case format.Burst358:
		return !st.Fsc358 && st.Fsc443
	case format.Burst443:
		return st.Fsc358 && !st.Fsc443
	}

	return false
}

// probeNTSC alternates the chroma DTO between the NTSC-M and PAL-M values so
// that chroma lock can be tested under both.
func (m *Machine) probeNTSC(act *Action) {
	prev := m.ntscSwitch
	m.ntscSwitch++
	if prev >= NTSCSwitchMax {
		m.ntscSwitch = 0
	}

	want := hardware.ProfileProbeNTSCM
	if m.ntscSwitch > NTSCSwitchMid {
		want = hardware.ProfileProbePALM
	}

	if want != m.probe {
		m.probe = want
		act.Probe = true
		act.ProbeProfile = want
	}
}
