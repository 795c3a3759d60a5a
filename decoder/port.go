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
	"sync"

	"github.com/google/uuid"

	"github.com/jetsetilly/tvafe/curated"
	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/hardware"
	"github.com/jetsetilly/tvafe/logger"
	"github.com/jetsetilly/tvafe/nonstd"
	"github.com/jetsetilly/tvafe/preferences"
	"github.com/jetsetilly/tvafe/search"
	"github.com/jetsetilly/tvafe/signal"
	"github.com/jetsetilly/tvafe/tuning"
)

// Sentinal error patterns.
const (
	PortClosed     = "decoder: port %v is closed"
	RegisterAccess = "decoder: register access: %v"
)

// comb status bits that indicate a 3D comb filter error
const comb3DErrorMask = 0x1ffff

// InitialFormat is the first candidate format of a newly opened port and of
// a port that has lost its signal.
const InitialFormat = format.PALI

// Port is the processing context for a single input port.
type Port struct {
	crit sync.Mutex

	id      PortID
	session uuid.UUID
	tag     string

	hw    hardware.Collaborator
	prefs *preferences.Preferences

	closed bool

	agg     *signal.Aggregator
	nonstd  *nonstd.Tracker
	search  *search.Machine
	gain    *tuning.Gain
	chroma  *tuning.Chroma
	htiming *tuning.HTiming
	vtiming *tuning.VTiming
	aspect  aspectVote

	status signal.Status

	// signal loss reinitialisation has been performed
	lost bool

	// a horizontal or vertical lock has been seen since the most recent
	// format change
	latched bool

	// number of calls to Field() and Tick()
	fields int
	ticks  int
}

// NewPort is the preferred method of initialisation for the Port type. The
// initial format profile is applied to the hardware.
func NewPort(id PortID, hw hardware.Collaborator, prefs *preferences.Preferences) (*Port, error) {
	m, err := search.NewMachine(InitialFormat)
	if err != nil {
		return nil, err
	}

	gen := prefs.HardwareGeneration()

	p := &Port{
		id:      id,
		session: uuid.New(),
		hw:      hw,
		prefs:   prefs,
		agg:     signal.NewAggregator(),
		nonstd:  nonstd.NewTracker(),
		search:  m,
		gain:    tuning.NewGain(),
		chroma:  tuning.NewChroma(gen),
		htiming: tuning.NewHTiming(gen),
		vtiming: tuning.NewVTiming(),

		// the initial status is no signal
		lost: true,
	}
	p.tag = fmt.Sprintf("tvafe: %s %s", id, p.session.String()[:8])
	p.status = p.agg.Status()

	if err := p.applyFormat(InitialFormat); err != nil {
		return nil, err
	}
	if err := p.write(hardware.ParamPGA, tuning.PGADefault); err != nil {
		return nil, err
	}

	logger.Logf(logger.Allow, "tvafe", "opened %s (session %s)", id, p.session)

	return p, nil
}

func (p *Port) String() string {
	p.crit.Lock()
	defer p.crit.Unlock()
	return fmt.Sprintf("%s %s", p.id, p.search)
}

// AllowLogging implements the logger.Permission interface. Detailed logging
// of the adaptive loops is controlled by a preference.
func (p *Port) AllowLogging() bool {
	return p.prefs.DebugLoops.Get().(bool)
}

// ID returns the port identifier.
func (p *Port) ID() PortID {
	return p.id
}

// Session returns the session identifier of the port. A new session is
// created every time a port is opened.
func (p *Port) Session() uuid.UUID {
	return p.session
}

// Close the port. All subsequent calls to Field(), Tick() and
// SetManualFormat() will fail.
func (p *Port) Close() {
	p.crit.Lock()
	defer p.crit.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	logger.Logf(logger.Allow, "tvafe", "closed %s (session %s)", p.id, p.session)
}

func (p *Port) read(param hardware.Param) (uint32, error) {
	v, err := p.hw.Read(param)
	if err != nil {
		return 0, curated.Errorf(RegisterAccess, err)
	}
	return v, nil
}

func (p *Port) write(param hardware.Param, v uint32) error {
	if err := p.hw.Write(param, v); err != nil {
		return curated.Errorf(RegisterAccess, err)
	}
	return nil
}

func (p *Port) applyProfile(prof hardware.Profile) error {
	if err := p.hw.ApplyProfile(prof); err != nil {
		return curated.Errorf(RegisterAccess, err)
	}
	logger.Logf(p, p.tag, "profile: %s", prof)
	return nil
}

// apply the format profile and reset all state that depends on the format
func (p *Port) applyFormat(f format.Format) error {
	if err := p.hw.ApplyFormatProfile(f); err != nil {
		return curated.Errorf(RegisterAccess, err)
	}
	p.resetLoops()
	p.nonstd.FormatApplied()
	p.latched = false
	return nil
}

// the non-standard tracker is not reset with the other loops. it measures the
// signal and not the response of the decoder to the format
func (p *Port) resetLoops() {
	p.gain.Reset()
	p.chroma.Reset()
	p.htiming.Reset()
	p.vtiming.Reset()
	p.aspect.reset()
}

// Field should be called once per video field. The status is polled, the
// format search advanced and, if a format is locked, the adaptive loops are
// run.
func (p *Port) Field() error {
	p.crit.Lock()
	defer p.crit.Unlock()

	if p.closed {
		return curated.Errorf(PortClosed, p.id)
	}
	p.fields++

	if err := p.poll(); err != nil {
		return err
	}

	if p.search.State() != search.Locked {
		return nil
	}

	return p.loops()
}

// Tick should be called on a timer. It polls the status and advances the
// format search only while no format is locked.
func (p *Port) Tick() error {
	p.crit.Lock()
	defer p.crit.Unlock()

	if p.closed {
		return curated.Errorf(PortClosed, p.id)
	}

	if p.search.State() == search.Locked {
		return nil
	}
	p.ticks++

	return p.poll()
}

// poll the status and advance the detector and the format search. the
// aggregator always runs first
func (p *Port) poll() error {
	smp, err := p.hw.ReadStatus()
	if err != nil {
		return curated.Errorf(RegisterAccess, err)
	}
	p.status = p.agg.Update(smp)

	if p.status.NoSignal {
		if !p.lost {
			p.lost = true
			if err := p.signalLost(); err != nil {
				return err
			}
		}
	} else if p.lost {
		p.lost = false
		logger.Logf(logger.Allow, p.tag, "signal present")
	}

	// any horizontal or vertical lock since the most recent format change
	// latches the lock status
	if !p.status.NoSignal && (p.status.HLock || p.status.VLock) {
		p.latched = true
	}

	if err := p.detect(); err != nil {
		return err
	}

	return p.step()
}

// reinitialise after the loss of signal. the gain is returned to the default.
// the chroma DTO is returned to the default only if the candidate is PAL-I,
// any other candidate keeps the DTO set by its format profile
func (p *Port) signalLost() error {
	logger.Logf(logger.Allow, p.tag, "no signal")

	if p.search.Format() == format.PALI {
		if err := p.write(hardware.ParamChromaDTO, format.DTOPALI); err != nil {
			return err
		}
	}
	if err := p.write(hardware.ParamPGA, tuning.PGADefault); err != nil {
		return err
	}
	p.resetLoops()
	p.search.Lost()
	p.latched = false

	return nil
}

func (p *Port) detect() error {
	var m nonstd.Measurement
	var err error

	m.Status = p.status
	m.Format = p.search.Format()

	if m.DigitalGain, err = p.read(hardware.ParamDigitalGain); err != nil {
		return err
	}
	if m.ChromaSum, err = p.read(hardware.ParamChromaSum); err != nil {
		return err
	}
	if m.SyncNoise, err = p.read(hardware.ParamSyncNoise); err != nil {
		return err
	}

	prev := p.nonstd.Active()
	if p.nonstd.Update(m) != prev {
		logger.Logf(logger.Allow, p.tag, "non-standard signal: %v", !prev)
	}

	// the register profile is only chosen while a format is locked
	if p.search.State() != search.Locked {
		return nil
	}

	if prof, ok := p.nonstd.Config(p.prefs.Force()); ok {
		return p.applyProfile(prof)
	}

	return nil
}

func (p *Port) step() error {
	in := search.Inputs{
		NonStd:      p.nonstd.Active(),
		ChromaWorst: p.chroma.Worst(),
		AVPort:      !p.id.IsTuner(),
	}

	act := p.search.Step(p.status, in, p.prefs.Settings())

	if act.Shifted {
		logger.Logf(logger.Allow, p.tag, "lost lock")
	}

	if act.Apply != format.Auto {
		logger.Logf(logger.Allow, p.tag, "trying %s", act.Apply)
		if err := p.applyFormat(act.Apply); err != nil {
			return err
		}
	}

	if act.Probe {
		if err := p.applyProfile(act.ProbeProfile); err != nil {
			return err
		}
	}

	if act.Locked {
		if act.Forced {
			logger.Logf(logger.Allow, p.tag, "forced lock on %s", p.search.Format())
		} else {
			logger.Logf(logger.Allow, p.tag, "locked on %s", p.search.Format())
		}
	}

	return nil
}

// the adaptive loops. only run while a format is locked
func (p *Port) loops() error {
	f := p.search.Format()

	if p.prefs.Comb.Get().(bool) {
		v, err := p.read(hardware.ParamComb3DStatus)
		if err != nil {
			return err
		}
		if v&comb3DErrorMask != 0 {
			if err := p.applyProfile(hardware.ProfileComb3DReset); err != nil {
				return err
			}
		}
	}

	if p.prefs.Gain.Get().(bool) && !p.id.IsTuner() {
		if err := p.loopGain(); err != nil {
			return err
		}
	}

	if f == format.PALI || f == format.NTSCM {
		hcnt, err := p.read(hardware.ParamHCount)
		if err != nil {
			return err
		}

		if f == format.PALI && p.prefs.Chroma.Get().(bool) {
			if err := p.loopChroma(hcnt); err != nil {
				return err
			}
		}

		if p.prefs.HTiming.Get().(bool) {
			if err := p.loopHTiming(f, hcnt); err != nil {
				return err
			}
		}

		if p.prefs.VTiming.Get().(bool) {
			lines, err := p.read(hardware.ParamVLines)
			if err != nil {
				return err
			}
			if p.vtiming.Update(lines) {
				logger.Logf(p, p.tag, "%s", p.vtiming)
			}
		}
	}

	wss, err := p.read(hardware.ParamWSS)
	if err != nil {
		return err
	}
	p.aspect.update(AspectFromWSS(wss))

	return nil
}

func (p *Port) loopGain() error {
	dgain, err := p.read(hardware.ParamDigitalGain)
	if err != nil {
		return err
	}
	pga, err := p.read(hardware.ParamPGA)
	if err != nil {
		return err
	}
	if v, ok := p.gain.Update(dgain, pga); ok {
		logger.Logf(p, p.tag, "pga: %#02x -> %#02x (dgain %#03x)", pga, v, dgain)
		return p.write(hardware.ParamPGA, v)
	}
	return nil
}

func (p *Port) loopChroma(hcnt uint32) error {
	dto, err := p.read(hardware.ParamChromaDTO)
	if err != nil {
		return err
	}
	p.chroma.SetThreshold(uint32(p.prefs.ChromaThreshold.Get().(int)))
	if v, ok := p.chroma.Update(hcnt, dto); ok {
		logger.Logf(p, p.tag, "cdto: %#08x -> %#08x", dto, v)
		return p.write(hardware.ParamChromaDTO, v)
	}
	return nil
}

func (p *Port) loopHTiming(f format.Format, hcnt uint32) error {
	if !p.htiming.Update(f, hcnt) {
		return nil
	}
	logger.Logf(p, p.tag, "%s", p.htiming)

	// the register adjustments are only made for PAL-I. for NTSC-M the level
	// only affects the crop window
	if f != format.PALI {
		return nil
	}

	r := p.htiming.Registers()
	if err := p.applyProfile(r.Profile); err != nil {
		return err
	}
	if err := p.write(hardware.ParamHActiveStart, r.HActiveStart); err != nil {
		return err
	}
	if err := p.write(hardware.ParamACDHWindow, r.ACDHWindow); err != nil {
		return err
	}
	if err := p.write(hardware.ParamCombLevel, r.CombLevel); err != nil {
		return err
	}
	var comb2D uint32
	if r.Comb2D {
		comb2D = 1
	}
	return p.write(hardware.ParamComb2D, comb2D)
}

// SetManualFormat sets the manual format override. Use format.Auto to return
// to automatic detection. A format that differs from the current format is
// applied immediately.
func (p *Port) SetManualFormat(f format.Format) error {
	p.crit.Lock()
	defer p.crit.Unlock()

	if p.closed {
		return curated.Errorf(PortClosed, p.id)
	}

	changed, err := p.search.SetManual(f)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if f == format.Auto {
		logger.Logf(logger.Allow, p.tag, "automatic format detection")
		return nil
	}

	logger.Logf(logger.Allow, p.tag, "manual format %s", f)
	if ok, _ := p.search.TryFormat(f); ok {
		return p.applyFormat(f)
	}

	return nil
}

// ManualFormat returns the manual format override or format.Auto.
func (p *Port) ManualFormat() format.Format {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.search.Manual()
}

// LockedFormat returns the locked format or format.Auto if no format is
// locked.
func (p *Port) LockedFormat() format.Format {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.search.LockedFormat()
}

// LockStatus returns the lock status of the signal. Once the signal has shown
// a horizontal or vertical lock the status is reported as locked, until a
// different format is tried or the signal is lost.
func (p *Port) LockStatus() signal.LockStatus {
	p.crit.Lock()
	defer p.crit.Unlock()
	if p.latched {
		return signal.HVLocked
	}
	return p.status.Lock()
}

// IsSignalPresent returns true if the aggregated status says there is a
// signal.
func (p *Port) IsSignalPresent() bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	return !p.status.NoSignal
}

// HasFormatChanged returns true while the port is searching for a format.
func (p *Port) HasFormatChanged() bool {
	p.crit.Lock()
	defer p.crit.Unlock()
	return p.search.State() != search.Locked
}

// Properties returns the properties of the decoded video.
func (p *Port) Properties() Properties {
	p.crit.Lock()
	defer p.crit.Unlock()
	return properties(p.htiming, p.vtiming, p.aspect.current)
}

// Info is a snapshot of the state of a port.
type Info struct {
	ID      PortID
	Session uuid.UUID

	Format format.Format
	Manual format.Format
	State  search.State
	Forced bool

	Wait    int
	Retries int
	Shift   int

	Status signal.Status
	Lock   signal.LockStatus

	NonStd        bool
	NonStdCounter int

	Gain    string
	Chroma  string
	HTiming string
	VTiming string

	Properties Properties

	Fields int
	Ticks  int
}

// Info returns a snapshot of the current state of the port.
func (p *Port) Info() Info {
	p.crit.Lock()
	defer p.crit.Unlock()

	inf := Info{
		ID:            p.id,
		Session:       p.session,
		Format:        p.search.Format(),
		Manual:        p.search.Manual(),
		State:         p.search.State(),
		Forced:        p.search.Forced(),
		Status:        p.status,
		Lock:          p.status.Lock(),
		NonStd:        p.nonstd.Active(),
		NonStdCounter: p.nonstd.Counter(),
		Gain:          p.gain.String(),
		Chroma:        p.chroma.String(),
		HTiming:       p.htiming.String(),
		VTiming:       p.vtiming.String(),
		Properties:    properties(p.htiming, p.vtiming, p.aspect.current),
		Fields:        p.fields,
		Ticks:         p.ticks,
	}
	inf.Wait, inf.Retries, inf.Shift = p.search.Counters()
	if p.latched {
		inf.Lock = signal.HVLocked
	}

	return inf
}
