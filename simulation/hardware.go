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

package simulation

import (
	"fmt"

	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/hardware"
	"github.com/jetsetilly/tvafe/logger"
	"github.com/jetsetilly/tvafe/random"
	"github.com/jetsetilly/tvafe/signal"
	"github.com/jetsetilly/tvafe/tuning"
)

// ChromaTolerance is the largest difference between the chroma DTO register
// and the DTO of the incoming standard for which chroma lock is reported.
const ChromaTolerance = 0x4000

// burst accumulator values for a clean signal
const (
	accStrong = 0xc0
	accWeak   = 0x08
)

// Hardware is a simulated decoder driven by a Scenario. It implements the
// hardware.Collaborator interface.
type Hardware struct {
	scenario *Scenario

	// position in the scenario
	seg   int
	field int
	read  int

	regs    map[hardware.Param]uint32
	applied format.Format

	// every profile applied, in order
	profiles []hardware.Profile

	// number of format profiles applied
	formatProfiles int

	// if not nil, returned by the next collaborator call
	fault error

	// measurement jitter
	rnd *random.Random
}

// NewHardware is the preferred method of initialisation for the Hardware
// type.
func NewHardware(s *Scenario) *Hardware {
	h := &Hardware{
		scenario: s,
		regs:     make(map[hardware.Param]uint32),
	}
	h.regs[hardware.ParamPGA] = tuning.PGADefault
	h.rnd = random.NewRandom(h)
	h.rnd.ZeroSeed = !s.Randomise
	return h
}

func (h *Hardware) String() string {
	return fmt.Sprintf("segment %d field %d: %s (applied %s)", h.seg, h.field, h.segment().describe(), h.applied)
}

func (seg *Segment) describe() string {
	if seg.NoSignal {
		return "no signal"
	}
	if seg.Sample != nil {
		return "fixed sample"
	}
	return seg.standard.String()
}

func (h *Hardware) segment() *Segment {
	return &h.scenario.Segments[h.seg]
}

// Standard returns the broadcast standard of the current segment. Returns
// format.Auto if there is no signal.
func (h *Hardware) Standard() format.Format {
	seg := h.segment()
	if seg.NoSignal {
		return format.Auto
	}
	return seg.standard
}

// Done returns true once every field of the scenario has been read.
func (h *Hardware) Done() bool {
	return h.read >= h.scenario.Fields()
}

// Fields returns the number of times the status has been read.
func (h *Hardware) Fields() int {
	return h.read
}

// Applied returns the most recent format profile applied.
func (h *Hardware) Applied() format.Format {
	return h.applied
}

// FormatProfiles returns the number of format profiles applied.
func (h *Hardware) FormatProfiles() int {
	return h.formatProfiles
}

// Profiles returns the auxiliary profiles applied so far, in order.
func (h *Hardware) Profiles() []hardware.Profile {
	return h.profiles
}

// InjectFault causes the next collaborator call to fail with err.
func (h *Hardware) InjectFault(err error) {
	h.fault = err
}

func (h *Hardware) takeFault() error {
	err := h.fault
	h.fault = nil
	return err
}

// advance moves to the next field of the scenario
func (h *Hardware) advance() {
	h.field++
	if h.field >= h.segment().Fields && h.seg < len(h.scenario.Segments)-1 {
		h.seg++
		h.field = 0
		logger.Logf(logger.Allow, "simulation", "segment %d: %s", h.seg, h.segment().describe())
	}
}

// ReadStatus implements the hardware.Collaborator interface. Every call
// after the first advances the scenario by one field. Measured values read
// with Read() are for the field of the most recent status.
func (h *Hardware) ReadStatus() (signal.Sample, error) {
	if err := h.takeFault(); err != nil {
		return signal.Sample{}, err
	}

	if h.read > 0 {
		h.advance()
	}
	h.read++

	seg := h.segment()

	if seg.Sample != nil {
		return *seg.Sample, nil
	}

	if seg.NoSignal {
		return signal.Sample{NoSignal: true, Noisy: seg.Noisy}, nil
	}

	std := seg.standard
	smp := signal.Sample{
		HLock:         true,
		VLock:         true,
		HNonStd:       seg.HNonStd,
		VNonStd:       seg.VNonStd,
		Noisy:         seg.Noisy,
		Line625:       std.Lines625(),
		PAL:           std.PAL(),
		SECAM:         std == format.SECAM,
		SECAMDetected: std == format.SECAM,
		Comb3DOff:     seg.Comb3D != 0,
	}

	dto := h.regs[hardware.ParamChromaDTO]
	if std != format.SECAM {
		var d uint32
		if dto > std.DTO() {
			d = dto - std.DTO()
		} else {
			d = std.DTO() - dto
		}
		smp.ChromaLock = d <= ChromaTolerance
	}

	smp.Acc3xx = accStrong
	switch std.Burst() {
	case format.Burst358:
		smp.Acc358 = accStrong
		smp.Acc4xx = accWeak
	case format.Burst443:
		smp.Acc358 = accWeak
		smp.Acc4xx = accStrong
	default:
		// the FM carriers of SECAM do not resemble either burst
		smp.Acc358 = accWeak
		smp.Acc4xx = accWeak
		smp.Acc425 = accStrong
	}

	return smp, nil
}

// ApplyFormatProfile implements the hardware.Collaborator interface.
func (h *Hardware) ApplyFormatProfile(f format.Format) error {
	if err := h.takeFault(); err != nil {
		return err
	}
	h.applied = f
	h.formatProfiles++
	h.regs[hardware.ParamChromaDTO] = f.DTO()
	return nil
}

// ApplyProfile implements the hardware.Collaborator interface.
func (h *Hardware) ApplyProfile(p hardware.Profile) error {
	if err := h.takeFault(); err != nil {
		return err
	}
	h.profiles = append(h.profiles, p)
	switch p {
	case hardware.ProfileProbeNTSCM:
		h.regs[hardware.ParamChromaDTO] = format.DTONTSCM
	case hardware.ProfileProbePALM:
		h.regs[hardware.ParamChromaDTO] = format.DTOPALM
	}
	return nil
}

// Read implements the hardware.Collaborator interface.
func (h *Hardware) Read(p hardware.Param) (uint32, error) {
	if err := h.takeFault(); err != nil {
		return 0, err
	}

	seg := h.segment()

	switch p {
	case hardware.ParamDigitalGain:
		if seg.NoSignal {
			return 0, nil
		}
		dgain := seg.DigitalGain
		if dgain == 0 {
			dgain = tuning.GainMiddle
		}
		pga := max(h.regs[hardware.ParamPGA], 1)
		return min(dgain*tuning.PGADefault/pga, 0xfff), nil
	case hardware.ParamHCount:
		n := seg.HCount
		if n == 0 {
			n = h.nominalHCount()
		}
		return uint32(int(n) + h.rnd.Jitter(int(seg.Jitter))), nil
	case hardware.ParamVLines:
		return seg.VLines & 0xff, nil
	case hardware.ParamChromaSum:
		return seg.ChromaSum, nil
	case hardware.ParamSyncNoise:
		return seg.SyncNoise, nil
	case hardware.ParamComb3DStatus:
		return seg.Comb3D, nil
	case hardware.ParamWSS:
		return seg.WSS, nil
	}

	return h.regs[p], nil
}

func (h *Hardware) nominalHCount() uint32 {
	gen := h.scenario.generation
	std := h.Standard()
	if n, ok := tuning.HCountNominal(gen, std); ok {
		return n
	}
	if std.Lines625() {
		n, _ := tuning.HCountNominal(gen, format.PALI)
		return n
	}
	n, _ := tuning.HCountNominal(gen, format.NTSCM)
	return n
}

// Write implements the hardware.Collaborator interface.
func (h *Hardware) Write(p hardware.Param, v uint32) error {
	if err := h.takeFault(); err != nil {
		return err
	}
	h.regs[p] = v
	return nil
}
