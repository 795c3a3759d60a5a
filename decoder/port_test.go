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

package decoder_test

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/jetsetilly/tvafe/curated"
	"github.com/jetsetilly/tvafe/decoder"
	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/hardware"
	"github.com/jetsetilly/tvafe/nonstd"
	"github.com/jetsetilly/tvafe/preferences"
	"github.com/jetsetilly/tvafe/search"
	"github.com/jetsetilly/tvafe/signal"
	"github.com/jetsetilly/tvafe/simulation"
	"github.com/jetsetilly/tvafe/test"
	"github.com/jetsetilly/tvafe/tuning"
)

func newPort(t *testing.T, id decoder.PortID, scenario string) (*decoder.Port, *simulation.Hardware) {
	t.Helper()

	s, err := simulation.ParseScenario([]byte(scenario))
	test.DemandSuccess(t, err)
	hw := simulation.NewHardware(s)

	prf, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "tvafe.prefs"))
	test.DemandSuccess(t, err)

	p, err := decoder.NewPort(id, hw, prf)
	test.DemandSuccess(t, err)

	return p, hw
}

// fields calls Field() n times and returns the number of the field on which
// the port first reported a locked format. zero if it never did
func fields(t *testing.T, p *decoder.Port, n int) int {
	t.Helper()

	var locked int
	for i := 1; i <= n; i++ {
		test.DemandSuccess(t, p.Field())
		if locked == 0 && !p.HasFormatChanged() {
			locked = i
		}
	}
	return locked
}

func TestPALCN(t *testing.T) {
	p, hw := newPort(t, decoder.CVBS0, `
segments:
  - fields: 100
    standard: PAL-CN
`)

	test.ExpectSuccess(t, p.HasFormatChanged())
	test.ExpectEquality(t, p.LockedFormat(), format.Auto)
	test.ExpectEquality(t, p.LockStatus(), signal.Unlocked)

	locked := fields(t, p, 50)
	test.ExpectSuccess(t, locked > 0 && locked <= 40, locked)
	test.ExpectEquality(t, p.LockedFormat(), format.PALCN)
	test.ExpectEquality(t, hw.Applied(), format.PALCN)
	test.ExpectEquality(t, p.LockStatus(), signal.HVLocked)
	test.ExpectSuccess(t, p.IsSignalPresent())
}

func TestNTSCM(t *testing.T) {
	p, hw := newPort(t, decoder.CVBS0, `
segments:
  - fields: 100
    standard: NTSC-M
`)

	locked := fields(t, p, 100)
	test.ExpectSuccess(t, locked > 0 && locked <= 60, locked)
	test.ExpectEquality(t, p.LockedFormat(), format.NTSCM)

	// the chroma DTO has been left at the NTSC-M value
	dto, err := hw.Read(hardware.ParamChromaDTO)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, dto, uint32(format.DTONTSCM))
}

func TestShiftToPALI(t *testing.T) {
	p, _ := newPort(t, decoder.CVBS0, `
segments:
  - fields: 100
    standard: NTSC-M
  - fields: 200
    standard: PAL-I
`)

	fields(t, p, 100)
	test.DemandEquality(t, p.LockedFormat(), format.NTSCM)

	var searching int
	for i := 1; i <= 10; i++ {
		test.DemandSuccess(t, p.Field())
		if p.HasFormatChanged() {
			searching = i
			break
		}
	}
	test.ExpectSuccess(t, searching > 0, searching)

	fields(t, p, 50)
	test.ExpectEquality(t, p.LockedFormat(), format.PALI)
}

func TestSignalLoss(t *testing.T) {
	p, hw := newPort(t, decoder.CVBS1, `
segments:
  - fields: 50
    standard: PAL-I
  - fields: 50
    nosignal: true
`)

	fields(t, p, 50)
	test.DemandEquality(t, p.LockedFormat(), format.PALI)

	test.DemandSuccess(t, hw.Write(hardware.ParamChromaDTO, 0x12345678))
	test.DemandSuccess(t, hw.Write(hardware.ParamPGA, 0x80))

	for range 5 {
		test.DemandSuccess(t, p.Field())
	}
	test.ExpectFailure(t, p.IsSignalPresent())
	test.ExpectSuccess(t, p.HasFormatChanged())
	test.ExpectEquality(t, p.LockedFormat(), format.Auto)
	test.ExpectEquality(t, p.LockStatus(), signal.Unlocked)

	dto, _ := hw.Read(hardware.ParamChromaDTO)
	test.ExpectEquality(t, dto, uint32(format.DTOPALI))
	pga, _ := hw.Read(hardware.ParamPGA)
	test.ExpectEquality(t, pga, uint32(tuning.PGADefault))

	// reinitialisation happens once per loss
	test.DemandSuccess(t, hw.Write(hardware.ParamPGA, 0x80))
	for range 5 {
		test.DemandSuccess(t, p.Tick())
	}
	pga, _ = hw.Read(hardware.ParamPGA)
	test.ExpectEquality(t, pga, uint32(0x80))
}

func TestSignalLossKeepsDTO(t *testing.T) {
	p, hw := newPort(t, decoder.CVBS0, `
segments:
  - fields: 100
    standard: NTSC-M
  - fields: 10
    nosignal: true
  - fields: 100
    standard: NTSC-M
`)

	fields(t, p, 100)
	test.DemandEquality(t, p.LockedFormat(), format.NTSCM)
	profiles := hw.FormatProfiles()

	for range 10 {
		test.DemandSuccess(t, p.Field())
	}
	test.ExpectFailure(t, p.IsSignalPresent())
	test.ExpectEquality(t, p.LockedFormat(), format.Auto)

	// the candidate is not PAL-I so the DTO is not touched
	dto, _ := hw.Read(hardware.ParamChromaDTO)
	test.ExpectEquality(t, dto, uint32(format.DTONTSCM))

	// the returning signal is confirmed without trying any other format
	locked := fields(t, p, 50)
	test.ExpectSuccess(t, locked > 0, locked)
	test.ExpectEquality(t, p.LockedFormat(), format.NTSCM)
	test.ExpectEquality(t, hw.FormatProfiles(), profiles)
}

func TestLockLatch(t *testing.T) {
	p, hw := newPort(t, decoder.CVBS0, `
segments:
  - fields: 100
    sample:
      hlock: true
`)

	for range 2 {
		test.DemandSuccess(t, p.Field())
	}
	test.ExpectEquality(t, p.LockStatus(), signal.Unlocked)

	// a horizontal lock is reported as a full lock even though no format has
	// been found
	for range 3 {
		test.DemandSuccess(t, p.Field())
	}
	test.ExpectSuccess(t, p.HasFormatChanged())
	test.ExpectEquality(t, p.LockStatus(), signal.HVLocked)
	test.ExpectEquality(t, p.Info().Lock, signal.HVLocked)

	// trying a new format clears the latch until the next poll
	var cleared bool
	for range 30 {
		test.DemandSuccess(t, p.Field())
		if p.LockStatus() == signal.HLocked {
			cleared = true
			break
		}
	}
	test.DemandSuccess(t, cleared)
	test.ExpectEquality(t, hw.Applied(), format.PALM)
	test.ExpectEquality(t, hw.FormatProfiles(), 2)

	test.DemandSuccess(t, p.Field())
	test.ExpectEquality(t, p.LockStatus(), signal.HVLocked)
}

func TestNonStdKeptOnFormatChange(t *testing.T) {
	p, hw := newPort(t, decoder.CVBS0, `
segments:
  - fields: 200
    standard: PAL-CN
    hnonstd: true
`)

	fields(t, p, 80)
	test.DemandEquality(t, p.LockedFormat(), format.PALCN)

	inf := p.Info()
	test.DemandEquality(t, inf.NonStdCounter, nonstd.CounterMax)
	test.DemandSuccess(t, inf.NonStd)

	profiles := hw.FormatProfiles()
	test.DemandSuccess(t, p.SetManualFormat(format.NTSC50))
	test.ExpectEquality(t, hw.FormatProfiles(), profiles+1)

	inf = p.Info()
	test.ExpectEquality(t, inf.NonStdCounter, nonstd.CounterMax)
	test.ExpectSuccess(t, inf.NonStd)

	fields(t, p, 30)
	test.ExpectEquality(t, p.LockedFormat(), format.NTSC50)
	test.ExpectSuccess(t, p.Info().NonStd)
}

func TestNonStdProfile(t *testing.T) {
	p, hw := newPort(t, decoder.CVBS0, `
segments:
  - fields: 300
    standard: PAL-I
    hnonstd: true
`)

	count := func() int {
		var n int
		for _, prof := range hw.Profiles() {
			if prof == hardware.ProfileNonStandard {
				n++
			}
		}
		return n
	}

	// the first decision is not made until the format has been locked for
	// some time
	fields(t, p, 60)
	test.DemandEquality(t, p.LockedFormat(), format.PALI)
	test.ExpectSuccess(t, p.Info().NonStd)
	test.ExpectEquality(t, count(), 0)

	fields(t, p, 40)
	test.ExpectEquality(t, count(), 1)

	// no further profile while nothing changes
	fields(t, p, 150)
	test.ExpectEquality(t, count(), 1)

	// a format profile restores the standard registers so the non-standard
	// profile is applied again at the next decision
	test.DemandSuccess(t, p.SetManualFormat(format.PALCN))
	fields(t, p, 50)
	test.ExpectEquality(t, count(), 2)
}

func TestManual(t *testing.T) {
	p, hw := newPort(t, decoder.CVBS0, `
segments:
  - fields: 500
    standard: PAL-I
`)
	test.ExpectEquality(t, hw.FormatProfiles(), 1)

	test.DemandSuccess(t, p.SetManualFormat(format.SECAM))
	test.ExpectEquality(t, hw.FormatProfiles(), 2)
	test.ExpectEquality(t, hw.Applied(), format.SECAM)

	// setting the same manual format again changes nothing
	test.DemandSuccess(t, p.SetManualFormat(format.SECAM))
	test.ExpectEquality(t, hw.FormatProfiles(), 2)

	// the manual format locks regardless of the signal
	fields(t, p, 30)
	test.ExpectEquality(t, p.LockedFormat(), format.SECAM)
	test.ExpectEquality(t, p.ManualFormat(), format.SECAM)

	// returning to auto finds the real format
	test.DemandSuccess(t, p.SetManualFormat(format.Auto))
	fields(t, p, 40)
	test.ExpectEquality(t, p.LockedFormat(), format.PALI)

	err := p.SetManualFormat(format.Format(99))
	test.ExpectSuccess(t, curated.Has(err, search.UnsupportedFormat))
}

func TestClosed(t *testing.T) {
	p, _ := newPort(t, decoder.CVBS0, `
segments:
  - fields: 10
    standard: PAL-I
`)
	p.Close()
	test.ExpectSuccess(t, curated.Is(p.Field(), decoder.PortClosed))
	test.ExpectSuccess(t, curated.Is(p.Tick(), decoder.PortClosed))
	test.ExpectSuccess(t, curated.Is(p.SetManualFormat(format.PALI), decoder.PortClosed))
}

func TestRegisterAccess(t *testing.T) {
	p, hw := newPort(t, decoder.CVBS0, `
segments:
  - fields: 10
    standard: PAL-I
`)
	fault := errors.New("bus error")
	hw.InjectFault(fault)

	err := p.Field()
	test.ExpectSuccess(t, curated.Is(err, decoder.RegisterAccess))
	test.ExpectSuccess(t, errors.Is(err, fault))

	// no retry. the next field is normal
	test.ExpectSuccess(t, p.Field())
}

func TestGainLoop(t *testing.T) {
	p, hw := newPort(t, decoder.CVBS0, `
segments:
  - fields: 400
    standard: PAL-I
    dgain: 0x400
`)
	fields(t, p, 400)
	test.DemandEquality(t, p.LockedFormat(), format.PALI)

	pga, _ := hw.Read(hardware.ParamPGA)
	test.ExpectEquality(t, pga, uint32(0x3f))

	dgain, _ := hw.Read(hardware.ParamDigitalGain)
	test.ExpectSuccess(t, dgain >= tuning.GainLimitLow && dgain <= tuning.GainLimitHigh, dgain)
}

func TestTunerGain(t *testing.T) {
	p, hw := newPort(t, decoder.CVBS3, `
segments:
  - fields: 200
    standard: PAL-I
    dgain: 0x400
`)
	fields(t, p, 200)
	test.DemandEquality(t, p.LockedFormat(), format.PALI)

	pga, _ := hw.Read(hardware.ParamPGA)
	test.ExpectEquality(t, pga, uint32(tuning.PGADefault))
}

func TestTimingAndProperties(t *testing.T) {
	p, hw := newPort(t, decoder.CVBS0, `
segments:
  - fields: 400
    standard: PAL-I
    hcnt: 0x31b80
    vlines: 0xf0
    wss: 0x08
`)

	fields(t, p, 400)
	test.DemandEquality(t, p.LockedFormat(), format.PALI)

	prop := p.Properties()
	test.ExpectEquality(t, prop.Aspect, decoder.Aspect4x3Full)
	test.ExpectEquality(t, prop.HS, 0)
	test.ExpectEquality(t, prop.HE, 18)
	test.ExpectEquality(t, prop.VS, 8)
	test.ExpectEquality(t, prop.VE, 8)
	test.ExpectEquality(t, prop.SkipFrames, decoder.SkipFrames)
	test.ExpectEquality(t, prop.Color, decoder.ColorYUV444)
	test.ExpectEquality(t, prop.DestColor, decoder.ColorYUV422)

	hstart, _ := hw.Read(hardware.ParamHActiveStart)
	test.ExpectEquality(t, hstart, uint32(0x74))
	test.ExpectSuccess(t, slices.Contains(hw.Profiles(), hardware.ProfileHTimingAdjust))

	inf := p.Info()
	test.ExpectEquality(t, inf.State.String(), "locked")
	test.ExpectEquality(t, inf.Fields, 400)
}

func TestCombReset(t *testing.T) {
	p, hw := newPort(t, decoder.CVBS0, `
segments:
  - fields: 50
    standard: PAL-I
    comb3d: 0x10
`)

	locked := fields(t, p, 50)
	test.DemandSuccess(t, locked > 0)

	var n int
	for _, prof := range hw.Profiles() {
		if prof == hardware.ProfileComb3DReset {
			n++
		}
	}
	test.ExpectEquality(t, n, 50-locked+1)
}

func TestPortID(t *testing.T) {
	id, err := decoder.ParsePortID("cvbs2")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, id, decoder.CVBS2)

	id, err = decoder.ParsePortID("3")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, id.IsTuner())

	_, err = decoder.ParsePortID("CVBS9")
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, decoder.PortID(9).Valid())
}
