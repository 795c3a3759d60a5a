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

package preferences_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/hardware"
	"github.com/jetsetilly/tvafe/nonstd"
	"github.com/jetsetilly/tvafe/preferences"
	"github.com/jetsetilly/tvafe/prefs"
	"github.com/jetsetilly/tvafe/search"
	"github.com/jetsetilly/tvafe/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "tvafe.prefs"))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.Settings(), search.DefaultSettings())
	test.ExpectEquality(t, p.Force(), nonstd.ForceAuto)
	test.ExpectEquality(t, p.HardwareGeneration(), hardware.GXTVBB)
	test.ExpectEquality(t, p.ChromaThreshold.Get().(int), 0x4cedb3)
	test.ExpectSuccess(t, p.Gain.Get().(bool))
	test.ExpectFailure(t, p.DebugLoops.Get().(bool))
}

func TestRoundTrip(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "tvafe.prefs")

	p, err := preferences.NewPreferences(pth)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, p.ForceFormat.Set("pal-cn"))
	test.ExpectSuccess(t, p.Shift.Set(9))
	test.ExpectSuccess(t, p.Generation.Set("legacy"))
	test.ExpectFailure(t, p.ForceFormat.Set("PAL-X"))
	test.ExpectSuccess(t, p.Save())

	q, err := preferences.NewPreferences(pth)
	test.DemandSuccess(t, err)
	s := q.Settings()
	test.ExpectEquality(t, s.ForceFormat, format.PALCN)
	test.ExpectEquality(t, s.Shift, 9)
	test.ExpectEquality(t, q.HardwareGeneration(), hardware.Legacy)

	q.Reset()
	test.ExpectEquality(t, q.Settings(), search.DefaultSettings())

	// reset values are not saved until asked
	test.ExpectSuccess(t, q.Load())
	test.ExpectEquality(t, q.Settings().Shift, 9)
}

func TestCommandLine(t *testing.T) {
	prefs.PushCommandLineStack("search.retries::2; nonstd.force::frozen")
	defer prefs.PopCommandLineStack()

	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "tvafe.prefs"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Settings().Retries, 2)
	test.ExpectEquality(t, p.Force(), nonstd.ForceFrozen)
}
