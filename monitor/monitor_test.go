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


package monitor

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jetsetilly/tvafe/decoder"
	"github.com/jetsetilly/tvafe/easyterm"
	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/preferences"
	"github.com/jetsetilly/tvafe/simulation"
	"github.com/jetsetilly/tvafe/test"
)

func newPort(t *testing.T, scenario string) (*decoder.Port, *simulation.Hardware) {
	t.Helper()

	s, err := simulation.ParseScenario([]byte(scenario))
	test.DemandSuccess(t, err)
	hw := simulation.NewHardware(s)

	prf, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "tvafe.prefs"))
	test.DemandSuccess(t, err)

	p, err := decoder.NewPort(decoder.CVBS0, hw, prf)
	test.DemandSuccess(t, err)

	return p, hw
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel(t *testing.T) {
	p, hw := newPort(t, `
segments:
  - fields: 60
    standard: PAL-CN
`)

	m := NewModel(p, hw, time.Millisecond)
	test.ExpectSuccess(t, m.Init() != nil)

	var mdl tea.Model = m
	var cmd tea.Cmd
	for range 50 {
		mdl, cmd = mdl.Update(tickMsg(time.Now()))
		test.DemandSuccess(t, cmd != nil)
		test.DemandSuccess(t, !isQuit(cmd))
	}
	m = mdl.(Model)

	test.ExpectEquality(t, m.info.Fields, 50)
	test.ExpectEquality(t, p.LockedFormat(), format.PALCN)
	test.ExpectEquality(t, len(m.history), 1)
	test.ExpectSuccess(t, strings.Contains(m.history[0], "PAL-CN"))

	v := m.View()
	test.ExpectSuccess(t, strings.Contains(v, "PAL-CN"))
	test.ExpectSuccess(t, strings.Contains(v, "locked"))
	test.ExpectSuccess(t, strings.Contains(v, "a:auto"))

	// manual format selection
	mdl, cmd = m.Update(keyPress('1'))
	test.ExpectSuccess(t, !isQuit(cmd))
	m = mdl.(Model)
	test.ExpectEquality(t, m.info.Manual, format.NTSCM)
	test.ExpectEquality(t, p.ManualFormat(), format.NTSCM)

	mdl, _ = m.Update(keyPress('a'))
	m = mdl.(Model)
	test.ExpectEquality(t, m.info.Manual, format.Auto)

	_, cmd = m.Update(keyPress('q'))
	test.ExpectSuccess(t, isQuit(cmd))
	test.ExpectSuccess(t, m.Err() == nil)
}

func TestModelExhausted(t *testing.T) {
	p, hw := newPort(t, `
segments:
  - fields: 5
    nosignal: true
`)

	var mdl tea.Model = NewModel(p, hw, time.Millisecond)
	var cmd tea.Cmd
	for range 5 {
		mdl, cmd = mdl.Update(tickMsg(time.Now()))
		test.DemandSuccess(t, !isQuit(cmd))
	}
	mdl, cmd = mdl.Update(tickMsg(time.Now()))
	test.ExpectSuccess(t, isQuit(cmd))
	test.ExpectSuccess(t, mdl.(Model).done)
}

func TestModelError(t *testing.T) {
	p, hw := newPort(t, `
segments:
  - fields: 5
    standard: PAL-I
`)

	hw.InjectFault(fmt.Errorf("bus error"))

	mdl, cmd := NewModel(p, hw, time.Millisecond).Update(tickMsg(time.Now()))
	test.ExpectSuccess(t, isQuit(cmd))
	test.ExpectFailure(t, mdl.(Model).Err())
	test.ExpectSuccess(t, strings.Contains(mdl.View(), "bus error"))
}

func TestCommand(t *testing.T) {
	p, _ := newPort(t, `
segments:
  - fields: 5
    standard: PAL-I
`)

	quit, err := command(p, '3')
	test.ExpectSuccess(t, !quit)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.ManualFormat(), format.PALI)

	// out of range keys are ignored
	quit, err = command(p, '9')
	test.ExpectSuccess(t, !quit)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.ManualFormat(), format.PALI)

	quit, err = command(p, 'A')
	test.ExpectSuccess(t, !quit)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.ManualFormat(), format.Auto)

	quit, _ = command(p, 'q')
	test.ExpectSuccess(t, quit)
}

type printer struct {
	lines []string
}

func (pr *printer) Print(s string, a ...any) {
	pr.lines = append(pr.lines, fmt.Sprintf(s, a...))
}

func TestPlain(t *testing.T) {
	p, hw := newPort(t, `
segments:
  - fields: 10
    nosignal: true
  - fields: 60
    standard: PAL-CN
`)

	var pr printer
	err := RunPlain(p, hw, time.Millisecond, &pr, nil)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, hw.Done())

	// the help line, the initial state and at least one change of format
	test.DemandSuccess(t, len(pr.lines) >= 3)
	test.ExpectEquality(t, pr.lines[0], keyHelp()+"\n")
	test.ExpectSuccess(t, strings.Contains(pr.lines[len(pr.lines)-1], "PAL-CN"))
	test.ExpectSuccess(t, strings.Contains(pr.lines[len(pr.lines)-1], "locked"))
}

func TestPlainQuit(t *testing.T) {
	p, hw := newPort(t, `
segments:
  - fields: 100000
    standard: PAL-I
`)

	keys := make(chan easyterm.Key, 1)
	keys <- easyterm.Key{Rune: 'q'}

	var pr printer
	err := RunPlain(p, hw, time.Hour, &pr, keys)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, !hw.Done())
}
