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
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jetsetilly/tvafe/decoder"
	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/search"
	"github.com/jetsetilly/tvafe/version"
)

// number of format changes kept in the history panel
const historyLen = 8

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12)
	lockStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	srchStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type tickMsg time.Time

func tick(rate time.Duration) tea.Cmd {
	return tea.Tick(rate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea model for the TEA monitor.
type Model struct {
	port *decoder.Port
	src  Source
	rate time.Duration

	info    decoder.Info
	history []string
	locked  format.Format

	err  error
	done bool
}

// NewModel is the preferred method of initialisation for the Model type.
func NewModel(port *decoder.Port, src Source, rate time.Duration) Model {
	return Model{
		port: port,
		src:  src,
		rate: rate,
		info: port.Info(),
	}
}

// Err returns the error that caused the monitor to stop, if any.
func (m Model) Err() error {
	return m.err
}

// Init implements the tea.Model interface.
func (m Model) Init() tea.Cmd {
	return tick(m.rate)
}

// Update implements the tea.Model interface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			m.done = true
			return m, tea.Quit
		}
		if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
			return m, nil
		}
		quit, err := command(m.port, msg.Runes[0])
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		if quit {
			m.done = true
			return m, tea.Quit
		}
		m.info = m.port.Info()
		return m, nil

	case tickMsg:
		if m.src.Done() {
			m.done = true
			return m, tea.Quit
		}
		if err := m.port.Field(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.info = m.port.Info()
		if lf := m.port.LockedFormat(); lf != m.locked {
			m.locked = lf
			m.history = append(m.history, fmt.Sprintf("%6d %s", m.info.Fields, lf))
			if len(m.history) > historyLen {
				m.history = m.history[1:]
			}
		}
		return m, tick(m.rate)
	}

	return m, nil
}

func row(label string, value any) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), fmt.Sprint(value))
}

// View implements the tea.Model interface.
func (m Model) View() string {
	inf := m.info

	state := srchStyle.Render(inf.State.String())
	if inf.State == search.Locked {
		state = lockStyle.Render(inf.State.String())
	}

	manual := "auto"
	if inf.Manual != format.Auto {
		manual = inf.Manual.String()
	}

	status := lipgloss.JoinVertical(lipgloss.Left,
		row("format", inf.Format),
		row("state", state),
		row("manual", manual),
		row("forced", inf.Forced),
		row("lock", inf.Lock),
		row("signal", inf.Status),
		row("counters", fmt.Sprintf("wait=%d retries=%d shift=%d", inf.Wait, inf.Retries, inf.Shift)),
		row("non-std", fmt.Sprintf("%v (%d)", inf.NonStd, inf.NonStdCounter)),
	)

	loops := lipgloss.JoinVertical(lipgloss.Left,
		row("gain", inf.Gain),
		row("chroma", inf.Chroma),
		row("h-timing", inf.HTiming),
		row("v-timing", inf.VTiming),
		row("properties", inf.Properties),
	)

	history := "none"
	if len(m.history) > 0 {
		history = strings.Join(m.history, "\n")
	}

	s := strings.Builder{}
	s.WriteString(titleStyle.Render(fmt.Sprintf("%s  %s  field %d", version.String(), inf.ID, inf.Fields)))
	s.WriteString("\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(status),
		panelStyle.Render(history),
	))
	s.WriteString("\n")
	s.WriteString(panelStyle.Render(loops))
	s.WriteString("\n")
	if m.err != nil {
		s.WriteString(errStyle.Render(m.err.Error()))
		s.WriteString("\n")
	}
	s.WriteString(helpStyle.Render(keyHelp()))
	s.WriteString("\n")

	return s.String()
}

// RunTEA runs the TEA monitor until the user quits or the source is
// exhausted.
func RunTEA(port *decoder.Port, src Source, rate time.Duration, in io.Reader, out io.Writer) error {
	prg := tea.NewProgram(NewModel(port, src, rate), tea.WithInput(in), tea.WithOutput(out))
	final, err := prg.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
