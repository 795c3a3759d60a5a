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
	"strings"

	"github.com/jetsetilly/tvafe/decoder"
	"github.com/jetsetilly/tvafe/format"
)

// Source is the input being monitored. Done returns true when there are
// no more fields to read. Implemented by simulation.Hardware.
type Source interface {
	Done() bool
}

// command applies a key press to the port. returns true if the key means the
// monitor should quit
func command(p *decoder.Port, key rune) (bool, error) {
	switch {
	case key == 'q' || key == 'Q':
		return true, nil
	case key == 'a' || key == 'A':
		return false, p.SetManualFormat(format.Auto)
	case key >= '1' && key <= '9':
		i := int(key - '1')
		if i >= len(format.List) {
			return false, nil
		}
		return false, p.SetManualFormat(format.List[i])
	}
	return false, nil
}

// Summary is a one line description of the port state.
func Summary(inf decoder.Info) string {
	return fmt.Sprintf("%s [%6d] %s", inf.ID, inf.Fields, describe(inf))
}

// describe is the part of the summary that does not change every field
func describe(inf decoder.Info) string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%-9s %-8s", inf.Format, inf.State))
	if inf.Manual != format.Auto {
		s.WriteString(fmt.Sprintf(" manual=%s", inf.Manual))
	}
	if inf.Forced {
		s.WriteString(" forced")
	}
	if inf.NonStd {
		s.WriteString(" non-std")
	}
	s.WriteString(fmt.Sprintf(" %s", inf.Lock))
	return s.String()
}

// keyHelp lists the manual format keys
func keyHelp() string {
	s := strings.Builder{}
	for i, f := range format.List {
		if i > 0 {
			s.WriteString("  ")
		}
		s.WriteString(fmt.Sprintf("%d:%s", i+1, f))
	}
	s.WriteString("  a:auto  q:quit")
	return s.String()
}
