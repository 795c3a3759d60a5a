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
	"time"

	"github.com/jetsetilly/tvafe/decoder"
	"github.com/jetsetilly/tvafe/easyterm"
)

// Printer is the output of the PLAIN monitor. easyterm.Terminal satisfies
// the interface.
type Printer interface {
	Print(s string, a ...any)
}

// RunPlain runs the PLAIN monitor until the user quits or the source is
// exhausted. A line is printed every time the format or search state
// changes. A nil keys channel means there is no keyboard control.
func RunPlain(port *decoder.Port, src Source, rate time.Duration, out Printer, keys <-chan easyterm.Key) error {
	tck := time.NewTicker(rate)
	defer tck.Stop()

	var prev string

	report := func() {
		inf := port.Info()
		if d := describe(inf); d != prev {
			prev = d
			out.Print("%s\n", Summary(inf))
		}
	}

	out.Print("%s\n", keyHelp())
	report()

	for {
		select {
		case k, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			if k.Rune == easyterm.KeyInterrupt || k.Rune == easyterm.KeyEsc {
				return nil
			}
			quit, err := command(port, k.Rune)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
			report()

		case <-tck.C:
			if src.Done() {
				return nil
			}
			if err := port.Field(); err != nil {
				return err
			}
			report()
		}
	}
}
