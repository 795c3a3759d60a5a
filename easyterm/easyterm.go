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


package easyterm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/term"

	"github.com/jetsetilly/tvafe/curated"
)

// DefaultDevice is the terminal device opened when no device is specified.
const DefaultDevice = "/dev/tty"

// Terminal is the main type for the easyterm package.
type Terminal struct {
	crit sync.Mutex
	tty  *term.Term

	keys chan Key
	done chan struct{}
}

// Open the terminal device and put it into raw mode. Key presses are
// delivered on the channel returned by Keys().
func Open(device string) (*Terminal, error) {
	if device == "" {
		device = DefaultDevice
	}

	tty, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, curated.Errorf("easyterm: %v", err)
	}

	et := &Terminal{
		tty:  tty,
		keys: make(chan Key, 16),
		done: make(chan struct{}),
	}

	go et.service(tty)

	return et, nil
}

// service reads from the terminal until the terminal is closed
func (et *Terminal) service(tty *term.Term) {
	defer close(et.keys)

	b := make([]byte, 8)
	for {
		n, err := tty.Read(b)
		if err != nil {
			return
		}
		for _, k := range Decode(b[:n]) {
			select {
			case et.keys <- k:
			case <-et.done:
				return
			}
		}
	}
}

// Keys returns the channel on which key presses are delivered. The channel
// is closed when the terminal is closed or can no longer be read.
func (et *Terminal) Keys() <-chan Key {
	return et.keys
}

// Print a formatted string to the terminal.
func (et *Terminal) Print(s string, a ...any) {
	et.crit.Lock()
	defer et.crit.Unlock()

	if et.tty == nil {
		return
	}

	s = fmt.Sprintf(s, a...)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", "\r\n")
	_, _ = et.tty.Write([]byte(s))
}

// Close restores the terminal to the state it was in before Open() and
// closes the device.
func (et *Terminal) Close() error {
	et.crit.Lock()
	defer et.crit.Unlock()

	if et.tty == nil {
		return nil
	}

	close(et.done)

	err := et.tty.Restore()
	if cerr := et.tty.Close(); err == nil {
		err = cerr
	}
	et.tty = nil

	if err != nil {
		return curated.Errorf("easyterm: %v", err)
	}
	return nil
}
