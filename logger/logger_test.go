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

package logger_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/logger"
	"github.com/jetsetilly/tvafe/test"
)

func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "test", "this is a test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\n")

	w.Reset()
	log.Log(logger.Allow, "test2", "this is another test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for fewer entries is okay too
	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "test2: this is another test\n")

	// and no entries
	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestRepeats(t *testing.T) {
	log := logger.NewLogger(10)
	w := &strings.Builder{}

	for range 3 {
		log.Log(logger.Allow, "tvafe", "no signal")
	}
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tvafe: no signal (repeat x3)\n")
}

func TestMaximum(t *testing.T) {
	log := logger.NewLogger(2)
	log.Logf(logger.Allow, "tag", "%d", 1)
	log.Logf(logger.Allow, "tag", "%d", 2)
	log.Logf(logger.Allow, "tag", "%d", 3)

	e := log.Copy()
	test.DemandEquality(t, len(e), 2)
	test.ExpectEquality(t, e[0].Detail, "2")
	test.ExpectEquality(t, e[1].Detail, "3")
}

func TestDetailTypes(t *testing.T) {
	log := logger.NewLogger(10)
	w := &strings.Builder{}

	log.Log(logger.Allow, "error", errors.New("register bus"))
	log.Log(logger.Allow, "stringer", format.PALCN)
	log.Log(logger.Allow, "int", 0x31380)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "error: register bus\nstringer: PAL-CN\nint: 201600\n")
}

type prohibit struct {
	allow bool
}

func (p prohibit) AllowLogging() bool {
	return p.allow
}

func TestPermission(t *testing.T) {
	log := logger.NewLogger(10)
	w := &strings.Builder{}

	log.Log(prohibit{allow: false}, "tag", "hidden")
	log.Log(prohibit{allow: true}, "tag", "visible")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: visible\n")
}

func TestEcho(t *testing.T) {
	log := logger.NewLogger(10)
	w := &strings.Builder{}
	log.SetEcho(w)
	log.Log(logger.Allow, "tag", "echo")
	log.Log(logger.Allow, "tag", "echo")
	log.SetEcho(nil)
	log.Log(logger.Allow, "tag", "silent")
	test.ExpectEquality(t, w.String(), "tag: echo\n")
}
