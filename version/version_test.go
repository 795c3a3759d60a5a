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


package version

import (
	"strings"
	"testing"

	"github.com/jetsetilly/tvafe/test"
)

func TestDescribe(t *testing.T) {
	v, rev := describe("v1.2.3")
	test.ExpectEquality(t, v, "v1.2.3")
	test.ExpectInequality(t, rev, "")

	// test binaries carry no VCS information
	v, _ = describe("")
	test.ExpectSuccess(t, v == "local" || v == "unreleased", v)
}

func TestString(t *testing.T) {
	test.ExpectSuccess(t, strings.HasPrefix(String(), ApplicationName+" "))
	_, _, release := Version()
	test.ExpectEquality(t, release, false)
}
