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

// Package modalflag wraps the flag package of the standard library so that a
// command line can select a mode of operation, each mode with its own flags.
//
// Arguments are given to NewArgs() and parsed with Parse(). Flags are added
// before each call to Parse() and sub-modes with AddSubModes(). The first
// sub-mode is the default and is chosen if the next argument is not one of
// the listed modes.
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "MONITOR", "DUMP")
//	if r, err := md.Parse(); r != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		fields := md.AddInt("fields", 0, "number of fields to run")
//		...
//	}
//
// Sub-mode comparisons are case insensitive. Mode() returns the most recent
// mode and Path() all the modes chosen so far separated by a slash.
package modalflag
