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

// Package prefs facilitates the storage and retrieval of preference values.
// Preference values are of the type Bool, Int or String. Each type is safe to
// read from one goroutine while being set from another.
//
// A Disk instance associates preference values with a key and a file. Many
// Disk instances can share the same file, each one responsible for its own
// keys. Saving one Disk does not disturb the keys of any other.
//
// The file format is one key/value pair per line separated by " :: " and
// beginning with the WarningBoilerPlate line:
//
//	*** do not edit this file by hand ***
//	search.settle :: 15
//	tuning.gain :: true
//
// Preference values can also be given on the command line. The
// PushCommandLineStack() function takes a string of the form:
//
//	"search.settle::20; tuning.gain::false"
//
// Values in the command line stack override values loaded from disk. Once a
// command line value has been used it is removed from the stack.
package prefs
