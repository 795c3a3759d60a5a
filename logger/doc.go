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

// Package logger is the central log for tvafe. Log entries are tagged and
// collapsed when the same entry is made more than once in succession. This
// matters for the decoder, which can repeat the same observation every field.
//
// Most code should use the package level Log() and Logf() functions, which
// add entries to the central logger. Additional loggers can be created with
// NewLogger().
//
// Every log request is made with a Permission. Permission implementations
// decide whether the entry is made. The Allow permission always allows
// logging.
package logger
