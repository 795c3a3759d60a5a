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

// list of ASCII codes for non-alphanumeric characters
const (
	KeyInterrupt = 3  // CTRL-C
	KeySuspend   = 26 // CTRL-Z
	KeyEsc       = 27
	KeyCarriage  = 13
	KeyBackspace = 127
)

// Key is a single key press. Cursor keys are reported with the Cursor field
// set to one of the Cursor* values and a zero Rune.
type Key struct {
	Rune   rune
	Cursor rune
}

// list of ASCII codes that follow an escape sequence for cursor keys
const (
	EscCursor = 91

	CursorUp       = 'A'
	CursorDown     = 'B'
	CursorForward  = 'C'
	CursorBackward = 'D'
)

// Decode the keys in a buffer of bytes read from the terminal. Escape
// sequences for cursor keys are collapsed into a single Key.
func Decode(b []byte) []Key {
	var keys []Key
	for i := 0; i < len(b); i++ {
		if b[i] == KeyEsc && i+2 < len(b) && b[i+1] == EscCursor {
			switch b[i+2] {
			case CursorUp, CursorDown, CursorForward, CursorBackward:
				keys = append(keys, Key{Cursor: rune(b[i+2])})
				i += 2
				continue
			}
		}
		keys = append(keys, Key{Rune: rune(b[i])})
	}
	return keys
}
