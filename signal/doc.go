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

// Package signal aggregates the raw status samples read from the CVBS decoder
// hardware into a stable status record.
//
// Raw status bits change from one field to the next, particularly while the
// decoder is reacquiring sync. The Aggregator votes over the three most
// recent samples. Bad news (no signal, wrong line count) needs unanimity to
// be believed in either direction but the lock indicators only need two of
// three samples. This makes the decoder slow to declare a format good and
// quick to start searching again.
package signal
