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

// Package ring implements a fixed capacity circular buffer. Pushing to a full
// ring overwrites the oldest entry.
//
// The Average() and TrimmedAverage() functions work on rings of integer
// types. The trimmed average discards the largest and smallest entries before
// averaging, which is how the tuning loops reject single field glitches in
// the measured values.
package ring

// Ring is a circular buffer of fixed capacity.
type Ring[T any] struct {
	entries []T
	cursor  int
	count   int
}

// New is the preferred method of initialisation for the Ring type. A capacity
// of less than one is treated as a capacity of one.
func New[T any](capacity int) *Ring[T] {
	return &Ring[T]{
		entries: make([]T, max(capacity, 1)),
	}
}

// Push a new entry into the ring.
func (r *Ring[T]) Push(v T) {
	r.entries[r.cursor] = v
	r.cursor = (r.cursor + 1) % len(r.entries)
	if r.count < len(r.entries) {
		r.count++
	}
}

// Len is the number of entries in the ring.
func (r *Ring[T]) Len() int {
	return r.count
}

// Cap is the capacity of the ring.
func (r *Ring[T]) Cap() int {
	return len(r.entries)
}

// Full returns true if the number of entries equals the capacity.
func (r *Ring[T]) Full() bool {
	return r.count == len(r.entries)
}

// Reset empties the ring.
func (r *Ring[T]) Reset() {
	var zero T
	for i := range r.entries {
		r.entries[i] = zero
	}
	r.cursor = 0
	r.count = 0
}

// Recent returns the entry pushed age pushes ago. An age of zero is the most
// recent entry. The second return value is false if there is no such entry.
func (r *Ring[T]) Recent(age int) (T, bool) {
	var zero T
	if age < 0 || age >= r.count {
		return zero, false
	}
	i := (r.cursor - 1 - age + 2*len(r.entries)) % len(r.entries)
	return r.entries[i], true
}

// Values returns the entries from oldest to newest.
func (r *Ring[T]) Values() []T {
	v := make([]T, 0, r.count)
	for age := r.count - 1; age >= 0; age-- {
		e, _ := r.Recent(age)
		v = append(v, e)
	}
	return v
}

// Integer types can be averaged.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Sum of entries in the ring.
func Sum[T Integer](r *Ring[T]) int64 {
	var s int64
	for _, v := range r.entries[:r.count] {
		s += int64(v)
	}
	return s
}

// Average of entries in the ring, truncated towards zero. An empty ring has
// an average of zero.
func Average[T Integer](r *Ring[T]) int64 {
	if r.count == 0 {
		return 0
	}
	return Sum(r) / int64(r.count)
}

// TrimmedAverage of entries in the ring. The largest and smallest entries are
// discarded and the remaining entries averaged with rounding. Rings with
// fewer than three entries return the plain Average().
//
// For a ring of four entries the result is (sum - max - min + 1) / 2.
func TrimmedAverage[T Integer](r *Ring[T]) int64 {
	if r.count < 3 {
		return Average(r)
	}

	lo := int64(r.entries[0])
	hi := lo
	for _, v := range r.entries[:r.count] {
		lo = min(lo, int64(v))
		hi = max(hi, int64(v))
	}

	n := int64(r.count - 2)
	return (Sum(r) - lo - hi + n/2) / n
}
