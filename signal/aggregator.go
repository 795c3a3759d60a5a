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

package signal

import "github.com/jetsetilly/tvafe/ring"

// Policy decides how the three most recent samples of a field are combined.
type Policy int

// List of valid Policy values.
const (
	// the field changes value only when all three samples agree
	Unanimous Policy = iota

	// the field is true when at least two of three samples are true. it is
	// false only when all three samples are false
	AnyTwo

	// the field follows the most recent sample
	Latest
)

// Vote combines three samples (newest first) of a boolean field according to
// the policy. The previous value is returned if the samples are inconclusive.
func Vote(policy Policy, prev bool, a, b, c bool) bool {
	switch policy {
	case Unanimous:
		if a && b && c {
			return true
		}
		if !a && !b && !c {
			return false
		}
	case AnyTwo:
		if (a && b) || (b && c) || (a && c) {
			return true
		}
		if !a && !b && !c {
			return false
		}
	case Latest:
		return a
	}
	return prev
}

// field describes how one boolean field of Sample maps to Status
type field struct {
	policy Policy
	sample func(*Sample) bool
	status func(*Status) *bool
}

var fields = []field{
	{Unanimous, func(s *Sample) bool { return s.NoSignal }, func(s *Status) *bool { return &s.NoSignal }},
	{AnyTwo, func(s *Sample) bool { return s.HLock }, func(s *Status) *bool { return &s.HLock }},
	{Unanimous, func(s *Sample) bool { return s.VLock }, func(s *Status) *bool { return &s.VLock }},
	{Unanimous, func(s *Sample) bool { return s.HNonStd }, func(s *Status) *bool { return &s.HNonStd }},
	{Unanimous, func(s *Sample) bool { return s.VNonStd }, func(s *Status) *bool { return &s.VNonStd }},
	{Unanimous, func(s *Sample) bool { return s.NoColorBurst }, func(s *Status) *bool { return &s.NoColorBurst }},
	{Unanimous, func(s *Sample) bool { return s.Comb3DOff }, func(s *Status) *bool { return &s.Comb3DOff }},
	{AnyTwo, func(s *Sample) bool { return s.ChromaLock }, func(s *Status) *bool { return &s.ChromaLock }},
	{AnyTwo, func(s *Sample) bool { return s.PAL }, func(s *Status) *bool { return &s.PAL }},
	{Unanimous, func(s *Sample) bool { return s.SECAM }, func(s *Status) *bool { return &s.SECAM }},
	{Unanimous, func(s *Sample) bool { return s.Line625 }, func(s *Status) *bool { return &s.Line625 }},
	{Unanimous, func(s *Sample) bool { return s.Noisy }, func(s *Status) *bool { return &s.Noisy }},
	{Unanimous, func(s *Sample) bool { return s.VCR }, func(s *Status) *bool { return &s.VCR }},
	{Unanimous, func(s *Sample) bool { return s.VCRTrick }, func(s *Status) *bool { return &s.VCRTrick }},
	{Unanimous, func(s *Sample) bool { return s.VCRFF }, func(s *Status) *bool { return &s.VCRFF }},
	{Unanimous, func(s *Sample) bool { return s.VCRRew }, func(s *Status) *bool { return &s.VCRRew }},
	{Unanimous, func(s *Sample) bool { return s.SECAMDetected }, func(s *Status) *bool { return &s.SECAMDetected }},
	{Latest, func(s *Sample) bool { return s.SECAMPhase }, func(s *Status) *bool { return &s.SECAMPhase }},
}

// burst histogram thresholds
const (
	// a bucket count above this value is trustworthy
	ValidCount = 0x30

	// a dominant bucket count below this value means there is no burst
	LowCount = 40
)

// depth of the sample history
const depth = 3

// Aggregator combines the most recent samples into a Status.
type Aggregator struct {
	samples *ring.Ring[Sample]
	status  Status
}

// NewAggregator is the preferred method of initialisation for the Aggregator
// type.
func NewAggregator() *Aggregator {
	a := &Aggregator{
		samples: ring.New[Sample](depth),
	}
	a.Reset()
	return a
}

// Reset forgets all samples. The status returns to its initial value, which
// is that there is no signal.
func (a *Aggregator) Reset() {
	a.samples.Reset()
	a.status = Status{NoSignal: true}
}

// Status returns the most recent aggregated status.
func (a *Aggregator) Status() Status {
	return a.status
}

// Update the aggregated status with a new sample. The status will not change
// until three samples have been seen.
func (a *Aggregator) Update(s Sample) Status {
	a.samples.Push(s)
	if !a.samples.Full() {
		return a.status
	}

	var recent [depth]Sample
	for i := range recent {
		recent[i], _ = a.samples.Recent(i)
	}

	var cordic, acc4xx, acc425, acc3xx, acc358 int
	for _, r := range recent {
		cordic += int(r.Cordic)
		acc4xx += r.Acc4xx
		acc425 += r.Acc425
		acc3xx += r.Acc3xx
		acc358 += r.Acc358
	}
	a.status.Cordic = int8(cordic / depth)
	a.status.Acc4xx = acc4xx / depth
	a.status.Acc425 = acc425 / depth
	a.status.Acc3xx = acc3xx / depth
	a.status.Acc358 = acc358 / depth

	// the histogram can only suggest that there is no burst. the vote of the
	// samples has the final word
	a.classifyBurst()

	for _, f := range fields {
		v := f.status(&a.status)
		*v = Vote(f.policy, *v, f.sample(&recent[0]), f.sample(&recent[1]), f.sample(&recent[2]))
	}

	return a.status
}

// classifyBurst sets the subcarrier class from the averaged histogram. When
// the counts are inconclusive the previous classification is kept.
func (a *Aggregator) classifyBurst() {
	st := &a.status

	if st.Acc3xx > ValidCount {
		if st.Acc358 > st.Acc3xx-(st.Acc3xx>>2) {
			st.Fsc358 = true
			st.Fsc425 = false
			st.Fsc443 = false
		} else if st.Acc358 < (st.Acc3xx<<1)/5 {
			st.Fsc358 = false
			if st.Acc4xx > ValidCount {
				st.Fsc443 = true
				st.Fsc425 = false
			} else if st.Acc4xx < LowCount {
				st.Fsc425 = false
				st.Fsc443 = false
			}
		}
	} else if st.Acc3xx < LowCount {
		st.Fsc358 = false
		st.Fsc425 = false
		st.Fsc443 = false
		st.NoColorBurst = true
	}
}
