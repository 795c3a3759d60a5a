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

package search

import (
	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/signal"
)

// Outcome of a decision table lookup.
type Outcome int

// List of valid Outcome values.
const (
	// no rule matched. keep the current candidate
	Keep Outcome = iota

	// the current candidate is correct
	Confirm

	// try the format named by the Decision
	Try

	// give up and lock onto the fallback format
	Fallback
)

func (o Outcome) String() string {
	switch o {
	case Confirm:
		return "confirm"
	case Try:
		return "try"
	case Fallback:
		return "fallback"
	}
	return "keep"
}

// Decision is the result of a decision table lookup.
type Decision struct {
	Outcome Outcome
	Next    format.Format
}

// cond is the information the rules are tested against
type cond struct {
	signal.Status

	// whether NTSC-50 is a candidate
	ntsc50 bool
}

type rule struct {
	when func(c cond) bool
	then Decision
}

func confirm() Decision {
	return Decision{Outcome: Confirm}
}

func try(f format.Format) Decision {
	return Decision{Outcome: Try, Next: f}
}

func always(c cond) bool {
	return true
}

// the rules for each candidate are tested in order. the first rule to match
// decides
var table = map[format.Format][]rule{
	format.PALI: {
		{func(c cond) bool { return c.Line625 && (c.SECAMDetected || c.SECAM) }, try(format.SECAM)},
		{func(c cond) bool { return c.Line625 && c.Fsc443 && c.PAL }, confirm()},
		{func(c cond) bool { return c.Line625 && c.Fsc358 }, try(format.PALCN)},
		{func(c cond) bool { return !c.Line625 }, try(format.PALM)},
	},
	format.PALCN: {
		{func(c cond) bool { return c.Line625 && c.Fsc358 && c.PAL }, confirm()},
		{func(c cond) bool {
			return c.ntsc50 && c.Line625 && c.Fsc358 && !c.PAL && !c.Fsc443 && !c.SECAM
		}, try(format.NTSC50)},
		{func(c cond) bool { return c.Line625 }, try(format.PALI)},
		{func(c cond) bool { return !c.Line625 && c.Fsc358 && c.PAL }, try(format.PALM)},
		{func(c cond) bool { return !c.Line625 && c.Fsc443 && !c.PAL }, try(format.NTSC443)},
	},
	format.NTSC50: {
		{func(c cond) bool { return c.Line625 && c.Fsc358 && c.PAL }, try(format.PALCN)},
		{func(c cond) bool { return c.Line625 && c.Fsc358 && !c.PAL && !c.Fsc443 && !c.SECAM }, confirm()},
		{func(c cond) bool { return c.Line625 }, try(format.PALI)},
		{func(c cond) bool { return !c.Line625 && c.Fsc358 && c.PAL }, try(format.PALM)},
		{func(c cond) bool { return !c.Line625 && c.Fsc443 && !c.PAL }, try(format.NTSC443)},
	},
	format.SECAM: {
		{func(c cond) bool { return c.Line625 && c.SECAMDetected && c.SECAM }, confirm()},
		{func(c cond) bool { return c.Line625 }, try(format.PALI)},
		{func(c cond) bool { return !c.Line625 && c.Fsc358 && c.PAL }, try(format.PALM)},
		{func(c cond) bool { return !c.Line625 && c.Fsc443 && !c.PAL }, try(format.NTSC443)},
	},
	format.PALM: {
		{func(c cond) bool { return !c.Line625 && c.Fsc358 && c.PAL && c.ChromaLock }, confirm()},
		{func(c cond) bool { return c.Line625 && c.Fsc358 && c.PAL }, try(format.PALCN)},
		{func(c cond) bool { return c.Line625 }, try(format.PALI)},
		{func(c cond) bool { return !c.Line625 && c.Fsc443 && c.PAL }, try(format.PAL60)},
		{func(c cond) bool { return !c.Line625 && c.Fsc358 && !c.PAL }, try(format.NTSCM)},
		{func(c cond) bool { return !c.Line625 && c.Fsc443 && !c.PAL }, try(format.NTSC443)},
	},
	format.NTSCM: {
		{func(c cond) bool { return !c.Line625 && c.Fsc358 && !c.PAL && c.ChromaLock }, confirm()},
		{always, try(format.PALI)},
	},
	format.PAL60: {
		{func(c cond) bool { return !c.Line625 && c.Fsc443 && c.PAL }, confirm()},
		{always, try(format.PALI)},
	},
	format.NTSC443: {
		{func(c cond) bool { return !c.Line625 && c.Fsc443 && !c.PAL }, confirm()},
		{func(c cond) bool { return !c.Line625 && c.Fsc443 && c.PAL }, try(format.PAL60)},
		{func(c cond) bool { return !c.Line625 }, Decision{Outcome: Fallback}},
		{always, try(format.PALI)},
	},
}

// Decide looks up the decision for the candidate format and status. The
// ntsc50 argument says whether NTSC-50 should be considered. Formats not in
// the table are decided as PAL-I would be.
func Decide(candidate format.Format, st signal.Status, ntsc50 bool) Decision {
	rules, ok := table[candidate]
	if !ok {
		rules = table[format.PALI]
	}

	c := cond{Status: st, ntsc50: ntsc50}
	for _, r := range rules {
		if r.when(c) {
			return r.then
		}
	}

	return Decision{Outcome: Keep, Next: candidate}
}

// ChooseFallback returns the format to lock onto when the search has failed
// to confirm a candidate. The choice uses only the line count and colour
// system. If force is a valid format it is always chosen.
func ChooseFallback(st signal.Status, force format.Format) format.Format {
	if force.Valid() {
		return force
	}
	switch {
	case st.Line625 && (st.SECAMDetected || st.SECAM):
		return format.SECAM
	case !st.Line625 && !st.PAL:
		return format.NTSCM
	case !st.Line625 && st.PAL:
		return format.PALM
	}
	return format.PALI
}
