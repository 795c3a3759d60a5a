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

// Package preferences collates the preference values used by a decoder port.
// Values are stored on disk in the resources directory and can be overridden
// from the command line with the prefs package command-line stack.
package preferences

import (
	"github.com/jetsetilly/tvafe/curated"
	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/hardware"
	"github.com/jetsetilly/tvafe/nonstd"
	"github.com/jetsetilly/tvafe/prefs"
	"github.com/jetsetilly/tvafe/resources"
	"github.com/jetsetilly/tvafe/search"
	"github.com/jetsetilly/tvafe/tuning"
)

// Preferences defines and collates all the preference values used by a
// decoder port.
type Preferences struct {
	dsk *prefs.Disk

	// format search
	Settle           prefs.Int
	Retries          prefs.Int
	Shift            prefs.Int
	ForceFormat      prefs.String
	IgnorePALNTSC    prefs.Bool
	IgnoreBurstClass prefs.Bool
	NTSC50           prefs.Bool

	// non-standard signal detection
	NonStdForce prefs.String

	// adaptive loops
	Gain            prefs.Bool
	Chroma          prefs.Bool
	ChromaThreshold prefs.Int
	HTiming         prefs.Bool
	VTiming         prefs.Bool
	Comb            prefs.Bool

	// decoder hardware
	Generation prefs.String

	// log the activity of the adaptive loops
	DebugLoops prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. An empty path means the default prefs file in the
// resources directory.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}

	opts := []string{format.Auto.String()}
	for _, f := range format.List {
		opts = append(opts, f.String())
	}
	p.ForceFormat.SetOptions(opts...)
	p.NonStdForce.SetOptions(nonstd.Forces...)
	p.Generation.SetOptions(hardware.Generations...)

	p.SetDefaults()

	if path == "" {
		var err error
		path, err = resources.JoinPath(prefs.DefaultPrefsFile)
		if err != nil {
			return nil, err
		}
	}

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	for _, e := range []struct {
		key string
		p   prefs.Pref
	}{
		{"search.settle", &p.Settle},
		{"search.retries", &p.Retries},
		{"search.shift", &p.Shift},
		{"search.forceFormat", &p.ForceFormat},
		{"search.ignorePalNtsc", &p.IgnorePALNTSC},
		{"search.ignoreBurstClass", &p.IgnoreBurstClass},
		{"search.ntsc50", &p.NTSC50},
		{"nonstd.force", &p.NonStdForce},
		{"tuning.gain", &p.Gain},
		{"tuning.chroma", &p.Chroma},
		{"tuning.chromaThreshold", &p.ChromaThreshold},
		{"tuning.htiming", &p.HTiming},
		{"tuning.vtiming", &p.VTiming},
		{"tuning.comb", &p.Comb},
		{"hardware.generation", &p.Generation},
		{"debug.loops", &p.DebugLoops},
	} {
		if err := p.dsk.Add(e.key, e.p); err != nil {
			return nil, err
		}
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all preferences to the default values.
func (p *Preferences) SetDefaults() {
	def := search.DefaultSettings()
	_ = p.Settle.Set(def.Settle)
	_ = p.Retries.Set(def.Retries)
	_ = p.Shift.Set(def.Shift)
	_ = p.ForceFormat.Set(format.Auto.String())
	_ = p.IgnorePALNTSC.Set(false)
	_ = p.IgnoreBurstClass.Set(false)
	_ = p.NTSC50.Set(false)
	_ = p.NonStdForce.Set(nonstd.ForceAuto.String())
	_ = p.Gain.Set(true)
	_ = p.Chroma.Set(true)
	_ = p.ChromaThreshold.Set(tuning.ChromaThreshold)
	_ = p.HTiming.Set(true)
	_ = p.VTiming.Set(true)
	_ = p.Comb.Set(true)
	_ = p.Generation.Set(hardware.GXTVBB.String())
	_ = p.DebugLoops.Set(false)
}

// Reset all preferences to the default values. The values are not saved.
func (p *Preferences) Reset() {
	p.SetDefaults()
}

// Load current preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Settings returns the format search preferences as a search.Settings value.
func (p *Preferences) Settings() search.Settings {
	// the options on the ForceFormat preference mean that the parse will not
	// fail. AUTO parses as format.Auto
	force, _ := format.Parse(p.ForceFormat.String())

	return search.Settings{
		Settle:           p.Settle.Get().(int),
		Retries:          p.Retries.Get().(int),
		Shift:            p.Shift.Get().(int),
		ForceFormat:      force,
		IgnorePALNTSC:    p.IgnorePALNTSC.Get().(bool),
		IgnoreBurstClass: p.IgnoreBurstClass.Get().(bool),
		NTSC50:           p.NTSC50.Get().(bool),
	}
}

// Force returns the non-standard force policy.
func (p *Preferences) Force() nonstd.Force {
	f, _ := nonstd.ParseForce(p.NonStdForce.String())
	return f
}

// HardwareGeneration returns the decoder hardware generation.
func (p *Preferences) HardwareGeneration() hardware.Generation {
	g, _ := hardware.ParseGeneration(p.Generation.String())
	return g
}
