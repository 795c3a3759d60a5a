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

package simulation

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jetsetilly/tvafe/curated"
	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/hardware"
	"github.com/jetsetilly/tvafe/signal"
)

// ScenarioError is returned when a scenario cannot be loaded or is invalid.
const ScenarioError = "simulation: scenario: %v"

// SegmentError is returned when a segment of a scenario is invalid.
const SegmentError = "simulation: segment %d: %v"

// Segment describes the input signal for a number of fields.
type Segment struct {
	Fields int `yaml:"fields"`

	// the broadcast standard of the signal. may be empty if NoSignal is true
	Standard string `yaml:"standard"`

	NoSignal bool `yaml:"nosignal"`
	Noisy    bool `yaml:"noisy"`
	HNonStd  bool `yaml:"hnonstd"`
	VNonStd  bool `yaml:"vnonstd"`

	// if not nil the sample is used as the status registers for every field
	// of the segment
	Sample *signal.Sample `yaml:"sample"`

	// digital gain measured at the default PGA value
	DigitalGain uint32 `yaml:"dgain"`

	// measured values. a zero HCount means the nominal count for the standard
	HCount    uint32 `yaml:"hcnt"`
	VLines    uint32 `yaml:"vlines"`
	ChromaSum uint32 `yaml:"chromasum"`
	SyncNoise uint32 `yaml:"syncnoise"`
	Comb3D    uint32 `yaml:"comb3d"`
	WSS       uint32 `yaml:"wss"`

	// the measured horizontal count varies by up to this amount either side
	// of HCount
	Jitter uint32 `yaml:"jitter"`

	// parsed from Standard
	standard format.Format
}

// Scenario is a sequence of segments. The last segment repeats indefinitely
// once the scenario has finished.
type Scenario struct {
	Name       string    `yaml:"name"`
	Generation string    `yaml:"generation"`
	Segments   []Segment `yaml:"segments"`

	// measurement jitter is different on every run. otherwise the same
	// scenario always produces the same measurements
	Randomise bool `yaml:"randomise"`

	generation hardware.Generation
}

// Fields returns the total number of fields in the scenario.
func (s *Scenario) Fields() int {
	var n int
	for _, seg := range s.Segments {
		n += seg.Fields
	}
	return n
}

// HardwareGeneration returns the decoder generation being simulated.
func (s *Scenario) HardwareGeneration() hardware.Generation {
	return s.generation
}

// ParseScenario parses YAML data into a Scenario.
func ParseScenario(data []byte) (*Scenario, error) {
	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, curated.Errorf(ScenarioError, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadScenario reads a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf(ScenarioError, err)
	}
	return ParseScenario(data)
}

func (s *Scenario) validate() error {
	if len(s.Segments) == 0 {
		return curated.Errorf(ScenarioError, "no segments")
	}

	if s.Generation != "" {
		g, err := hardware.ParseGeneration(s.Generation)
		if err != nil {
			return curated.Errorf(ScenarioError, err)
		}
		s.generation = g
	}

	for i := range s.Segments {
		seg := &s.Segments[i]
		if seg.Fields <= 0 {
			return curated.Errorf(SegmentError, i, "fields must be positive")
		}
		if seg.Standard == "" {
			if !seg.NoSignal && seg.Sample == nil {
				return curated.Errorf(SegmentError, i, "no standard")
			}
			continue
		}
		f, err := format.Parse(seg.Standard)
		if err != nil || !f.Valid() {
			return curated.Errorf(SegmentError, i, curated.Errorf(format.UnrecognisedFormat, seg.Standard))
		}
		seg.standard = f
	}

	return nil
}
