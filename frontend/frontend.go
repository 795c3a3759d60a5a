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

// Package frontend is the control surface for all composite video ports. A
// port must be opened before it can be used and only one user may have a
// port open at a time.
package frontend

import (
	"slices"
	"sync"

	"github.com/jetsetilly/tvafe/curated"
	"github.com/jetsetilly/tvafe/decoder"
	"github.com/jetsetilly/tvafe/hardware"
	"github.com/jetsetilly/tvafe/logger"
	"github.com/jetsetilly/tvafe/preferences"
)

// Sentinal error patterns.
const (
	PortInUse  = "frontend: port %v is in use"
	NoSuchPort = "frontend: no such port (%v)"
	NotOpen    = "frontend: port %v is not open"
)

// Connector returns the hardware collaborator for a port. It is called every
// time a port is opened.
type Connector func(id decoder.PortID) (hardware.Collaborator, error)

// Frontend manages the open ports.
type Frontend struct {
	// crit only guards the ports map. each port serialises its own access
	crit  sync.Mutex
	ports map[decoder.PortID]*decoder.Port

	connect Connector
	prefs   *preferences.Preferences
}

// NewFrontend is the preferred method of initialisation for the Frontend
// type.
func NewFrontend(connect Connector, prefs *preferences.Preferences) *Frontend {
	return &Frontend{
		ports:   make(map[decoder.PortID]*decoder.Port),
		connect: connect,
		prefs:   prefs,
	}
}

// Open a port. Fails if the port is already open.
func (fe *Frontend) Open(id decoder.PortID) (*decoder.Port, error) {
	if !id.Valid() {
		return nil, curated.Errorf(NoSuchPort, id)
	}

	fe.crit.Lock()
	defer fe.crit.Unlock()

	if _, ok := fe.ports[id]; ok {
		return nil, curated.Errorf(PortInUse, id)
	}

	hw, err := fe.connect(id)
	if err != nil {
		return nil, err
	}

	p, err := decoder.NewPort(id, hw, fe.prefs)
	if err != nil {
		return nil, err
	}
	fe.ports[id] = p

	return p, nil
}

// Close a port. Fails if the port is not open.
func (fe *Frontend) Close(id decoder.PortID) error {
	if !id.Valid() {
		return curated.Errorf(NoSuchPort, id)
	}

	fe.crit.Lock()
	defer fe.crit.Unlock()

	p, ok := fe.ports[id]
	if !ok {
		return curated.Errorf(NotOpen, id)
	}
	p.Close()
	delete(fe.ports, id)

	return nil
}

// CloseAll closes every open port.
func (fe *Frontend) CloseAll() {
	fe.crit.Lock()
	defer fe.crit.Unlock()

	for id, p := range fe.ports {
		p.Close()
		delete(fe.ports, id)
	}
	logger.Log(logger.Allow, "tvafe", "all ports closed")
}

// Port returns an open port.
func (fe *Frontend) Port(id decoder.PortID) (*decoder.Port, error) {
	if !id.Valid() {
		return nil, curated.Errorf(NoSuchPort, id)
	}

	fe.crit.Lock()
	defer fe.crit.Unlock()

	p, ok := fe.ports[id]
	if !ok {
		return nil, curated.Errorf(NotOpen, id)
	}
	return p, nil
}

// Opened returns the list of open ports in order.
func (fe *Frontend) Opened() []decoder.PortID {
	fe.crit.Lock()
	defer fe.crit.Unlock()

	ids := make([]decoder.PortID, 0, len(fe.ports))
	for id := range fe.ports {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
