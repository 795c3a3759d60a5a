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


package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/tvafe/curated"
	"github.com/jetsetilly/tvafe/decoder"
	"github.com/jetsetilly/tvafe/easyterm"
	"github.com/jetsetilly/tvafe/format"
	"github.com/jetsetilly/tvafe/frontend"
	"github.com/jetsetilly/tvafe/hardware"
	"github.com/jetsetilly/tvafe/logger"
	"github.com/jetsetilly/tvafe/modalflag"
	"github.com/jetsetilly/tvafe/monitor"
	"github.com/jetsetilly/tvafe/preferences"
	"github.com/jetsetilly/tvafe/prefs"
	"github.com/jetsetilly/tvafe/simulation"
	"github.com/jetsetilly/tvafe/statsview"
	"github.com/jetsetilly/tvafe/version"
)

// exit values
const (
	exitOK        = 0
	exitParse     = 10
	exitMode      = 20
	exitInterrupt = 30
)

func main() {
	os.Exit(launch(os.Args[1:]))
}

// launch parses the command line and runs the selected mode. returns the
// value to use with os.Exit()
func launch(args []string) int {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("RUN", "MONITOR", "DUMP", "FORMATS", "VERSION")

	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return exitOK

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		return exitParse
	}

	if stats != nil && *stats {
		statsview.Launch(os.Stdout, "")
	}

	// ctrl-c cancels the context. the monitor modes handle keyboard input
	// themselves
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch md.Mode() {
	case "RUN":
		err = run(ctx, md)

	case "MONITOR":
		err = monitorMode(md)

	case "DUMP":
		err = dump(ctx, md)

	case "FORMATS":
		err = formats(md)

	case "VERSION":
		fmt.Println(version.String())
	}

	if err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			fmt.Printf("* %s mode interrupted\n", md)
			return exitInterrupt
		}
		fmt.Printf("* error in %s mode: %s\n", md, err)
		return exitMode
	}

	return exitOK
}

// session is a single port connected to a simulation scenario
type session struct {
	fe   *frontend.Frontend
	port *decoder.Port
	hw   *simulation.Hardware
}

func (s *session) close() {
	s.fe.CloseAll()
}

// portFlags are the flags common to every mode that opens a port
type portFlags struct {
	prefsFile *string
	setPrefs  *string
	port      *int
	manual    *string
	log       *bool
}

func addPortFlags(md *modalflag.Modes) portFlags {
	return portFlags{
		prefsFile: md.AddString("prefs", "", "preferences file to use (default is in the resources directory)"),
		setPrefs:  md.AddString("set", "", "override preferences. eg. \"search.settle::20; tuning.gain::false\""),
		port:      md.AddInt("port", 0, "port number to open (0 to 3). port 3 is the tuner"),
		manual:    md.AddString("manual", "AUTO", fmt.Sprintf("manual format: %s", strings.Join(formatNames(), ", "))),
		log:       md.AddBool("log", false, "echo log to stdout"),
	}
}

func formatNames() []string {
	names := []string{format.Auto.String()}
	for _, f := range format.List {
		names = append(names, f.String())
	}
	return names
}

// open the port named in the flags and connect it to the scenario file
func open(md *modalflag.Modes, flgs portFlags) (*session, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, fmt.Errorf("scenario file required for %s mode", md)
	case 1:
	default:
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}

	if *flgs.log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	scenario, err := simulation.LoadScenario(md.GetArg(0))
	if err != nil {
		return nil, err
	}

	manual, err := format.Parse(*flgs.manual)
	if err != nil {
		return nil, err
	}

	id := decoder.PortID(*flgs.port)
	if !id.Valid() {
		return nil, curated.Errorf(frontend.NoSuchPort, *flgs.port)
	}

	if *flgs.setPrefs != "" {
		prefs.PushCommandLineStack(*flgs.setPrefs)
	}
	prf, err := preferences.NewPreferences(*flgs.prefsFile)
	if *flgs.setPrefs != "" {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "tvafe", "unused preferences: %s", unused)
		}
	}
	if err != nil {
		return nil, err
	}

	// a scenario that names a hardware generation takes priority over the
	// preference
	if scenario.Generation != "" {
		if err := prf.Generation.Set(scenario.HardwareGeneration().String()); err != nil {
			return nil, err
		}
	}

	hw := simulation.NewHardware(scenario)

	fe := frontend.NewFrontend(func(pid decoder.PortID) (hardware.Collaborator, error) {
		if pid != id {
			return nil, fmt.Errorf("no scenario for %s", pid)
		}
		return hw, nil
	}, prf)

	port, err := fe.Open(id)
	if err != nil {
		return nil, err
	}

	if manual != format.Auto {
		if err := port.SetManualFormat(manual); err != nil {
			fe.CloseAll()
			return nil, err
		}
	}

	return &session{fe: fe, port: port, hw: hw}, nil
}

// play the scenario through the port. onChange is called whenever the locked
// format changes
func play(ctx context.Context, s *session, limit int, onChange func(field int, f format.Format)) error {
	var locked format.Format
	for n := 0; !s.hw.Done() && (limit == 0 || n < limit); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.port.Field(); err != nil {
			return err
		}
		if lf := s.port.LockedFormat(); lf != locked {
			locked = lf
			if onChange != nil {
				onChange(n+1, lf)
			}
		}
	}
	return nil
}

func run(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("The scenario is a YAML file describing the input signal field by field.")

	flgs := addPortFlags(md)
	fields := md.AddInt("fields", 0, "number of fields to run (0 runs the whole scenario)")
	tail := md.AddInt("tail", 0, "number of log entries to show on completion")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	s, err := open(md, flgs)
	if err != nil {
		return err
	}
	defer s.close()

	fmt.Printf("%s: %s\n", s.port, s.hw)

	err = play(ctx, s, *fields, func(field int, f format.Format) {
		if f == format.Auto {
			fmt.Printf("%8d  searching\n", field)
		} else {
			fmt.Printf("%8d  %s\n", field, f)
		}
	})
	if err != nil {
		return err
	}

	inf := s.port.Info()
	fmt.Println(monitor.Summary(inf))
	fmt.Println(inf.Properties)

	if *tail > 0 {
		logger.Tail(os.Stdout, *tail)
	}

	return nil
}

func monitorMode(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addPortFlags(md)
	termType := md.AddString("term", "TEA", "terminal type to use in monitor mode: TEA, PLAIN")
	rate := md.AddDuration("rate", 20*time.Millisecond, "time between fields")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// log echoing would interfere with the monitor display
	*flgs.log = false

	s, err := open(md, flgs)
	if err != nil {
		return err
	}
	defer s.close()

	switch strings.ToUpper(*termType) {
	case "TEA":
		err = monitor.RunTEA(s.port, s.hw, *rate, os.Stdin, os.Stdout)
	case "PLAIN":
		var et *easyterm.Terminal
		et, err = easyterm.Open("")
		if err != nil {
			return err
		}
		err = monitor.RunPlain(s.port, s.hw, *rate, et, et.Keys())
		if cerr := et.Close(); err == nil {
			err = cerr
		}
	default:
		return fmt.Errorf("unknown terminal type (%s)", *termType)
	}

	if err != nil {
		return err
	}

	fmt.Println(monitor.Summary(s.port.Info()))
	return nil
}

func dump(ctx context.Context, md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("The port is dumped as a graphviz DOT file after the scenario has run.")

	flgs := addPortFlags(md)
	output := md.AddString("out", "tvafe.dot", "output file")
	fields := md.AddInt("fields", 0, "number of fields to run before dumping (0 runs the whole scenario)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	s, err := open(md, flgs)
	if err != nil {
		return err
	}
	defer s.close()

	if err := play(ctx, s, *fields, nil); err != nil {
		return err
	}

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	defer f.Close()

	memviz.Map(f, s.port)
	fmt.Printf("%s dumped to %s\n", s.port, *output)

	return nil
}

func formats(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	for _, f := range format.List {
		fmt.Printf("%-9s %d lines  %-4s burst=%-4s dto=%#08x\n", f, f.Lines(), colour(f), f.Burst(), f.DTO())
	}

	return nil
}

func colour(f format.Format) string {
	switch {
	case f == format.SECAM:
		return "SECAM"
	case f.PAL():
		return "PAL"
	}
	return "NTSC"
}
