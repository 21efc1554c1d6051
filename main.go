// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"gocs/commandline"
	"gocs/conlog"
	"gocs/cvar"
	"gocs/cvars"
	"gocs/level"
	"gocs/lighting"
	"gocs/world"
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		slog.Error("Failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	for _, s := range commandline.Sets() {
		if err := cvar.Parse(s); err != nil {
			return errors.Wrap(err, "-set")
		}
	}
	conlog.Init(os.Stderr, commandline.Debug() || cvars.Developer.Bool())

	if commandline.Scene() == "" {
		return errors.New("no scene given, use -scene")
	}
	sc, err := level.Load(commandline.Scene(), world.FromCvars())
	if err != nil {
		return err
	}
	conlog.Printf("%d lightmaps\n", sc.World.SetupLightmaps())

	for _, r := range lighting.LightAll(sc.Lights, lighting.FromCvars()) {
		conlog.Printf("%-24s %v, %d/%d direct polygons, %d sectors, %d visits\n", r.Light.Name, r.Stats, r.Direct, r.Polygons, len(r.Sectors), r.Visits)
	}

	if dir := commandline.DumpDirectory(); dir != "" {
		n, err := dumpLightmaps(sc.World, dir, commandline.DumpFormat())
		if err != nil {
			return err
		}
		conlog.Printf("wrote %d lightmaps to %s\n", n, dir)
	}
	return nil
}
