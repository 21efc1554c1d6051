// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"strings"
)

var (
	debug bool

	dump   string
	format string
	scene  string

	sets stringList
)

// stringList collects every occurrence of a repeatable flag.
type stringList []string

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func init() {
	flag.BoolVar(&debug, "debug", false, "enable debug logging")

	flag.StringVar(&dump, "dump", "", "directory to write the lightmaps to as png")
	flag.StringVar(&format, "format", "png", "lightmap dump format, png or tga")
	flag.StringVar(&scene, "scene", "", "glTF scene to light")

	flag.Var(&sets, "set", "set a cvar, name=value, may be repeated")
}

func Debug() bool {
	return debug
}

func DumpDirectory() string {
	return dump
}

func DumpFormat() string {
	return format
}

func Scene() string {
	return scene
}

// Sets returns the cvar assignments in command line order.
func Sets() []string {
	return sets
}
