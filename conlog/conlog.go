// SPDX-License-Identifier: GPL-2.0-or-later

// Package conlog routes user facing console output and sets up the
// structured logger.
package conlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

var (
	p  func(string, ...interface{})
	sp func(string, ...interface{})
)

func stdout(format string, v ...interface{}) {
	fmt.Fprintf(os.Stdout, format, v...)
}

// SetPrintf replaces the console printer. nil restores stdout.
func SetPrintf(f func(string, ...interface{})) {
	p = f
}

// SetSafePrintf replaces the printer used for listings. nil restores stdout.
func SetSafePrintf(f func(string, ...interface{})) {
	sp = f
}

func Printf(format string, v ...interface{}) {
	if p == nil {
		stdout(format, v...)
		return
	}
	p(format, v...)
}

func SafePrintf(format string, v ...interface{}) {
	if sp == nil {
		stdout(format, v...)
		return
	}
	sp(format, v...)
}

// Init installs a text handler writing to w as the default slog logger.
func Init(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}
