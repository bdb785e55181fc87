// Package logging builds the debug logger used across the installer.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects where debug logs go. With neither sink set the logger
// discards everything.
type Options struct {
	Verbose bool      // debug lines on Stderr
	Stderr  io.Writer // required when Verbose is set
	File    string    // rotating log file path
}

// New returns a logger and a close function that releases the log file.
func New(opts Options) (*slog.Logger, func() error) {
	var sinks []io.Writer
	closeFn := func() error { return nil }

	if opts.Verbose && opts.Stderr != nil {
		sinks = append(sinks, opts.Stderr)
	}
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
		}
		sinks = append(sinks, file)
		closeFn = file.Close
	}

	if len(sinks) == 0 {
		return slog.New(slog.DiscardHandler), closeFn
	}

	w := sinks[0]
	if len(sinks) > 1 {
		w = io.MultiWriter(sinks...)
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), closeFn
}
