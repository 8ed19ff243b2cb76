/*
Command telefony reads forwarding-store commands from standard input and
writes query results to standard output, following the language
internal/interp implements.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/p-banach/telefony/internal/interp"
)

func main() {
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	logFormat := flag.String("log-format", "console", "log format: console or json")
	flag.Parse()

	log := newLogger(*logLevel, *logFormat)

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Error().Err(err).Msg("failed reading standard input")
		os.Exit(1)
	}

	ip := interp.New(os.Stdout, log)
	if err := ip.Run(string(input)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	var w io.Writer = os.Stderr
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
