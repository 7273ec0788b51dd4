package main

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
)

// tracer traces with key 'lrzero.lr'.
func tracer() tracing.Trace {
	return tracing.Select("lrzero.lr")
}

// initLogger initializes the user-facing logger.
func initLogger(debug, noColor bool) {
	log.SetDefault(log.NewWithOptions(io.MultiWriter(os.Stderr),
		log.Options{
			ReportCaller:    debug,
			ReportTimestamp: false,
			TimeFormat:      time.RFC3339,
			Prefix:          "lr0",
		}))

	if debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}
}

// initTracing installs a Go-log tracer for the parser packages.
func initTracing(level string) {
	gtrace.SyntaxTracer = gologadapter.New()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(level))
	log.Debug("tracing", "level", level)
}

// We use pterm for moderately fancy output.
func initDisplay(noColor bool) {
	if noColor {
		pterm.DisableColor()
	}
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
