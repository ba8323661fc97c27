package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/handiism/release-fetcher/internal/config"
	"github.com/handiism/release-fetcher/internal/tui"
)

func main() {
	var (
		configFlag  = flag.String("config", "", "Path to config file")
		releaseFlag = flag.String("release", "", "Release tag to prefill")
		outputFlag  = flag.String("output", "", "Output directory (overrides config)")
		logFlag     = flag.String("log", "", "Write debug log to this file")
	)
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *outputFlag != "" {
		settings.OutputDir = *outputFlag
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The UI owns the terminal, so logs only go to a file when asked for.
	var logger *log.Logger
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{Level: log.DebugLevel, ReportTimestamp: true})
	}

	if err := tui.Run(settings, logger, flag.Arg(0), *releaseFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
