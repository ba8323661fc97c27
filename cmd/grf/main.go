package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/handiism/release-fetcher/internal/config"
	"github.com/handiism/release-fetcher/internal/download"
	"github.com/handiism/release-fetcher/internal/format"
)

const programName = "Github Release Fetcher"

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1A3"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))
)

type options struct {
	release    string
	download   bool
	output     string
	include    []string
	exclude    []string
	configPath string
	verbose    bool
	format     string
}

// errCancelled marks a run stopped by SIGINT or SIGTERM.
var errCancelled = errors.New("cancelled")

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if errors.Is(err, errCancelled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "grf <url>",
		Short: "List and download the assets of a GitHub release",
		Long: programName + " " + config.Version + `

Retrieves the list of file assets of a GitHub release and optionally downloads
them. Without --release the latest release is used. Interrupted downloads are
resumed, and every downloaded file is checked against the size in the release
manifest.`,
		Example: `  grf https://github.com/acme/tool
  grf https://github.com/acme/tool/releases/tag/v2.0 -d -o ./releases
  grf https://api.github.com/repos/acme/tool -r v1.0 -d -i tool-linux-amd64.tar.gz`,
		Args:          cobra.ExactArgs(1),
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts, stdout)
		},
	}
	cmd.SetVersionTemplate(programName + " {{.Version}}\n")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&opts.release, "release", "r", "", "specific release tag (e.g. 7.18.1)")
	flags.BoolVarP(&opts.download, "download", "d", false, "download release files")
	flags.StringVarP(&opts.output, "output", "o", "", `output directory for downloaded files (default ".")`)
	flags.StringSliceVarP(&opts.include, "include", "i", nil, "only download these files (repeat or comma-separate)")
	flags.StringSliceVarP(&opts.exclude, "exclude", "e", nil, "exclude these files from download (repeat or comma-separate)")
	flags.StringVar(&opts.configPath, "config", "", "path to config file (YAML, JSON or TOML)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show verbose output")
	flags.StringVar(&opts.format, "format", "", "listing format: text or json")

	return cmd
}

func run(cmd *cobra.Command, reference string, opts *options, stdout io.Writer) error {
	settings, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		settings.OutputDir = opts.output
	}
	if flags.Changed("verbose") {
		settings.Verbose = opts.verbose
	}
	if flags.Changed("format") {
		settings.ListingFormat = opts.format
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	listing, _ := format.ParseListingFormat(settings.ListingFormat)

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "grf"})
	if settings.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Event lines go to stderr for JSON listings so stdout stays parseable.
	events := stdout
	if listing == format.ListingJSON {
		events = cmd.ErrOrStderr()
	}

	bar := format.NewTerminalBar(events)
	manager := download.NewManager(settings, logger, func(event download.ProgressEvent) {
		if event.Level == download.LevelVerbose && !settings.Verbose {
			return
		}
		bar.Flush()
		printEvent(events, event)
	})

	err = manager.Initialize(ctx, download.Request{
		Reference: reference,
		Tag:       opts.release,
		Include:   opts.include,
		Exclude:   opts.exclude,
	})
	if err != nil {
		return err
	}

	if err := format.WriteListing(stdout, manager.Release(), manager.Assets(), listing); err != nil {
		return err
	}

	if !opts.download {
		return nil
	}

	outcomes, err := manager.StartDownloads(ctx, settings.OutputDir, bar)
	bar.Flush()
	if ctx.Err() != nil {
		fmt.Fprintln(events, warningStyle.Render("\nInterrupted, partial files are kept for resuming."))
		return errCancelled
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(events)
	fmt.Fprintln(events, dimStyle.Render("Summary: "+download.Summarize(outcomes).String()))
	return nil
}

func printEvent(w io.Writer, event download.ProgressEvent) {
	switch event.Level {
	case download.LevelError:
		fmt.Fprintln(w, errorStyle.Render(event.Message))
	case download.LevelWarning:
		fmt.Fprintln(w, warningStyle.Render(event.Message))
	case download.LevelSuccess:
		fmt.Fprintln(w, successStyle.Render(event.Message))
	case download.LevelVerbose:
		fmt.Fprintln(w, dimStyle.Render(event.Message))
	default:
		// Headers such as "Downloading: a.zip" are preceded by a blank line.
		fmt.Fprintln(w)
		fmt.Fprintln(w, event.Message)
	}
}
