// Command ls-orrery is a terminal orrery: a scaled, animated model of a
// planetary system viewed through a choice of cameras.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/litescript/ls-orrery/internal/catalogue"
	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/ui"
	"github.com/litescript/ls-orrery/internal/version"
)

// Exit codes
const (
	exitOK                   = 0
	exitRuntime              = 1
	exitCatalogueUnavailable = 2
	exitCatalogueInvalid     = 3
	exitConfig               = 4
)

// exitError carries the process exit code for a failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func fail(code int, err error) error {
	return &exitError{code: code, err: err}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and maps the outcome to an exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	var ee *exitError
	if !errors.As(err, &ee) {
		// Flag parsing and other cobra errors
		return exitConfig
	}
	if ee.code == exitCatalogueUnavailable {
		fmt.Fprintf(stderr, "\n%s\n", catalogue.Guidance)
	}
	return ee.code
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	d := config.Default()

	var configPath string

	cmd := &cobra.Command{
		Use:           "ls-orrery [catalogue]",
		Short:         "Animated terminal orrery",
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				v.Set(config.KeyCatalogue, args[0])
			}
			if err := config.ReadFile(v, configPath); err != nil {
				return fail(exitConfig, err)
			}
			cfg, err := config.FromViper(v)
			if err != nil {
				return fail(exitConfig, err)
			}
			return runOrrery(cmd.Context(), cfg, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "Config file (default ./ls-orrery.{yaml,toml,json})")
	f.String("catalogue", d.Catalogue, "Body catalogue file")
	f.Float64("step", d.Step, "Simulated days per frame")
	f.Int("fps", d.FPS, "Frames per second")
	f.Int64("seed", d.Seed, "Initial orbit angle seed (0 = from clock)")
	f.Float64("radius-scale", d.RadiusScale, "Body radius magnification")
	f.String("track", d.Track, "Body followed by the tracking view")
	f.Float64("epoch-jd", d.EpochJD, "Julian day of simulated day 0")
	f.String("view", d.View.String(), "Initial view (top, ecliptic, ship, tracking, freefly)")
	f.String("log-level", d.LogLevel, "Log level (debug, info, warn, error)")
	f.String("log-file", d.LogFile, "Log file used while the TUI runs")
	f.Bool("headless", d.Headless, "Run without the TUI")
	f.Int("frames", d.Frames, "Frames to simulate in headless mode")
	f.Bool("summary", d.Summary, "Print a body summary table")
	f.String("snapshot-path", d.SnapshotPath, "Export JSON snapshot to file (use - for stdout)")
	f.Bool("ascii", d.ASCII, "Print one rendered frame as plain text")
	f.Int("width", d.Width, "Headless frame width in cells")
	f.Int("height", d.Height, "Headless frame height in cells")

	bindings := map[string]string{
		config.KeyCatalogue:    "catalogue",
		config.KeyStep:         "step",
		config.KeyFPS:          "fps",
		config.KeySeed:         "seed",
		config.KeyRadiusScale:  "radius-scale",
		config.KeyTrack:        "track",
		config.KeyEpochJD:      "epoch-jd",
		config.KeyView:         "view",
		config.KeyLogLevel:     "log-level",
		config.KeyLogFile:      "log-file",
		config.KeyHeadless:     "headless",
		config.KeyFrames:       "frames",
		config.KeySummary:      "summary",
		config.KeySnapshotPath: "snapshot-path",
		config.KeyASCII:        "ascii",
		config.KeyWidth:        "width",
		config.KeyHeight:       "height",
	}
	for key, name := range bindings {
		if err := v.BindPFlag(key, f.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
	return cmd
}

// runOrrery loads the catalogue and starts either the TUI or a headless run.
func runOrrery(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fail(exitConfig, err)
	}

	bodies, err := catalogue.Load(cfg.Catalogue, cfg.CatalogueOptions(time.Now()))
	if err != nil {
		if errors.Is(err, catalogue.ErrCatalogueUnavailable) {
			return fail(exitCatalogueUnavailable, err)
		}
		return fail(exitCatalogueInvalid, err)
	}

	st, err := state.New(bodies, cfg.StateConfig())
	if err != nil {
		if errors.Is(err, state.ErrNoBodies) {
			return fail(exitCatalogueInvalid, err)
		}
		return fail(exitConfig, err)
	}

	if wantHeadless(cfg, stdout) {
		logger := logging.New(level, stderr).With("headless")
		logger.Debug("loaded %d bodies from %s", len(bodies), cfg.Catalogue)
		if err := runHeadless(ctx, cfg, st, stdout, logger); err != nil {
			return fail(exitRuntime, err)
		}
		return nil
	}

	logger, closer, err := logging.OpenFile(level, cfg.LogFile)
	if err != nil {
		return fail(exitRuntime, err)
	}
	defer closer.Close()
	logger.Info("ls-orrery %s: %d bodies from %s, %d fps", version.Version, len(bodies), cfg.Catalogue, cfg.FPS)

	model := ui.New(st, ui.Options{
		FrameInterval: cfg.FrameInterval(),
		Logger:        logger,
	})
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Info("interrupted")
			return nil
		}
		logger.Error("TUI failed: %v", err)
		return fail(exitRuntime, fmt.Errorf("running TUI: %w", err))
	}
	logger.Info("quit")
	return nil
}

// wantHeadless reports whether to skip the TUI: when asked to, when any
// headless output is requested, or when stdout is not a terminal.
func wantHeadless(cfg config.Config, stdout io.Writer) bool {
	if cfg.Headless || cfg.Summary || cfg.ASCII || cfg.SnapshotPath != "" {
		return true
	}
	f, ok := stdout.(*os.File)
	return !ok || !term.IsTerminal(int(f.Fd()))
}
