// Package config resolves runtime settings from defaults, an optional config
// file, environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/catalogue"
	"github.com/litescript/ls-orrery/internal/sim"
	"github.com/litescript/ls-orrery/internal/state"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix is prepended to environment overrides, e.g. LS_ORRERY_STEP.
const EnvPrefix = "LS_ORRERY"

// Keys
const (
	KeyCatalogue    = "catalogue"
	KeyStep         = "step"
	KeyFPS          = "fps"
	KeySeed         = "seed"
	KeyRadiusScale  = "radius_scale"
	KeyTrack        = "track"
	KeyEpochJD      = "epoch_jd"
	KeyView         = "view"
	KeyLogLevel     = "log_level"
	KeyLogFile      = "log_file"
	KeyHeadless     = "headless"
	KeyFrames       = "frames"
	KeySummary      = "summary"
	KeySnapshotPath = "snapshot_path"
	KeyASCII        = "ascii"
	KeyWidth        = "width"
	KeyHeight       = "height"
)

// Limits
const (
	MinFPS = 1
	MaxFPS = 120
)

// Config holds resolved settings.
type Config struct {
	Catalogue   string
	Step        float64 // Simulated days per frame
	FPS         int
	Seed        int64 // Initial orbit seed, 0 picks one from the clock
	RadiusScale float64
	Track       string
	EpochJD     float64
	View        camera.Mode
	LogLevel    string
	LogFile     string

	// Headless
	Headless     bool
	Frames       int
	Summary      bool
	SnapshotPath string
	ASCII        bool
	Width        int
	Height       int
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Catalogue:   "data/sys",
		Step:        sim.DefaultStep,
		FPS:         30,
		RadiusScale: catalogue.DefaultRadiusScale,
		Track:       state.DefaultTrackName,
		EpochJD:     sim.J2000,
		View:        camera.ModeTop,
		LogLevel:    "info",
		LogFile:     "ls-orrery.log",
		Frames:      1,
		Width:       100,
		Height:      40,
	}
}

// SetDefaults registers the defaults with v and enables environment
// overrides.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyCatalogue, d.Catalogue)
	v.SetDefault(KeyStep, d.Step)
	v.SetDefault(KeyFPS, d.FPS)
	v.SetDefault(KeySeed, d.Seed)
	v.SetDefault(KeyRadiusScale, d.RadiusScale)
	v.SetDefault(KeyTrack, d.Track)
	v.SetDefault(KeyEpochJD, d.EpochJD)
	v.SetDefault(KeyView, d.View.String())
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyHeadless, d.Headless)
	v.SetDefault(KeyFrames, d.Frames)
	v.SetDefault(KeySummary, d.Summary)
	v.SetDefault(KeySnapshotPath, d.SnapshotPath)
	v.SetDefault(KeyASCII, d.ASCII)
	v.SetDefault(KeyWidth, d.Width)
	v.SetDefault(KeyHeight, d.Height)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// ReadFile loads an explicit config file, or looks for ls-orrery.{yaml,toml,json}
// in the working directory when path is empty. A missing default file is
// not an error.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("ls-orrery")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("%w: reading config: %v", ErrInvalidConfig, err)
	}
	return nil
}

// FromViper resolves a Config from v and validates it.
func FromViper(v *viper.Viper) (Config, error) {
	mode, err := camera.ParseMode(v.GetString(KeyView))
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := Config{
		Catalogue:    v.GetString(KeyCatalogue),
		Step:         v.GetFloat64(KeyStep),
		FPS:          v.GetInt(KeyFPS),
		Seed:         v.GetInt64(KeySeed),
		RadiusScale:  v.GetFloat64(KeyRadiusScale),
		Track:        v.GetString(KeyTrack),
		EpochJD:      v.GetFloat64(KeyEpochJD),
		View:         mode,
		LogLevel:     v.GetString(KeyLogLevel),
		LogFile:      v.GetString(KeyLogFile),
		Headless:     v.GetBool(KeyHeadless),
		Frames:       v.GetInt(KeyFrames),
		Summary:      v.GetBool(KeySummary),
		SnapshotPath: v.GetString(KeySnapshotPath),
		ASCII:        v.GetBool(KeyASCII),
		Width:        v.GetInt(KeyWidth),
		Height:       v.GetInt(KeyHeight),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Catalogue == "" {
		errs = append(errs, errors.New("catalogue path is empty"))
	}
	if !(c.Step > 0) {
		errs = append(errs, fmt.Errorf("step must be positive, got %v", c.Step))
	}
	if c.FPS < MinFPS || c.FPS > MaxFPS {
		errs = append(errs, fmt.Errorf("fps must be in [%d, %d], got %d", MinFPS, MaxFPS, c.FPS))
	}
	if !(c.RadiusScale > 0) {
		errs = append(errs, fmt.Errorf("radius_scale must be positive, got %v", c.RadiusScale))
	}
	if !c.View.Valid() {
		errs = append(errs, fmt.Errorf("view: %w", camera.ErrUnknownMode))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, got %d", c.Frames))
	}
	if c.Width < 1 || c.Height < 1 {
		errs = append(errs, fmt.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// FrameInterval returns the wall-clock time between frames.
func (c Config) FrameInterval() time.Duration {
	fps := c.FPS
	if fps < MinFPS {
		fps = MinFPS
	}
	return time.Second / time.Duration(fps)
}

// CatalogueOptions returns loader options for this configuration. A zero
// seed is replaced with one derived from now.
func (c Config) CatalogueOptions(now time.Time) catalogue.Options {
	seed := c.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	opts := catalogue.DefaultOptions(seed)
	opts.RadiusScale = c.RadiusScale
	return opts
}

// StateConfig returns the AppState settings for this configuration.
func (c Config) StateConfig() state.Config {
	sc := state.DefaultConfig()
	sc.Step = c.Step
	sc.EpochJD = c.EpochJD
	sc.TrackName = c.Track
	sc.InitialMode = c.View
	return sc
}
