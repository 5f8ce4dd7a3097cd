package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/litescript/ls-orrery/internal/config"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/report"
	"github.com/litescript/ls-orrery/internal/state"
)

// runHeadless advances the simulation cfg.Frames frames and writes the
// requested outputs. With no output selected it prints the summary table.
// An interrupted run writes nothing and returns the context error.
func runHeadless(ctx context.Context, cfg config.Config, st *state.AppState, stdout io.Writer, log *logging.Logger) error {
	for i := 0; i < cfg.Frames; i++ {
		if err := ctx.Err(); err != nil {
			log.Warn("interrupted after %d of %d frames", i, cfg.Frames)
			return fmt.Errorf("interrupted after %d of %d frames: %w", i, cfg.Frames, err)
		}
		st.Frame()
	}
	snap := st.Snapshot()
	log.Info("simulated %d frames to %s (day %.1f)", snap.Frame, snap.Calendar, snap.Date)

	if cfg.SnapshotPath != "" {
		if err := writeSnapshot(cfg.SnapshotPath, snap, stdout); err != nil {
			return err
		}
	}

	if cfg.Summary || (!cfg.ASCII && cfg.SnapshotPath == "") {
		report.WriteSummaryTable(stdout, snap)
	}

	if cfg.ASCII {
		if cfg.Summary {
			fmt.Fprintln(stdout)
		}
		canvas := render.Draw(snap, cfg.Width, cfg.Height, render.DefaultOptions())
		fmt.Fprintln(stdout, canvas.String())
	}
	return nil
}

// writeSnapshot exports snap as JSON to path, or to stdout when path is "-".
func writeSnapshot(path string, snap state.Snapshot, stdout io.Writer) error {
	export := report.ExportSnapshot(snap, time.Now().UTC())
	if path == "-" {
		if err := export.WriteJSON(stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	if err := export.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("write JSON to file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot file: %w", err)
	}
	return nil
}
