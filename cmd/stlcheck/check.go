package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/stlcheck/internal/logger"
	"github.com/philipparndt/stlcheck/pkg/analysis"
	"github.com/philipparndt/stlcheck/pkg/stl"
	"github.com/philipparndt/stlcheck/pkg/watcher"
)

type checkOptions struct {
	json           bool
	fixOrientation string
}

var (
	checkJSON           bool
	checkWatch          bool
	checkFixOrientation string
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Analyze an STL file for printability defects",
	Long: `Analyze an STL file and report degenerate faces, non-manifold and boundary
edges, disconnected components, watertightness and inconsistently wound faces.`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output the report as JSON")
	checkCmd.Flags().BoolVarP(&checkWatch, "watch", "w", false, "Re-run the analysis whenever the file changes")
	checkCmd.Flags().StringVar(&checkFixOrientation, "fix-orientation", "", "Write a copy with consistent face winding to this STL file")
}

func runCheck(cmd *cobra.Command, args []string) {
	opts := checkOptions{json: checkJSON, fixOrientation: checkFixOrientation}

	if err := check(cmd.Context(), cmd.OutOrStdout(), args[0], opts, checkWatch); err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing STL file: %v\n", err)
		os.Exit(1)
	}
}

// check reports filename once and, when watch is set, again on every change.
// While watching, a failing first run is logged instead of returned.
func check(ctx context.Context, w io.Writer, filename string, opts checkOptions, watch bool) error {
	if err := checkFile(w, filename, opts); err != nil {
		if !watch {
			return err
		}
		logger.Error("analysis failed, waiting for changes", zap.String("file", filename), zap.Error(err))
	}

	if !watch {
		return nil
	}
	if err := watchFile(ctx, w, filename, opts); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filename, err)
	}
	return nil
}

// checkFile loads, analyzes and reports a single file.
func checkFile(w io.Writer, filename string, opts checkOptions) error {
	m, err := stl.Load(filename)
	if err != nil {
		return err
	}

	result, err := analysis.Run(m)
	if err != nil {
		return err
	}
	logger.Debug("analysis finished",
		zap.String("file", filename),
		zap.Int("faces", m.NumFaces()),
		zap.Int("edges", result.Edges.Len()),
		zap.Int("components", len(result.Components)),
	)

	if opts.json {
		err = analysis.WriteJSON(w, result.Report)
	} else {
		err = analysis.WriteText(w, result.Report, filename)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if opts.fixOrientation == "" {
		return nil
	}
	fixed := m.WithFaces(result.Orientation.Corrected)
	if err := stl.WriteFile(opts.fixOrientation, &stl.Model{Name: m.Name, Triangles: fixed.Triangles()}); err != nil {
		return fmt.Errorf("failed to write corrected mesh: %w", err)
	}
	logger.Info("wrote corrected mesh",
		zap.String("file", opts.fixOrientation),
		zap.Int("flipped", len(result.Orientation.Flipped)),
		zap.Int("skipped_components", len(result.Orientation.Failed)),
	)
	return nil
}

// watchFile re-runs checkFile on every change until interrupted.
func watchFile(ctx context.Context, w io.Writer, filename string, opts checkOptions) error {
	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	err = fw.Watch([]string{filename}, func(string) {
		fmt.Fprintln(w)
		if err := checkFile(w, filename, opts); err != nil {
			logger.Error("re-analysis failed", zap.String("file", filename), zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching for changes", zap.String("file", filename))
	if err := fw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
