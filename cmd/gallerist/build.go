package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/davidweihrauch/gallerist/pkg/gallery/builder"
	"github.com/davidweihrauch/gallerist/pkg/gallery/config"
	"github.com/davidweihrauch/gallerist/pkg/gallery/logging"
	"github.com/davidweihrauch/gallerist/pkg/gallery/types"
)

// runBuild is the main build command handler.
func runBuild(_ *cobra.Command, args []string) error {
	// Determine scan root
	root := viper.GetString("root")
	if len(args) > 0 {
		root = args[0]
	}

	// Expand ~ in paths
	expandedRoot, err := config.ExpandPath(root)
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}
	output, err := config.ExpandPath(viper.GetString("output"))
	if err != nil {
		return fmt.Errorf("failed to expand path: %w", err)
	}

	// Convert to absolute path
	absRoot, err := filepath.Abs(expandedRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	// Verify path exists and is accessible
	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", absRoot)
		}
		return fmt.Errorf("cannot access path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", absRoot)
	}

	if err := initLogging(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg := &config.Config{
		Root:    absRoot,
		Output:  output,
		BaseURL: viper.GetString("base_url"),
		Workers: viper.GetInt("workers"),
		Format:  viper.GetString("format"),
		Exclude: viper.GetStringSlice("exclude"),
	}

	printVerbose("Root: %s", cfg.Root)
	printVerbose("Output: %s (format %s)", cfg.Output, cfg.Format)
	printVerbose("Workers: %d, exclude: %v", cfg.Workers, cfg.Exclude)

	// Cancel the build on Ctrl+C so a partial manifest never lands
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := builder.Build(ctx, cfg)
	if err != nil {
		return err
	}

	printInfo("Wrote %d entries to %s (%s scanned in %s)",
		summary.Entries, cfg.Output,
		humanize.IBytes(uint64(summary.BytesScanned)),
		summary.Elapsed.Round(time.Millisecond))
	printVerbose("Timestamps: %d exif, %d mtime, %d filename, %d none",
		summary.BySource[types.SourceExif],
		summary.BySource[types.SourceMtime],
		summary.BySource[types.SourceFilename],
		summary.BySource[types.SourceNone])

	return nil
}

// initLogging configures the logging package from flags and config.
func initLogging() error {
	level := viper.GetString("logging.level")
	if getVerbose() {
		level = "debug"
	} else if getQuiet() {
		level = "error"
	}

	return logging.Init(logging.Config{
		Level:      level,
		Components: viper.GetStringMapString("logging.components"),
	})
}
