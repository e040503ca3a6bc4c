// Package builder wires the gallery pipeline together: discovery, batch
// timestamp resolution, URL mapping, and manifest assembly. Configuration
// is passed in explicitly, so several galleries can be built in one
// process.
package builder

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/davidweihrauch/gallerist/pkg/gallery/config"
	"github.com/davidweihrauch/gallerist/pkg/gallery/logging"
	"github.com/davidweihrauch/gallerist/pkg/gallery/manifest"
	"github.com/davidweihrauch/gallerist/pkg/gallery/resolver"
	"github.com/davidweihrauch/gallerist/pkg/gallery/scanner"
	"github.com/davidweihrauch/gallerist/pkg/gallery/types"
	"github.com/davidweihrauch/gallerist/pkg/gallery/urlpath"
)

// Summary describes a completed build.
type Summary struct {
	// Entries is the number of manifest entries written.
	Entries int

	// BySource counts entries per timestamp source.
	BySource map[types.TimestampSource]int

	// BytesScanned is the total size of all discovered media files.
	BytesScanned int64

	// Elapsed is the wall-clock build duration.
	Elapsed time.Duration
}

// WithTimestamp returns the number of entries that resolved a timestamp.
func (s *Summary) WithTimestamp() int {
	return s.Entries - s.BySource[types.SourceNone]
}

// Build scans cfg.Root, resolves a timestamp for every media file, and
// writes the manifest to cfg.Output. Discovery and final-write failures
// are fatal; everything per-file degrades to an entry without a timestamp.
// Every discovered file produces exactly one manifest entry.
func Build(ctx context.Context, cfg *config.Config) (*Summary, error) {
	start := time.Now()
	logger := logging.Get("builder").With("run_id", uuid.NewString())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}

	logger.Info("building gallery manifest",
		"root", root, "output", cfg.Output, "workers", cfg.Workers)

	scan := scanner.New(scanner.Options{Root: root, Exclude: cfg.Exclude})
	files, err := scan.Scan(ctx)
	if err != nil {
		return nil, err
	}

	// The walk is complete and sorted; only now does per-file resolution
	// start, bounded by the worker limit.
	resolved := resolver.ResolveAll(ctx, files, cfg.Workers)

	urls := urlpath.New(root, cfg.BaseURL)
	entries := make([]types.GalleryEntry, len(files))
	bySource := make(map[types.TimestampSource]int)
	var bytesScanned int64

	for i, file := range files {
		src, err := urls.Resolve(file.Path)
		if err != nil {
			// Unreachable for paths produced by the walk, but a dropped
			// entry would break the one-file-one-entry invariant, so
			// treat it as fatal rather than skipping.
			return nil, fmt.Errorf("mapping %s: %w", file.Path, err)
		}
		entries[i] = types.NewGalleryEntry(src, resolved[i])
		bySource[entries[i].TakenAtSource]++
		bytesScanned += file.Size
	}

	asm, err := manifest.New(manifest.Format(cfg.Format))
	if err != nil {
		return nil, err
	}
	if err := asm.Write(cfg.Output, entries); err != nil {
		return nil, err
	}

	summary := &Summary{
		Entries:      len(entries),
		BySource:     bySource,
		BytesScanned: bytesScanned,
		Elapsed:      time.Since(start),
	}

	logger.Info("build complete",
		"entries", summary.Entries,
		"with_timestamp", summary.WithTimestamp(),
		"exif", bySource[types.SourceExif],
		"mtime", bySource[types.SourceMtime],
		"filename", bySource[types.SourceFilename],
		"none", bySource[types.SourceNone],
		"scanned", humanize.IBytes(uint64(bytesScanned)),
		"elapsed", summary.Elapsed.Round(time.Millisecond))

	return summary, nil
}
