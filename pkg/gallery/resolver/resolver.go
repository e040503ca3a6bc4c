// Package resolver decides the "taken at" timestamp for each media file by
// composing an ordered list of probes: embedded metadata, then filesystem
// modification time, then filename inference. The first probe that yields a
// value wins and its identity is recorded as provenance; sources are never
// blended.
package resolver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/davidweihrauch/gallerist/pkg/gallery/exifdata"
	"github.com/davidweihrauch/gallerist/pkg/gallery/filedate"
	"github.com/davidweihrauch/gallerist/pkg/gallery/logging"
	"github.com/davidweihrauch/gallerist/pkg/gallery/types"
)

var logger = logging.Get("resolver")

// DefaultWorkers is the concurrency bound for batch resolution. It caps
// simultaneous open file handles and the memory held by in-flight EXIF
// reads on large galleries.
const DefaultWorkers = 8

// Probe is a single zero-argument timestamp source. Probes fail soft:
// ok=false means "try the next source", never an error.
type Probe struct {
	// Source tags the provenance recorded when this probe succeeds.
	Source types.TimestampSource

	// Look attempts to produce a timestamp.
	Look func() (time.Time, bool)
}

// Chain runs probes in order and returns the first hit with its source.
// When every probe misses, the result carries SourceNone and a zero time.
func Chain(probes ...Probe) types.ResolvedTimestamp {
	for _, p := range probes {
		if t, ok := p.Look(); ok {
			return types.ResolvedTimestamp{Time: t, Source: p.Source}
		}
	}
	return types.ResolvedTimestamp{Source: types.SourceNone}
}

// Resolve produces the timestamp for one file using the standard chain:
// embedded metadata, filesystem mtime, filename pattern.
func Resolve(file types.MediaFile) types.ResolvedTimestamp {
	return Chain(
		Probe{Source: types.SourceExif, Look: func() (time.Time, bool) {
			return exifdata.TakenAtFile(file.Path)
		}},
		Probe{Source: types.SourceMtime, Look: func() (time.Time, bool) {
			return mtime(file.Path)
		}},
		Probe{Source: types.SourceFilename, Look: func() (time.Time, bool) {
			return filedate.FromName(filepath.Base(file.Path))
		}},
	)
}

// mtime reads the filesystem modification time. Fails soft on stat errors,
// e.g. a race with deletion.
func mtime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// ResolveAll resolves every file with at most workers resolutions in
// flight. Each worker writes only its own slot, so results[i] always
// corresponds to files[i] regardless of completion order and no locking is
// needed. A failure on one file degrades that file alone to SourceNone;
// the batch always completes.
func ResolveAll(ctx context.Context, files []types.MediaFile, workers int) []types.ResolvedTimestamp {
	return resolveAll(ctx, files, workers, Resolve)
}

func resolveAll(ctx context.Context, files []types.MediaFile, workers int, resolve func(types.MediaFile) types.ResolvedTimestamp) []types.ResolvedTimestamp {
	if workers < 1 {
		workers = DefaultWorkers
	}

	results := make([]types.ResolvedTimestamp, len(files))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, file := range files {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			// Remaining files keep their zero value; mark them unresolved
			// so the invariant of one entry per file still holds.
			for j := i; j < len(files); j++ {
				results[j] = types.ResolvedTimestamp{Source: types.SourceNone}
			}
			wg.Wait()
			return results
		}

		wg.Add(1)
		go func(i int, file types.MediaFile) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = resolve(file)
		}(i, file)
	}
	wg.Wait()

	logger.Debug("batch resolution complete", "files", len(files), "workers", workers)
	return results
}
