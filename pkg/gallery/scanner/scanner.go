package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"

	"github.com/davidweihrauch/gallerist/pkg/gallery/logging"
	"github.com/davidweihrauch/gallerist/pkg/gallery/types"
)

var logger = logging.Get("scanner")

// ErrDiscovery marks fatal discovery failures: an unreadable root or an
// inaccessible subtree. Nothing downstream runs when discovery fails.
var ErrDiscovery = errors.New("media discovery failed")

// Scanner walks a directory tree and collects media files.
type Scanner struct {
	opts Options

	dirsScanned  atomic.Int64
	filesScanned atomic.Int64
	bytesScanned atomic.Int64
}

// New creates a Scanner with the given options.
func New(opts Options) *Scanner {
	_ = opts.Validate()
	return &Scanner{opts: opts}
}

// Scan performs the walk and returns every media file under the root,
// sorted lexicographically by absolute path. The sort happens after the
// full walk completes, so output is stable across repeated runs on an
// unchanged filesystem regardless of OS directory-entry ordering.
//
// Any walk error aborts the scan with an error wrapping ErrDiscovery;
// a partial list is never returned.
func (s *Scanner) Scan(ctx context.Context) ([]types.MediaFile, error) {
	root, err := s.validateRoot()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiscovery, err)
	}

	logger.Debug("starting discovery walk", "root", root)

	s.dirsScanned.Store(0)
	s.filesScanned.Store(0)
	s.bytesScanned.Store(0)

	var (
		results   []types.MediaFile
		resultsMu sync.Mutex
	)

	conf := fastwalk.Config{
		Follow: false, // never follow symlinks; avoids link loops
	}

	walkErr := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// A subtree we cannot list is a fatal discovery error, not a
		// silent skip.
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		if s.isExcluded(path) {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			s.dirsScanned.Add(1)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		s.filesScanned.Add(1)
		if !types.IsMediaPath(path) {
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return fmt.Errorf("stat %s: %w", path, infoErr)
		}
		s.bytesScanned.Add(info.Size())

		resultsMu.Lock()
		results = append(results, types.MediaFile{Path: path, Size: info.Size()})
		resultsMu.Unlock()
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrDiscovery, walkErr)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})

	logger.Info("discovery complete",
		"media_files", len(results),
		"files_seen", s.filesScanned.Load(),
		"dirs", s.dirsScanned.Load())

	return results, nil
}

// Stats returns walk counters: directories visited, regular files seen,
// and total bytes across discovered media files.
func (s *Scanner) Stats() (dirs, files, bytes int64) {
	return s.dirsScanned.Load(), s.filesScanned.Load(), s.bytesScanned.Load()
}

// validateRoot resolves the root path to absolute and verifies it is a
// readable directory.
func (s *Scanner) validateRoot() (string, error) {
	root, err := filepath.Abs(s.opts.Root)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: not a directory", root)
	}
	return root, nil
}

// isExcluded checks if a path matches any exclusion pattern.
func (s *Scanner) isExcluded(path string) bool {
	for _, pattern := range s.opts.Exclude {
		if matchesExclusionPattern(path, pattern) {
			return true
		}
	}
	return false
}

// matchesExclusionPattern checks a path against a single exclusion pattern:
// exact or prefix match for directory patterns, then glob matching against
// the basename and the full path.
func matchesExclusionPattern(path, pattern string) bool {
	if pattern == "" {
		return false
	}

	if path == pattern {
		return true
	}
	if len(path) > len(pattern) && path[:len(pattern)+1] == pattern+string(filepath.Separator) {
		return true
	}

	if matched, err := filepath.Match(pattern, filepath.Base(path)); err == nil && matched {
		return true
	}
	if matched, err := filepath.Match(pattern, path); err == nil && matched {
		return true
	}
	return false
}
