package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/davidweihrauch/gallerist/pkg/gallery/logging"
	"github.com/davidweihrauch/gallerist/pkg/gallery/types"
)

var logger = logging.Get("manifest")

// Assembler sorts gallery entries and serializes them to the output file.
type Assembler struct {
	format Format
}

// New creates an Assembler for the given format.
func New(format Format) (*Assembler, error) {
	switch format {
	case FormatRecords, FormatURLs:
		return &Assembler{format: format}, nil
	case "":
		return &Assembler{format: FormatRecords}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Sort orders entries in place, newest first:
//   - both timestamped: timestamp descending;
//   - exactly one timestamped: the timestamped entry first;
//   - neither: public URL descending lexicographic.
//
// The sort is stable so exact ties keep their input order, which combined
// with the scanner's deterministic listing makes output reproducible.
func (a *Assembler) Sort(entries []types.GalleryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entryLess(entries[i], entries[j])
	})
}

// entryLess reports whether x sorts before y under the manifest order.
// TakenAt strings are fixed-layout UTC, so lexicographic comparison is
// chronological comparison.
func entryLess(x, y types.GalleryEntry) bool {
	switch {
	case x.TakenAt != nil && y.TakenAt != nil:
		return *x.TakenAt > *y.TakenAt
	case x.TakenAt != nil:
		return true
	case y.TakenAt != nil:
		return false
	default:
		return x.Src > y.Src
	}
}

// Marshal serializes already-sorted entries as an indented JSON document
// with a trailing newline. The urls format re-extracts and ascending-sorts
// the URL list, matching the legacy output exactly.
func (a *Assembler) Marshal(entries []types.GalleryEntry) ([]byte, error) {
	var doc interface{}
	switch a.format {
	case FormatURLs:
		urls := make([]string, len(entries))
		for i, e := range entries {
			urls[i] = e.Src
		}
		sort.Strings(urls)
		doc = urls
	default:
		// Serialize an empty array, not null, when the gallery is empty.
		if entries == nil {
			entries = []types.GalleryEntry{}
		}
		doc = entries
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return append(data, '\n'), nil
}

// Write sorts entries, serializes them, and writes the manifest to path
// atomically: the document lands in a temp file first and is renamed into
// place, so a crash mid-write never corrupts a previously valid manifest.
func (a *Assembler) Write(path string, entries []types.GalleryEntry) error {
	a.Sort(entries)

	data, err := a.Marshal(entries)
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: writing temp file: %v", ErrWrite, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: renaming into place: %v", ErrWrite, err)
	}

	logger.Info("manifest written", "path", path, "entries", len(entries), "format", string(a.format))
	return nil
}
