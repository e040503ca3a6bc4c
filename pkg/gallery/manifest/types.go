// Package manifest assembles, sorts, and serializes the gallery index.
// The manifest is the sole artifact the tool writes to durable storage.
package manifest

import "errors"

// Format selects the serialization shape of the manifest.
type Format string

const (
	// FormatRecords is the canonical shape: an array of
	// {src, takenAt, takenAtSource} objects, newest first.
	FormatRecords Format = "records"

	// FormatURLs is the legacy shape kept for compatibility with older
	// front-ends: a flat array of URL strings in ascending lexicographic
	// order, no timestamps.
	FormatURLs Format = "urls"
)

// ErrWrite marks fatal serialization failures: an unwritable output path
// or a failed rename. The previous manifest, if any, is left untouched.
var ErrWrite = errors.New("manifest write failed")

// ErrUnknownFormat is returned for format names outside the known set.
var ErrUnknownFormat = errors.New("unknown manifest format")
