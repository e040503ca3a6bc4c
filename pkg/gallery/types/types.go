// Package types provides core data types for the gallerist manifest builder.
// It defines the media file record produced by discovery, the resolved
// timestamp with its provenance tag, and the manifest entry that is
// ultimately serialized.
package types

import (
	"path/filepath"
	"strings"
	"time"
)

// MediaExtensions maps lowercase file extensions to whether they are
// recognized gallery media formats. Matching is case-insensitive; callers
// must lowercase the extension before lookup (or use IsMediaPath).
var MediaExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".avif": true,
}

// IsMediaPath reports whether the path has a recognized media extension.
func IsMediaPath(path string) bool {
	return MediaExtensions[strings.ToLower(filepath.Ext(path))]
}

// MediaFile is a single media file discovered by the scanner.
// It is immutable once produced by the directory walk.
type MediaFile struct {
	// Path is the absolute path to the file.
	Path string `json:"path"`

	// Size is the file size in bytes at discovery time.
	Size int64 `json:"size"`
}

// TimestampSource identifies which source produced a resolved timestamp.
// Exactly one is attached to each resolved record; it records provenance.
type TimestampSource string

const (
	// SourceExif means the timestamp came from embedded image metadata.
	SourceExif TimestampSource = "exif"
	// SourceMtime means the timestamp came from filesystem metadata.
	SourceMtime TimestampSource = "mtime"
	// SourceFilename means the timestamp was inferred from the filename.
	SourceFilename TimestampSource = "filename"
	// SourceNone means no source yielded a confident value.
	SourceNone TimestampSource = "none"
)

// TakenAtLayout is the serialization layout for resolved timestamps:
// ISO-8601 in UTC, whole seconds, literal Z marker.
const TakenAtLayout = "2006-01-02T15:04:05Z"

// ResolvedTimestamp is the outcome of the timestamp fallback chain for one
// file. Time is meaningful only when Source is not SourceNone. It is derived
// once per file and never recomputed.
type ResolvedTimestamp struct {
	// Time is the resolved capture time. Zero when Source is SourceNone.
	Time time.Time `json:"time"`

	// Source identifies where Time came from.
	Source TimestampSource `json:"source"`
}

// Resolved reports whether any source yielded a timestamp.
func (r ResolvedTimestamp) Resolved() bool {
	return r.Source != SourceNone && !r.Time.IsZero()
}

// UTCString formats the resolved time as an ISO-8601 UTC string truncated
// to whole seconds. It returns "" for unresolved timestamps.
func (r ResolvedTimestamp) UTCString() string {
	if !r.Resolved() {
		return ""
	}
	return r.Time.UTC().Truncate(time.Second).Format(TakenAtLayout)
}

// GalleryEntry is the unit of manifest output. It is constructed once from a
// MediaFile plus its ResolvedTimestamp and public URL, serialized, and
// discarded.
type GalleryEntry struct {
	// Src is the public URL of the media file.
	Src string `json:"src"`

	// TakenAt is the resolved capture time in UTC, or null when no source
	// yielded a value.
	TakenAt *string `json:"takenAt"`

	// TakenAtSource records which source produced TakenAt.
	TakenAtSource TimestampSource `json:"takenAtSource"`
}

// NewGalleryEntry combines a public URL with a resolved timestamp.
// Unresolved timestamps degrade to a null TakenAt with source "none";
// entries are never dropped.
func NewGalleryEntry(src string, ts ResolvedTimestamp) GalleryEntry {
	entry := GalleryEntry{
		Src:           src,
		TakenAtSource: ts.Source,
	}
	if ts.Resolved() {
		s := ts.UTCString()
		entry.TakenAt = &s
	} else {
		entry.TakenAtSource = SourceNone
	}
	return entry
}
