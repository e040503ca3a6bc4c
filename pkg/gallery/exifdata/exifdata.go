// Package exifdata reads embedded capture timestamps from image files.
// It is a best-effort source: any missing tag, parse failure, or corrupt
// file yields "no embedded timestamp" rather than an error, because the
// caller always has weaker sources to fall back on.
package exifdata

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// exifLayout is the EXIF datetime encoding (colon-separated date).
const exifLayout = "2006:01:02 15:04:05"

// dateTags are the EXIF fields consulted for a capture time, in priority
// order: original capture time, digitization time, then the file's embedded
// modification time. The first syntactically valid value wins.
var dateTags = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// TakenAt attempts to read an embedded capture timestamp from the image
// data in r. The returned time is in the local zone, matching how cameras
// record wall-clock time without an offset. Returns false when no tag
// yields a valid timestamp.
func TakenAt(r io.Reader) (time.Time, bool) {
	x, err := exif.Decode(r)
	if err != nil {
		return time.Time{}, false
	}

	for _, tag := range dateTags {
		field, err := x.Get(tag)
		if err != nil {
			continue
		}
		raw, err := field.StringVal()
		if err != nil {
			continue
		}
		// Some writers pad values with NULs or whitespace.
		raw = strings.TrimRight(raw, "\x00 ")
		t, err := time.ParseInLocation(exifLayout, raw, time.Local)
		if err != nil {
			continue
		}
		return t, true
	}
	return time.Time{}, false
}

// TakenAtFile opens path and reads its embedded capture timestamp.
// Open errors fail soft, like every other failure in this package.
// The decode reads file content into memory; callers scanning large
// galleries should bound how many extractions run at once.
func TakenAtFile(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, false
	}
	defer f.Close()
	return TakenAt(f)
}
