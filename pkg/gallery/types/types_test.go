package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMediaPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"jpg lowercase", "/photos/a.jpg", true},
		{"jpeg lowercase", "/photos/a.jpeg", true},
		{"png", "/photos/a.png", true},
		{"gif", "/photos/a.gif", true},
		{"webp", "/photos/a.webp", true},
		{"avif", "/photos/a.avif", true},
		{"uppercase extension", "/photos/A.JPG", true},
		{"mixed case", "/photos/a.JpEg", true},
		{"text file", "/photos/readme.txt", false},
		{"no extension", "/photos/IMG_1234", false},
		{"dotfile", "/photos/.jpg", true},
		{"video", "/photos/a.mp4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsMediaPath(tt.path))
		})
	}
}

func TestResolvedTimestamp_Resolved(t *testing.T) {
	t.Parallel()

	now := time.Now()

	assert.True(t, ResolvedTimestamp{Time: now, Source: SourceExif}.Resolved())
	assert.True(t, ResolvedTimestamp{Time: now, Source: SourceMtime}.Resolved())
	assert.False(t, ResolvedTimestamp{Source: SourceNone}.Resolved())
	assert.False(t, ResolvedTimestamp{Time: now, Source: SourceNone}.Resolved())
	assert.False(t, ResolvedTimestamp{Source: SourceFilename}.Resolved(), "zero time never counts as resolved")
}

func TestResolvedTimestamp_UTCString(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2024, 9, 5, 14, 22, 31, 987654321, loc)

	ts := ResolvedTimestamp{Time: local, Source: SourceExif}
	assert.Equal(t, "2024-09-05T12:22:31Z", ts.UTCString(), "local time converts to UTC, fractional seconds dropped")

	assert.Empty(t, ResolvedTimestamp{Source: SourceNone}.UTCString())
}

func TestNewGalleryEntry(t *testing.T) {
	t.Parallel()

	t.Run("resolved timestamp", func(t *testing.T) {
		t.Parallel()
		ts := ResolvedTimestamp{
			Time:   time.Date(2023, 6, 1, 9, 0, 0, 0, time.UTC),
			Source: SourceFilename,
		}

		entry := NewGalleryEntry("/media/photo.jpg", ts)

		require.NotNil(t, entry.TakenAt)
		assert.Equal(t, "2023-06-01T09:00:00Z", *entry.TakenAt)
		assert.Equal(t, SourceFilename, entry.TakenAtSource)
		assert.Equal(t, "/media/photo.jpg", entry.Src)
	})

	t.Run("unresolved degrades to null with source none", func(t *testing.T) {
		t.Parallel()
		entry := NewGalleryEntry("/media/photo.jpg", ResolvedTimestamp{Source: SourceNone})

		assert.Nil(t, entry.TakenAt)
		assert.Equal(t, SourceNone, entry.TakenAtSource)
	})
}
