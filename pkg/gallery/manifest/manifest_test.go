package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidweihrauch/gallerist/pkg/gallery/types"
)

func dated(src, takenAt string, source types.TimestampSource) types.GalleryEntry {
	return types.GalleryEntry{Src: src, TakenAt: &takenAt, TakenAtSource: source}
}

func undated(src string) types.GalleryEntry {
	return types.GalleryEntry{Src: src, TakenAtSource: types.SourceNone}
}

func srcs(entries []types.GalleryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Src
	}
	return out
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{FormatRecords, FormatURLs, ""} {
		_, err := New(f)
		assert.NoError(t, err, "format %q", f)
	}

	_, err := New("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSort_TimestampDescending(t *testing.T) {
	t.Parallel()

	entries := []types.GalleryEntry{
		dated("/m/old.jpg", "2020-01-01T00:00:00Z", types.SourceExif),
		dated("/m/new.jpg", "2024-06-15T10:30:00Z", types.SourceExif),
		dated("/m/mid.jpg", "2022-03-03T12:00:00Z", types.SourceMtime),
	}

	a, err := New(FormatRecords)
	require.NoError(t, err)
	a.Sort(entries)

	assert.Equal(t, []string{"/m/new.jpg", "/m/mid.jpg", "/m/old.jpg"}, srcs(entries))
}

func TestSort_TimestampedPrecedeUntimestamped(t *testing.T) {
	t.Parallel()

	entries := []types.GalleryEntry{
		undated("/m/zzz.jpg"),
		dated("/m/ancient.jpg", "2000-01-01T00:00:00Z", types.SourceFilename),
	}

	a, _ := New(FormatRecords)
	a.Sort(entries)

	assert.Equal(t, []string{"/m/ancient.jpg", "/m/zzz.jpg"}, srcs(entries),
		"even the oldest timestamped entry sorts before any untimestamped one")
}

func TestSort_UntimestampedTieBreakByURLDescending(t *testing.T) {
	t.Parallel()

	entries := []types.GalleryEntry{
		undated("/m/a.jpg"),
		undated("/m/b.jpg"),
	}

	a, _ := New(FormatRecords)
	a.Sort(entries)

	assert.Equal(t, []string{"/m/b.jpg", "/m/a.jpg"}, srcs(entries))
}

func TestSort_StableForExactTies(t *testing.T) {
	t.Parallel()

	entries := []types.GalleryEntry{
		dated("/m/first.jpg", "2024-01-01T00:00:00Z", types.SourceExif),
		dated("/m/second.jpg", "2024-01-01T00:00:00Z", types.SourceMtime),
		dated("/m/third.jpg", "2024-01-01T00:00:00Z", types.SourceExif),
	}

	a, _ := New(FormatRecords)
	a.Sort(entries)

	assert.Equal(t, []string{"/m/first.jpg", "/m/second.jpg", "/m/third.jpg"}, srcs(entries))
}

func TestMarshal_Records(t *testing.T) {
	t.Parallel()

	entries := []types.GalleryEntry{
		dated("/m/a.jpg", "2024-01-01T00:00:00Z", types.SourceExif),
		undated("/m/b.jpg"),
	}

	a, _ := New(FormatRecords)
	data, err := a.Marshal(entries)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "/m/a.jpg", decoded[0]["src"])
	assert.Equal(t, "2024-01-01T00:00:00Z", decoded[0]["takenAt"])
	assert.Equal(t, "exif", decoded[0]["takenAtSource"])

	assert.Nil(t, decoded[1]["takenAt"], "unresolved timestamps serialize as null, entries are never dropped")
	assert.Equal(t, "none", decoded[1]["takenAtSource"])

	assert.Contains(t, string(data), "\n  ", "document is indented")
	assert.True(t, data[len(data)-1] == '\n')
}

func TestMarshal_RecordsEmpty(t *testing.T) {
	t.Parallel()

	a, _ := New(FormatRecords)
	data, err := a.Marshal(nil)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestMarshal_URLsAscending(t *testing.T) {
	t.Parallel()

	// Input arrives newest-first; the legacy output is ascending by URL.
	entries := []types.GalleryEntry{
		dated("/m/c.jpg", "2024-01-01T00:00:00Z", types.SourceExif),
		undated("/m/b.jpg"),
		undated("/m/a.jpg"),
	}

	a, _ := New(FormatURLs)
	data, err := a.Marshal(entries)
	require.NoError(t, err)

	var urls []string
	require.NoError(t, json.Unmarshal(data, &urls))
	assert.Equal(t, []string{"/m/a.jpg", "/m/b.jpg", "/m/c.jpg"}, urls)
}

func TestWrite_AtomicAndValid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.json")

	a, _ := New(FormatRecords)
	entries := []types.GalleryEntry{
		undated("/m/a.jpg"),
		dated("/m/b.jpg", "2024-01-01T00:00:00Z", types.SourceExif),
	}
	require.NoError(t, a.Write(path, entries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []types.GalleryEntry
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"/m/b.jpg", "/m/a.jpg"}, srcs(decoded), "Write sorts before serializing")

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")
}

func TestWrite_Idempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.json")

	entries := func() []types.GalleryEntry {
		return []types.GalleryEntry{
			dated("/m/x.jpg", "2023-05-05T05:05:05Z", types.SourceMtime),
			undated("/m/y.jpg"),
			undated("/m/z.jpg"),
		}
	}

	a, _ := New(FormatRecords)
	require.NoError(t, a.Write(path, entries()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, a.Write(path, entries()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "re-running over unchanged input is byte-identical")
}

func TestWrite_UnwritablePathFailsWithoutCorruption(t *testing.T) {
	t.Parallel()

	a, _ := New(FormatRecords)
	err := a.Write(filepath.Join(t.TempDir(), "missing-dir", "gallery.json"), nil)
	assert.ErrorIs(t, err, ErrWrite)
}

func TestWrite_CleansUpTempFileWhenWriteFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.json")

	// A directory squatting on the temp path makes the initial write fail.
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))

	a, _ := New(FormatRecords)
	err := a.Write(path, []types.GalleryEntry{undated("/m/a.jpg")})
	require.ErrorIs(t, err, ErrWrite)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "a failed write leaves no temp file behind")
}

func TestWrite_PreservesPreviousManifestOnFailure(t *testing.T) {
	t.Parallel()
	if os.Getuid() == 0 {
		t.Skip("permission bits are ignored when running as root")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.json")

	a, _ := New(FormatRecords)
	require.NoError(t, a.Write(path, []types.GalleryEntry{undated("/m/a.jpg")}))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err = a.Write(path, []types.GalleryEntry{undated("/m/changed.jpg")})
	require.ErrorIs(t, err, ErrWrite)

	require.NoError(t, os.Chmod(dir, 0o755))
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed write leaves the old manifest intact")
}
