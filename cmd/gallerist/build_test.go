package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidweihrauch/gallerist/pkg/gallery/config"
)

// resetViperForTest resets global viper state and reapplies defaults.
func resetViperForTest() {
	viper.Reset()
	viper.SetDefault("root", config.DefaultRoot)
	viper.SetDefault("output", config.DefaultOutput)
	viper.SetDefault("base_url", config.DefaultBaseURL)
	viper.SetDefault("workers", config.DefaultWorkers)
	viper.SetDefault("format", config.DefaultFormat)
	viper.SetDefault("logging.level", "info")
}

func TestRunBuild_WritesManifest(t *testing.T) {
	resetViperForTest()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "IMG_2024-06-01.jpg"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "skipped.txt"), []byte("x"), 0o644))

	out := filepath.Join(t.TempDir(), "gallery.json")
	viper.Set("output", out)
	viper.Set("quiet", true)

	require.NoError(t, runBuild(nil, []string{root}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var entries []map[string]any
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "/media/IMG_2024-06-01.jpg", entries[0]["src"])
}

func TestRunBuild_RejectsMissingPath(t *testing.T) {
	resetViperForTest()
	viper.Set("quiet", true)

	err := runBuild(nil, []string{filepath.Join(t.TempDir(), "absent")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestRunBuild_RejectsFilePath(t *testing.T) {
	resetViperForTest()
	viper.Set("quiet", true)

	file := filepath.Join(t.TempDir(), "plain.jpg")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	err := runBuild(nil, []string{file})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestRunBuild_RejectsBadFormat(t *testing.T) {
	resetViperForTest()
	viper.Set("quiet", true)
	viper.Set("format", "xml")
	viper.Set("output", filepath.Join(t.TempDir(), "gallery.json"))

	err := runBuild(nil, []string{t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestRootCommand_FatalErrorsSkipUsage(t *testing.T) {
	assert.True(t, rootCmd.SilenceUsage,
		"a failed build reports the error once, not the full usage text")
}

func TestInitLogging(t *testing.T) {
	t.Run("default level", func(t *testing.T) {
		resetViperForTest()
		assert.NoError(t, initLogging())
	})

	t.Run("verbose wins over config", func(t *testing.T) {
		resetViperForTest()
		viper.Set("logging.level", "nonsense")
		viper.Set("verbose", true)
		assert.NoError(t, initLogging(), "verbose overrides the configured level")
	})

	t.Run("invalid configured level", func(t *testing.T) {
		resetViperForTest()
		viper.Set("logging.level", "nonsense")
		assert.Error(t, initLogging())
	})
}
