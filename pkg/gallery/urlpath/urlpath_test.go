package urlpath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/srv/photos")

	tests := []struct {
		name    string
		baseURL string
		abs     string
		want    string
	}{
		{
			name:    "top level file",
			baseURL: "/media",
			abs:     filepath.FromSlash("/srv/photos/a.jpg"),
			want:    "/media/a.jpg",
		},
		{
			name:    "nested file",
			baseURL: "/media",
			abs:     filepath.FromSlash("/srv/photos/2024/trip/b.png"),
			want:    "/media/2024/trip/b.png",
		},
		{
			name:    "trailing slash on base is normalized",
			baseURL: "/media/",
			abs:     filepath.FromSlash("/srv/photos/a.jpg"),
			want:    "/media/a.jpg",
		},
		{
			name:    "absolute base URL",
			baseURL: "https://example.com/gallery",
			abs:     filepath.FromSlash("/srv/photos/a.jpg"),
			want:    "https://example.com/gallery/a.jpg",
		},
		{
			name:    "empty base is site-root relative",
			baseURL: "",
			abs:     filepath.FromSlash("/srv/photos/a.jpg"),
			want:    "/a.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := New(root, tt.baseURL)
			got, err := r.Resolve(tt.abs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_OutsideRoot(t *testing.T) {
	t.Parallel()

	r := New(filepath.FromSlash("/srv/photos"), "/media")
	_, err := r.Resolve(filepath.FromSlash("/etc/passwd"))
	assert.Error(t, err)
}
