// Package urlpath maps absolute filesystem paths to public URL strings
// relative to a configured root and base URL.
package urlpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Resolver derives public URLs for files under a gallery root.
type Resolver struct {
	root    string
	baseURL string
}

// New creates a Resolver. root should be the absolute scan root; baseURL is
// the public prefix entries are served under (for example "/media" or
// "https://example.com/gallery"). An empty baseURL means site-root relative.
func New(root, baseURL string) *Resolver {
	return &Resolver{
		root:    filepath.Clean(root),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Resolve maps an absolute path under the root to its public URL. Forward
// slashes are used regardless of the OS path separator.
func (r *Resolver) Resolve(absPath string) (string, error) {
	rel, err := filepath.Rel(r.root, absPath)
	if err != nil {
		return "", fmt.Errorf("relativizing %s: %w", absPath, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside root %s", absPath, r.root)
	}
	return r.baseURL + "/" + filepath.ToSlash(rel), nil
}
