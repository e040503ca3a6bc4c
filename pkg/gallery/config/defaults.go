// Package config provides configuration management for gallerist.
package config

// Default configuration values for gallerist.
const (
	// DefaultRoot is the directory scanned when none is specified.
	DefaultRoot = "."

	// DefaultOutput is the manifest path relative to the working directory.
	DefaultOutput = "gallery.json"

	// DefaultBaseURL is the public prefix entries are served under.
	DefaultBaseURL = "/media"

	// DefaultWorkers bounds concurrent per-file timestamp resolutions.
	DefaultWorkers = 8

	// DefaultFormat is the manifest serialization shape.
	DefaultFormat = "records"
)

// DefaultExclusions is empty: every directory under the root is descended
// unless the operator asks otherwise. Skipping anything by default would
// silently drop media from the manifest.
var DefaultExclusions = []string{}
