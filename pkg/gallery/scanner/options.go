// Package scanner discovers gallery media files by recursive directory
// descent. It produces a fully materialized, lexicographically ordered list
// of media paths; discovery problems are fatal rather than silently
// skipped, since an empty gallery from a misconfigured root is a
// user-visible bug.
package scanner

// Options configures a discovery scan.
type Options struct {
	// Root is the directory to scan. It must exist and be readable.
	Root string

	// Exclude contains path prefixes and glob patterns to skip.
	// Exclusions are operator-requested, so skipping them does not count
	// as a silent partial listing.
	Exclude []string
}

// Validate applies defaults for unset values.
func (o *Options) Validate() error {
	if o.Root == "" {
		o.Root = "."
	}
	return nil
}
