// Package build carries version and build information. It has no other
// internal dependencies so any package can import it.
package build

var (
	// Set via ldflags during release builds.
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild reports whether this is a development build rather than a
// release.
func IsDevBuild() bool {
	return Version == "dev"
}
