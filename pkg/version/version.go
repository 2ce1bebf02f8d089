// Package version exposes the build version stamped in by the linker.
package version

// version is set at build time:
//
//	go build -ldflags "-X github.com/rshade/coalcarbon/pkg/version.version=v1.2.3"
var version = "dev" //nolint:gochecknoglobals // Linker target.

// GetVersion returns the build version, "dev" for untagged builds.
func GetVersion() string {
	return version
}
