// Package version exposes the build version of sprout.
package version

// version is overridden at build time via
// -ldflags "-X github.com/kmoss/sprout/pkg/version.version=v1.2.3".
var version = "0.1.0-dev"

// GetVersion returns the current sprout version.
func GetVersion() string {
	return version
}
