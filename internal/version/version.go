// Package version holds the application version string, overridable at
// build time with -ldflags "-X .../internal/version.Version=v1.2.3".
package version

// Version is the application version reported by the system endpoints.
var Version = "1.0.0"
