// Package build holds build-time version information.
package build

// Version is the library version, overridable at link time via
// -ldflags "-X github.com/partforge/partforge/internal/build.Version=...".
var Version = "dev"
