// Package version holds the build version, overridable at link time with
// -ldflags "-X github.com/vemorak/vemorak-go/internal/version.Version=...".
package version

var Version = "dev"
