// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/parameter1/omeda-go/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/parameter1/omeda-go/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/parameter1/omeda-go/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// The client never reads these variables directly. It takes an [Info]
// value in its configuration, which [Default] builds from them.
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	// Set via ldflags: -X github.com/parameter1/omeda-go/pkg/buildinfo.Version=...
	Version = "dev"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/parameter1/omeda-go/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/parameter1/omeda-go/pkg/buildinfo.Date=...
	Date = "unknown"
)

// Name and Homepage identify the library in the user agent.
const (
	Name     = "omeda-go"
	Homepage = "https://github.com/parameter1/omeda-go"
)

// Info is an immutable description of the running build.
type Info struct {
	Name     string
	Version  string
	Commit   string
	Homepage string
}

// Default returns the Info for this build.
func Default() Info {
	return Info{Name: Name, Version: Version, Commit: Commit, Homepage: Homepage}
}

// UserAgent formats the value sent in the User-Agent header,
// e.g. "omeda-go v1.2.0 (+https://github.com/parameter1/omeda-go)".
// Missing fields fall back to the Default values.
func (i Info) UserAgent() string {
	d := Default()
	name, version, home := i.Name, i.Version, i.Homepage
	if name == "" {
		name = d.Name
	}
	if version == "" {
		version = d.Version
	}
	if home == "" {
		home = d.Homepage
	}
	if len(version) > 0 && version[0] != 'v' && version != "dev" {
		version = "v" + version
	}
	return fmt.Sprintf("%s %s (+%s)", name, version, home)
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
