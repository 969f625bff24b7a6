// Package version carries build metadata injected with -ldflags.
package version

var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// String formats the version for --version output.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
