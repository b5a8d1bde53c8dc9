// Package buildinfo carries version stamps set with -ldflags, e.g.
//
//	-X joyglow/internal/buildinfo.Version=v0.3.0
package buildinfo

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for logs and window titles.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}

// Long includes the commit and build date.
func Long() string {
	return Short() + " (" + Commit + ", " + Date + ")"
}
