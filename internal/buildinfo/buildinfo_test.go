package buildinfo

import "testing"

func TestShort(t *testing.T) {
	defer func(v, c string) { Version, Commit = v, c }(Version, Commit)

	Version, Commit = "dev", "unknown"
	if got := Short(); got != "dev" {
		t.Fatalf("Short() = %q, want dev", got)
	}

	Commit = "0123456789abcdef"
	if got := Short(); got != "0123456" {
		t.Fatalf("Short() = %q, want abbreviated commit", got)
	}

	Version = "v1.2.0"
	if got := Short(); got != "v1.2.0" {
		t.Fatalf("Short() = %q, want version", got)
	}
}
