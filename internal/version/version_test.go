package version

import (
	"strings"
	"testing"
)

func TestShortCommit(t *testing.T) {
	t.Parallel()

	if got := shortCommit("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("got %q", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	info := Resolve()
	if info.Version == "" {
		t.Fatalf("empty version")
	}
	if info.SchemaVersion != 1 {
		t.Fatalf("schema version: got %d want 1", info.SchemaVersion)
	}
	if !strings.HasSuffix(String(), "nh5 schema 1") {
		t.Fatalf("String: got %q", String())
	}
}
