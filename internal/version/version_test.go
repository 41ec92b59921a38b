package version

import (
	"strings"
	"testing"
)

func TestDefaultVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	if got := Colored("1.2.3-dev", false); got != "1.2.3-dev" {
		t.Errorf("uncolored = %q", got)
	}
	got := Colored("1.2.3-dev", true)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", got)
	}
	if !strings.HasSuffix(got, "-dev") {
		t.Errorf("suffix must stay uncolored: %q", got)
	}
	if got := Colored("dev", true); got != "dev" {
		t.Errorf("non-semver = %q, want unchanged", got)
	}
}
