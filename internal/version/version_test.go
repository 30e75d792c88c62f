package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	if got := String(); !strings.HasPrefix(got, "ai900 development (commit ") {
		t.Errorf("dev build: got %q", got)
	}

	Version = "v1.2.0"
	if got := String(); !strings.HasPrefix(got, "ai900 v1.2.0 ") {
		t.Errorf("release build: got %q", got)
	}
}
