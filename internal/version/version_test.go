package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestCurrentPrefersBuildVersion(t *testing.T) {
	old := buildVersion
	buildVersion = "v1.2.3+dirty"
	t.Cleanup(func() { buildVersion = old })

	if got := Current(); got != "v1.2.3" {
		t.Fatalf("expected stripped build version, got %q", got)
	}
	if got := CurrentWithDirty(); got != "v1.2.3+dirty" {
		t.Fatalf("expected dirty build version, got %q", got)
	}
}

func TestPseudoFromBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "1234567890abcdef"},
			{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	got := pseudoFromBuildInfo(info)
	if !strings.HasPrefix(got, "v0.0.0-20250102030405-1234567890ab") {
		t.Fatalf("unexpected pseudo version %q", got)
	}
	if !strings.HasSuffix(got, "+dirty") {
		t.Fatalf("expected dirty suffix, got %q", got)
	}
}

func TestPseudoFromBuildInfoIncomplete(t *testing.T) {
	if got := pseudoFromBuildInfo(nil); got != "" {
		t.Fatalf("expected empty version for nil build info, got %q", got)
	}
	info := &debug.BuildInfo{
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "1234567890abcdef"},
		},
	}
	if got := pseudoFromBuildInfo(info); got != "" {
		t.Fatalf("expected empty version without vcs.time, got %q", got)
	}
	info.Settings = append(info.Settings, debug.BuildSetting{Key: "vcs.time", Value: "not-a-time"})
	if got := pseudoFromBuildInfo(info); got != "" {
		t.Fatalf("expected empty version for bad vcs.time, got %q", got)
	}
}

func TestModuleFallback(t *testing.T) {
	if got := Module(); got == "" {
		t.Fatal("expected a module path")
	}
}
