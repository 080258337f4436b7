package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetPrefersLinkerValues(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v1.4.0", "abc123", "2026-10-01T12:00:00Z"

	got := Get()
	want := Info{Version: "v1.4.0", Commit: "abc123", Date: "2026-10-01T12:00:00Z", GoVersion: runtime.Version()}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGetDefaults(t *testing.T) {
	got := Get()
	if got.Version == "" || got.Commit == "" || got.Date == "" {
		t.Errorf("Get() = %+v, want every field set", got)
	}
	if got.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", got.GoVersion, runtime.Version())
	}
}

func TestTemplate(t *testing.T) {
	defer func(v string) { Version = v }(Version)
	Version = "v1.4.0"

	tmpl := Template()
	for _, want := range []string{"{{.Name}} version v1.4.0", "commit:", "built:", "go: " + runtime.Version()} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
}
