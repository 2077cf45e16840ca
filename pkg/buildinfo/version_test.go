package buildinfo

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v9.9.9"

	info := Get()
	if info.Version != "v9.9.9" || info.Commit != Commit {
		t.Errorf("Get() = %+v", info)
	}
	if s := info.String(); !strings.HasPrefix(s, "v9.9.9 (commit ") {
		t.Errorf("String() = %q", s)
	}
	if tmpl := Template(); !strings.Contains(tmpl, "{{.Name}} version v9.9.9") {
		t.Errorf("Template() = %q", tmpl)
	}
}
