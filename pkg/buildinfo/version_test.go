package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", got)
	}
	if !strings.Contains(got, "commit: "+Commit) || !strings.Contains(got, "built: "+Date) {
		t.Errorf("Template() missing commit or date: %q", got)
	}
}
