package buildinfo

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "full",
			info: Info{Name: "acme-sync", Version: "v2.1.0", Homepage: "https://acme.test"},
			want: "acme-sync v2.1.0 (+https://acme.test)",
		},
		{
			name: "bare version gets prefix",
			info: Info{Name: "acme-sync", Version: "2.1.0", Homepage: "https://acme.test"},
			want: "acme-sync v2.1.0 (+https://acme.test)",
		},
		{
			name: "zero value uses defaults",
			info: Info{},
			want: Name + " " + Version + " (+" + Homepage + ")",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.UserAgent(); got != tt.want {
				t.Errorf("UserAgent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	d := Default()
	if d.Name != Name || d.Version != Version || d.Commit != Commit {
		t.Errorf("Default() = %+v", d)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.Contains(Template(), "{{.Name}}") {
		t.Error("Template should reference the command name")
	}
	if !strings.Contains(String(), Version) {
		t.Error("String should include the version")
	}
}
