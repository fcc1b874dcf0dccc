package omeda

import (
	"testing"

	"github.com/parameter1/omeda-go/pkg/buildinfo"
	"github.com/parameter1/omeda-go/pkg/errors"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"missing app id", Config{Brand: "ACME"}},
		{"missing brand", Config{AppID: "app"}},
		{"brand with slash", Config{AppID: "app", Brand: "AC/ME"}},
		{"brand with space", Config{AppID: "app", Brand: "AC ME"}},
		{"client with query", Config{AppID: "app", Brand: "ACME", ClientAbbrev: "AC?x"}},
		{"relative base url", Config{AppID: "app", Brand: "ACME", BaseURL: "localhost:8080"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if !errors.Is(err, errors.ErrCodeConfiguration) {
				t.Errorf("New() error = %v, want CONFIGURATION", err)
			}
		})
	}
}

func TestNewDefaults(t *testing.T) {
	c, err := New(Config{AppID: "app", Brand: "ACME"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.UserAgent() != buildinfo.Default().UserAgent() {
		t.Errorf("UserAgent() = %q", c.UserAgent())
	}
	if c.Cache() != nil {
		t.Error("Cache() should be nil when none is configured")
	}
	if c.BrandAbbrev() != "ACME" || c.ClientAbbrev() != "" || c.UseStaging() {
		t.Errorf("unexpected identity: %q %q %v", c.BrandAbbrev(), c.ClientAbbrev(), c.UseStaging())
	}
}

func TestEnvironment(t *testing.T) {
	tests := []struct {
		staging bool
		env     string
		host    string
	}{
		{false, "production", "ows.omeda.com"},
		{true, "staging", "ows.omedastaging.com"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			c, err := New(Config{AppID: "app", Brand: "ACME", UseStaging: tt.staging})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if got := c.Environment(); got != tt.env {
				t.Errorf("Environment() = %q, want %q", got, tt.env)
			}
			if got := c.Host(); got != tt.host {
				t.Errorf("Host() = %q, want %q", got, tt.host)
			}
			if got := c.BaseURL(); got != "https://"+tt.host {
				t.Errorf("BaseURL() = %q", got)
			}
		})
	}
}

func TestBrandAndClientURL(t *testing.T) {
	c, err := New(Config{AppID: "app", Brand: "ACME", ClientAbbrev: "AC"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if got, want := c.BrandURL("/comp/*"), "https://ows.omeda.com/webservices/rest/brand/ACME/comp/*"; got != want {
		t.Errorf("BrandURL() = %q, want %q", got, want)
	}
	got, err := c.ClientURL("customer//email/")
	if err != nil {
		t.Fatalf("ClientURL: %v", err)
	}
	if want := "https://ows.omeda.com/webservices/rest/client/AC/customer/email"; got != want {
		t.Errorf("ClientURL() = %q, want %q", got, want)
	}

	noClient, _ := New(Config{AppID: "app", Brand: "ACME"})
	if _, err := noClient.ClientURL("customer/*"); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("ClientURL() without abbreviation error = %v, want CONFIGURATION", err)
	}
}

func TestBaseURLOverride(t *testing.T) {
	c, err := New(Config{AppID: "app", Brand: "ACME", BaseURL: "http://127.0.0.1:9999/"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.BrandURL("comp/*"); got != "http://127.0.0.1:9999/webservices/rest/brand/ACME/comp/*" {
		t.Errorf("BrandURL() = %q", got)
	}
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"comp/*", "comp/*"},
		{"/comp/*/", "comp/*"},
		{"  customer//12/email/*  ", "customer/12/email/*"},
		{"///", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CleanPath(tt.in); got != tt.want {
			t.Errorf("CleanPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("OMEDA_APP_ID", "env-app")
	t.Setenv("OMEDA_BRAND", "ENVB")
	t.Setenv("OMEDA_CLIENT_ABBREV", "ENVC")
	t.Setenv("OMEDA_INPUT_ID", "input-9")
	t.Setenv("OMEDA_USE_STAGING", "true")

	c, err := NewFromEnv(WithBuildInfo(testBuild))
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	if c.BrandAbbrev() != "ENVB" || c.ClientAbbrev() != "ENVC" || !c.UseStaging() {
		t.Errorf("unexpected client: brand=%q client=%q staging=%v", c.BrandAbbrev(), c.ClientAbbrev(), c.UseStaging())
	}
	if c.inputID != "input-9" || c.appID != "env-app" {
		t.Errorf("appID=%q inputID=%q", c.appID, c.inputID)
	}
	if c.UserAgent() != testBuild.UserAgent() {
		t.Errorf("UserAgent() = %q", c.UserAgent())
	}
}

func TestNewFromEnvMissing(t *testing.T) {
	t.Setenv("OMEDA_APP_ID", "")
	t.Setenv("OMEDA_BRAND", "")

	if _, err := NewFromEnv(); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("NewFromEnv() error = %v, want CONFIGURATION", err)
	}
}
