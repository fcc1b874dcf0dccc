package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points config and cache lookups at temp dirs and clears the
// OMEDA_* variables a developer may have exported.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, name := range []string{
		"OMEDA_APP_ID", "OMEDA_BRAND", "OMEDA_CLIENT_ABBREV", "OMEDA_INPUT_ID",
		"OMEDA_USE_STAGING", "OMEDA_BASE_URL", "OMEDA_CACHE", "OMEDA_CACHE_DIR",
		"OMEDA_CACHE_TTL", "OMEDA_REDIS_ADDR", "OMEDA_REDIS_DB", "OMEDA_REDIS_KEY_PREFIX",
		"OMEDA_MONGO_URI", "OMEDA_MONGO_DATABASE", "OMEDA_MONGO_COLLECTION",
	} {
		unsetEnv(t, name)
	}
}

func unsetEnv(t *testing.T, name string) {
	t.Helper()
	old, ok := os.LookupEnv(name)
	os.Unsetenv(name)
	if ok {
		t.Cleanup(func() { os.Setenv(name, old) })
	}
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestReadSettingsDefaults(t *testing.T) {
	isolate(t)

	s, err := readSettings(filepath.Join(t.TempDir(), "missing.toml"), false)
	if err != nil {
		t.Fatalf("readSettings: %v", err)
	}
	if s.path != "" {
		t.Errorf("path = %q, want none for a missing file", s.path)
	}
	if s.Cache.Backend != backendFile || s.Redis.Addr != "localhost:6379" || s.Mongo.Collection != "cache" {
		t.Errorf("defaults = %+v", s)
	}
}

func TestReadSettingsMissingExplicitFile(t *testing.T) {
	isolate(t)

	if _, err := readSettings(filepath.Join(t.TempDir(), "missing.toml"), true); err == nil {
		t.Error("readSettings() should fail for a missing --config file")
	}
}

func TestReadSettingsFileThenEnv(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
app_id = "file-app"
brand  = "FILE"
staging = true

[cache]
backend = "redis"
ttl = "90s"

[redis]
addr = "redis.internal:6380"
db = 3
`)
	t.Setenv("OMEDA_BRAND", "ENV")
	t.Setenv("OMEDA_REDIS_KEY_PREFIX", "omeda:")

	s, err := readSettings(path, true)
	if err != nil {
		t.Fatalf("readSettings: %v", err)
	}

	if s.path != path {
		t.Errorf("path = %q, want %q", s.path, path)
	}
	if s.AppID != "file-app" || !s.UseStaging {
		t.Errorf("file values lost: %+v", s)
	}
	if s.Brand != "ENV" {
		t.Errorf("Brand = %q, env should win over the file", s.Brand)
	}
	if s.Cache.Backend != backendRedis || s.Cache.TTL != 90*time.Second {
		t.Errorf("cache = %+v", s.Cache)
	}
	if s.Redis.Addr != "redis.internal:6380" || s.Redis.DB != 3 || s.Redis.KeyPrefix != "omeda:" {
		t.Errorf("redis = %+v", s.Redis)
	}
}

func TestReadSettingsInvalidFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `brand = [`)

	if _, err := readSettings(path, false); err == nil {
		t.Error("readSettings() should fail on malformed TOML even when the path is implicit")
	}
}

func TestFlagsOverrideSettings(t *testing.T) {
	isolate(t)
	path := writeConfig(t, "brand = \"FILE\"\napp_id = \"file-app-1234\"\n")

	stdout, _, err := run(t, "config", "--config", path, "--brand", "FLAG", "--cache", "memory")
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	for _, want := range []string{"FLAG", "****1234", "memory", path} {
		if !contains(stdout, want) {
			t.Errorf("config output missing %q:\n%s", want, stdout)
		}
	}
	if contains(stdout, "file-app-1234") {
		t.Error("config output should mask the app id")
	}
}

func TestUnknownBackend(t *testing.T) {
	isolate(t)

	if _, _, err := run(t, "config", "--cache", "etcd"); err == nil {
		t.Error("unknown backend should be rejected")
	}
}

func TestConfigInit(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "omeda", "config.toml")

	stdout, _, err := run(t, "config", "init", "--config", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !contains(stdout, path) {
		t.Errorf("config init output = %q", stdout)
	}

	s, err := readSettings(path, true)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if s.Cache.TTL != time.Hour || s.Mongo.Database != "omeda" {
		t.Errorf("example config = %+v", s)
	}

	if _, _, err := run(t, "config", "init", "--config", path); err == nil {
		t.Error("config init should refuse to overwrite")
	}
}

func TestMask(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"abc", "****"},
		{"abcdefgh", "****efgh"},
	}
	for _, tt := range tests {
		if got := mask(tt.in); got != tt.want {
			t.Errorf("mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
