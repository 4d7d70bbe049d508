package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/commute/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvMongoURI, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cache.Backend != BackendFile || cfg.Store.Backend != BackendFile {
		t.Errorf("backends = %s/%s, want file/file", cfg.Cache.Backend, cfg.Store.Backend)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvRedisURL, "")
	path := writeConfig(t, `
[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"
ttl = "36h"

[render]
formats = ["tikz", "dot"]
scale = 3.5

[derive]
max_depth = 100

[server]
addr = "127.0.0.1:9000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.RedisURL != "redis://localhost:6379/1" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.TTL.Duration != 36*time.Hour {
		t.Errorf("Cache.TTL = %v, want 36h", cfg.Cache.TTL)
	}
	if len(cfg.Render.Formats) != 2 || cfg.Render.Scale != 3.5 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Derive.MaxDepth != 100 || cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Derive/Server = %+v/%+v", cfg.Derive, cfg.Server)
	}
	// Unset sections keep their defaults.
	if cfg.Store.Backend != BackendFile {
		t.Errorf("Store.Backend = %q, want file", cfg.Store.Backend)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvRedisURL, "redis://env:6379/0")
	t.Setenv(EnvMongoURI, "mongodb://env:27017")
	path := writeConfig(t, `
[cache]
backend = "redis"
redis_url = "redis://file:6379/0"

[store]
backend = "mongo"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cache.RedisURL != "redis://env:6379/0" {
		t.Errorf("RedisURL = %q, want env value", cfg.Cache.RedisURL)
	}
	if cfg.Store.MongoURI != "mongodb://env:27017" {
		t.Errorf("MongoURI = %q, want env value", cfg.Store.MongoURI)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv(EnvRedisURL, "")
	t.Setenv(EnvMongoURI, "")
	tests := []struct {
		name string
		body string
	}{
		{"unknown cache", "[cache]\nbackend = \"memcached\"\n"},
		{"redis without url", "[cache]\nbackend = \"redis\"\n"},
		{"mongo without uri", "[store]\nbackend = \"mongo\"\n"},
		{"bad format", "[render]\nformats = [\"gif\"]\n"},
		{"negative depth", "[derive]\nmax_depth = -1\n"},
		{"syntax", "[cache\n"},
		{"bad duration", "[cache]\nttl = \"soon\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Errorf("Load(%q) should fail", tt.body)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Cache.TTL = Duration{2 * time.Hour}
	text, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.Contains(text, `ttl = "2h0m0s"`) {
		t.Errorf("Encode() = %s", text)
	}
	back, err := Load(writeConfig(t, text))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if back.Cache.TTL.Duration != 2*time.Hour {
		t.Errorf("TTL after round trip = %v", back.Cache.TTL)
	}
}

func TestExpandHome(t *testing.T) {
	home, _ := os.UserHomeDir()
	if got := ExpandHome("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("ExpandHome(~/x) = %q", got)
	}
	if got := ExpandHome("/abs"); got != "/abs" {
		t.Errorf("ExpandHome(/abs) = %q", got)
	}
}
