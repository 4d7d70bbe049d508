// Package config loads the commute configuration file.
//
// The file is optional TOML, read from $XDG_CONFIG_HOME/commute/config.toml
// (~/.config/commute/config.toml) unless a path is given:
//
//	[cache]
//	backend = "file"      # file, redis or none
//	dir = "~/.cache/commute"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "720h"
//
//	[store]
//	backend = "file"      # file or mongo
//	mongo_uri = "mongodb://localhost:27017"
//
//	[render]
//	formats = ["codi"]
//
//	[derive]
//	max_depth = 4096
//
//	[server]
//	addr = ":8080"
//
// COMMUTE_REDIS_URL and COMMUTE_MONGO_URI override the connection strings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/commute/pkg/errors"
	"github.com/matzehuels/commute/pkg/render"
)

const appName = "commute"

// Backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// Environment overrides.
const (
	EnvRedisURL = "COMMUTE_REDIS_URL"
	EnvMongoURI = "COMMUTE_MONGO_URI"
)

// DefaultAddr is the HTTP listen address of "commute serve".
const DefaultAddr = ":8080"

// Config is the full configuration.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Render RenderConfig `toml:"render"`
	Derive DeriveConfig `toml:"derive"`
	Server ServerConfig `toml:"server"`
}

type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

type StoreConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

type RenderConfig struct {
	Formats  []string `toml:"formats"`
	Scale    float64  `toml:"scale"`
	PNGScale float64  `toml:"png_scale"`
}

type DeriveConfig struct {
	MaxDepth int `toml:"max_depth"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration read from a TOML string such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Cache:  CacheConfig{Backend: BackendFile},
		Store:  StoreConfig{Backend: BackendFile},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Path returns the default configuration file path.
func Path() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration at path, or at [Path] when path is empty.
// A missing file at the default path yields [Default]; a missing explicit
// path is an error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
		}
		if explicit {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Cache.RedisURL = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Store.MongoURI = v
	}
}

// Validate checks backend names and their required settings.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires redis_url or %s", EnvRedisURL)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (must be file, redis or none)", c.Cache.Backend)
	}

	switch c.Store.Backend {
	case BackendFile:
	case BackendMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store backend mongo requires mongo_uri or %s", EnvMongoURI)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (must be file or mongo)", c.Store.Backend)
	}

	for _, f := range c.Render.Formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	if c.Derive.MaxDepth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "derive.max_depth must not be negative")
	}
	return nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// Encode writes c as TOML.
func (c *Config) Encode() (string, error) {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return "", err
	}
	return b.String(), nil
}
