package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/tabuclique/pkg/cache"
	"github.com/matzehuels/tabuclique/pkg/clique"
	"github.com/matzehuels/tabuclique/pkg/errors"
	"github.com/matzehuels/tabuclique/pkg/store"
)

// Cache and store backend names.
const (
	backendFile   = "file"
	backendRedis  = "redis"
	backendNone   = "none"
	backendMemory = "memory"
	backendMongo  = "mongo"
)

// Config is the contents of config.toml.
//
//	[search]
//	restarts = 200
//	width = 3
//	eligibility = "candidate"
//
//	[cache]
//	redis_addr = "localhost:6379"
//	ttl = "72h"
//	prefix = "tabuclique:staging:"
//
//	[store]
//	mongo_uri = "mongodb://localhost:27017"
type Config struct {
	Search clique.Options `toml:"search"`
	Cache  CacheConfig    `toml:"cache"`
	Store  StoreConfig    `toml:"store"`
}

// CacheConfig selects the result cache. RedisAddr takes precedence over Dir.
// Prefix scopes every key, for deployments sharing one Redis instance.
type CacheConfig struct {
	Dir       string        `toml:"dir"`
	RedisAddr string        `toml:"redis_addr"`
	Prefix    string        `toml:"prefix"`
	TTL       time.Duration `toml:"ttl"`
}

// StoreConfig selects the run store. An empty MongoURI disables recording
// except under serve, which keeps runs in memory.
type StoreConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// loadConfig reads the config file at path. When path is empty the default
// location is tried and a missing file yields the zero Config.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undec[0].String())
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	// Zero fields are filled in later.
	if err := c.Search.WithDefaults().Validate(); err != nil {
		return fmt.Errorf("config [search]: %w", err)
	}
	return nil
}

// backend names the cache backend selected by c and the --no-cache flag.
func (c CacheConfig) backend(noCache bool) string {
	switch {
	case noCache:
		return backendNone
	case c.RedisAddr != "":
		return backendRedis
	default:
		return backendFile
	}
}

// backend names the store backend; fallback applies when no URI is set.
func (c StoreConfig) backend(fallback string) string {
	if c.MongoURI != "" {
		return backendMongo
	}
	return fallback
}

func (c StoreConfig) database() string {
	if c.Database == "" {
		return store.DefaultDatabase
	}
	return c.Database
}

func (c CacheConfig) keyer() cache.Keyer {
	if c.Prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Prefix)
}

func (c CacheConfig) ttl() time.Duration {
	if c.TTL == 0 {
		return cache.TTLResult
	}
	return c.TTL
}

// configPath returns $XDG_CONFIG_HOME/tabuclique/config.toml.
func configPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/tabuclique/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
