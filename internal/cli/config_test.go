package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/tabuclique/pkg/cache"
	"github.com/matzehuels/tabuclique/pkg/clique"
	"github.com/matzehuels/tabuclique/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[search]
restarts = 250
width = 3
eligibility = "candidate"

[cache]
dir = "/var/cache/tabuclique"
prefix = "staging:"
ttl = "72h"

[store]
mongo_uri = "mongodb://localhost:27017"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.Restarts != 250 || cfg.Search.Width != 3 || cfg.Search.Eligibility != clique.EligibilityCandidate {
		t.Errorf("search = %+v", cfg.Search)
	}
	if cfg.Cache.ttl() != 72*time.Hour || cfg.Cache.Dir != "/var/cache/tabuclique" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Store.backend(backendNone) != backendMongo || cfg.Store.database() != "tabuclique" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if _, ok := cfg.Cache.keyer().(*cache.ScopedKeyer); !ok {
		t.Errorf("prefix should select a scoped keyer")
	}
}

func TestLoadConfigDefaultMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if cfg.Cache.ttl() != cache.TTLResult || cfg.Cache.backend(false) != backendFile {
		t.Errorf("zero config = %+v", cfg)
	}
	if _, ok := cfg.Cache.keyer().(cache.DefaultKeyer); !ok {
		t.Errorf("no prefix should select the default keyer")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"explicit missing", filepath.Join(t.TempDir(), "nope.toml"), errors.ErrCodeFileNotFound},
		{"syntax", writeConfig(t, "[search\n"), errors.ErrCodeInvalidConfig},
		{"unknown key", writeConfig(t, "[search]\nrestart = 3\n"), errors.ErrCodeInvalidConfig},
		{"bad eligibility", writeConfig(t, "[search]\neligibility = \"greedy\"\n"), errors.ErrCodeInvalidConfig},
		{"negative width", writeConfig(t, "[search]\nwidth = -2\n"), errors.ErrCodeInvalidInput},
		{"negative ttl", writeConfig(t, "[cache]\nttl = \"-1h\"\n"), errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("loadConfig() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestCacheBackend(t *testing.T) {
	if got := (CacheConfig{RedisAddr: "localhost:6379"}).backend(false); got != backendRedis {
		t.Errorf("redis addr: %s", got)
	}
	if got := (CacheConfig{RedisAddr: "localhost:6379"}).backend(true); got != backendNone {
		t.Errorf("--no-cache: %s", got)
	}
	if got := (StoreConfig{}).backend(backendMemory); got != backendMemory {
		t.Errorf("store fallback: %s", got)
	}
}
