package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tabuclique/pkg/buildinfo"
	"github.com/matzehuels/tabuclique/pkg/cache"
	"github.com/matzehuels/tabuclique/pkg/observability"
	"github.com/matzehuels/tabuclique/pkg/pipeline"
	"github.com/matzehuels/tabuclique/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tabuclique"

	// serveHistory is the number of runs kept in memory by serve.
	serveHistory = 1000
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the pipeline's
// observability hooks are routed to the logger as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.Register(observability.Hooks{Search: hooks, Cache: hooks, HTTP: hooks})
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Tabuclique finds large cliques with restarted tabu search",
		Long: `Tabuclique searches DIMACS graphs for large cliques using a randomized
greedy constructor followed by tabu-guarded local search, restarted
a configurable number of times. Results are cached by graph content and
search options, and can be rendered, verified, or served over HTTP.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tabuclique/config.toml)")

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// backendFlags are the storage overrides shared by commands that run searches.
type backendFlags struct {
	noCache   bool
	redisAddr string
	mongoURI  string
}

func (f *backendFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", "", "use the Redis result cache at this address")
	cmd.Flags().StringVar(&f.mongoURI, "mongo-uri", "", "record runs in this MongoDB deployment")
}

// newRunner creates a pipeline runner from the config and flag overrides.
// storeFallback names the store used when no MongoDB URI is configured.
func (c *CLI) newRunner(ctx context.Context, f backendFlags, storeFallback string) (*pipeline.Runner, error) {
	cacheCfg, storeCfg := c.config.Cache, c.config.Store
	if f.redisAddr != "" {
		cacheCfg.RedisAddr = f.redisAddr
	}
	if f.mongoURI != "" {
		storeCfg.MongoURI = f.mongoURI
	}

	rc, err := c.newCache(ctx, cacheCfg, f.noCache)
	if err != nil {
		return nil, err
	}
	st, err := c.newStore(ctx, storeCfg, storeFallback)
	if err != nil {
		rc.Close()
		return nil, err
	}
	r := pipeline.NewRunner(rc, cacheCfg.keyer(), st, c.Logger)
	r.ResultTTL = cacheCfg.ttl()
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, cfg CacheConfig, noCache bool) (cache.Cache, error) {
	switch cfg.backend(noCache) {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "addr", cfg.RedisAddr)
		return rc, nil
	}

	dir := cfg.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) newStore(ctx context.Context, cfg StoreConfig, fallback string) (store.Store, error) {
	switch cfg.backend(fallback) {
	case backendMongo:
		ms, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.database())
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("recording runs in mongo", "database", cfg.database())
		return ms, nil
	case backendMemory:
		return store.NewMemoryStore(serveHistory), nil
	default:
		return store.NullStore{}, nil
	}
}
