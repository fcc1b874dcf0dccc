package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"
	"github.com/spf13/cobra"
)

// Cache backends selectable with --cache.
const (
	backendFile   = "file"
	backendMemory = "memory"
	backendRedis  = "redis"
	backendMongo  = "mongo"
	backendNone   = "none"
)

var backends = []string{backendFile, backendMemory, backendRedis, backendMongo, backendNone}

// settings is the merged CLI configuration. Values are layered: the TOML
// file first, then OMEDA_* environment variables, then flags.
type settings struct {
	AppID        string `toml:"app_id" env:"OMEDA_APP_ID"`
	Brand        string `toml:"brand" env:"OMEDA_BRAND"`
	ClientAbbrev string `toml:"client" env:"OMEDA_CLIENT_ABBREV"`
	InputID      string `toml:"input_id" env:"OMEDA_INPUT_ID"`
	UseStaging   bool   `toml:"staging" env:"OMEDA_USE_STAGING"`
	BaseURL      string `toml:"base_url" env:"OMEDA_BASE_URL"`

	Cache cacheSettings `toml:"cache"`
	Redis redisSettings `toml:"redis"`
	Mongo mongoSettings `toml:"mongo"`

	// path is the config file that was read, if any.
	path string
}

type cacheSettings struct {
	Backend string        `toml:"backend" env:"OMEDA_CACHE"`
	Dir     string        `toml:"dir" env:"OMEDA_CACHE_DIR"`
	TTL     time.Duration `toml:"ttl" env:"OMEDA_CACHE_TTL"`
}

type redisSettings struct {
	Addr      string `toml:"addr" env:"OMEDA_REDIS_ADDR"`
	DB        int    `toml:"db" env:"OMEDA_REDIS_DB"`
	KeyPrefix string `toml:"key_prefix" env:"OMEDA_REDIS_KEY_PREFIX"`
}

type mongoSettings struct {
	URI        string `toml:"uri" env:"OMEDA_MONGO_URI"`
	Database   string `toml:"database" env:"OMEDA_MONGO_DATABASE"`
	Collection string `toml:"collection" env:"OMEDA_MONGO_COLLECTION"`
}

func defaultSettings() settings {
	return settings{
		Cache: cacheSettings{Backend: backendFile},
		Redis: redisSettings{Addr: "localhost:6379"},
		Mongo: mongoSettings{Database: appName, Collection: "cache"},
	}
}

// readSettings layers the config file at path and the environment over
// the defaults. A missing file is not an error unless it was requested
// explicitly.
func readSettings(path string, explicit bool) (settings, error) {
	s := defaultSettings()

	if path != "" {
		if _, err := toml.DecodeFile(path, &s); err != nil {
			if !errors.Is(err, fs.ErrNotExist) || explicit {
				return settings{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else {
			s.path = path
		}
	}

	if err := envdecode.Decode(&s); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return settings{}, fmt.Errorf("decode environment: %w", err)
	}
	return s, nil
}

func validBackend(b string) bool {
	for _, v := range backends {
		if v == b {
			return true
		}
	}
	return false
}

// =============================================================================
// Flags
// =============================================================================

// globalFlags are the persistent flags shared by every command. They
// override file and environment settings only when set.
type globalFlags struct {
	config   string
	appID    string
	brand    string
	client   string
	inputID  string
	staging  bool
	baseURL  string
	cache    string
	cacheDir string
}

func (f *globalFlags) register(cmd *cobra.Command) {
	p := cmd.PersistentFlags()
	p.StringVar(&f.config, "config", "", "config file (default ~/.config/omeda/config.toml)")
	p.StringVar(&f.appID, "app-id", "", "Omeda API app id")
	p.StringVar(&f.brand, "brand", "", "brand abbreviation")
	p.StringVar(&f.client, "client", "", "client abbreviation for client-scoped endpoints")
	p.StringVar(&f.inputID, "input-id", "", "default input id for write calls")
	p.BoolVar(&f.staging, "staging", false, "use the Omeda staging environment")
	p.StringVar(&f.baseURL, "base-url", "", "override the API root URL")
	p.StringVar(&f.cache, "cache", "", "cache backend: file, memory, redis, mongo or none")
	p.StringVar(&f.cacheDir, "cache-dir", "", "directory for the file cache")
	_ = p.MarkHidden("base-url")

	_ = cmd.RegisterFlagCompletionFunc("cache", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return backends, cobra.ShellCompDirectiveNoFileComp
	})
}

func (f *globalFlags) apply(cmd *cobra.Command, s *settings) {
	changed := cmd.Flags().Changed
	if changed("app-id") {
		s.AppID = f.appID
	}
	if changed("brand") {
		s.Brand = f.brand
	}
	if changed("client") {
		s.ClientAbbrev = f.client
	}
	if changed("input-id") {
		s.InputID = f.inputID
	}
	if changed("staging") {
		s.UseStaging = f.staging
	}
	if changed("base-url") {
		s.BaseURL = f.baseURL
	}
	if changed("cache") {
		s.Cache.Backend = f.cache
	}
	if changed("cache-dir") {
		s.Cache.Dir = f.cacheDir
	}
}

// loadSettings resolves the configuration for the running command.
func (c *CLI) loadSettings(cmd *cobra.Command) error {
	path, explicit := c.flags.config, c.flags.config != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return fmt.Errorf("get config path: %w", err)
		}
		path = p
	}

	s, err := readSettings(path, explicit)
	if err != nil {
		return err
	}
	c.flags.apply(cmd, &s)
	if !validBackend(s.Cache.Backend) {
		return fmt.Errorf("unknown cache backend %q (want one of %v)", s.Cache.Backend, backends)
	}
	if s.Cache.Dir == "" {
		dir, err := cacheDir()
		if err != nil {
			return fmt.Errorf("get cache dir: %w", err)
		}
		s.Cache.Dir = dir
	}

	c.config = s
	if s.path != "" {
		c.Logger.Debug("loaded config", "path", s.path)
	}
	return nil
}

// =============================================================================
// config command
// =============================================================================

// configCommand prints the resolved configuration, with the app id masked.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.config
			file := s.path
			if file == "" {
				file = "(none)"
			}
			printKeyValue(c.Out, "config", file)
			printKeyValue(c.Out, "app id", mask(s.AppID))
			printKeyValue(c.Out, "brand", s.Brand)
			printKeyValue(c.Out, "client", s.ClientAbbrev)
			printKeyValue(c.Out, "input id", s.InputID)
			printKeyValue(c.Out, "staging", fmt.Sprint(s.UseStaging))
			printKeyValue(c.Out, "cache", s.Cache.Backend)
			if s.Cache.Backend == backendFile {
				printKeyValue(c.Out, "cache dir", s.Cache.Dir)
			}
			return nil
		},
	}
	cmd.AddCommand(c.configInitCommand())
	return cmd
}

// configInitCommand writes an example config file.
func (c *CLI) configInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write an example config file",
		// The file may not exist yet, so nothing is loaded.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.flags.config
			if path == "" {
				p, err := configPath()
				if err != nil {
					return fmt.Errorf("get config path: %w", err)
				}
				path = p
			}
			if err := writeExampleConfig(path); err != nil {
				return err
			}
			printSuccess(c.Out, "Wrote %s", path)
			return nil
		},
	}
}

// mask hides all but the last four characters of a secret.
func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}

// configFileExample is written by "config init".
const configFileExample = `# omeda CLI configuration
app_id   = ""
brand    = ""
client   = ""
input_id = ""
staging  = false

[cache]
backend = "file" # file, memory, redis, mongo or none
ttl     = "1h"

[redis]
addr = "localhost:6379"

[mongo]
uri        = "mongodb://localhost:27017"
database   = "omeda"
collection = "cache"
`

// writeExampleConfig creates path with the example contents. It refuses
// to overwrite an existing file.
func writeExampleConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(configFileExample), 0o600)
}
