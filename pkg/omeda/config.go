package omeda

import (
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joeshaw/envdecode"

	"github.com/parameter1/omeda-go/pkg/buildinfo"
	"github.com/parameter1/omeda-go/pkg/cache"
	"github.com/parameter1/omeda-go/pkg/errors"
	"github.com/parameter1/omeda-go/pkg/observability"
)

// Config configures a Client. AppID and Brand are required.
type Config struct {
	AppID        string // sent as x-omeda-appid
	Brand        string // brand abbreviation for brand-scoped URLs
	ClientAbbrev string // client abbreviation for client-scoped URLs
	InputID      string // default x-omeda-inputid for write calls
	UseStaging   bool   // use ows.omedastaging.com

	// BaseURL replaces the https://{host} root. Used to point the client
	// at a fake server in tests.
	BaseURL string

	// Cache, when set, fronts GET requests.
	Cache cache.Cache

	// RequestLogger is called once per outbound request.
	RequestLogger RequestLogger

	// Hooks receives HTTP and cache events. Nil means no-op.
	Hooks observability.Hooks

	// HTTPClient performs requests. Nil means http.DefaultClient. Timeouts
	// belong to this client; the pipeline sets none of its own.
	HTTPClient *http.Client

	// BuildInfo identifies the caller in the User-Agent header. The zero
	// value means buildinfo.Default().
	BuildInfo buildinfo.Info

	// Logger receives debug lines. Nil discards them.
	Logger *log.Logger
}

// Option modifies a Config. Options are applied by NewFromEnv after the
// environment has been decoded.
type Option func(*Config)

// WithCache sets the response cache.
func WithCache(c cache.Cache) Option {
	return func(cfg *Config) { cfg.Cache = c }
}

// WithRequestLogger sets the request logger.
func WithRequestLogger(l RequestLogger) Option {
	return func(cfg *Config) { cfg.RequestLogger = l }
}

// WithHooks sets the observability hooks.
func WithHooks(h observability.Hooks) Option {
	return func(cfg *Config) { cfg.Hooks = h }
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *Config) { cfg.HTTPClient = c }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(cfg *Config) { cfg.Logger = l }
}

// WithBuildInfo sets the build info used for the User-Agent header.
func WithBuildInfo(info buildinfo.Info) Option {
	return func(cfg *Config) { cfg.BuildInfo = info }
}

// envConfig is the part of Config that can come from the environment.
type envConfig struct {
	AppID        string `env:"OMEDA_APP_ID"`
	Brand        string `env:"OMEDA_BRAND"`
	ClientAbbrev string `env:"OMEDA_CLIENT_ABBREV"`
	InputID      string `env:"OMEDA_INPUT_ID"`
	UseStaging   bool   `env:"OMEDA_USE_STAGING,default=false"`
	BaseURL      string `env:"OMEDA_BASE_URL"`
}

// ConfigFromEnv reads OMEDA_APP_ID, OMEDA_BRAND, OMEDA_CLIENT_ABBREV,
// OMEDA_INPUT_ID, OMEDA_USE_STAGING and OMEDA_BASE_URL.
func ConfigFromEnv() (Config, error) {
	var env envConfig
	if err := envdecode.Decode(&env); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return Config{}, errors.Wrap(errors.ErrCodeConfiguration, err, "decode environment")
	}
	return Config{
		AppID:        env.AppID,
		Brand:        env.Brand,
		ClientAbbrev: env.ClientAbbrev,
		InputID:      env.InputID,
		UseStaging:   env.UseStaging,
		BaseURL:      env.BaseURL,
	}, nil
}

// NewFromEnv builds a Client from the environment, then applies opts.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(cfg)
}

func (cfg Config) validate() error {
	if cfg.AppID == "" {
		return errors.New(errors.ErrCodeConfiguration, "the Omeda API App ID is required")
	}
	if err := errors.ValidateIdentifier("brand abbreviation", cfg.Brand); err != nil {
		return err
	}
	if cfg.ClientAbbrev != "" {
		if err := errors.ValidateIdentifier("client abbreviation", cfg.ClientAbbrev); err != nil {
			return err
		}
	}
	if cfg.BaseURL != "" && !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return errors.New(errors.ErrCodeConfiguration, "base URL %q must be an http or https URL", cfg.BaseURL)
	}
	return nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
