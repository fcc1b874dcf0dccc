package omeda

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/parameter1/omeda-go/pkg/buildinfo"
	"github.com/parameter1/omeda-go/pkg/cache"
	"github.com/parameter1/omeda-go/pkg/observability"
)

// Client performs requests against the Omeda REST API.
//
// A Client holds no mutable state after New returns and is safe for
// concurrent use. Concurrent identical GETs that miss the cache each go
// to the network.
type Client struct {
	appID        string
	brand        string
	clientAbbrev string
	inputID      string
	useStaging   bool
	baseURL      string
	userAgent    string

	http          *http.Client
	cache         cache.Cache
	requestLogger RequestLogger
	hooks         observability.Hooks
	log           *log.Logger
}

// New validates cfg and returns a Client. A missing App ID or brand is a
// CONFIGURATION error.
func New(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = discardLogger()
	}
	info := cfg.BuildInfo
	if info == (buildinfo.Info{}) {
		info = buildinfo.Default()
	}

	return &Client{
		appID:         cfg.AppID,
		brand:         cfg.Brand,
		clientAbbrev:  cfg.ClientAbbrev,
		inputID:       cfg.InputID,
		useStaging:    cfg.UseStaging,
		baseURL:       cfg.BaseURL,
		userAgent:     info.UserAgent(),
		http:          httpClient,
		cache:         cfg.Cache,
		requestLogger: cfg.RequestLogger,
		hooks:         observability.OrNoop(cfg.Hooks),
		log:           logger,
	}, nil
}

// BrandAbbrev returns the brand abbreviation.
func (c *Client) BrandAbbrev() string { return c.brand }

// ClientAbbrev returns the client abbreviation, or "".
func (c *Client) ClientAbbrev() string { return c.clientAbbrev }

// UseStaging reports whether the client targets the staging API.
func (c *Client) UseStaging() bool { return c.useStaging }

// UserAgent returns the User-Agent header value sent with every request.
func (c *Client) UserAgent() string { return c.userAgent }

// Cache returns the configured response cache, or nil.
func (c *Client) Cache() cache.Cache { return c.cache }
