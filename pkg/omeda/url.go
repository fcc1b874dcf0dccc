package omeda

import (
	"strings"

	"github.com/parameter1/omeda-go/pkg/errors"
)

const (
	productionHost = "ows.omeda.com"
	stagingHost    = "ows.omedastaging.com"
	restRoot       = "/webservices/rest"
)

// Environment returns "staging" or "production".
func (c *Client) Environment() string {
	if c.useStaging {
		return "staging"
	}
	return "production"
}

// Host returns the API host name for the environment.
func (c *Client) Host() string {
	if c.useStaging {
		return stagingHost
	}
	return productionHost
}

// BaseURL returns the API root, e.g. https://ows.omeda.com.
func (c *Client) BaseURL() string {
	if c.baseURL != "" {
		return strings.TrimRight(c.baseURL, "/")
	}
	return "https://" + c.Host()
}

// BrandURL returns the brand-scoped URL for endpoint.
func (c *Client) BrandURL(endpoint string) string {
	return c.BaseURL() + restRoot + "/brand/" + c.brand + "/" + CleanPath(endpoint)
}

// ClientURL returns the client-scoped URL for endpoint. It fails with a
// CONFIGURATION error when no client abbreviation was configured.
func (c *Client) ClientURL(endpoint string) (string, error) {
	if c.clientAbbrev == "" {
		return "", errors.New(errors.ErrCodeConfiguration,
			"unable to perform operation: no client abbreviation was set on the API client")
	}
	return c.BaseURL() + restRoot + "/client/" + c.clientAbbrev + "/" + CleanPath(endpoint), nil
}

// CleanPath trims surrounding whitespace and slashes from an endpoint and
// collapses repeated slashes.
func CleanPath(endpoint string) string {
	parts := strings.Split(strings.TrimSpace(endpoint), "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}
