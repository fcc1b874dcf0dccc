package errors

import (
	"strings"
	"unicode"
)

// ValidateEndpoint validates an API endpoint path before it is joined onto
// a brand or client URL.
//
// Validation rules:
//   - Endpoint cannot be empty (or only slashes)
//   - Maximum length of 1024 characters
//   - No control characters
//   - No path traversal sequences (..)
//   - No backslashes
//
// Endpoints may contain the Omeda wildcard segment ("*") and query strings.
func ValidateEndpoint(endpoint string) error {
	if strings.Trim(endpoint, "/ ") == "" {
		return New(ErrCodeConfiguration, "an API endpoint is required")
	}

	const maxEndpointLength = 1024
	if len(endpoint) > maxEndpointLength {
		return New(ErrCodeConfiguration, "endpoint too long (max %d characters)", maxEndpointLength)
	}

	for _, r := range endpoint {
		if unicode.IsControl(r) {
			return New(ErrCodeConfiguration, "endpoint contains invalid control characters")
		}
	}

	if strings.Contains(endpoint, "..") {
		return New(ErrCodeConfiguration, "endpoint cannot contain path traversal sequences (..)")
	}
	if strings.Contains(endpoint, "\\") {
		return New(ErrCodeConfiguration, "endpoint cannot contain backslashes")
	}

	return nil
}

// ValidateIdentifier validates a brand or client abbreviation, which is
// used verbatim as a URL path segment. what names the identifier in the
// returned message.
func ValidateIdentifier(what, value string) error {
	if value == "" {
		return New(ErrCodeConfiguration, "the Omeda %s is required", what)
	}
	for _, r := range value {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeConfiguration, "the Omeda %s contains invalid characters", what)
		}
	}
	if strings.ContainsAny(value, "/\\?#") {
		return New(ErrCodeConfiguration, "the Omeda %s cannot contain URL delimiters", what)
	}
	return nil
}
