// Package utils provides common utility functions.
package utils

import (
	"errors"
	"fmt"
	"maps"
	"net/url"
)

// URL validation errors.
var (
	ErrInvalidURL    = errors.New("invalid URL")
	ErrMissingScheme = errors.New("URL has no http or https scheme")
)

// DefaultUserAgent identifies the scraper when a source does not pin its own.
const DefaultUserAgent = "storescrape/1.0"

// ValidateURL checks that raw parses and names an http(s) host.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q", ErrMissingScheme, raw)
	}

	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidURL, raw)
	}

	return nil
}

// BuildHeaders creates request headers with defaults. Custom headers win.
func BuildHeaders(customHeaders map[string]string) map[string]string {
	headers := map[string]string{
		"User-Agent": DefaultUserAgent,
		"Accept":     "application/json, text/html",
	}

	maps.Copy(headers, customHeaders)

	return headers
}
