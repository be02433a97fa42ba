package urlutil

import (
	"fmt"
	"net/url"
)

// ValidateURL checks that urlStr is an absolute http(s) URL with a host
func ValidateURL(urlStr string) error {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: must be http or https, got %s", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}

	return nil
}

// Join resolves ref against base following RFC 3986. A ref starting with "/"
// replaces the whole base path, anything else is relative to the last "/".
func Join(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid reference %q: %w", ref, err)
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// ResolveURL is Join without the error. Unparsable input comes back unchanged.
func ResolveURL(base, href string) string {
	resolved, err := Join(base, href)
	if err != nil {
		return href
	}
	return resolved
}

// Host returns the host of urlStr, or "" when it cannot be parsed
func Host(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return u.Host
}
