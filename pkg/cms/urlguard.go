package cms

import (
	"fmt"
	"net/url"
)

// ResolveURL resolves input against the configured base origin and enforces
// the origin boundary. Absolute inputs override the base; relative inputs are
// joined onto it. Unless allowCrossOrigin is set, a resolved URL whose
// (scheme, host, port) triple differs from the base's fails with
// OriginMismatchError. Non-http(s) schemes are always rejected.
//
// Pure function; safe for concurrent use.
func ResolveURL(input, base string, allowCrossOrigin bool) (*url.URL, error) {
	baseURL, err := url.Parse(base)
	if err != nil || !baseURL.IsAbs() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, base)
	}

	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, base)
	}

	ref, err := url.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("parsing URL %q: %w", input, err)
	}

	resolved := baseURL.ResolveReference(ref)

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil, &UnsupportedSchemeError{Scheme: resolved.Scheme, URL: resolved.String()}
	}

	if !allowCrossOrigin && !sameOrigin(resolved, baseURL) {
		return nil, &OriginMismatchError{URL: resolved.String(), Base: base}
	}

	return resolved, nil
}

// sameOrigin compares the (scheme, host, port) triples of two URLs, with
// default ports normalized so that https://x and https://x:443 match.
func sameOrigin(a, b *url.URL) bool {
	return a.Scheme == b.Scheme &&
		a.Hostname() == b.Hostname() &&
		portOrDefault(a) == portOrDefault(b)
}

func portOrDefault(u *url.URL) string {
	port := u.Port()
	if port != "" {
		return port
	}

	if u.Scheme == "https" {
		return "443"
	}

	return "80"
}
