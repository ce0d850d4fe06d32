package cms

import (
	"net/url"
	"strings"
)

// ResolveFileURL turns a raw CMS file URL into an absolute URL against the
// base origin. Absolute http(s) URLs and data: URIs pass through unchanged;
// protocol-relative URLs are pinned to https. Anything else is treated as a
// path on the base origin. Returns "" for empty input or an unusable base.
func ResolveFileURL(raw, base string) string {
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}

	if strings.HasPrefix(raw, "data:") {
		return raw
	}

	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}

	baseURL, err := url.Parse(base)
	if err != nil || !baseURL.IsAbs() {
		return ""
	}

	path := raw
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return strings.TrimRight(base, "/") + path
}

const (
	stylesMarker = "/styles/"
	filesMarker  = "/files/"
)

// ImageStyleURL rewrites a file URL to point at an image-style derivative.
// An existing /styles/<name>/ segment has just its style name replaced;
// otherwise styles/<style>/public/ is spliced in after the /files/ marker.
// URLs with no recognizable file path structure are returned resolved but
// otherwise unchanged; a URL that fails to resolve at all is returned as-is.
// This is a best-effort convenience and never fails.
func ImageStyleURL(original, style, base string) string {
	resolved := ResolveFileURL(original, base)
	if resolved == "" {
		return original
	}

	if i := strings.Index(resolved, stylesMarker); i >= 0 {
		rest := resolved[i+len(stylesMarker):]
		if j := strings.Index(rest, "/"); j >= 0 {
			return resolved[:i+len(stylesMarker)] + style + rest[j:]
		}
	}

	if i := strings.Index(resolved, filesMarker); i >= 0 {
		tail := resolved[i+len(filesMarker):]

		return resolved[:i+len(filesMarker)] + "styles/" + style + "/public/" + tail
	}

	return resolved
}
