package cms

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RouteKind classifies a routed path.
type RouteKind string

const (
	// RouteKindEntity is a path backed by a single JSON:API entity.
	RouteKindEntity RouteKind = "entity"

	// RouteKindView is a path backed by a view data endpoint.
	RouteKindView RouteKind = "view"
)

// RouteEntry is a single routed path from the routes feed. Exactly one of
// JSONAPIURL (entity routes) or DataURL (view routes) is populated.
type RouteEntry struct {
	Path       string    `json:"path"                  yaml:"path"`
	Kind       RouteKind `json:"kind"                  yaml:"kind"`
	JSONAPIURL string    `json:"jsonapi_url,omitempty" yaml:"jsonapi_url,omitempty"`
	DataURL    string    `json:"data_url,omitempty"    yaml:"data_url,omitempty"`
}

// TargetURL returns the entry's populated resolution target.
func (e RouteEntry) TargetURL() string {
	if e.Kind == RouteKindView {
		return e.DataURL
	}

	return e.JSONAPIURL
}

// RoutesPage is one page of the routes feed: the normalized entries, the
// next-page cursor URL ("" when this is the last page), and opaque feed
// metadata.
type RoutesPage struct {
	Entries []RouteEntry   `json:"entries"        yaml:"entries"`
	Next    string         `json:"next,omitempty" yaml:"next,omitempty"`
	Meta    map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// rawRouteEntry mirrors the wire shape of a feed item before validation.
type rawRouteEntry struct {
	Path       string  `json:"path"`
	Kind       string  `json:"kind"`
	JSONAPIURL *string `json:"jsonapi_url"`
	DataURL    *string `json:"data_url"`
}

// ParseRoutesPage decodes and normalizes one routes feed response body.
// A body that is not a JSON object, or whose data member is not an array,
// fails with FeedFormatError. Individual items that violate the RouteEntry
// invariant are dropped; a malformed item never aborts the page.
func ParseRoutesPage(body []byte) (*RoutesPage, error) {
	var doc struct {
		Data  json.RawMessage            `json:"data"`
		Links map[string]json.RawMessage `json:"links"`
		Meta  map[string]any             `json:"meta"`
	}

	err := json.Unmarshal(body, &doc)
	if err != nil {
		return nil, &FeedFormatError{Reason: "body is not a JSON object"}
	}

	if len(doc.Data) == 0 || bytes.Equal(bytes.TrimSpace(doc.Data), []byte("null")) {
		return nil, &FeedFormatError{Reason: "missing data member"}
	}

	var items []json.RawMessage

	err = json.Unmarshal(doc.Data, &items)
	if err != nil {
		return nil, &FeedFormatError{Reason: "data member is not an array"}
	}

	page := &RoutesPage{
		Entries: make([]RouteEntry, 0, len(items)),
		Meta:    doc.Meta,
	}

	for _, item := range items {
		var raw rawRouteEntry

		err := json.Unmarshal(item, &raw)
		if err != nil {
			continue
		}

		entry, ok := NormalizeRouteEntry(raw.Path, raw.Kind, raw.JSONAPIURL, raw.DataURL)
		if !ok {
			continue
		}

		page.Entries = append(page.Entries, entry)
	}

	page.Next = nextCursor(doc.Links["next"])

	return page, nil
}

// nextCursor extracts the next-page URL from a links.next member, which
// arrives as a plain string or, from some servers, an object carrying an
// href. Absence, null, or any other shape means there is no next page.
func nextCursor(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var next string
	if err := json.Unmarshal(raw, &next); err == nil {
		return strings.TrimSpace(next)
	}

	var link Link
	if err := json.Unmarshal(raw, &link); err == nil {
		return strings.TrimSpace(link.Href)
	}

	return ""
}

// NormalizeRouteEntry validates one raw feed item against the RouteEntry
// invariant: a non-empty path starting with "/", a known kind, and exactly
// one non-empty resolution URL consistent with that kind. Entries with both
// or neither URL set are invalid and rejected, never coerced.
func NormalizeRouteEntry(path, kind string, jsonapiURL, dataURL *string) (RouteEntry, bool) {
	if path == "" || !strings.HasPrefix(path, "/") {
		return RouteEntry{}, false
	}

	jsonapi := ""
	if jsonapiURL != nil {
		jsonapi = strings.TrimSpace(*jsonapiURL)
	}

	data := ""
	if dataURL != nil {
		data = strings.TrimSpace(*dataURL)
	}

	switch RouteKind(kind) {
	case RouteKindEntity:
		if jsonapi == "" || data != "" {
			return RouteEntry{}, false
		}

		return RouteEntry{Path: path, Kind: RouteKindEntity, JSONAPIURL: jsonapi}, true
	case RouteKindView:
		if data == "" || jsonapi != "" {
			return RouteEntry{}, false
		}

		return RouteEntry{Path: path, Kind: RouteKindView, DataURL: data}, true
	default:
		return RouteEntry{}, false
	}
}
