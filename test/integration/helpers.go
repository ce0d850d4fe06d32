//go:build integration
// +build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeCMS is an in-process CMS serving a routes feed, a path router, and
// JSON:API documents.
type fakeCMS struct {
	server *httptest.Server
	secret string

	routes      map[string][]map[string]interface{}
	nextCursors map[string]string
	resolved    map[string]map[string]interface{}
	documents   map[string]string
}

func newFakeCMS(t *testing.T, secret string) *fakeCMS {
	t.Helper()

	cms := &fakeCMS{
		secret:      secret,
		routes:      make(map[string][]map[string]interface{}),
		nextCursors: make(map[string]string),
		resolved:    make(map[string]map[string]interface{}),
		documents:   make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/jsonapi/routes", cms.handleRoutes)
	mux.HandleFunc("/router/translate-path", cms.handleTranslatePath)
	mux.HandleFunc("/jsonapi/", cms.handleDocument)

	cms.server = httptest.NewServer(mux)
	t.Cleanup(cms.server.Close)

	return cms
}

func (c *fakeCMS) URL() string {
	return c.server.URL
}

// addRoutesPage registers one feed page under a cursor ("" for the first
// page); nextCursor, when non-empty, links the page to its successor.
func (c *fakeCMS) addRoutesPage(cursor string, entries []map[string]interface{}, nextCursor string) {
	c.routes[cursor] = entries

	if nextCursor != "" {
		c.nextCursors[cursor] = nextCursor
	}
}

func (c *fakeCMS) addResolvedPath(path string, route map[string]interface{}) {
	c.resolved[path] = route
}

func (c *fakeCMS) addDocument(path, body string) {
	c.documents[path] = body
}

func entityRoute(path, jsonapiURL string) map[string]interface{} {
	return map[string]interface{}{
		"path":        path,
		"kind":        "entity",
		"jsonapi_url": jsonapiURL,
	}
}

func (c *fakeCMS) handleRoutes(writer http.ResponseWriter, request *http.Request) {
	if c.secret != "" && request.Header.Get("X-Routes-Secret") != c.secret {
		writer.WriteHeader(http.StatusForbidden)

		return
	}

	cursor := request.URL.Query().Get("page[cursor]")

	entries, ok := c.routes[cursor]
	if !ok {
		writer.WriteHeader(http.StatusNotFound)

		return
	}

	body := map[string]interface{}{"data": entries}

	if next, ok := c.nextCursors[cursor]; ok {
		body["links"] = map[string]interface{}{
			"next": fmt.Sprintf("%s/jsonapi/routes?page[cursor]=%s", c.server.URL, next),
		}
	}

	writer.Header().Set("Content-Type", "application/vnd.api+json")
	_ = json.NewEncoder(writer).Encode(body)
}

func (c *fakeCMS) handleTranslatePath(writer http.ResponseWriter, request *http.Request) {
	path := request.URL.Query().Get("path")

	route, ok := c.resolved[path]
	if !ok {
		writer.WriteHeader(http.StatusNotFound)

		return
	}

	writer.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(writer).Encode(route)
}

func (c *fakeCMS) handleDocument(writer http.ResponseWriter, request *http.Request) {
	body, ok := c.documents[request.URL.Path]
	if !ok {
		writer.WriteHeader(http.StatusNotFound)

		return
	}

	writer.Header().Set("Content-Type", "application/vnd.api+json")
	_, _ = writer.Write([]byte(body))
}
