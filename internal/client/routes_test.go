package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	internalhttp "github.com/code-wheel/jsonapi-frontend-client/internal/http"
	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routesPageBody(paths []string, next string) map[string]interface{} {
	data := make([]map[string]interface{}, 0, len(paths))
	for _, path := range paths {
		data = append(data, map[string]interface{}{
			"path":        path,
			"kind":        "entity",
			"jsonapi_url": "https://cms.example.com/jsonapi/node/page/" + path,
		})
	}

	body := map[string]interface{}{"data": data}
	if next != "" {
		body["links"] = map[string]interface{}{"next": next}
	}

	return body
}

func TestRoutesFetchFirstPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/jsonapi/routes", request.URL.Path)
		assert.Equal(t, "25", request.URL.Query().Get("page[limit]"))
		assert.Equal(t, "application/vnd.api+json", request.Header.Get("Accept"))
		assert.Equal(t, "no-cache", request.Header.Get("Cache-Control"))
		assert.Equal(t, "s3cret", request.Header.Get("X-Routes-Secret"))
		assert.Empty(t, request.URL.Query().Get("secret"))

		writer.Header().Set("Content-Type", "application/vnd.api+json")
		_ = json.NewEncoder(writer).Encode(routesPageBody([]string{"/about", "/contact"}, ""))
	}))
	defer server.Close()

	routes := NewRoutesClient(internalhttp.NewClient(server.URL), "s3cret")

	page, err := routes.FetchRoutesPage(context.Background(), &cms.RoutesOptions{PageSize: 25})
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "/about", page.Entries[0].Path)
	assert.Equal(t, cms.RouteKindEntity, page.Entries[0].Kind)
	assert.Empty(t, page.Next)
}

func TestRoutesFetchLocalePrefix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/de/jsonapi/routes", request.URL.Path)
		_ = json.NewEncoder(writer).Encode(routesPageBody(nil, ""))
	}))
	defer server.Close()

	routes := NewRoutesClient(internalhttp.NewClient(server.URL), "")

	_, err := routes.FetchRoutesPage(context.Background(), &cms.RoutesOptions{Locale: "de"})
	require.NoError(t, err)
}

func TestRoutesFetchCursorSameOrigin(t *testing.T) {
	var cursorURL string

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/jsonapi/routes", request.URL.Path)
		assert.Equal(t, "page-2", request.URL.Query().Get("page[cursor]"))
		_ = json.NewEncoder(writer).Encode(routesPageBody([]string{"/news"}, ""))
	}))
	defer server.Close()

	cursorURL = server.URL + "/jsonapi/routes?page[cursor]=page-2"
	routes := NewRoutesClient(internalhttp.NewClient(server.URL), "")

	page, err := routes.FetchRoutesPage(context.Background(), &cms.RoutesOptions{CursorURL: cursorURL})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, "/news", page.Entries[0].Path)
}

func TestRoutesFetchCursorCrossOriginRejected(t *testing.T) {
	routes := NewRoutesClient(internalhttp.NewClient("https://cms.example.com"), "s3cret")

	_, err := routes.FetchRoutesPage(context.Background(), &cms.RoutesOptions{
		CursorURL: "https://evil.example.net/jsonapi/routes?page[cursor]=x",
	})
	require.Error(t, err)
	assert.True(t, cms.IsOriginMismatch(err))
}

func TestRoutesFetchNonSuccessStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
	}{
		{name: "forbidden", statusCode: http.StatusForbidden},
		{name: "not found", statusCode: http.StatusNotFound},
		{name: "server error", statusCode: http.StatusInternalServerError},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				writer.WriteHeader(testCase.statusCode)
			}))
			defer server.Close()

			routes := NewRoutesClient(internalhttp.NewClient(server.URL), "")

			page, err := routes.FetchRoutesPage(context.Background(), nil)
			require.Error(t, err)
			assert.Nil(t, page)

			status, ok := cms.IsFeedRequestError(err)
			require.True(t, ok)
			assert.Equal(t, testCase.statusCode, status)
		})
	}
}

func TestRoutesFetchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte(`{"meta":{}}`))
	}))
	defer server.Close()

	routes := NewRoutesClient(internalhttp.NewClient(server.URL), "")

	_, err := routes.FetchRoutesPage(context.Background(), nil)
	require.Error(t, err)

	var formatErr *cms.FeedFormatError

	require.ErrorAs(t, err, &formatErr)
}

func TestRoutesHeaderOverrides(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "max-age=60", request.Header.Get("Cache-Control"))
		assert.Equal(t, "application/json", request.Header.Get("Accept"))
		_ = json.NewEncoder(writer).Encode(routesPageBody(nil, ""))
	}))
	defer server.Close()

	routes := NewRoutesClient(internalhttp.NewClient(server.URL), "")

	_, err := routes.FetchRoutesPage(context.Background(), &cms.RoutesOptions{
		CacheControl: "max-age=60",
		Headers:      map[string]string{"Accept": "application/json"},
	})
	require.NoError(t, err)
}

func TestRoutesCollectAllFollowsCursors(t *testing.T) {
	var server *httptest.Server

	requests := 0
	server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++

		switch request.URL.Query().Get("page[cursor]") {
		case "":
			_ = json.NewEncoder(writer).Encode(routesPageBody(
				[]string{"/a", "/b"},
				server.URL+"/jsonapi/routes?page[cursor]=two",
			))
		case "two":
			_ = json.NewEncoder(writer).Encode(routesPageBody([]string{"/c"}, ""))
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	routes := NewRoutesClient(internalhttp.NewClient(server.URL), "")

	entries, err := routes.CollectAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, requests)

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, entry.Path)
	}

	assert.Equal(t, []string{"/a", "/b", "/c"}, paths)
}

func TestRoutesIterateLazily(t *testing.T) {
	var server *httptest.Server

	requests := 0
	server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests++

		if request.URL.Query().Get("page[cursor]") == "" {
			_ = json.NewEncoder(writer).Encode(routesPageBody(
				[]string{"/a", "/b"},
				server.URL+"/jsonapi/routes?page[cursor]=two",
			))

			return
		}

		_ = json.NewEncoder(writer).Encode(routesPageBody([]string{"/c"}, ""))
	}))
	defer server.Close()

	routes := NewRoutesClient(internalhttp.NewClient(server.URL), "")
	iterator := routes.Iterate(context.Background(), nil)

	first, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "/a", first.Path)

	second, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "/b", second.Path)

	// Both entries came from the first page; the second page is untouched.
	assert.Equal(t, 1, requests)

	third, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "/c", third.Path)
	assert.Equal(t, 2, requests)

	_, err = iterator.Next()
	require.ErrorIs(t, err, cms.ErrNoMoreRoutes)
	assert.False(t, iterator.HasNext())
}

func TestRoutesStream(t *testing.T) {
	var server *httptest.Server

	server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Query().Get("page[cursor]") == "" {
			_ = json.NewEncoder(writer).Encode(routesPageBody(
				[]string{"/a"},
				server.URL+"/jsonapi/routes?page[cursor]=two",
			))

			return
		}

		_ = json.NewEncoder(writer).Encode(routesPageBody([]string{"/b", "/c"}, ""))
	}))
	defer server.Close()

	routes := NewRoutesClient(internalhttp.NewClient(server.URL), "")

	var pages [][]cms.RouteEntry

	for result := range routes.Stream(context.Background(), nil) {
		require.NoError(t, result.Err)
		pages = append(pages, result.Entries)
	}

	require.Len(t, pages, 2)
	assert.Len(t, pages[0], 1)
	assert.Len(t, pages[1], 2)
}
