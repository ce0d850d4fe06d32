//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
	"github.com/code-wheel/jsonapi-frontend-client/pkg/cmsclient"
)

const testSecret = "integration-secret"

func newTestClient(t *testing.T, server *fakeCMS, secret string) cms.Client {
	t.Helper()

	client, err := cmsclient.New(&cms.Config{
		BaseURL:    server.URL(),
		FeedSecret: secret,
	})
	require.NoError(t, err)

	return client
}

func TestRoutesFeedWalk(t *testing.T) {
	server := newFakeCMS(t, testSecret)
	server.addRoutesPage("", []map[string]interface{}{
		entityRoute("/articles/one", server.URL()+"/jsonapi/node/article/one"),
		entityRoute("/articles/two", server.URL()+"/jsonapi/node/article/two"),
	}, "second")
	server.addRoutesPage("second", []map[string]interface{}{
		entityRoute("/articles/three", server.URL()+"/jsonapi/node/article/three"),
	}, "")

	client := newTestClient(t, server, testSecret)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	entries, err := client.Routes().CollectAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, entry.Path)
	}

	assert.Equal(t, []string{"/articles/one", "/articles/two", "/articles/three"}, paths)
}

func TestRoutesFeedRejectsWrongSecret(t *testing.T) {
	server := newFakeCMS(t, testSecret)
	server.addRoutesPage("", []map[string]interface{}{
		entityRoute("/articles/one", server.URL()+"/jsonapi/node/article/one"),
	}, "")

	client := newTestClient(t, server, "wrong-secret")

	_, err := client.Routes().CollectAll(context.Background(), nil)
	require.Error(t, err)

	status, ok := cms.IsFeedRequestError(err)
	require.True(t, ok)
	assert.Equal(t, 403, status)
}

func TestRoutesFeedStream(t *testing.T) {
	server := newFakeCMS(t, testSecret)
	server.addRoutesPage("", []map[string]interface{}{
		entityRoute("/a", server.URL()+"/jsonapi/node/article/a"),
		entityRoute("/b", server.URL()+"/jsonapi/node/article/b"),
	}, "second")
	server.addRoutesPage("second", []map[string]interface{}{
		entityRoute("/c", server.URL()+"/jsonapi/node/article/c"),
	}, "")

	client := newTestClient(t, server, testSecret)

	var total int

	for result := range client.Routes().Stream(context.Background(), nil) {
		require.NoError(t, result.Err)

		total += len(result.Entries)
	}

	assert.Equal(t, 3, total)
}

func TestResolveAndFetchDocument(t *testing.T) {
	server := newFakeCMS(t, "")

	individual := server.URL() + "/jsonapi/node/article/11111111-1111-4111-8111-111111111111"
	server.addResolvedPath("/about-us", map[string]interface{}{
		"resolved":   server.URL() + "/about-us",
		"isHomePath": false,
		"label":      "About us",
		"entity": map[string]interface{}{
			"canonical": server.URL() + "/about-us",
			"type":      "node",
			"bundle":    "article",
			"id":        "1",
			"uuid":      "11111111-1111-4111-8111-111111111111",
		},
		"jsonapi": map[string]interface{}{
			"individual":   individual,
			"resourceName": "node--article",
		},
	})
	server.addDocument("/jsonapi/node/article/11111111-1111-4111-8111-111111111111", `{
		"data": {
			"type": "node--article",
			"id": "11111111-1111-4111-8111-111111111111",
			"attributes": {"title": "About us"},
			"relationships": {
				"field_image": {
					"data": {"type": "media--image", "id": "22222222-2222-4222-8222-222222222222", "meta": {"alt": "Team photo", "width": 1200, "height": 800}}
				}
			}
		},
		"included": [
			{
				"type": "media--image",
				"id": "22222222-2222-4222-8222-222222222222",
				"attributes": {"name": "Team photo"},
				"relationships": {
					"field_media_image": {
						"data": {"type": "file--file", "id": "33333333-3333-4333-8333-333333333333"}
					}
				}
			},
			{
				"type": "file--file",
				"id": "33333333-3333-4333-8333-333333333333",
				"attributes": {"uri": {"url": "/sites/default/files/team.jpg"}, "filemime": "image/jpeg"}
			}
		]
	}`)

	client := newTestClient(t, server, "")

	route, err := client.Router().ResolvePath(context.Background(), "/about-us")
	require.NoError(t, err)
	require.NotNil(t, route)
	assert.Equal(t, "node--article", route.JSONAPI.ResourceName)

	doc, err := client.Documents().Get(context.Background(), route.JSONAPI.Individual)
	require.NoError(t, err)
	require.NotNil(t, doc.Resource())
	assert.Equal(t, "About us", doc.Resource().Attributes.String("title"))

	normalizer := cms.NewMediaNormalizer(server.URL())

	image := normalizer.ExtractPrimaryImage(doc.Resource(), doc.Included)
	require.NotNil(t, image)
	assert.Equal(t, server.URL()+"/sites/default/files/team.jpg", image.Src)
	assert.Equal(t, "Team photo", image.Alt)
	assert.Equal(t, 1200, image.Width)
}

func TestResolveUnknownPath(t *testing.T) {
	server := newFakeCMS(t, "")
	client := newTestClient(t, server, "")

	route, err := client.Router().ResolvePath(context.Background(), "/missing")
	require.NoError(t, err)
	assert.Nil(t, route)
}
