package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/url"

	"github.com/code-wheel/jsonapi-frontend-client/internal/http"
	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
)

const routerTranslatePath = "/router/translate-path"

// RouterClientImpl implements cms.RouterClient.
type RouterClientImpl struct {
	httpClient *http.Client
}

// NewRouterClient creates a path resolution client.
func NewRouterClient(httpClient *http.Client) *RouterClientImpl {
	return &RouterClientImpl{httpClient: httpClient}
}

// ResolvePath resolves a site path through the router endpoint. A path the
// router does not know yields (nil, nil); only transport and server failures
// are errors.
func (c *RouterClientImpl) ResolvePath(ctx context.Context, path string) (*cms.ResolvedRoute, error) {
	query := url.Values{}
	query.Set("path", path)
	query.Set("_format", "json")

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodGet,
		Path:   routerTranslatePath,
		Query:  query,
		Headers: map[string]string{
			"Accept": "application/json",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", path, err)
	}

	if resp.StatusCode == nethttp.StatusNotFound {
		return nil, nil
	}

	if !resp.OK() {
		return nil, fmt.Errorf("resolving path %q: %w: %s", path, cms.ErrResolveRequestFailed, resp.Status)
	}

	var route cms.ResolvedRoute

	err = json.Unmarshal(resp.Body, &route)
	if err != nil {
		return nil, fmt.Errorf("parsing resolved route: %w", err)
	}

	return &route, nil
}
