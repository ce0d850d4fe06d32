package client

import (
	"context"
	"fmt"
	nethttp "net/http"
	"net/url"
	"strconv"

	"github.com/code-wheel/jsonapi-frontend-client/internal/constants"
	"github.com/code-wheel/jsonapi-frontend-client/internal/http"
	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
)

const (
	routesFeedPath = "/jsonapi/routes"

	// secretHeader carries the feed secret. The secret never travels in a
	// query string.
	secretHeader = "X-Routes-Secret"
)

// RoutesClientImpl implements cms.RoutesClient.
type RoutesClientImpl struct {
	httpClient *http.Client
	secret     string
}

// NewRoutesClient creates a routes feed client.
func NewRoutesClient(httpClient *http.Client, secret string) *RoutesClientImpl {
	return &RoutesClientImpl{
		httpClient: httpClient,
		secret:     secret,
	}
}

// FetchRoutesPage fetches one page of the routes feed. An empty cursor in
// opts selects the first page; a cursor is validated against the feed origin
// before it is followed, and a cross-origin cursor fails the fetch.
func (c *RoutesClientImpl) FetchRoutesPage(ctx context.Context, opts *cms.RoutesOptions) (*cms.RoutesPage, error) {
	req, err := c.buildPageRequest(opts)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetching routes page: %w", err)
	}

	if !resp.OK() {
		return nil, &cms.FeedRequestError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	page, err := cms.ParseRoutesPage(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing routes page: %w", err)
	}

	return page, nil
}

// buildPageRequest constructs the request for one feed page.
func (c *RoutesClientImpl) buildPageRequest(opts *cms.RoutesOptions) (*http.Request, error) {
	if opts == nil {
		opts = cms.DefaultRoutesOptions()
	}

	req := &http.Request{
		Method:  nethttp.MethodGet,
		Headers: c.pageHeaders(opts),
	}

	if opts.CursorURL != "" {
		// Cursor URLs come from feed responses and are re-checked here so
		// a poisoned next link can never send the secret off-origin.
		cursor, err := cms.ResolveURL(opts.CursorURL, c.httpClient.BaseURL(), false)
		if err != nil {
			return nil, fmt.Errorf("validating cursor URL: %w", err)
		}

		req.URL = cursor.String()

		return req, nil
	}

	req.Path = firstPagePath(opts.Locale)

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = constants.RoutesPageSize
	}

	query := url.Values{}
	query.Set("page[limit]", strconv.Itoa(pageSize))
	req.Query = query

	return req, nil
}

// pageHeaders builds the default feed headers with opts.Headers merged over
// them.
func (c *RoutesClientImpl) pageHeaders(opts *cms.RoutesOptions) map[string]string {
	headers := map[string]string{
		"Accept":        "application/vnd.api+json",
		"Cache-Control": "no-cache",
	}

	if opts.CacheControl != "" {
		headers["Cache-Control"] = opts.CacheControl
	}

	if c.secret != "" {
		headers[secretHeader] = c.secret
	}

	for key, value := range opts.Headers {
		headers[key] = value
	}

	return headers
}

// firstPagePath returns the feed path, with the locale as a path prefix when
// set.
func firstPagePath(locale string) string {
	if locale == "" {
		return routesFeedPath
	}

	return "/" + locale + routesFeedPath
}

// Iterate implements cms.RoutesClient.Iterate.
func (c *RoutesClientImpl) Iterate(ctx context.Context, opts *cms.RoutesOptions) *cms.RouteIterator {
	return cms.NewRouteIterator(ctx, c, opts)
}

// CollectAll implements cms.RoutesClient.CollectAll.
func (c *RoutesClientImpl) CollectAll(ctx context.Context, opts *cms.RoutesOptions) ([]cms.RouteEntry, error) {
	return cms.CollectAllRoutes(ctx, c, opts)
}

// Stream implements cms.RoutesClient.Stream.
func (c *RoutesClientImpl) Stream(ctx context.Context, opts *cms.RoutesOptions) <-chan cms.RoutesPageResult {
	return cms.StreamRoutes(ctx, c, opts)
}
