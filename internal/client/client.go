// Package client implements the cms.Client interface against a headless
// CMS JSON:API surface.
package client

import (
	"github.com/code-wheel/jsonapi-frontend-client/internal/constants"
	"github.com/code-wheel/jsonapi-frontend-client/internal/http"
	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
)

// Client implements the cms.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     cms.Logger
	normalizer *cms.MediaNormalizer

	routes    cms.RoutesClient
	router    cms.RouterClient
	documents cms.DocumentsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *cms.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a new CMS client. The base URL in config must already be
// validated and normalized by the caller.
func New(config *cms.Config) (*Client, error) {
	if config == nil {
		return nil, cms.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, cms.ErrBaseURLRequired
	}

	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(config.BaseURL, httpOpts...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    httpClient.BaseURL(),
		logger:     config.Logger,
		normalizer: cms.NewMediaNormalizer(httpClient.BaseURL()),
	}

	client.routes = NewRoutesClient(httpClient, config.FeedSecret)
	client.router = NewRouterClient(httpClient)
	client.documents = NewDocumentsClient(httpClient, config.AllowCrossOriginFetch)

	return client, nil
}

// Routes implements cms.Client.Routes.
func (c *Client) Routes() cms.RoutesClient {
	return c.routes
}

// Router implements cms.Client.Router.
func (c *Client) Router() cms.RouterClient {
	return c.router
}

// Documents implements cms.Client.Documents.
func (c *Client) Documents() cms.DocumentsClient {
	return c.documents
}

// BaseURL implements cms.Client.BaseURL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Normalizer implements cms.Client.Normalizer.
func (c *Client) Normalizer() *cms.MediaNormalizer {
	return c.normalizer
}

// loggerAdapter adapts cms.Logger to http.Logger.
type loggerAdapter struct {
	logger cms.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
