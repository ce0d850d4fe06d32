package client

import (
	internalhttp "github.com/code-wheel/jsonapi-frontend-client/internal/http"
	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
)

// NewTestClient creates a client against the given base URL with defaults
// suitable for tests.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL)

	client := &Client{
		httpClient: httpClient,
		baseURL:    httpClient.BaseURL(),
		normalizer: cms.NewMediaNormalizer(httpClient.BaseURL()),
	}

	client.routes = NewRoutesClient(httpClient, "")
	client.router = NewRouterClient(httpClient)
	client.documents = NewDocumentsClient(httpClient, false)

	return client
}
