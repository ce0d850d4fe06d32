package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"

	"github.com/code-wheel/jsonapi-frontend-client/internal/http"
	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
)

// DocumentsClientImpl implements cms.DocumentsClient.
type DocumentsClientImpl struct {
	httpClient       *http.Client
	allowCrossOrigin bool
}

// NewDocumentsClient creates a JSON:API document client.
func NewDocumentsClient(httpClient *http.Client, allowCrossOrigin bool) *DocumentsClientImpl {
	return &DocumentsClientImpl{
		httpClient:       httpClient,
		allowCrossOrigin: allowCrossOrigin,
	}
}

// Get fetches and decodes the JSON:API document at rawURL. Relative URLs are
// resolved against the client origin; absolute URLs on another origin are
// rejected unless cross-origin fetches were enabled at construction.
func (c *DocumentsClientImpl) Get(ctx context.Context, rawURL string) (*cms.Document, error) {
	target, err := cms.ResolveURL(rawURL, c.httpClient.BaseURL(), c.allowCrossOrigin)
	if err != nil {
		return nil, fmt.Errorf("validating document URL: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodGet,
		URL:    target.String(),
		Headers: map[string]string{
			"Accept": "application/vnd.api+json",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching document: %w", err)
	}

	if !resp.OK() {
		return nil, fmt.Errorf("fetching document: %w: %s", cms.ErrDocumentRequestFailed, resp.Status)
	}

	var doc cms.Document

	err = json.Unmarshal(resp.Body, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	return &doc, nil
}
