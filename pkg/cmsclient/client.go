package cmsclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/code-wheel/jsonapi-frontend-client/internal/client"
	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
)

// New creates a new CMS client from the given config. The base URL is
// normalized (trailing slash trimmed, "https://" assumed when no scheme is
// present) and validated as an absolute http(s) URL.
func New(config *cms.Config) (cms.Client, error) {
	if config == nil {
		return nil, cms.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, cms.ErrBaseURLRequired
	}

	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q", cms.ErrInvalidBaseURL, config.BaseURL)
	}

	config.BaseURL = baseURL

	cmsClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return cmsClient, nil
}
