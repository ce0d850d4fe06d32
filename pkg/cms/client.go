package cms

import (
	"context"
	"time"
)

// RoutesClient is the client for the secret-protected "all routes" feed.
type RoutesClient interface {
	RoutesPageFetcher

	// Iterate returns a lazy, restartable-per-call iterator over the feed.
	Iterate(ctx context.Context, opts *RoutesOptions) *RouteIterator

	// CollectAll drives the feed to completion and returns every entry.
	CollectAll(ctx context.Context, opts *RoutesOptions) ([]RouteEntry, error)

	// Stream delivers one result per page over a channel; cancelling ctx
	// stops the stream without further fetches.
	Stream(ctx context.Context, opts *RoutesOptions) <-chan RoutesPageResult
}

// RouterClient resolves individual site paths.
type RouterClient interface {
	// ResolvePath resolves one raw site path into its route descriptor.
	// Returns (nil, nil) when the path does not resolve to anything.
	ResolvePath(ctx context.Context, path string) (*ResolvedRoute, error)
}

// DocumentsClient fetches JSON:API documents for normalization.
type DocumentsClient interface {
	// Get fetches and decodes the JSON:API document at url. The url is
	// validated against the configured origin; cross-origin fetches are
	// only allowed when the client was configured to permit them.
	Get(ctx context.Context, url string) (*Document, error)
}

// Client is the full CMS data-access surface.
type Client interface {
	Routes() RoutesClient
	Router() RouterClient
	Documents() DocumentsClient

	// BaseURL returns the normalized base origin this client talks to.
	BaseURL() string

	// Normalizer returns a media normalizer bound to the client's origin.
	Normalizer() *MediaNormalizer
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a cms.Client.
//
// BaseURL is the only required field. cmsclient.New normalizes it by trimming
// a trailing slash and adding "https://" when no scheme is present, then
// validates it as an absolute http(s) URL.
//
// The feed secret, when configured, travels only in a dedicated request
// header; it is never placed in query strings and is masked in debug logs.
//
// Retries are off by default: the core never retries, and a failed page fetch
// terminates pagination. Callers that want transport-level retries opt in via
// RetryMax.
type Config struct {
	// BaseURL: base origin for the CMS (e.g. "https://cms.example.com").
	BaseURL string

	// FeedSecret: optional secret protecting the routes feed.
	FeedSecret string

	// AllowCrossOriginFetch permits Documents().Get to follow URLs off the
	// configured origin. Routes pagination and path resolution never cross
	// origins regardless of this setting.
	AllowCrossOriginFetch bool

	// HTTPTimeout: default timeout for the underlying transport. Most
	// calls should rely on context deadlines; this is the outer bound.
	HTTPTimeout time.Duration

	// RetryMax: maximum transport-level retries for transient failures.
	// 0 (the default) disables retrying entirely.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries when RetryMax > 0.
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
