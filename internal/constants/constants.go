package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry limits. The client core never retries; these apply only when a
// caller opts in through Config.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Routes feed limits.
const (
	// RoutesPageSize is the default page[limit] for the routes feed.
	RoutesPageSize = 50

	// MaxRoutePages is the default ceiling on pages traversed while
	// following next cursors. A feed that has not terminated by then is
	// treated as misbehaving.
	MaxRoutePages = 10000

	// StreamBufferSize is the buffer for streamed page results.
	StreamBufferSize = 1
)
