package cms

import (
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrBaseURLRequired = errors.New("base URL is required")
	ErrInvalidBaseURL  = errors.New("base URL must be an absolute http(s) URL")
	ErrNoMoreRoutes    = errors.New("no more routes")

	ErrResolveRequestFailed  = errors.New("path resolution request failed")
	ErrDocumentRequestFailed = errors.New("document request failed")
)

// OriginMismatchError reports a followed link that resolves outside the
// configured origin. Treated as a security boundary violation, never silently
// followed.
type OriginMismatchError struct {
	URL  string
	Base string
}

// Error implements the error interface.
func (e *OriginMismatchError) Error() string {
	return fmt.Sprintf("origin mismatch: %s is not on the configured origin %s", e.URL, e.Base)
}

// UnsupportedSchemeError reports a resolved URL whose scheme is not http or
// https.
type UnsupportedSchemeError struct {
	Scheme string
	URL    string
}

// Error implements the error interface.
func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported URL scheme %q in %s", e.Scheme, e.URL)
}

// FeedRequestError reports a non-success HTTP response from the routes feed.
type FeedRequestError struct {
	StatusCode int
	Status     string
}

// Error implements the error interface.
func (e *FeedRequestError) Error() string {
	return fmt.Sprintf("routes feed request failed: %s (status: %d)", e.Status, e.StatusCode)
}

// FeedFormatError reports a routes feed response body that is not a
// well-formed feed document.
type FeedFormatError struct {
	Reason string
}

// Error implements the error interface.
func (e *FeedFormatError) Error() string {
	return "malformed routes feed document: " + e.Reason
}

// PaginationOverrunError reports a cursor chain that exceeded the configured
// page-count ceiling, guarding against infinite or malicious pagination
// loops.
type PaginationOverrunError struct {
	MaxPages int
}

// Error implements the error interface.
func (e *PaginationOverrunError) Error() string {
	return fmt.Sprintf("pagination exceeded the maximum of %d pages without terminating", e.MaxPages)
}

// IsOriginMismatch checks if the error is an origin mismatch.
func IsOriginMismatch(err error) bool {
	target := &OriginMismatchError{}

	return errors.As(err, &target)
}

// IsUnsupportedScheme checks if the error is an unsupported scheme error.
func IsUnsupportedScheme(err error) bool {
	target := &UnsupportedSchemeError{}

	return errors.As(err, &target)
}

// IsFeedRequestError checks if the error is a feed request error, returning
// the HTTP status code when it is.
func IsFeedRequestError(err error) (int, bool) {
	target := &FeedRequestError{}
	if errors.As(err, &target) {
		return target.StatusCode, true
	}

	return 0, false
}

// IsPaginationOverrun checks if the error is a pagination overrun.
func IsPaginationOverrun(err error) bool {
	target := &PaginationOverrunError{}

	return errors.As(err, &target)
}
