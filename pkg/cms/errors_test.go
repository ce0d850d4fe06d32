package cms_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
	"github.com/stretchr/testify/assert"
)

var errOther = errors.New("some other error")

func TestIsOriginMismatch(t *testing.T) {
	err := &cms.OriginMismatchError{
		URL:  "https://evil.example.net/x",
		Base: "https://cms.example.com",
	}

	assert.True(t, cms.IsOriginMismatch(err))
	assert.True(t, cms.IsOriginMismatch(fmt.Errorf("validating cursor URL: %w", err)))
	assert.False(t, cms.IsOriginMismatch(errOther))
	assert.False(t, cms.IsOriginMismatch(nil))
	assert.Contains(t, err.Error(), "https://evil.example.net/x")
}

func TestIsUnsupportedScheme(t *testing.T) {
	err := &cms.UnsupportedSchemeError{Scheme: "ftp", URL: "ftp://cms.example.com/f"}

	assert.True(t, cms.IsUnsupportedScheme(err))
	assert.True(t, cms.IsUnsupportedScheme(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, cms.IsUnsupportedScheme(errOther))
	assert.Contains(t, err.Error(), "ftp")
}

func TestIsFeedRequestError(t *testing.T) {
	err := &cms.FeedRequestError{StatusCode: http.StatusForbidden, Status: "403 Forbidden"}

	status, ok := cms.IsFeedRequestError(fmt.Errorf("fetching: %w", err))
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, status)

	status, ok = cms.IsFeedRequestError(errOther)
	assert.False(t, ok)
	assert.Zero(t, status)
}

func TestIsPaginationOverrun(t *testing.T) {
	err := &cms.PaginationOverrunError{MaxPages: 3}

	assert.True(t, cms.IsPaginationOverrun(err))
	assert.True(t, cms.IsPaginationOverrun(fmt.Errorf("walking feed: %w", err)))
	assert.False(t, cms.IsPaginationOverrun(errOther))
	assert.Contains(t, err.Error(), "3")
}

func TestFeedFormatError(t *testing.T) {
	err := &cms.FeedFormatError{Reason: "missing data member"}

	var target *cms.FeedFormatError

	assert.ErrorAs(t, fmt.Errorf("parsing: %w", err), &target)
	assert.Contains(t, err.Error(), "missing data member")
}
