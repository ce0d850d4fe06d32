package cms

import (
	"context"
	"errors"

	"github.com/code-wheel/jsonapi-frontend-client/internal/constants"
)

// RoutesOptions controls one traversal of the routes feed.
type RoutesOptions struct {
	// Locale is an optional language prefix applied to the first-page URL
	// (e.g. "en" yields /en/jsonapi/routes).
	Locale string

	// PageSize is the page[limit] query parameter for the first page.
	// Defaults to 50.
	PageSize int

	// MaxPages is the ceiling on pages traversed before pagination fails
	// with PaginationOverrunError. Defaults to 10000.
	MaxPages int

	// CursorURL, when set, is used as the page URL instead of building a
	// first-page URL. It is validated against the feed origin before use;
	// cross-origin cursors are always rejected.
	CursorURL string

	// Headers are merged over the default request headers. Setting Accept
	// here overrides the JSON:API media type default.
	Headers map[string]string

	// CacheControl overrides the default "no-cache" request directive.
	CacheControl string
}

// DefaultRoutesOptions returns options with the standard page size and page
// ceiling.
func DefaultRoutesOptions() *RoutesOptions {
	return &RoutesOptions{
		PageSize: constants.RoutesPageSize,
		MaxPages: constants.MaxRoutePages,
	}
}

// normalized returns a copy with defaults applied.
func (o *RoutesOptions) normalized() RoutesOptions {
	var out RoutesOptions
	if o != nil {
		out = *o
	}

	if out.PageSize <= 0 {
		out.PageSize = constants.RoutesPageSize
	}

	if out.MaxPages <= 0 {
		out.MaxPages = constants.MaxRoutePages
	}

	return out
}

// RoutesPageFetcher fetches a single page of the routes feed. The cursor in
// opts selects the page; an empty cursor means the first page.
type RoutesPageFetcher interface {
	FetchRoutesPage(ctx context.Context, opts *RoutesOptions) (*RoutesPage, error)
}

// RouteIterator walks the routes feed lazily, page by page, in strict cursor
// order. Pages are fetched one at a time and only when the previous page's
// entries are exhausted; abandoning the iterator mid-way issues no further
// fetches.
type RouteIterator struct {
	ctx     context.Context
	fetcher RoutesPageFetcher
	opts    RoutesOptions

	buffer  []RouteEntry
	nextURL string
	started bool
	pages   int
}

// NewRouteIterator creates an iterator over the routes feed.
func NewRouteIterator(ctx context.Context, fetcher RoutesPageFetcher, opts *RoutesOptions) *RouteIterator {
	normalized := opts.normalized()

	return &RouteIterator{
		ctx:     ctx,
		fetcher: fetcher,
		opts:    normalized,
		nextURL: normalized.CursorURL,
	}
}

// HasNext reports whether more entries may be available. Before the first
// fetch it is optimistically true; after the last page is drained it is
// false.
func (it *RouteIterator) HasNext() bool {
	return len(it.buffer) > 0 || !it.started || it.nextURL != ""
}

// Next returns the next route entry, fetching the next page when the current
// one is exhausted. Returns ErrNoMoreRoutes once the cursor chain has
// terminated and all entries were consumed.
func (it *RouteIterator) Next() (RouteEntry, error) {
	for len(it.buffer) == 0 {
		if it.started && it.nextURL == "" {
			return RouteEntry{}, ErrNoMoreRoutes
		}

		err := it.fetchPage()
		if err != nil {
			return RouteEntry{}, err
		}
	}

	entry := it.buffer[0]
	it.buffer = it.buffer[1:]

	return entry, nil
}

// fetchPage fetches the page at the current cursor and refills the buffer.
func (it *RouteIterator) fetchPage() error {
	if err := it.ctx.Err(); err != nil {
		return err
	}

	if it.pages >= it.opts.MaxPages {
		return &PaginationOverrunError{MaxPages: it.opts.MaxPages}
	}

	pageOpts := it.opts
	pageOpts.CursorURL = it.nextURL

	page, err := it.fetcher.FetchRoutesPage(it.ctx, &pageOpts)
	if err != nil {
		return err
	}

	it.started = true
	it.pages++
	it.buffer = page.Entries
	it.nextURL = page.Next

	return nil
}

// All drains the iterator and returns every remaining entry in feed order.
func (it *RouteIterator) All() ([]RouteEntry, error) {
	var all []RouteEntry

	for {
		entry, err := it.Next()
		if errors.Is(err, ErrNoMoreRoutes) {
			return all, nil
		}

		if err != nil {
			return nil, err
		}

		all = append(all, entry)
	}
}

// ForEach calls fn for each remaining entry. A non-nil error from fn stops
// iteration immediately; no further pages are fetched.
func (it *RouteIterator) ForEach(fn func(RouteEntry) error) error {
	for {
		entry, err := it.Next()
		if errors.Is(err, ErrNoMoreRoutes) {
			return nil
		}

		if err != nil {
			return err
		}

		err = fn(entry)
		if err != nil {
			return err
		}
	}
}

// CollectAllRoutes eagerly drives the feed to completion and returns all
// entries. Memory cost is proportional to the total entry count, which is
// acceptable for a build-time feed.
func CollectAllRoutes(ctx context.Context, fetcher RoutesPageFetcher, opts *RoutesOptions) ([]RouteEntry, error) {
	return NewRouteIterator(ctx, fetcher, opts).All()
}

// RoutesPageResult is one streamed page of route entries, or the error that
// terminated the stream.
type RoutesPageResult struct {
	Entries []RouteEntry
	Err     error
}

// StreamRoutes follows the cursor chain in a goroutine, delivering one result
// per page. The channel is closed after the last page or the first error.
// Cancelling ctx stops the stream without issuing further fetches.
func StreamRoutes(ctx context.Context, fetcher RoutesPageFetcher, opts *RoutesOptions) <-chan RoutesPageResult {
	results := make(chan RoutesPageResult, constants.StreamBufferSize)
	normalized := opts.normalized()

	go func() {
		defer close(results)

		cursor := normalized.CursorURL

		for pages := 0; ; pages++ {
			if ctx.Err() != nil {
				return
			}

			if pages >= normalized.MaxPages {
				emit(ctx, results, RoutesPageResult{Err: &PaginationOverrunError{MaxPages: normalized.MaxPages}})

				return
			}

			pageOpts := normalized
			pageOpts.CursorURL = cursor

			page, err := fetcher.FetchRoutesPage(ctx, &pageOpts)
			if err != nil {
				emit(ctx, results, RoutesPageResult{Err: err})

				return
			}

			if !emit(ctx, results, RoutesPageResult{Entries: page.Entries}) {
				return
			}

			if page.Next == "" {
				return
			}

			cursor = page.Next
		}
	}()

	return results
}

func emit(ctx context.Context, results chan<- RoutesPageResult, result RoutesPageResult) bool {
	select {
	case results <- result:
		return true
	case <-ctx.Done():
		return false
	}
}
