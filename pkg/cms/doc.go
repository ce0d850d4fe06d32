// Package cms provides types, interfaces, and helpers for consuming a
// headless-CMS JSON:API surface.
//
// # Overview
//
// The cms package defines the domain types (Resource, Document, RouteEntry,
// MediaDescriptor) and the interfaces for the data-access clients
// (RoutesClient, RouterClient, DocumentsClient). A concrete implementation is
// provided by the cmsclient package, which wires configuration and transport.
// Most consumers should import cmsclient to construct a client and then work
// through the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
//	  "github.com/code-wheel/jsonapi-frontend-client/pkg/cmsclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := cmsclient.New(&cms.Config{BaseURL: "https://cms.example.com"})
//	  if err != nil { log.Fatal(err) }
//
//	  routes, err := cli.Routes().CollectAll(ctx, cms.DefaultRoutesOptions())
//	  if err != nil { log.Fatal(err) }
//	  _ = routes
//	}
//
// # Routes pagination
//
// The routes feed is paginated server-side through next links. RouteIterator
// walks the chain lazily and strictly in cursor order:
//
//	it := cli.Routes().Iterate(ctx, nil)
//	for it.HasNext() {
//	  entry, err := it.Next()
//	  if err != nil { break }
//	  _ = entry
//	}
//
// Next links are only ever followed on the configured origin; a feed that
// points elsewhere fails with OriginMismatchError, and a chain that does not
// terminate within the page ceiling fails with PaginationOverrunError.
//
// # Media normalization
//
// MediaNormalizer turns polymorphic media resources from a fetched document
// into the closed MediaDescriptor variants (image, video, remote_video,
// file, audio, unknown), resolving file relationships against the document's
// included set. Items that fail to resolve produce partial descriptors
// rather than errors; partial CMS content is normal operation.
//
// # Errors
//
// Structural and security failures are typed: OriginMismatchError,
// UnsupportedSchemeError, FeedRequestError, FeedFormatError, and
// PaginationOverrunError, with IsOriginMismatch and friends for branching.
// Per-item data-quality issues never surface as errors.
package cms
