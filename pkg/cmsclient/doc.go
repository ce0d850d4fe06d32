// Package cmsclient is the entry point for building a cms.Client.
//
// The package wires the internal HTTP transport and resource clients behind
// the cms.Client interface:
//
//	client, err := cmsclient.New(&cms.Config{
//		BaseURL:    "https://cms.example.com",
//		FeedSecret: os.Getenv("ROUTES_FEED_SECRET"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	entries, err := client.Routes().CollectAll(ctx, nil)
//
// See the cms package for the full data-access surface.
package cmsclient
