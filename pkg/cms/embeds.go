package cms

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const embedTag = "drupal-media"

// ExtractEmbeddedMediaUUIDs scans rich-text HTML for embedded media tags and
// returns the data-entity-uuid of each, in document order, duplicates
// preserved (dedup is the caller's call). Malformed or unterminated markup is
// tolerated; tags that cannot be recovered simply contribute nothing.
func ExtractEmbeddedMediaUUIDs(html string) []string {
	if !strings.Contains(html, "<"+embedTag) {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var uuids []string

	doc.Find(embedTag).Each(func(_ int, sel *goquery.Selection) {
		uuid, ok := sel.Attr("data-entity-uuid")
		if !ok {
			return
		}

		uuid = strings.TrimSpace(uuid)
		if uuid != "" {
			uuids = append(uuids, uuid)
		}
	})

	return uuids
}
