package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "article.json")

	document := `{
		"data": {
			"type": "node--article",
			"id": "n1",
			"attributes": {"title": "Hello"},
			"relationships": {
				"field_image": {"data": {"type": "media--image", "id": "m1"}}
			}
		},
		"included": [{"type": "media--image", "id": "m1", "attributes": {"name": "Hero"}}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	doc, err := readDocument(path)
	require.NoError(t, err)
	require.NotNil(t, doc.Resource())
	assert.Equal(t, "node--article", doc.Resource().Type)
	assert.Len(t, doc.Included, 1)
}

func TestReadDocumentErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := readDocument(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("<html>"), 0o600))

		_, err := readDocument(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing document")
	})
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "value", orDefault("value"))
	assert.Equal(t, NotAvailable, orDefault(""))
}
