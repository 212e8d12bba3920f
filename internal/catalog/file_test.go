package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cashback-optimizer/internal/domain"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeCatalogFile(t, `
categories:
  - key: dining
    display_name: Dining
  - key: grocery
    display_name: Grocery
cards:
  - name: Card A
    reference_link: https://example.com/card-a
    base_rate: 0.01
    rules:
      dining:
        rate: 0.05
        cap: 24000
  - name: Card B
    base_rate: 0.02
`)

	cat, err := LoadFile(path)
	require.NoError(t, err)

	assert.Len(t, cat.Categories(), 2)
	assert.Len(t, cat.Cards(), 2)

	card, ok := cat.Card("Card A")
	require.True(t, ok)
	assert.Equal(t, "https://example.com/card-a", card.ReferenceLink)
	assert.Equal(t, domain.RewardRule{Rate: 0.05, Cap: 24000}, cat.ResolveRule(card, "dining"))
	assert.Equal(t, domain.RewardRule{Rate: 0.01}, cat.ResolveRule(card, "grocery"))
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := writeCatalogFile(t, "categories: [::")
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_MalformedCatalog(t *testing.T) {
	// Rule references a category the file never declares.
	path := writeCatalogFile(t, `
categories:
  - key: dining
    display_name: Dining
cards:
  - name: Card A
    base_rate: 0.01
    rules:
      yachts:
        rate: 0.05
`)
	_, err := LoadFile(path)
	assert.Error(t, err)
}
