package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/alsahih/infrastructure/logger"
	"github.com/jonesrussell/alsahih/internal/catalog"
)

func TestGenerateSitemap(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "sitemap.xml")
	count, err := catalog.GenerateSitemap(catalog.SitemapOptions{
		IndexPath:  writeIndex(t, `[{"id":"1"},{"uid":"22-17"},{}]`),
		OutputPath: out,
		Logger:     logger.NewNop(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(data), "<url>"))
	assert.Less(t,
		strings.Index(string(data), "/bukhari/1<"),
		strings.Index(string(data), "/bukhari/22-17<"))
}

func TestGenerateSitemap_MissingIndexWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "sitemap.xml")

	_, err := catalog.GenerateSitemap(catalog.SitemapOptions{
		IndexPath:  filepath.Join(dir, "missing.json"),
		OutputPath: out,
	})
	require.ErrorIs(t, err, catalog.ErrIndexMissing)
	assert.NoFileExists(t, out)
}

func TestGenerateSitemap_MalformedIndexKeepsExistingFile(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "sitemap.xml")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0o600))

	_, err := catalog.GenerateSitemap(catalog.SitemapOptions{
		IndexPath:  writeIndex(t, `{"id":"1"}`),
		OutputPath: out,
	})
	require.ErrorIs(t, err, catalog.ErrIndexMalformed)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}
