package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArticleScaffold(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(repo, "cms.yml"), []byte(siteConfigYAML), 0644))

	relPath, err := CreateArticle("posts", "Pinning Is Not Magic")
	require.NoError(t, err)
	assert.Equal(t, "posts/pinning-is-not-magic.md", relPath)

	art, err := LoadArticle(relPath)
	require.NoError(t, err)
	assert.Equal(t, "Pinning Is Not Magic", art.Meta.Title)
	assert.Equal(t, "article.html", art.Meta.Template)
	assert.True(t, art.Meta.Draft)
	assert.False(t, art.Meta.Date.IsZero())
	assert.Equal(t, "toml", art.Format)
	assert.Empty(t, art.Body)
}

func TestCreateArticleExisting(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(repo, "cms.yml"), []byte(siteConfigYAML), 0644))

	relPath, err := CreateArticle("posts", "Pinning Is Not Magic")
	require.NoError(t, err)

	dup, err := CreateArticle("posts", "Pinning Is Not Magic")
	assert.True(t, os.IsExist(err))
	assert.Equal(t, relPath, dup)
}

func TestCreateArticleWithoutSection(t *testing.T) {
	repo := setupRepo(t)

	// No site config: the article lands at the content root with no
	// template assigned.
	relPath, err := CreateArticle("", "Loose Thoughts")
	require.NoError(t, err)
	assert.Equal(t, "loose-thoughts.md", relPath)

	art, err := LoadArticle(relPath)
	require.NoError(t, err)
	assert.Empty(t, art.Meta.Template)
	assert.True(t, art.Meta.Draft)

	full := filepath.Join(repo, "content", relPath)
	_, statErr := os.Stat(full)
	assert.NoError(t, statErr)
}

func TestCreateArticleEmptyTitle(t *testing.T) {
	setupRepo(t)

	_, err := CreateArticle("posts", "   ")
	assert.Error(t, err)
}
