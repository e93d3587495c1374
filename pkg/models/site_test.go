package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionFor(t *testing.T) {
	cfg := &SiteConfig{
		Sections: []Section{
			{Name: "posts", Folder: "posts"},
			{Name: "notes", Folder: "notes"},
		},
	}

	sec := cfg.SectionFor("posts/futures-explained.md")
	require.NotNil(t, sec)
	assert.Equal(t, "posts", sec.Name)

	assert.Nil(t, cfg.SectionFor("pages/about.md"))
	// Prefix match is on path segments, not raw strings.
	assert.Nil(t, cfg.SectionFor("postscript/foo.md"))

	var nilCfg *SiteConfig
	assert.Nil(t, nilCfg.SectionFor("posts/x.md"))
}

func TestSectionDefaults(t *testing.T) {
	var nilSec *Section
	assert.Equal(t, "toml", nilSec.DefaultFormat())
	assert.Empty(t, nilSec.AllowedTemplates())

	sec := &Section{Template: "article.html", Templates: []string{"article.html", "longform.html"}}
	assert.Equal(t, []string{"article.html", "longform.html"}, sec.AllowedTemplates())

	yamlSec := &Section{Format: "yaml"}
	assert.Equal(t, "yaml", yamlSec.DefaultFormat())
}

func TestFrontMatterToMap(t *testing.T) {
	fm := FrontMatter{
		Title: "Futures Explained",
		Draft: true,
		Extra: map[string]any{"series": "async-foundations"},
	}

	m := fm.ToMap()
	assert.Equal(t, "Futures Explained", m["title"])
	assert.Equal(t, true, m["draft"])
	assert.Equal(t, "async-foundations", m["series"])
	_, hasDate := m["date"]
	assert.False(t, hasDate)
	_, hasDescription := m["description"]
	assert.False(t, hasDescription)
}
