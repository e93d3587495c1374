package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zola-cms/pkg/models"
)

func issueFields(issues []LintIssue) []string {
	fields := make([]string, len(issues))
	for i, issue := range issues {
		fields[i] = issue.Field
	}
	return fields
}

func TestLintArticleCleanMetadata(t *testing.T) {
	art := &models.Article{
		Path: "posts/wakers.md",
		Meta: models.FrontMatter{
			Title:       "Wakers Are a Contract",
			Description: "What wake actually promises.",
			Template:    "article.html",
			Date:        time.Date(2020, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		FrontMatter: map[string]any{"draft": false},
	}
	sec := &models.Section{Name: "posts", Template: "article.html"}

	assert.Empty(t, LintArticle(art, sec))
}

func TestLintArticleMissingFields(t *testing.T) {
	art := &models.Article{
		Path:        "posts/bad.md",
		Meta:        models.FrontMatter{},
		FrontMatter: map[string]any{},
	}

	issues := LintArticle(art, nil)
	assert.ElementsMatch(t, []string{"title", "description", "date"}, issueFields(issues))
}

func TestLintArticleUnknownTemplate(t *testing.T) {
	art := &models.Article{
		Path: "posts/odd.md",
		Meta: models.FrontMatter{
			Title:       "Odd One Out",
			Description: "Uses a template the theme does not ship.",
			Template:    "nonexistent.html",
			Date:        time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		FrontMatter: map[string]any{},
	}
	sec := &models.Section{
		Name:      "posts",
		Template:  "article.html",
		Templates: []string{"article.html", "longform.html"},
	}

	issues := LintArticle(art, sec)
	require.Len(t, issues, 1)
	assert.Equal(t, "template", issues[0].Field)
}

func TestLintArticleNonBooleanDraft(t *testing.T) {
	art := &models.Article{
		Path: "posts/odd.md",
		Meta: models.FrontMatter{
			Title:       "Odd",
			Description: "Draft flag written as a string.",
			Date:        time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		FrontMatter: map[string]any{"draft": "yes"},
	}

	issues := LintArticle(art, nil)
	require.Len(t, issues, 1)
	assert.Equal(t, "draft", issues[0].Field)
}

const siteConfigYAML = `media_folder: static/img
public_folder: /img
sections:
  - name: posts
    label: Posts
    folder: posts
    format: toml
    template: article.html
    templates: [article.html, longform.html]
`

func TestLintContent(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(repo, "cms.yml"), []byte(siteConfigYAML), 0644))

	writeArticle(t, repo, "posts/wakers.md", newerArticle)
	writeArticle(t, repo, "posts/broken.md", "+++\ntitle = \"No Description\"\ndate = 2020-01-01T00:00:00Z\ndraft = false\n+++\n\nBody.\n")
	writeArticle(t, repo, "posts/legacy.md", "No front matter here.\n")

	report, err := LintContent()
	require.NoError(t, err)

	assert.Equal(t, 3, report.Checked)
	assert.False(t, report.Clean())
	require.Len(t, report.Entries, 2)

	byPath := map[string][]LintIssue{}
	for _, entry := range report.Entries {
		byPath[entry.Path] = entry.Issues
	}

	require.Contains(t, byPath, "posts/broken.md")
	assert.Equal(t, []string{"description"}, issueFields(byPath["posts/broken.md"]))

	require.Contains(t, byPath, "posts/legacy.md")
	assert.Equal(t, []string{"frontmatter"}, issueFields(byPath["posts/legacy.md"]))
}

func TestLintContentClean(t *testing.T) {
	repo := setupRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(repo, "cms.yml"), []byte(siteConfigYAML), 0644))
	writeArticle(t, repo, "posts/wakers.md", newerArticle)

	report, err := LintContent()
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, 1, report.Checked)
}
