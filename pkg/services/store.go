package services

import (
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"zola-cms/pkg/config"
	"zola-cms/pkg/logger"
	"zola-cms/pkg/models"
)

var (
	articleCache []models.Article
	cacheMutex   sync.Mutex
	cacheLoaded  bool
)

func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(target)
	if strings.Contains(cleanTarget, "..") {
		return ""
	}
	return filepath.Join(root, sub, cleanTarget)
}

func contentRoot() string {
	return filepath.Join(config.RepoPath, config.ContentDir)
}

// GetArticlesCache walks the content directory and returns the article
// index: path, typed front-matter and git-dirty state for every *.md
// file. Results are cached until InvalidateCache. Section marker files
// (_index.md) belong to the generator's navigation, not the article
// list, and are skipped.
func GetArticlesCache() ([]models.Article, error) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	if cacheLoaded {
		return articleCache, nil
	}

	var articles []models.Article
	contentDir := contentRoot()

	dirtyFiles, _ := getGitDirtyFiles(config.RepoPath)

	err := filepath.WalkDir(contentDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") || d.Name() == "_index.md" {
			return nil
		}

		relPath, _ := filepath.Rel(contentDir, path)
		relPath = filepath.ToSlash(relPath)

		repoRelPath, _ := filepath.Rel(config.RepoPath, path)
		repoRelPath = filepath.ToSlash(repoRelPath)
		isDirty := dirtyFiles[repoRelPath]

		art := models.Article{
			Path:    relPath,
			IsDirty: isDirty,
		}

		content, err := os.ReadFile(path)
		if err == nil {
			doc, err := ParseDocument(content)
			if err != nil {
				logger.Log.WithField("path", relPath).Warnf("Skipping front matter: %v", err)
			} else {
				art.Meta = doc.Meta
				art.Format = doc.Format
			}
		}
		if art.Meta.Title == "" {
			art.Meta.Title = relPath
		}

		articles = append(articles, art)
		return nil
	})

	if err != nil {
		return nil, err
	}

	sortArticles(articles)

	articleCache = articles
	cacheLoaded = true
	return articleCache, nil
}

// ListArticles returns the index in publication order, optionally
// hiding drafts.
func ListArticles(includeDrafts bool) ([]models.Article, error) {
	all, err := GetArticlesCache()
	if err != nil {
		return nil, err
	}
	if includeDrafts {
		return all, nil
	}

	published := make([]models.Article, 0, len(all))
	for _, art := range all {
		if !art.Meta.Draft {
			published = append(published, art)
		}
	}
	return published, nil
}

// Newest first; undated articles sink to the bottom in path order.
func sortArticles(articles []models.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		di, dj := articles[i].Meta.Date, articles[j].Meta.Date
		if di.IsZero() != dj.IsZero() {
			return !di.IsZero()
		}
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return articles[i].Path < articles[j].Path
	})
}

// LoadArticle reads and parses a single article by content-relative
// path. ErrNoFrontMatter is returned (wrapped) for documents without a
// metadata block; callers may fall back to raw content.
func LoadArticle(relPath string) (*models.Article, error) {
	fullPath := SafeJoin(config.RepoPath, config.ContentDir, relPath)
	if fullPath == "" {
		return nil, fmt.Errorf("invalid article path: %s", relPath)
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(content)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", relPath, err)
	}

	return &models.Article{
		Path:        relPath,
		Meta:        doc.Meta,
		FrontMatter: doc.Raw,
		Body:        doc.Body,
		Format:      doc.Format,
	}, nil
}

// SaveArticle re-composes the article in its source format and writes
// it back, then drops the index cache.
func SaveArticle(art *models.Article) error {
	fullPath := SafeJoin(config.RepoPath, config.ContentDir, art.Path)
	if fullPath == "" {
		return fmt.Errorf("invalid article path: %s", art.Path)
	}

	format := art.Format
	if format == "" {
		format = "toml"
	}

	content, err := ComposeDocument(art.FrontMatter, art.Body, format)
	if err != nil {
		return fmt.Errorf("compose %s: %w", art.Path, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return fmt.Errorf("write %s: %w", art.Path, err)
	}

	InvalidateCache()
	return nil
}

func getGitDirtyFiles(dir string) (map[string]bool, error) {
	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	dirty := make(map[string]bool)
	lines := strings.Split(string(out), "\n")
	for _, line := range lines {
		if len(line) < 4 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		path = strings.Trim(path, "\"")
		dirty[path] = true
	}
	return dirty, nil
}

func InvalidateCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	cacheLoaded = false
	articleCache = nil
}
