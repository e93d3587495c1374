package services

import (
	"fmt"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"zola-cms/pkg/config"
	"zola-cms/pkg/models"
)

// BuildSite runs the external static-site generator against the repo
// and returns its combined output. Preview builds include drafts when
// configured.
func BuildSite() (string, error) {
	args := []string{
		"build",
		"--root", config.RepoPath,
		"--output-dir", "public",
		"--base-url", config.GetAppURL() + config.PreviewURL,
		"--force",
	}
	if config.PreviewDrafts {
		args = append(args, "--drafts")
	}

	cmd := exec.Command(config.GeneratorBin, args...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

// CreateArticle scaffolds a new draft in the named section: slugged
// filename from the title, today's date, the section's default template
// and format. Returns the content-relative path of the new file.
func CreateArticle(sectionName, title string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("title must not be empty")
	}

	siteCfg, _ := LoadSiteConfig()
	sec := siteCfg.SectionByName(sectionName)

	name, err := slug.Normalize(title)
	if err != nil {
		return "", fmt.Errorf("slug title: %w", err)
	}

	folder := ""
	if sec != nil {
		folder = sec.Folder
	}
	relPath := path.Join(folder, name+".md")

	fullPath := SafeJoin(config.RepoPath, config.ContentDir, relPath)
	if fullPath == "" {
		return "", fmt.Errorf("invalid article path: %s", relPath)
	}
	if _, err := os.Stat(fullPath); err == nil {
		return relPath, os.ErrExist
	}

	meta := models.FrontMatter{
		Title: title,
		Date:  time.Now(),
		Draft: true,
	}
	if sec != nil {
		meta.Template = sec.Template
	}

	content, err := ComposeDocument(meta.ToMap(), "", sec.DefaultFormat())
	if err != nil {
		return "", fmt.Errorf("scaffold %s: %w", relPath, err)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return "", err
	}

	InvalidateCache()
	return relPath, nil
}
