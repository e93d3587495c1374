package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"zola-cms/pkg/config"
	"zola-cms/pkg/models"
	"zola-cms/pkg/services"
)

func HandleBuild(c *gin.Context) {
	log, err := services.BuildSite()
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "log": log})
}

func HandleSync(c *gin.Context) {
	session := sessions.Default(c)
	token := session.Get("access_token").(string)
	log, err := services.SyncRepo(token)

	if err != nil {
		c.JSON(500, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "log": log})
}

// HandlePublish pushes the repo after a content-QA pass. Lint failures
// block the publish unless ?force=true.
func HandlePublish(c *gin.Context) {
	report, err := services.LintContent()
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "error": "Lint failed: " + err.Error()})
		return
	}
	if !report.Clean() && c.Query("force") != "true" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "lint_failed", "report": report})
		return
	}

	session := sessions.Default(c)
	token := session.Get("access_token").(string)
	log, err := services.PublishRepo(token)
	if err != nil {
		c.JSON(500, gin.H{"status": "error", "log": log})
		return
	}
	c.JSON(200, gin.H{"status": "ok", "log": log, "report": report})
}

func HandleLint(c *gin.Context) {
	report, err := services.LintContent()
	if err != nil {
		c.JSON(500, gin.H{"error": "Lint failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func ListArticles(c *gin.Context) {
	includeDrafts := c.DefaultQuery("drafts", "true") != "false"
	articles, err := services.ListArticles(includeDrafts)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to fetch articles"})
		return
	}
	c.JSON(http.StatusOK, articles)
}

func GetArticle(c *gin.Context) {
	targetPath := c.Query("path")
	art, err := services.LoadArticle(targetPath)
	if err != nil {
		if errors.Is(err, services.ErrNoFrontMatter) {
			// Legacy document; hand the editor the raw bytes.
			fullPath := services.SafeJoin(config.RepoPath, config.ContentDir, targetPath)
			content, readErr := os.ReadFile(fullPath)
			if readErr != nil {
				c.JSON(404, gin.H{"error": "File not found"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"content": string(content)})
			return
		}
		c.JSON(404, gin.H{"error": "File not found"})
		return
	}

	c.JSON(http.StatusOK, art)
}

func SaveArticle(c *gin.Context) {
	var art models.Article
	if err := c.BindJSON(&art); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	if art.FrontMatter == nil {
		// Raw save: the editor sends the whole file in Body.
		fullPath := services.SafeJoin(config.RepoPath, config.ContentDir, art.Path)
		if fullPath == "" {
			c.JSON(400, gin.H{"error": "Invalid path"})
			return
		}
		if err := os.WriteFile(fullPath, []byte(art.Body), 0644); err != nil {
			c.JSON(500, gin.H{"error": "Save failed"})
			return
		}
		services.InvalidateCache()
		c.JSON(200, gin.H{"status": "saved"})
		return
	}

	if err := services.SaveArticle(&art); err != nil {
		c.JSON(500, gin.H{"error": "Save failed: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"status": "saved"})
}

func CreateArticle(c *gin.Context) {
	var req struct {
		Section string `json:"section"`
		Title   string `json:"title"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		c.JSON(400, gin.H{"error": "Title required"})
		return
	}

	relPath, err := services.CreateArticle(req.Section, req.Title)
	if err != nil {
		if os.IsExist(err) {
			c.JSON(409, gin.H{"error": "Article already exists", "path": relPath})
		} else {
			c.JSON(500, gin.H{"error": "Create failed: " + err.Error()})
		}
		return
	}

	c.JSON(200, gin.H{"status": "created", "path": relPath})
}

func GetDiff(c *gin.Context) {
	var art models.Article
	if err := c.BindJSON(&art); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	fullPath := services.SafeJoin(config.RepoPath, config.ContentDir, art.Path)
	if fullPath == "" {
		c.JSON(400, gin.H{"error": "Invalid path"})
		return
	}

	currentContent, err := os.ReadFile(fullPath)
	if err != nil {
		currentContent = []byte("")
	}

	// Normalize the saved file so format round-trips do not show up as
	// phantom edits.
	if len(currentContent) > 0 {
		if doc, err := services.ParseDocument(currentContent); err == nil {
			if normalized, err := services.ComposeDocument(doc.Raw, doc.Body, doc.Format); err == nil {
				currentContent = normalized
			}
		}
	}

	var newContent []byte
	if art.FrontMatter != nil {
		newContent, err = services.ComposeDocument(art.FrontMatter, art.Body, art.Format)
		if err != nil {
			c.JSON(500, gin.H{"error": "Construction failed"})
			return
		}
	} else {
		newContent = []byte(art.Body)
	}

	tmpDir := os.TempDir()
	f1, err := os.CreateTemp(tmpDir, "diff_old_*")
	if err != nil {
		c.JSON(500, gin.H{"error": "Diff staging failed"})
		return
	}
	defer os.Remove(f1.Name())

	f2, err := os.CreateTemp(tmpDir, "diff_new_*")
	if err != nil {
		f1.Close()
		c.JSON(500, gin.H{"error": "Diff staging failed"})
		return
	}
	defer os.Remove(f2.Name())

	f1.Write(currentContent)
	f2.Write(newContent)
	f1.Close()
	f2.Close()

	relPath := filepath.Join(config.ContentDir, art.Path)
	diffStr, diffType := services.Diff(f1.Name(), f2.Name(), relPath)

	c.JSON(200, gin.H{"diff": diffStr, "type": diffType})
}

func GetConfig(c *gin.Context) {
	cfg, err := services.LoadSiteConfig()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to parse site config"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}
