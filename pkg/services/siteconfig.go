package services

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"zola-cms/pkg/config"
	"zola-cms/pkg/models"
)

// LoadSiteConfig reads the CMS site layout file from the repo root.
func LoadSiteConfig() (*models.SiteConfig, error) {
	configPath := filepath.Join(config.RepoPath, config.SiteConfigFile)
	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read site config: %w", err)
	}

	var cfg models.SiteConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse site config: %w", err)
	}
	return &cfg, nil
}
