package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"

	"zola-cms/pkg/logger"
)

var (
	ListenAddr = ":8080"

	RepoPath   = "./repo"
	ContentDir = "content"
	PublicPath = "./repo/public"
	PreviewURL = "/preview/"

	// External static-site generator. The CMS never renders articles
	// itself; it shells out to this binary.
	GeneratorBin   = "zola"
	PreviewDrafts  = true
	SiteConfigFile = "cms.yml"

	// Git settings
	GitUserEmail = "bot@zola-cms.local"
	GitUserName  = "Zola CMS Bot"
	GitBranch    = "main"
	GitRemote    = "origin"
)

var OauthConf *oauth2.Config

func Init() {
	if err := godotenv.Load(); err != nil {
		logger.Log.Info("No .env file found or error loading it.")
	}

	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	appURL := getEnv("APP_URL", "http://localhost:8080")
	redirectURL := getEnv("GITHUB_REDIRECT_URL", appURL+"/auth/callback")

	ListenAddr = getEnv("LISTEN_ADDR", ":8080")
	RepoPath = getEnv("REPO_PATH", "./repo")
	ContentDir = getEnv("CONTENT_DIR", "content")
	PublicPath = getEnv("PUBLIC_PATH", RepoPath+"/public")

	GeneratorBin = getEnv("GENERATOR_BIN", "zola")
	SiteConfigFile = getEnv("SITE_CONFIG_FILE", "cms.yml")

	GitUserEmail = getEnv("GIT_USER_EMAIL", "bot@zola-cms.local")
	GitUserName = getEnv("GIT_USER_NAME", "Zola CMS Bot")
	GitBranch = getEnv("GIT_BRANCH", "main")
	GitRemote = getEnv("GIT_REMOTE", "origin")

	if pd := os.Getenv("PREVIEW_DRAFTS"); pd != "" {
		if val, err := strconv.ParseBool(pd); err == nil {
			PreviewDrafts = val
		}
	}

	OauthConf = &oauth2.Config{
		ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		Scopes:       []string{"repo"},
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
	}
}

func GetAppURL() string {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}
	return appURL
}
