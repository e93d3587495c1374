package services

import (
	"fmt"
	"net/url"
	"os/exec"
	"strings"
	"time"

	"zola-cms/pkg/config"
)

// ExecuteGitWithToken runs a git command with the remote URL rewritten
// to carry the OAuth token, and scrubs the token from the output.
func ExecuteGitWithToken(dir, token string, args ...string) (string, error) {
	cmdGetURL := exec.Command("git", "remote", "get-url", config.GitRemote)
	cmdGetURL.Dir = dir
	outURL, err := cmdGetURL.Output()
	if err != nil {
		return "Failed to get remote url", err
	}
	remoteURL := strings.TrimSpace(string(outURL))
	u, err := url.Parse(remoteURL)
	if err != nil {
		return "Invalid remote url", err
	}
	u.User = url.UserPassword("oauth2", token)
	authenticatedURL := u.String()

	newArgs := make([]string, len(args))
	copy(newArgs, args)
	for i, v := range newArgs {
		if v == config.GitRemote {
			newArgs[i] = authenticatedURL
		}
	}

	cmd := exec.Command("git", newArgs...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	safeLog := strings.ReplaceAll(string(output), token, "***")
	safeLog = strings.ReplaceAll(safeLog, authenticatedURL, remoteURL)
	return safeLog, err
}

func SyncRepo(token string) (string, error) {
	log, err := ExecuteGitWithToken(config.RepoPath, token, "pull", config.GitRemote, config.GitBranch)
	if err == nil {
		InvalidateCache()
	}
	return log, err
}

func PublishRepo(token string) (string, error) {
	addCmd := exec.Command("git", "add", ".")
	addCmd.Dir = config.RepoPath
	if out, err := addCmd.CombinedOutput(); err != nil {
		return string(out), err
	}

	msg := fmt.Sprintf("Update via Zola CMS: %s", time.Now().Format("2006-01-02 15:04:05"))
	commitCmd := exec.Command("git",
		"-c", "user.name="+config.GitUserName,
		"-c", "user.email="+config.GitUserEmail,
		"commit", "-m", msg,
	)
	commitCmd.Dir = config.RepoPath
	commitCmd.Run()

	return ExecuteGitWithToken(config.RepoPath, token, "push", config.GitRemote, config.GitBranch)
}

// Diff reports the unsaved difference between the editor state and the
// normalized saved file, falling back to the file's diff against HEAD.
func Diff(savedPath, editorPath, relPath string) (string, string) {
	cmd := exec.Command("git", "diff", "--no-index", savedPath, editorPath)
	output, err := cmd.CombinedOutput()

	if err != nil && cmd.ProcessState.ExitCode() == 1 {
		diffStr := string(output)
		diffStr = strings.ReplaceAll(diffStr, savedPath, "Saved (Normalized)")
		diffStr = strings.ReplaceAll(diffStr, editorPath, "Editor")
		return diffStr, "unsaved"
	}

	cmdGit := exec.Command("git", "diff", "HEAD", "--", relPath)
	cmdGit.Dir = config.RepoPath
	outGit, _ := cmdGit.CombinedOutput()

	if len(outGit) > 0 {
		return string(outGit), "git"
	}
	return "", "none"
}
