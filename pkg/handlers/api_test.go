package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diffRequest(t *testing.T, body string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/diff", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func TestGetDiffTempFileFailure(t *testing.T) {
	// Point the temp dir at a regular file so staging cannot succeed.
	broken := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(broken, []byte("x"), 0644))
	t.Setenv("TMPDIR", broken)

	w, c := diffRequest(t, `{"path":"posts/wakers.md","frontmatter":{"title":"Wakers"},"body":"Body.","format":"toml"}`)
	GetDiff(c)

	assert.Equal(t, 500, w.Code)
	assert.Contains(t, w.Body.String(), "Diff staging failed")
}

func TestGetDiffInvalidJSON(t *testing.T) {
	w, c := diffRequest(t, `{not json`)
	GetDiff(c)

	assert.Equal(t, 400, w.Code)
}
