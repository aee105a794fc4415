package documents

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
)

func testLogger() arbor.ILogger {
	return arbor.NewLogger()
}

func TestLoadText_InlineContent(t *testing.T) {
	l := NewLoader(&common.DocumentConfig{
		Content: "inline document body",
		URL:     "http://should-not-be-fetched.invalid",
		Path:    "/does/not/exist.txt",
	}, testLogger())

	text, err := l.LoadText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "inline document body", text)
}

func TestLoadText_FromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("fetched document body"))
	}))
	defer server.Close()

	l := NewLoader(&common.DocumentConfig{
		URL:          server.URL,
		FetchTimeout: 5 * time.Second,
	}, testLogger())

	text, err := l.LoadText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fetched document body", text)
}

func TestLoadText_URLFailsFallsBackToFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("file document body"), 0644))

	l := NewLoader(&common.DocumentConfig{
		URL:          server.URL,
		Path:         path,
		FetchTimeout: 5 * time.Second,
	}, testLogger())

	text, err := l.LoadText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file document body", text)
}

func TestLoadText_AllSourcesFail(t *testing.T) {
	l := NewLoader(&common.DocumentConfig{
		Path: "/does/not/exist.txt",
	}, testLogger())

	_, err := l.LoadText(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inline content")
	assert.Contains(t, err.Error(), "/does/not/exist.txt")
}

func TestExtractTextFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain text", func(t *testing.T) {
		path := filepath.Join(dir, "doc.txt")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))
		got, err := extractTextFromFile(path, testLogger())
		require.NoError(t, err)
		assert.Equal(t, "plain text", got)
	})

	t.Run("markdown", func(t *testing.T) {
		path := filepath.Join(dir, "doc.md")
		require.NoError(t, os.WriteFile(path, []byte("# Title\n\nBody"), 0644))
		got, err := extractTextFromFile(path, testLogger())
		require.NoError(t, err)
		assert.Contains(t, got, "Body")
	})

	t.Run("html", func(t *testing.T) {
		path := filepath.Join(dir, "doc.html")
		html := `<html><head><script>evil()</script></head><body><p>Visible paragraph</p></body></html>`
		require.NoError(t, os.WriteFile(path, []byte(html), 0644))
		got, err := extractTextFromFile(path, testLogger())
		require.NoError(t, err)
		assert.Contains(t, got, "Visible paragraph")
		assert.NotContains(t, got, "evil")
	})

	t.Run("unsupported format", func(t *testing.T) {
		path := filepath.Join(dir, "doc.xyz")
		require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
		_, err := extractTextFromFile(path, testLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), ".xyz")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := extractTextFromFile(filepath.Join(dir, "missing.txt"), testLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}
