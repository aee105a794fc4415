// Package documents loads the reference document, extracts its text, and
// runs the processing pipeline that turns it into persisted, indexed chunks.
package documents

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/draphael123/notebooklm-marketing/internal/common"
)

// Loader resolves the raw document text. Resolution order: inline configured
// content, then fetch by URL, then local file path. When every source fails
// the error names each source tried.
type Loader struct {
	config *common.DocumentConfig
	client *http.Client
	logger arbor.ILogger
}

// NewLoader creates a document loader.
func NewLoader(cfg *common.DocumentConfig, logger arbor.ILogger) *Loader {
	return &Loader{
		config: cfg,
		client: &http.Client{Timeout: cfg.FetchTimeout},
		logger: logger,
	}
}

// LoadText returns the document text from the first available source.
func (l *Loader) LoadText(ctx context.Context) (string, error) {
	var tried []string

	if l.config.Content != "" {
		l.logger.Debug().Int("length", len(l.config.Content)).Msg("Using inline document content")
		return l.config.Content, nil
	}
	tried = append(tried, "inline content (not configured)")

	if l.config.URL != "" {
		text, err := l.fetchURL(ctx, l.config.URL)
		if err == nil {
			return text, nil
		}
		l.logger.Warn().Err(err).Str("url", l.config.URL).Msg("Document URL fetch failed")
		tried = append(tried, fmt.Sprintf("url %s (%v)", l.config.URL, err))
	} else {
		tried = append(tried, "url (not configured)")
	}

	if l.config.Path != "" {
		text, err := extractTextFromFile(l.config.Path, l.logger)
		if err == nil {
			return text, nil
		}
		l.logger.Warn().Err(err).Str("path", l.config.Path).Msg("Document file read failed")
		tried = append(tried, fmt.Sprintf("path %s (%v)", l.config.Path, err))
	} else {
		tried = append(tried, "path (not configured)")
	}

	return "", fmt.Errorf("document could not be loaded, tried: %s", strings.Join(tried, "; "))
}

func (l *Loader) fetchURL(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") {
		return extractHTML(string(body))
	}
	return string(body), nil
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
