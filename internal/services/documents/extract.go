package documents

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"
)

// extractTextFromFile extracts document text by file extension. Plain text
// and markdown are read directly; PDF and HTML go through format-specific
// extraction. Unsupported formats are a data error.
func extractTextFromFile(path string, logger arbor.ILogger) (string, error) {
	if !fileExists(path) {
		return "", fmt.Errorf("document not found: %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", ".md", ".markdown":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read document: %w", err)
		}
		return string(data), nil

	case ".pdf":
		return extractPDF(path, logger)

	case ".html", ".htm":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read document: %w", err)
		}
		return extractHTML(string(data))

	default:
		return "", fmt.Errorf("unsupported document format: %s", ext)
	}
}

// extractPDF pulls text content from a PDF using pdfcpu. Content extraction
// writes per-page files to a temp directory which is read back and joined.
func extractPDF(path string, logger arbor.ILogger) (string, error) {
	pdfCtx, err := api.ReadContextFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	outDir, err := os.MkdirTemp("", "docqa-pdf-")
	if err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractContentFile(path, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("failed to extract PDF content: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("failed to read extracted content: %w", err)
	}

	var builder strings.Builder
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		content, readErr := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if readErr != nil {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n\n")
		}
		builder.Write(content)
	}

	if builder.Len() == 0 {
		return "", fmt.Errorf("no text extracted from PDF with %d pages: %s", pdfCtx.PageCount, path)
	}

	if logger != nil {
		logger.Debug().
			Int("pages", pdfCtx.PageCount).
			Int("length", builder.Len()).
			Msg("PDF text extracted")
	}
	return builder.String(), nil
}

// extractHTML strips script/style/nav noise and converts the remaining
// markup to markdown, which chunks well on paragraph boundaries.
func extractHTML(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, header, footer").Remove()

	cleaned, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialize HTML: %w", err)
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return markdown, nil
}
