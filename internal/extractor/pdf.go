package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/interviewkit/interview-flow/internal/session"
)

// Supplementary extracts page-tagged text from the given PDF files. Each
// file becomes a "Content from <name>:" block with "[Page N]" entries so
// summaries can cite page and source. A corrupt or non-PDF file is logged
// and skipped without failing the rest.
func (e *implExtractor) Supplementary(ctx context.Context, paths []string) string {
	var blocks []string

	for _, path := range paths {
		if strings.ToLower(filepath.Ext(path)) != ".pdf" {
			e.logger.Warn(ctx, "Skipping non-PDF context file: %s", filepath.Base(path))
			continue
		}

		block, err := pdfPages(path)
		if err != nil {
			perr := &session.PartialExtractionError{File: filepath.Base(path), Err: err}
			e.logger.Warn(ctx, "Skipping context file: %v", perr)
			continue
		}
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n")
}

func pdfPages(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var content []string
	content = append(content, fmt.Sprintf("Content from %s:", filepath.Base(path)))

	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			content = append(content, fmt.Sprintf("[Page %d] %s", i, text))
		}
	}

	return strings.Join(content, "\n"), nil
}
