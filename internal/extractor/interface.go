package extractor

import "context"

// Extractor converts uploaded documents into plain text.
type Extractor interface {
	// Text extracts paragraph text from a .docx transcript.
	Text(path string) (string, error)
	// Supplementary extracts page-tagged text from supporting PDF files.
	// Per-file failures are logged and skipped; the remaining files are
	// still processed.
	Supplementary(ctx context.Context, paths []string) string
}
