package extractor

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/interviewkit/interview-flow/internal/logger"
)

func writeTestDocx(t *testing.T, documentXML string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "transcript.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	entry, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := entry.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleDocument = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Interviewer 00:00:05</w:t></w:r></w:p>
    <w:p><w:r><w:t>Can you describe</w:t></w:r><w:r><w:t xml:space="preserve"> what happened?</w:t></w:r></w:p>
    <w:p><w:r><w:t></w:t></w:r></w:p>
    <w:p><w:r><w:t>Jane Doe 00:00:12</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestText(t *testing.T) {
	e := New(logger.New("error"))
	path := writeTestDocx(t, sampleDocument)

	got, err := e.Text(path)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}

	want := "Interviewer 00:00:05\nCan you describe what happened?\nJane Doe 00:00:12"
	if got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestTextJoinsRuns(t *testing.T) {
	e := New(logger.New("error"))
	path := writeTestDocx(t, sampleDocument)

	got, err := e.Text(path)
	if err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	if !strings.Contains(got, "Can you describe what happened?") {
		t.Errorf("split runs were not joined within a paragraph: %q", got)
	}
}

func TestTextMissingBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	e := New(logger.New("error"))
	if _, err := e.Text(path); err == nil {
		t.Error("Text() should fail on a docx without word/document.xml")
	}
}

func TestTextNotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := New(logger.New("error"))
	if _, err := e.Text(path); err == nil {
		t.Error("Text() should fail on a non-zip file")
	}
}

func TestSupplementarySkipsBadFiles(t *testing.T) {
	e := New(logger.New("error"))

	dir := t.TempDir()
	notPDF := filepath.Join(dir, "notes.txt")
	corrupt := filepath.Join(dir, "corrupt.pdf")
	for _, p := range []string{notPDF, corrupt} {
		if err := os.WriteFile(p, []byte("garbage"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got := e.Supplementary(context.Background(), []string{notPDF, corrupt})
	if got != "" {
		t.Errorf("Supplementary() = %q, want empty for unusable inputs", got)
	}
}
