package exporter

// Exporter renders a session's markdown summary as a Word document.
type Exporter interface {
	WriteSummary(title, summary, outputPath string) error
}
