// Package pdf renders analytics reports as PDF files.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// WriteReport renders markdown content to a PDF at the given path and returns
// the absolute path of the written file.
func WriteReport(content []byte, pdfPath string) (string, error) {
	if !strings.HasSuffix(pdfPath, ".pdf") {
		return "", fmt.Errorf("output file must have .pdf extension: %s", pdfPath)
	}
	if dir := filepath.Dir(pdfPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create report directory: %w", err)
		}
	}

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("render report PDF: %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
