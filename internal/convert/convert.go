// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert exports generated .docx files to PDF with pluggable
// backends. The PDF is written next to its source file.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/opsdocs/pkg/types"
)

// Converter transforms a .docx file into a PDF.
type Converter interface {
	// Convert reads the document at docxPath, writes the PDF next to it and
	// returns the PDF path.
	Convert(ctx context.Context, docxPath string) (string, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any documents failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// PDFPath returns the PDF path that corresponds to docxPath.
func PDFPath(docxPath string) string {
	return strings.TrimSuffix(docxPath, filepath.Ext(docxPath)) + ".pdf"
}

// ConvertFile converts one document and returns the export status. A PDF
// that is newer than its source is left alone unless force is set.
func ConvertFile(ctx context.Context, c Converter, docxPath string, force bool, w io.Writer) types.ExportStatus {
	base := filepath.Base(docxPath)

	src, err := os.Stat(docxPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ExportFailed
	}
	if !force {
		if pdf, err := os.Stat(PDFPath(docxPath)); err == nil && !pdf.ModTime().Before(src.ModTime()) {
			fmt.Fprintf(w, "skipped: %s (PDF is up to date)\n", base)
			return types.ExportSkipped
		}
	}

	out, err := c.Convert(ctx, docxPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ExportFailed
	}

	fmt.Fprintf(w, "exported: %s\n", filepath.Base(out))
	return types.ExportDone
}

// ConvertPaths converts each document in turn, printing per-file status to
// w and returning a summary. It stops early when ctx is cancelled.
func ConvertPaths(ctx context.Context, c Converter, docxPaths []string, force bool, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range docxPaths {
		if ctx.Err() != nil {
			result.Failed++
			fmt.Fprintf(w, "failed:  %s (%v)\n", filepath.Base(p), ctx.Err())
			continue
		}
		switch ConvertFile(ctx, c, p, force, w) {
		case types.ExportDone:
			result.Converted++
		case types.ExportSkipped:
			result.Skipped++
		case types.ExportFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nExport summary: %d exported, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
