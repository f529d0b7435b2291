// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExportStatus indicates the state of PDF export for a generated document.
type ExportStatus string

const (
	ExportNone    ExportStatus = "none"
	ExportDone    ExportStatus = "exported"
	ExportSkipped ExportStatus = "skipped"
	ExportFailed  ExportStatus = "failed"
)

// GenerationRun records one generate invocation for one guide.
type GenerationRun struct {
	// ID is the catalog row ID; zero until recorded.
	ID int64 `json:"id" yaml:"id"`

	// Batch identifies the generate invocation that produced the run; all
	// guides written by one invocation share it.
	Batch string `json:"batch" yaml:"batch"`

	// Guide is the guide name (e.g. "redis").
	Guide string `json:"guide" yaml:"guide"`

	// Title is the document title from the guide front matter.
	Title string `json:"title" yaml:"title"`

	// OutputPath is the path of the written .docx file.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Blocks, Tables and Warnings summarize the assembled document.
	Blocks   int `json:"blocks" yaml:"blocks"`
	Tables   int `json:"tables" yaml:"tables"`
	Warnings int `json:"warnings" yaml:"warnings"`

	// SHA256 is the hex digest of the written file.
	SHA256 string `json:"sha256" yaml:"sha256"`

	// Export tracks whether a PDF was produced alongside the .docx.
	Export ExportStatus `json:"export" yaml:"export"`

	// GeneratedAt is when the file was written.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}
