// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline exports the logical block sequence of a document. Two
// builds of the same guide produce the same outline, which makes it the
// reproducible view of a generated file.
package outline

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/opsdocs/pkg/types"
)

// Format names accepted by Write.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Entry is one block of the outline.
type Entry struct {
	Index  int        `json:"index" yaml:"index"`
	Kind   string     `json:"kind" yaml:"kind"`
	Level  *int       `json:"level,omitempty" yaml:"level,omitempty"`
	Align  string     `json:"align,omitempty" yaml:"align,omitempty"`
	Style  string     `json:"style,omitempty" yaml:"style,omitempty"`
	Text   string     `json:"text,omitempty" yaml:"text,omitempty"`
	Bold   bool       `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic bool       `json:"italic,omitempty" yaml:"italic,omitempty"`
	Runs   []RunEntry `json:"runs,omitempty" yaml:"runs,omitempty"`
	Table  *TableInfo `json:"table,omitempty" yaml:"table,omitempty"`
}

// RunEntry describes one run of a paragraph whose runs differ in emphasis.
type RunEntry struct {
	Text   string `json:"text" yaml:"text"`
	Bold   bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty" yaml:"italic,omitempty"`
}

// TableInfo holds a table's dimensions and cells.
type TableInfo struct {
	Rows    int        `json:"rows" yaml:"rows"`
	Cols    int        `json:"cols" yaml:"cols"`
	Style   string     `json:"style" yaml:"style"`
	Headers []string   `json:"headers" yaml:"headers"`
	Cells   [][]string `json:"cells,omitempty" yaml:"cells,omitempty"`
}

// Outline is the exported form of a document.
type Outline struct {
	Title    string   `json:"title" yaml:"title"`
	Output   string   `json:"output" yaml:"output"`
	Blocks   []Entry  `json:"blocks" yaml:"blocks"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Build converts doc into its outline.
func Build(doc *types.Document) Outline {
	o := Outline{
		Title:    doc.Title,
		Output:   doc.Output,
		Blocks:   make([]Entry, len(doc.Blocks)),
		Warnings: doc.Warnings,
	}
	for i := range doc.Blocks {
		o.Blocks[i] = entry(i, &doc.Blocks[i])
	}
	return o
}

func entry(i int, b *types.Block) Entry {
	e := Entry{
		Index: i,
		Kind:  string(b.Kind),
		Align: string(b.Align),
	}
	if b.Style != types.StyleNormal {
		e.Style = b.Style
	}

	switch b.Kind {
	case types.KindHeading:
		level := b.Level
		e.Level = &level
		e.Text = b.Text
	case types.KindCode:
		e.Text = b.Text
	case types.KindTable:
		if b.Table == nil {
			e.Table = &TableInfo{}
			break
		}
		rows, cols := b.Table.Dimensions()
		e.Table = &TableInfo{
			Rows:    rows,
			Cols:    cols,
			Style:   b.Table.Style,
			Headers: b.Table.Headers,
			Cells:   b.Table.Rows,
		}
	case types.KindParagraph:
		if b.Style == types.StyleListBullet && b.Level > 0 {
			level := b.Level
			e.Level = &level
		}
		e.Text = b.PlainText()
		if uniform(b.Runs) {
			e.Bold = b.Runs[0].Bold
			e.Italic = b.Runs[0].Italic
		} else {
			for _, r := range b.Runs {
				e.Runs = append(e.Runs, RunEntry{Text: r.Text, Bold: r.Bold, Italic: r.Italic})
			}
		}
	}
	return e
}

// uniform reports whether every run has the same emphasis. An empty slice
// is not uniform.
func uniform(runs []types.Run) bool {
	if len(runs) == 0 {
		return false
	}
	for _, r := range runs[1:] {
		if r.Bold != runs[0].Bold || r.Italic != runs[0].Italic {
			return false
		}
	}
	return true
}

// WriteYAML writes o as YAML.
func WriteYAML(w io.Writer, o Outline) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(o); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes o as indented JSON.
func WriteJSON(w io.Writer, o Outline) error {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// Write writes o in the named format.
func Write(w io.Writer, o Outline, format string) error {
	switch format {
	case FormatYAML, "":
		return WriteYAML(w, o)
	case FormatJSON:
		return WriteJSON(w, o)
	default:
		return fmt.Errorf("unknown outline format %q (want %s or %s)", format, FormatYAML, FormatJSON)
	}
}
