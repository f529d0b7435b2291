// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble provides the content-insertion primitives that generator
// functions call, in order, to build a document. Each primitive appends
// exactly one block to the document it is given and returns that block; the
// returned pointer is only valid until the next insertion.
package assemble

import (
	"errors"
	"fmt"

	"github.com/pdiddy/opsdocs/pkg/types"
)

const (
	warningPrefix = "⚠️  WARNING: "
	notePrefix    = "📝 NOTE: "
)

// ErrRowLength is returned by AddTableWithHeader under the reject policy
// when a row's cell count differs from the header's.
var ErrRowLength = errors.New("table row length does not match header")

// New returns an empty document using the given theme and row policy.
// Zero-valued theme fields fall back to types.DefaultTheme.
func New(theme types.Theme, policy types.RowPolicy) *types.Document {
	if policy == "" {
		policy = types.RowPad
	}
	return &types.Document{
		Theme:     withDefaults(theme),
		RowPolicy: policy,
	}
}

func withDefaults(t types.Theme) types.Theme {
	d := types.DefaultTheme()
	if t.BodyFont == "" {
		t.BodyFont = d.BodyFont
	}
	if t.BodySize <= 0 {
		t.BodySize = d.BodySize
	}
	if t.CodeFont == "" {
		t.CodeFont = d.CodeFont
	}
	if t.CodeSize <= 0 {
		t.CodeSize = d.CodeSize
	}
	if t.TableStyle == "" {
		t.TableStyle = d.TableStyle
	}
	if t.WarningColor == "" {
		t.WarningColor = d.WarningColor
	}
	if t.NoteColor == "" {
		t.NoteColor = d.NoteColor
	}
	return t
}

func appendBlock(doc *types.Document, b types.Block) *types.Block {
	doc.Blocks = append(doc.Blocks, b)
	return &doc.Blocks[len(doc.Blocks)-1]
}

// AddHeading appends a left-aligned heading. Levels outside 0-3 are stored
// as given; the writer maps them onto the nearest defined style.
func AddHeading(doc *types.Document, text string, level int) *types.Block {
	return appendBlock(doc, types.Block{
		Kind:  types.KindHeading,
		Text:  text,
		Level: level,
		Align: types.AlignLeft,
	})
}

// AddTitle appends a centered heading, as used on the title page.
func AddTitle(doc *types.Document, text string, level int) *types.Block {
	b := AddHeading(doc, text, level)
	b.Align = types.AlignCenter
	return b
}

// AddParagraph appends a single-run paragraph in the body font. Emphasis
// applies to the whole run.
func AddParagraph(doc *types.Document, text string, bold, italic bool) *types.Block {
	return appendBlock(doc, types.Block{
		Kind:  types.KindParagraph,
		Style: types.StyleNormal,
		Runs: []types.Run{{
			Text:   text,
			Bold:   bold,
			Italic: italic,
			Font:   doc.Theme.BodyFont,
			Size:   doc.Theme.BodySize,
		}},
	})
}

// AddRuns appends a paragraph built from caller-split runs, the only way to
// style part of a paragraph. Runs without a font or size get the body font.
func AddRuns(doc *types.Document, runs ...types.Run) *types.Block {
	return appendBlock(doc, types.Block{
		Kind:  types.KindParagraph,
		Style: types.StyleNormal,
		Runs:  bodyRuns(doc, runs),
	})
}

// AddBullet appends a top-level bulleted list paragraph.
func AddBullet(doc *types.Document, runs ...types.Run) *types.Block {
	return AddNestedBullet(doc, 0, runs...)
}

// AddNestedBullet appends a bulleted list paragraph at the given nesting
// depth, clamped to 0..types.MaxListDepth.
func AddNestedBullet(doc *types.Document, depth int, runs ...types.Run) *types.Block {
	return appendBlock(doc, types.Block{
		Kind:  types.KindParagraph,
		Style: types.StyleListBullet,
		Level: min(max(depth, 0), types.MaxListDepth),
		Runs:  bodyRuns(doc, runs),
	})
}

func bodyRuns(doc *types.Document, runs []types.Run) []types.Run {
	out := make([]types.Run, len(runs))
	for i, r := range runs {
		if r.Font == "" {
			r.Font = doc.Theme.BodyFont
		}
		if r.Size == 0 {
			r.Size = doc.Theme.BodySize
		}
		out[i] = r
	}
	return out
}

// AddBlank appends an empty paragraph.
func AddBlank(doc *types.Document) *types.Block {
	return appendBlock(doc, types.Block{
		Kind:  types.KindParagraph,
		Style: types.StyleNormal,
	})
}

// AddCodeBlock appends a monospace block for literal command listings. The
// text is kept verbatim; newlines become line breaks when rendered.
func AddCodeBlock(doc *types.Document, text string) *types.Block {
	return appendBlock(doc, types.Block{
		Kind:  types.KindCode,
		Text:  text,
		Style: types.StyleIntenseQuote,
		Runs: []types.Run{{
			Text: text,
			Font: doc.Theme.CodeFont,
			Size: doc.Theme.CodeSize,
		}},
	})
}

// AddWarning appends a bold warning callout.
func AddWarning(doc *types.Document, text string) *types.Block {
	return appendBlock(doc, types.Block{
		Kind:  types.KindParagraph,
		Style: types.StyleNormal,
		Runs: []types.Run{{
			Text:  warningPrefix + text,
			Bold:  true,
			Font:  doc.Theme.BodyFont,
			Size:  doc.Theme.BodySize,
			Color: doc.Theme.WarningColor,
		}},
	})
}

// AddNote appends an informational callout.
func AddNote(doc *types.Document, text string) *types.Block {
	return appendBlock(doc, types.Block{
		Kind:  types.KindParagraph,
		Style: types.StyleNormal,
		Runs: []types.Run{{
			Text:  notePrefix + text,
			Font:  doc.Theme.BodyFont,
			Size:  doc.Theme.BodySize,
			Color: doc.Theme.NoteColor,
		}},
	})
}

// AddPageBreak appends a page-break marker.
func AddPageBreak(doc *types.Document) *types.Block {
	return appendBlock(doc, types.Block{Kind: types.KindPageBreak})
}

// AddTableWithHeader appends a table whose first row holds the headers
// (rendered bold) followed by one row per entry in rows.
//
// Rows whose length differs from len(headers) are handled by the document's
// row policy. Under types.RowPad short rows are padded with empty cells,
// long rows are truncated, and a warning is recorded in doc.Warnings. Under
// types.RowReject the table is not appended and an error wrapping
// ErrRowLength is returned. Empty headers and rows yield an empty
// zero-column table.
func AddTableWithHeader(doc *types.Document, headers []string, rows [][]string) (*types.Block, error) {
	cols := len(headers)
	table := &types.Table{
		Style:   doc.Theme.TableStyle,
		Headers: append([]string{}, headers...),
		Rows:    make([][]string, 0, len(rows)),
	}

	var warnings []string
	for i, row := range rows {
		if len(row) != cols {
			if doc.RowPolicy == types.RowReject {
				return nil, fmt.Errorf("row %d has %d cells, header has %d: %w", i, len(row), cols, ErrRowLength)
			}
			warnings = append(warnings, fmt.Sprintf("table %d row %d: %d cells, header has %d; %s",
				doc.CountKind(types.KindTable)+1, i, len(row), cols, fitVerb(len(row), cols)))
		}
		table.Rows = append(table.Rows, fit(row, cols))
	}

	doc.Warnings = append(doc.Warnings, warnings...)
	return appendBlock(doc, types.Block{Kind: types.KindTable, Table: table}), nil
}

// fit returns a copy of row with exactly n cells.
func fit(row []string, n int) []string {
	out := make([]string, n)
	copy(out, row)
	return out
}

func fitVerb(have, want int) string {
	if have < want {
		return "padded"
	}
	return "truncated"
}
