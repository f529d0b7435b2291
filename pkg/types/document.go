// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// BlockKind identifies a top-level document element.
type BlockKind string

const (
	KindHeading   BlockKind = "heading"
	KindParagraph BlockKind = "paragraph"
	KindCode      BlockKind = "code"
	KindTable     BlockKind = "table"
	KindPageBreak BlockKind = "page_break"
)

// Alignment is the horizontal justification of a paragraph or heading.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
)

// Paragraph style identifiers. The values are the OOXML style IDs the
// writer declares in styles.xml.
const (
	StyleNormal       = "Normal"
	StyleListBullet   = "ListBullet"
	StyleIntenseQuote = "IntenseQuote"
)

// Run is a span of text sharing one set of character properties.
type Run struct {
	Text   string `json:"text" yaml:"text"`
	Bold   bool   `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty" yaml:"italic,omitempty"`

	// Font is the font family; empty means the style default.
	Font string `json:"font,omitempty" yaml:"font,omitempty"`

	// Size is the font size in points; zero means the style default.
	Size float64 `json:"size,omitempty" yaml:"size,omitempty"`

	// Color is an RRGGBB hex string; empty means automatic.
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

// Table is a grid of plain-text cells whose first row is a header.
// Every row in Rows has exactly len(Headers) cells.
type Table struct {
	Style   string     `json:"style" yaml:"style"`
	Headers []string   `json:"headers" yaml:"headers"`
	Rows    [][]string `json:"rows" yaml:"rows"`
}

// Dimensions returns the rendered row count (header included) and the
// column count.
func (t *Table) Dimensions() (rows, cols int) {
	return 1 + len(t.Rows), len(t.Headers)
}

// MaxListDepth is the deepest bullet nesting level a document can express.
const MaxListDepth = 8

// Block is one element of a Document. Which fields are meaningful depends
// on Kind:
//
//	heading:    Text, Level, Align
//	paragraph:  Runs, Style, Align, Level (list nesting depth for bullets)
//	code:       Text (verbatim), Runs[0] carries the monospace font
//	table:      Table
//	page_break: nothing
type Block struct {
	Kind  BlockKind `json:"kind" yaml:"kind"`
	Text  string    `json:"text,omitempty" yaml:"text,omitempty"`
	Level int       `json:"level,omitempty" yaml:"level,omitempty"`
	Align Alignment `json:"align,omitempty" yaml:"align,omitempty"`
	Style string    `json:"style,omitempty" yaml:"style,omitempty"`
	Runs  []Run     `json:"runs,omitempty" yaml:"runs,omitempty"`
	Table *Table    `json:"table,omitempty" yaml:"table,omitempty"`
}

// PlainText returns the concatenated text of the block: the heading or code
// text, or the joined runs of a paragraph.
func (b *Block) PlainText() string {
	switch b.Kind {
	case KindHeading, KindCode:
		return b.Text
	case KindParagraph:
		var sb strings.Builder
		for _, r := range b.Runs {
			sb.WriteString(r.Text)
		}
		return sb.String()
	}
	return ""
}

// Theme holds the fixed presentation attributes applied by the assembler.
type Theme struct {
	// BodyFont and BodySize apply to ordinary paragraphs (default Calibri 11pt).
	BodyFont string  `json:"body_font" yaml:"body_font" mapstructure:"body_font"`
	BodySize float64 `json:"body_size" yaml:"body_size" mapstructure:"body_size"`

	// CodeFont and CodeSize apply to code blocks (default Courier New 9pt).
	CodeFont string  `json:"code_font" yaml:"code_font" mapstructure:"code_font"`
	CodeSize float64 `json:"code_size" yaml:"code_size" mapstructure:"code_size"`

	// TableStyle is the OOXML table style ID (default LightGridAccent1).
	TableStyle string `json:"table_style" yaml:"table_style" mapstructure:"table_style"`

	// WarningColor and NoteColor are RRGGBB colors for callout paragraphs.
	WarningColor string `json:"warning_color" yaml:"warning_color" mapstructure:"warning_color"`
	NoteColor    string `json:"note_color" yaml:"note_color" mapstructure:"note_color"`
}

// DefaultTheme returns the presentation defaults.
func DefaultTheme() Theme {
	return Theme{
		BodyFont:     "Calibri",
		BodySize:     11,
		CodeFont:     "Courier New",
		CodeSize:     9,
		TableStyle:   "LightGridAccent1",
		WarningColor: "CC6600",
		NoteColor:    "0066CC",
	}
}

// RowPolicy selects how the assembler treats table rows whose cell count
// differs from the header.
type RowPolicy string

const (
	// RowPad pads short rows with empty cells and truncates long rows,
	// recording a warning on the document.
	RowPad RowPolicy = "pad"

	// RowReject refuses the table and returns an error.
	RowReject RowPolicy = "reject"
)

// Document is the append-only in-memory representation of one generated
// document. A Document is owned by the single generation run that builds
// it and is never shared.
type Document struct {
	// Title, Subtitle and Platform come from the guide front matter and
	// populate the title page and the package core properties.
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty"`

	// Output is the default output filename (e.g. "Redis_8.x_RHEL8_Installation_Guide.docx").
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	Theme     Theme     `json:"-" yaml:"-"`
	RowPolicy RowPolicy `json:"-" yaml:"-"`

	Blocks []Block `json:"blocks" yaml:"blocks"`

	// Warnings collects non-fatal caller errors such as padded table rows.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// CountKind returns the number of blocks of the given kind.
func (d *Document) CountKind(k BlockKind) int {
	n := 0
	for i := range d.Blocks {
		if d.Blocks[i].Kind == k {
			n++
		}
	}
	return n
}
