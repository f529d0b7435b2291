// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/opsdocs/pkg/types"
)

// XML namespaces used in the generated package.
const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Page geometry in twips: US Letter with 1 inch margins.
const (
	pageWidth   = 12240
	pageHeight  = 15840
	pageMargin  = 1440
	textWidth   = pageWidth - 2*pageMargin
	bulletNumID = "1"
)

// documentXML is word/document.xml. Element names carry the w: prefix
// literally; the root declares it.
type documentXML struct {
	XMLName xml.Name `xml:"w:document"`
	XMLNSW  string   `xml:"xmlns:w,attr"`
	XMLNSR  string   `xml:"xmlns:r,attr"`
	Body    bodyXML  `xml:"w:body"`
}

// bodyXML holds paragraphs and tables in document order.
type bodyXML struct {
	Items  []interface{}
	SectPr sectPrXML `xml:"w:sectPr"`
}

type sectPrXML struct {
	PgSz  pgSzXML  `xml:"w:pgSz"`
	PgMar pgMarXML `xml:"w:pgMar"`
}

type pgSzXML struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type pgMarXML struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

// paragraphXML is <w:p>.
type paragraphXML struct {
	XMLName xml.Name           `xml:"w:p"`
	Props   *paragraphPropsXML `xml:"w:pPr"`
	Runs    []runXML           `xml:"w:r"`
}

// paragraphPropsXML is <w:pPr>. Field order follows the schema sequence.
type paragraphPropsXML struct {
	Style *valXML   `xml:"w:pStyle"`
	NumPr *numPrXML `xml:"w:numPr"`
	Jc    *valXML   `xml:"w:jc"`
}

type numPrXML struct {
	ILvl  valXML `xml:"w:ilvl"`
	NumID valXML `xml:"w:numId"`
}

// valXML is any element whose only content is a w:val attribute.
type valXML struct {
	Val string `xml:"w:val,attr"`
}

// onXML is a toggle property such as <w:b/>.
type onXML struct{}

// runXML is <w:r>.
type runXML struct {
	Props   *runPropsXML `xml:"w:rPr"`
	Content []interface{}
}

// runPropsXML is <w:rPr>. Field order follows the schema sequence.
type runPropsXML struct {
	Fonts  *fontsXML `xml:"w:rFonts"`
	Bold   *onXML    `xml:"w:b"`
	Italic *onXML    `xml:"w:i"`
	Color  *valXML   `xml:"w:color"`
	Size   *valXML   `xml:"w:sz"`
	SizeCS *valXML   `xml:"w:szCs"`
}

type fontsXML struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr"`
}

// textXML is <w:t>.
type textXML struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

// breakXML is <w:br>; Type is "page" for page breaks, empty for line breaks.
type breakXML struct {
	XMLName xml.Name `xml:"w:br"`
	Type    string   `xml:"w:type,attr,omitempty"`
}

// tabXML is <w:tab>.
type tabXML struct {
	XMLName xml.Name `xml:"w:tab"`
}

// tableXML is <w:tbl>.
type tableXML struct {
	XMLName xml.Name      `xml:"w:tbl"`
	Props   tablePropsXML `xml:"w:tblPr"`
	Grid    tableGridXML  `xml:"w:tblGrid"`
	Rows    []tableRowXML `xml:"w:tr"`
}

type tablePropsXML struct {
	Style valXML     `xml:"w:tblStyle"`
	Width widthXML   `xml:"w:tblW"`
	Look  tblLookXML `xml:"w:tblLook"`
}

type widthXML struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type tblLookXML struct {
	Val         string `xml:"w:val,attr"`
	FirstRow    string `xml:"w:firstRow,attr"`
	LastRow     string `xml:"w:lastRow,attr"`
	FirstColumn string `xml:"w:firstColumn,attr"`
	LastColumn  string `xml:"w:lastColumn,attr"`
	NoHBand     string `xml:"w:noHBand,attr"`
	NoVBand     string `xml:"w:noVBand,attr"`
}

type tableGridXML struct {
	Cols []gridColXML `xml:"w:gridCol"`
}

type gridColXML struct {
	W int `xml:"w:w,attr"`
}

type tableRowXML struct {
	Props *tableRowPropsXML `xml:"w:trPr"`
	Cells []tableCellXML    `xml:"w:tc"`
}

type tableRowPropsXML struct {
	Header onXML `xml:"w:tblHeader"`
}

type tableCellXML struct {
	Props      tableCellPropsXML `xml:"w:tcPr"`
	Paragraphs []paragraphXML    `xml:"w:p"`
}

type tableCellPropsXML struct {
	Width widthXML `xml:"w:tcW"`
}

// buildDocument converts the block sequence into word/document.xml.
func buildDocument(doc *types.Document) documentXML {
	items := make([]interface{}, 0, len(doc.Blocks))
	for i := range doc.Blocks {
		items = append(items, buildBlock(&doc.Blocks[i]))
	}
	return documentXML{
		XMLNSW: nsW,
		XMLNSR: nsR,
		Body: bodyXML{
			Items: items,
			SectPr: sectPrXML{
				PgSz: pgSzXML{W: pageWidth, H: pageHeight},
				PgMar: pgMarXML{
					Top: pageMargin, Right: pageMargin, Bottom: pageMargin, Left: pageMargin,
					Header: 720, Footer: 720,
				},
			},
		},
	}
}

func buildBlock(b *types.Block) interface{} {
	switch b.Kind {
	case types.KindHeading:
		p := paragraphXML{
			Props: &paragraphPropsXML{Style: &valXML{Val: headingStyle(b.Level)}},
			Runs:  []runXML{textRun(types.Run{Text: b.Text}, false)},
		}
		if b.Align != "" {
			p.Props.Jc = &valXML{Val: string(b.Align)}
		}
		return p
	case types.KindCode:
		run := types.Run{Text: b.Text}
		if len(b.Runs) > 0 {
			run = b.Runs[0]
			run.Text = b.Text
		}
		return paragraphXML{
			Props: &paragraphPropsXML{Style: &valXML{Val: types.StyleIntenseQuote}},
			Runs:  []runXML{textRun(run, true)},
		}
	case types.KindTable:
		if b.Table == nil || len(b.Table.Headers) == 0 {
			// A table needs at least one cell; an empty table renders as an
			// empty paragraph so the block sequence is preserved.
			return paragraphXML{}
		}
		return buildTable(b.Table)
	case types.KindPageBreak:
		return paragraphXML{Runs: []runXML{{Content: []interface{}{breakXML{Type: "page"}}}}}
	default:
		return buildParagraph(b)
	}
}

func buildParagraph(b *types.Block) paragraphXML {
	p := paragraphXML{}
	props := &paragraphPropsXML{}
	if b.Style != "" && b.Style != types.StyleNormal {
		props.Style = &valXML{Val: b.Style}
	}
	if b.Style == types.StyleListBullet {
		props.NumPr = &numPrXML{ILvl: valXML{Val: strconv.Itoa(listLevel(b.Level))}, NumID: valXML{Val: bulletNumID}}
	}
	if b.Align != "" {
		props.Jc = &valXML{Val: string(b.Align)}
	}
	if props.Style != nil || props.NumPr != nil || props.Jc != nil {
		p.Props = props
	}
	for _, r := range b.Runs {
		p.Runs = append(p.Runs, textRun(r, false))
	}
	return p
}

// headingStyle maps an outline level onto a declared style. Levels below 1
// use Title and levels above 3 use Heading3.
func headingStyle(level int) string {
	switch {
	case level <= 0:
		return "Title"
	case level > 3:
		return "Heading3"
	default:
		return "Heading" + strconv.Itoa(level)
	}
}

// listLevel maps a bullet depth onto a declared numbering level.
func listLevel(depth int) int {
	return min(max(depth, 0), types.MaxListDepth)
}

// textRun renders a run. Newlines become <w:br/> and tabs <w:tab/>; when
// preserve is set every text element keeps its whitespace.
func textRun(r types.Run, preserve bool) runXML {
	run := runXML{Props: runProps(r)}
	for i, line := range strings.Split(r.Text, "\n") {
		if i > 0 {
			run.Content = append(run.Content, breakXML{})
		}
		for j, seg := range strings.Split(line, "\t") {
			if j > 0 {
				run.Content = append(run.Content, tabXML{})
			}
			if seg == "" {
				continue
			}
			t := textXML{Value: seg}
			if preserve || seg != strings.TrimSpace(seg) {
				t.Space = "preserve"
			}
			run.Content = append(run.Content, t)
		}
	}
	return run
}

func runProps(r types.Run) *runPropsXML {
	p := &runPropsXML{}
	empty := true
	if r.Font != "" {
		p.Fonts = &fontsXML{ASCII: r.Font, HAnsi: r.Font, CS: r.Font}
		empty = false
	}
	if r.Bold {
		p.Bold = &onXML{}
		empty = false
	}
	if r.Italic {
		p.Italic = &onXML{}
		empty = false
	}
	if r.Color != "" {
		p.Color = &valXML{Val: r.Color}
		empty = false
	}
	if r.Size > 0 {
		hp := strconv.Itoa(int(math.Round(r.Size * 2)))
		p.Size = &valXML{Val: hp}
		p.SizeCS = &valXML{Val: hp}
		empty = false
	}
	if empty {
		return nil
	}
	return p
}

func buildTable(t *types.Table) tableXML {
	cols := len(t.Headers)
	colWidth := textWidth / cols

	tbl := tableXML{
		Props: tablePropsXML{
			Style: valXML{Val: t.Style},
			Width: widthXML{W: 0, Type: "auto"},
			Look: tblLookXML{
				Val: "04A0", FirstRow: "1", LastRow: "0",
				FirstColumn: "1", LastColumn: "0", NoHBand: "0", NoVBand: "1",
			},
		},
	}
	for i := 0; i < cols; i++ {
		tbl.Grid.Cols = append(tbl.Grid.Cols, gridColXML{W: colWidth})
	}

	tbl.Rows = append(tbl.Rows, tableRow(t.Headers, colWidth, true))
	for _, row := range t.Rows {
		tbl.Rows = append(tbl.Rows, tableRow(row, colWidth, false))
	}
	return tbl
}

func tableRow(cells []string, width int, header bool) tableRowXML {
	row := tableRowXML{}
	if header {
		row.Props = &tableRowPropsXML{}
	}
	for _, text := range cells {
		row.Cells = append(row.Cells, tableCellXML{
			Props: tableCellPropsXML{Width: widthXML{W: width, Type: "dxa"}},
			Paragraphs: []paragraphXML{{
				Runs: []runXML{textRun(types.Run{Text: text, Bold: header}, false)},
			}},
		})
	}
	return row
}
