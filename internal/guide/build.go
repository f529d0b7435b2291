// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package guide

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/pdiddy/opsdocs/internal/assemble"
	"github.com/pdiddy/opsdocs/pkg/types"
)

// Callout markers recognised at the start of a block quote.
const (
	warningMarker = "WARNING:"
	noteMarker    = "NOTE:"
)

// Title page heading levels.
const (
	titleLevel    = 0
	subtitleLevel = 2
	platformLevel = 3
)

// Options controls how a guide is built.
type Options struct {
	Theme     types.Theme
	RowPolicy types.RowPolicy
	Logger    *slog.Logger
}

// Build assembles the document for g. Building the same guide twice yields
// identical documents. Under types.RowReject a malformed table aborts the
// build with an error wrapping assemble.ErrRowLength.
func Build(g *Guide, opts Options) (*types.Document, error) {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	doc := assemble.New(opts.Theme, opts.RowPolicy)
	doc.Title = g.Title
	doc.Subtitle = g.Subtitle
	doc.Platform = g.Platform
	doc.Output = g.Output

	assemble.AddTitle(doc, g.Title, titleLevel)
	if g.Subtitle != "" {
		assemble.AddTitle(doc, g.Subtitle, subtitleLevel)
	}
	if g.Platform != "" {
		assemble.AddTitle(doc, g.Platform, platformLevel)
	}
	assemble.AddPageBreak(doc)

	ctx := parser.NewContext()
	root := newMarkdown().Parser().Parse(text.NewReader(g.src), parser.WithContext(ctx))

	b := &builder{doc: doc, src: g.src, log: log.With("guide", g.Name)}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if err := b.block(n); err != nil {
			return nil, fmt.Errorf("building %s: %w", g.Name, err)
		}
	}

	for _, w := range doc.Warnings {
		b.log.Warn("table adjusted", "detail", w)
	}
	b.log.Debug("guide built", "blocks", len(doc.Blocks), "tables", doc.CountKind(types.KindTable))
	return doc, nil
}

type builder struct {
	doc *types.Document
	src []byte
	log *slog.Logger
}

func (b *builder) block(n ast.Node) error {
	switch n := n.(type) {
	case *ast.Heading:
		assemble.AddHeading(b.doc, plainText(inlineRuns(n, b.src)), n.Level)
	case *ast.Paragraph, *ast.TextBlock:
		b.paragraph(inlineRuns(n, b.src))
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		assemble.AddCodeBlock(b.doc, codeText(n, b.src))
	case *extast.Table:
		return b.table(n)
	case *ast.List:
		b.list(n, 0)
	case *ast.Blockquote:
		b.callout(n)
	case *ast.ThematicBreak:
		assemble.AddPageBreak(b.doc)
	case *ast.HTMLBlock:
		if isBreakTag(codeText(n, b.src)) {
			assemble.AddBlank(b.doc)
		} else {
			b.log.Debug("skipping html block", "html", strings.TrimSpace(codeText(n, b.src)))
		}
	default:
		b.log.Debug("skipping block", "kind", n.Kind().String())
	}
	return nil
}

// paragraph adds a single-run paragraph when the whole paragraph shares one
// style and a split-run paragraph otherwise.
func (b *builder) paragraph(runs []types.Run) {
	switch len(runs) {
	case 0:
		assemble.AddBlank(b.doc)
	case 1:
		assemble.AddParagraph(b.doc, runs[0].Text, runs[0].Bold, runs[0].Italic)
	default:
		assemble.AddRuns(b.doc, runs...)
	}
}

func (b *builder) table(t *extast.Table) error {
	var headers []string
	var rows [][]string
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, plainText(inlineRuns(c, b.src)))
		}
		if _, ok := r.(*extast.TableHeader); ok {
			headers = cells
			continue
		}
		rows = append(rows, cells)
	}
	if _, err := assemble.AddTableWithHeader(b.doc, headers, rows); err != nil {
		return fmt.Errorf("table %d (%s): %w", b.doc.CountKind(types.KindTable)+1, strings.Join(headers, ", "), err)
	}
	return nil
}

// list adds one paragraph per item. Nested lists are indented one level
// deeper than their parent.
func (b *builder) list(l *ast.List, depth int) {
	num := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.List:
				b.list(c, depth+1)
			case *ast.Paragraph, *ast.TextBlock:
				runs := inlineRuns(c, b.src)
				if l.IsOrdered() {
					prefix := types.Run{Text: strings.Repeat("\t", depth) + strconv.Itoa(num) + string(l.Marker) + " "}
					assemble.AddRuns(b.doc, append([]types.Run{prefix}, runs...)...)
				} else {
					assemble.AddNestedBullet(b.doc, depth, runs...)
				}
			default:
				if err := b.block(c); err != nil {
					b.log.Debug("skipping list content", "error", err)
				}
			}
		}
		num++
	}
}

// callout turns "> WARNING: ..." and "> NOTE: ..." quotes into callouts.
// Other quotes become italic paragraphs.
func (b *builder) callout(q *ast.Blockquote) {
	for c := q.FirstChild(); c != nil; c = c.NextSibling() {
		runs := inlineRuns(c, b.src)
		txt := plainText(runs)
		switch {
		case strings.HasPrefix(txt, warningMarker):
			assemble.AddWarning(b.doc, strings.TrimSpace(strings.TrimPrefix(txt, warningMarker)))
		case strings.HasPrefix(txt, noteMarker):
			assemble.AddNote(b.doc, strings.TrimSpace(strings.TrimPrefix(txt, noteMarker)))
		case txt != "":
			for i := range runs {
				runs[i].Italic = true
			}
			b.paragraph(runs)
		}
	}
}

type emphasis struct {
	bold, italic bool
}

// inlineRuns flattens the inline children of n into styled runs. Adjacent
// text with the same emphasis is merged into one run.
func inlineRuns(n ast.Node, src []byte) []types.Run {
	var runs []types.Run
	collectRuns(n, src, emphasis{}, &runs)
	return runs
}

func collectRuns(parent ast.Node, src []byte, em emphasis, runs *[]types.Run) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Text:
			s := resolveText(util.UnescapePunctuations(n.Segment.Value(src)))
			switch {
			case n.HardLineBreak():
				s += "\n"
			case n.SoftLineBreak():
				s += " "
			}
			appendRun(runs, s, em)
		case *ast.String:
			if n.IsCode() {
				appendRun(runs, string(n.Value), em)
			} else {
				appendRun(runs, resolveText(n.Value), em)
			}
		case *ast.CodeSpan:
			var sb strings.Builder
			for t := n.FirstChild(); t != nil; t = t.NextSibling() {
				if seg, ok := t.(*ast.Text); ok {
					sb.Write(seg.Segment.Value(src))
				}
			}
			appendRun(runs, sb.String(), em)
		case *ast.Emphasis:
			inner := em
			if n.Level >= 2 {
				inner.bold = true
			} else {
				inner.italic = true
			}
			collectRuns(n, src, inner, runs)
		case *ast.AutoLink:
			appendRun(runs, string(n.URL(src)), em)
		case *ast.RawHTML:
			var sb strings.Builder
			for i := 0; i < n.Segments.Len(); i++ {
				seg := n.Segments.At(i)
				sb.Write(seg.Value(src))
			}
			// Anything other than a line break is kept as literal text, so
			// placeholders like <host> survive.
			if isBreakTag(sb.String()) {
				appendRun(runs, "\n", em)
			} else {
				appendRun(runs, sb.String(), em)
			}
		default:
			collectRuns(n, src, em, runs)
		}
	}
}

// resolveText decodes named and numeric character references.
func resolveText(b []byte) string {
	return string(util.ResolveNumericReferences(util.ResolveEntityNames(b)))
}

func appendRun(runs *[]types.Run, s string, em emphasis) {
	if s == "" {
		return
	}
	if k := len(*runs); k > 0 {
		last := &(*runs)[k-1]
		if last.Bold == em.bold && last.Italic == em.italic {
			last.Text += s
			return
		}
	}
	*runs = append(*runs, types.Run{Text: s, Bold: em.bold, Italic: em.italic})
}

func plainText(runs []types.Run) string {
	var sb strings.Builder
	for _, r := range runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// codeText returns the raw lines of a block without the final newline.
func codeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func isBreakTag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "<br>", "<br/>", "<br />":
		return true
	}
	return false
}
