// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package guide

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/opsdocs/pkg/types"
)

func buildSource(t *testing.T, body string, policy types.RowPolicy) (*types.Document, error) {
	t.Helper()
	src := "---\ntitle: \"Test 1.x\"\nsubtitle: \"Guide\"\nplatform: \"RHEL 8\"\n---\n\n" + body
	g, err := Parse("test", "test", []byte(src))
	require.NoError(t, err)
	return Build(g, Options{RowPolicy: policy})
}

func mustBuild(t *testing.T, body string) *types.Document {
	t.Helper()
	doc, err := buildSource(t, body, types.RowPad)
	require.NoError(t, err)
	return doc
}

// content skips the title page: three title headings and a page break.
func content(doc *types.Document) []types.Block {
	return doc.Blocks[4:]
}

func TestBuild_TitlePage(t *testing.T) {
	doc := mustBuild(t, "")
	require.Len(t, doc.Blocks, 4)

	assert.Equal(t, "Test 1.x", doc.Blocks[0].Text)
	assert.Equal(t, 0, doc.Blocks[0].Level)
	assert.Equal(t, types.AlignCenter, doc.Blocks[0].Align)
	assert.Equal(t, "Guide", doc.Blocks[1].Text)
	assert.Equal(t, 2, doc.Blocks[1].Level)
	assert.Equal(t, "RHEL 8", doc.Blocks[2].Text)
	assert.Equal(t, 3, doc.Blocks[2].Level)
	assert.Equal(t, types.KindPageBreak, doc.Blocks[3].Kind)

	assert.Equal(t, "Test 1.x", doc.Title)
	assert.Equal(t, "test.docx", doc.Output)
}

func TestBuild_HeadingAndEscapes(t *testing.T) {
	doc := mustBuild(t, "# 1\\. Introduction\n\n## Sub \\*section\\*\n")
	blocks := content(doc)
	require.Len(t, blocks, 2)
	assert.Equal(t, "1. Introduction", blocks[0].Text)
	assert.Equal(t, 1, blocks[0].Level)
	assert.Equal(t, "Sub *section*", blocks[1].Text)
	assert.Equal(t, 2, blocks[1].Level)
}

func TestBuild_Paragraphs(t *testing.T) {
	doc := mustBuild(t, "**Purpose:**\n\n*Expected Output:*\n\nfirst line\\\nsecond line\n\nsoft\nwrap\n")
	blocks := content(doc)
	require.Len(t, blocks, 4)

	require.Len(t, blocks[0].Runs, 1)
	assert.Equal(t, "Purpose:", blocks[0].Runs[0].Text)
	assert.True(t, blocks[0].Runs[0].Bold)

	require.Len(t, blocks[1].Runs, 1)
	assert.Equal(t, "Expected Output:", blocks[1].Runs[0].Text)
	assert.True(t, blocks[1].Runs[0].Italic)
	assert.False(t, blocks[1].Runs[0].Bold)

	assert.Equal(t, "first line\nsecond line", blocks[2].PlainText())
	assert.Equal(t, "soft wrap", blocks[3].PlainText())
}

func TestBuild_MixedRunsAndBullets(t *testing.T) {
	doc := mustBuild(t, "- **Persistence:** RDB and AOF\n- plain item\n\n**Note:** inline\n")
	blocks := content(doc)
	require.Len(t, blocks, 3)

	assert.Equal(t, types.StyleListBullet, blocks[0].Style)
	require.Len(t, blocks[0].Runs, 2)
	assert.Equal(t, "Persistence:", blocks[0].Runs[0].Text)
	assert.True(t, blocks[0].Runs[0].Bold)
	assert.Equal(t, " RDB and AOF", blocks[0].Runs[1].Text)
	assert.False(t, blocks[0].Runs[1].Bold)

	assert.Equal(t, types.StyleListBullet, blocks[1].Style)
	assert.Equal(t, "plain item", blocks[1].PlainText())

	assert.Equal(t, types.StyleNormal, blocks[2].Style)
	assert.Len(t, blocks[2].Runs, 2)
}

func TestBuild_NestedBulletsKeepDepth(t *testing.T) {
	doc := mustBuild(t, "- top\n  - child\n    - grandchild\n- next\n")
	blocks := content(doc)
	require.Len(t, blocks, 4)

	want := []struct {
		text  string
		level int
	}{{"top", 0}, {"child", 1}, {"grandchild", 2}, {"next", 0}}
	for i, w := range want {
		assert.Equal(t, types.StyleListBullet, blocks[i].Style)
		assert.Equal(t, w.text, blocks[i].PlainText())
		assert.Equal(t, w.level, blocks[i].Level, "level of %q", w.text)
	}
}

func TestBuild_NestedOrderedListIndents(t *testing.T) {
	doc := mustBuild(t, "1. Stop the service\n   1. Drain clients\n2. Upgrade\n")
	blocks := content(doc)
	require.Len(t, blocks, 3)
	assert.Equal(t, "1. Stop the service", blocks[0].PlainText())
	assert.Equal(t, "\t1. Drain clients", blocks[1].PlainText())
	assert.Equal(t, "2. Upgrade", blocks[2].PlainText())
}

func TestBuild_InlineHTMLAndEntities(t *testing.T) {
	doc := mustBuild(t, "Login with user <admin> and password &amp; token &lt;x&gt; &copy; &#169;\n\n| Key | Value |\n|---|---|\n| maxmemory | 2gb &amp; more |\n")
	blocks := content(doc)
	require.Len(t, blocks, 2)

	assert.Equal(t, "Login with user <admin> and password & token <x> © ©", blocks[0].PlainText())
	require.NotNil(t, blocks[1].Table)
	assert.Equal(t, [][]string{{"maxmemory", "2gb & more"}}, blocks[1].Table.Rows)
}

func TestBuild_CodeBlockVerbatim(t *testing.T) {
	body := "```shell\n# Check *memory* <usage> & \\n\nredis-cli INFO memory\n\n    indented\n```\n"
	doc := mustBuild(t, body)
	blocks := content(doc)
	require.Len(t, blocks, 1)
	assert.Equal(t, types.KindCode, blocks[0].Kind)
	assert.Equal(t, "# Check *memory* <usage> & \\n\nredis-cli INFO memory\n\n    indented", blocks[0].Text)
}

func TestBuild_Table(t *testing.T) {
	body := "| Issue | Cause | Solution |\n|---|---|---|\n| Service fails to start | Port \\| conflict | Check ports |\n"
	doc := mustBuild(t, body)
	blocks := content(doc)
	require.Len(t, blocks, 1)
	require.NotNil(t, blocks[0].Table)

	rows, cols := blocks[0].Table.Dimensions()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []string{"Issue", "Cause", "Solution"}, blocks[0].Table.Headers)
	assert.Equal(t, []string{"Service fails to start", "Port | conflict", "Check ports"}, blocks[0].Table.Rows[0])
}

func TestBuild_CalloutsBreaksAndBlanks(t *testing.T) {
	body := "> WARNING: Using force\\_boot may result in data loss.\n\n" +
		"> NOTE: Graceful shutdown is preferred.\n\n" +
		"> Just a quote.\n\n" +
		"---\n<br>\n\n" +
		"<!-- ignored comment -->\n"
	doc := mustBuild(t, body)
	blocks := content(doc)
	require.Len(t, blocks, 5)

	assert.Equal(t, "⚠️  WARNING: Using force_boot may result in data loss.", blocks[0].PlainText())
	assert.True(t, blocks[0].Runs[0].Bold)
	assert.Equal(t, "📝 NOTE: Graceful shutdown is preferred.", blocks[1].PlainText())
	assert.True(t, blocks[2].Runs[0].Italic)
	assert.Equal(t, types.KindPageBreak, blocks[3].Kind)
	assert.Equal(t, types.KindParagraph, blocks[4].Kind)
	assert.Empty(t, blocks[4].Runs)
}

func TestBuild_TableRowsNormalizedByParser(t *testing.T) {
	// GFM drops cells beyond the delimiter row and pads short rows, so
	// Markdown tables never trip the row policy.
	body := "| A | B |\n|---|---|\n| 1 | 2 | 3 |\n| 4 |\n"

	doc, err := buildSource(t, body, types.RowReject)
	require.NoError(t, err)
	blocks := content(doc)
	require.Len(t, blocks, 1)
	assert.Equal(t, [][]string{{"1", "2"}, {"4", ""}}, blocks[0].Table.Rows)
	assert.Empty(t, doc.Warnings)
}

func TestBuild_Idempotent(t *testing.T) {
	first, err := Redis()
	require.NoError(t, err)
	second, err := Redis()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuiltinGuides_Structure(t *testing.T) {
	tests := []struct {
		name       string
		build      func() (*types.Document, error)
		title      string
		headings   int
		tables     int
		codeBlocks int
		pageBreaks int
		warnings   int
		notes      int
	}{
		{name: "redis", build: Redis, title: "Redis 8.x", headings: 18, tables: 3, codeBlocks: 41, pageBreaks: 15},
		{name: "rabbitmq", build: RabbitMQ, title: "RabbitMQ 4.1.x", headings: 15, tables: 3, codeBlocks: 25, pageBreaks: 12},
		{name: "rabbitmq failover", build: RabbitMQFailover, title: "RabbitMQ Cluster Failover", headings: 26, tables: 8, codeBlocks: 98, pageBreaks: 23, warnings: 5, notes: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := tt.build()
			require.NoError(t, err)

			assert.Equal(t, tt.title, doc.Title)
			assert.Equal(t, tt.title, doc.Blocks[0].Text)
			assert.Equal(t, tt.headings, doc.CountKind(types.KindHeading))
			assert.Equal(t, tt.tables, doc.CountKind(types.KindTable))
			assert.Equal(t, tt.codeBlocks, doc.CountKind(types.KindCode))
			assert.Equal(t, tt.pageBreaks, doc.CountKind(types.KindPageBreak))
			assert.Empty(t, doc.Warnings)

			var warnings, notes int
			for _, b := range doc.Blocks {
				txt := b.PlainText()
				switch {
				case b.Kind == types.KindParagraph && strings.HasPrefix(txt, "⚠️  WARNING: "):
					warnings++
				case b.Kind == types.KindParagraph && strings.HasPrefix(txt, "📝 NOTE: "):
					notes++
				}
			}
			assert.Equal(t, tt.warnings, warnings)
			assert.Equal(t, tt.notes, notes)

			for _, b := range doc.Blocks {
				if b.Kind == types.KindTable {
					_, cols := b.Table.Dimensions()
					assert.Positive(t, cols)
				}
			}
		})
	}
}
