// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/opsdocs/internal/catalog"
	"github.com/pdiddy/opsdocs/internal/convert"
	"github.com/pdiddy/opsdocs/internal/guide"
	"github.com/pdiddy/opsdocs/pkg/types"
)

func testGenerator(t *testing.T) (*generator, *bytes.Buffer) {
	t.Helper()
	cfg := types.DefaultConfig()
	cfg.Generate.OutputDir = filepath.Join(t.TempDir(), "out")
	var out bytes.Buffer
	return &generator{cfg: cfg, out: &out, log: slog.New(slog.DiscardHandler)}, &out
}

func builtinGuides(t *testing.T, names ...string) []*guide.Guide {
	t.Helper()
	all, err := guide.Builtin()
	require.NoError(t, err)
	selected, err := selectGuides(all, names, len(names) == 0)
	require.NoError(t, err)
	return selected
}

func TestSelectGuides(t *testing.T) {
	all, err := guide.Builtin()
	require.NoError(t, err)

	got, err := selectGuides(all, nil, true)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = selectGuides(all, []string{"rabbitmq", "redis"}, false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "rabbitmq", got[0].Name)
	assert.Equal(t, "redis", got[1].Name)

	_, err = selectGuides(all, nil, false)
	assert.Error(t, err)

	_, err = selectGuides(all, []string{"redis"}, true)
	assert.Error(t, err)

	_, err = selectGuides(all, []string{"mongodb"}, false)
	assert.ErrorIs(t, err, guide.ErrNotFound)
}

func TestGenerator_WritesAndRecords(t *testing.T) {
	g, out := testGenerator(t)
	ctx := context.Background()

	require.NoError(t, g.run(ctx, builtinGuides(t, "redis")))

	path := filepath.Join(g.cfg.Generate.OutputDir, "Redis_8.x_RHEL8_Installation_Guide.docx")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.Equal(t, "Redis documentation created successfully!\n", out.String())

	store, err := catalog.Open(catalogPath(g.cfg))
	require.NoError(t, err)
	defer store.Close()

	run, err := store.Latest(ctx, "redis")
	require.NoError(t, err)
	assert.Equal(t, path, run.OutputPath)
	assert.Equal(t, "Redis 8.x", run.Title)
	assert.Positive(t, run.Blocks)
	assert.Positive(t, run.Tables)
	assert.Equal(t, types.ExportNone, run.Export)

	sum, err := catalog.FileSHA256(path)
	require.NoError(t, err)
	assert.Equal(t, sum, run.SHA256)
}

func TestGenerator_AllGuidesInOrder(t *testing.T) {
	g, out := testGenerator(t)
	require.NoError(t, g.run(context.Background(), builtinGuides(t)))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"RabbitMQ documentation created successfully!",
		"RabbitMQ failover scenarios documentation created successfully!",
		"Redis documentation created successfully!",
	}, lines)

	store, err := catalog.Open(catalogPath(g.cfg))
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.List(context.Background(), catalog.ListOptions{})
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.NotEmpty(t, runs[0].Batch)
	for _, r := range runs {
		assert.Equal(t, runs[0].Batch, r.Batch, "one invocation shares a batch")
	}
}

func TestGenerator_RepeatableOutput(t *testing.T) {
	g, _ := testGenerator(t)
	g.cfg.Catalog.Disabled = true
	guides := builtinGuides(t, "rabbitmq-failover")
	path := filepath.Join(g.cfg.Generate.OutputDir, guides[0].Output)

	require.NoError(t, g.run(context.Background(), guides))
	first, err := catalog.FileSHA256(path)
	require.NoError(t, err)

	require.NoError(t, g.run(context.Background(), guides))
	second, err := catalog.FileSHA256(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	_, err = os.Stat(catalogPath(g.cfg))
	assert.True(t, os.IsNotExist(err), "catalog should not be created when disabled")
}

// stubConverter writes a placeholder PDF or fails.
type stubConverter struct {
	err error
}

func (s *stubConverter) Convert(_ context.Context, docxPath string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	out := convert.PDFPath(docxPath)
	return out, os.WriteFile(out, []byte("%PDF-1.7"), 0o644)
}

func TestGenerator_PDFExport(t *testing.T) {
	tests := []struct {
		name       string
		conv       *stubConverter
		wantStatus types.ExportStatus
		wantErr    bool
	}{
		{name: "exported", conv: &stubConverter{}, wantStatus: types.ExportDone},
		{name: "export failure", conv: &stubConverter{err: errors.New("soffice crashed")}, wantStatus: types.ExportFailed, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, out := testGenerator(t)
			g.conv = tt.conv
			ctx := context.Background()

			err := g.run(ctx, builtinGuides(t, "redis"))
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, out.String(), "Redis documentation created successfully!")

			store, err := catalog.Open(catalogPath(g.cfg))
			require.NoError(t, err)
			defer store.Close()
			run, err := store.Latest(ctx, "redis")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, run.Export)
		})
	}
}

func TestFormatHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatHistory(&buf, nil, false))
	assert.Equal(t, "No runs recorded.\n", buf.String())

	buf.Reset()
	runs := []types.GenerationRun{{ID: 7, Guide: "redis", Blocks: 120, Tables: 4, Export: types.ExportNone, SHA256: "0123456789abcdef"}}
	require.NoError(t, formatHistory(&buf, runs, false))
	assert.Contains(t, buf.String(), "redis")
	assert.Contains(t, buf.String(), "0123456789ab")
	assert.NotContains(t, buf.String(), "0123456789abc")
	assert.Contains(t, buf.String(), "1 runs")

	buf.Reset()
	require.NoError(t, formatHistory(&buf, runs, true))
	assert.Contains(t, buf.String(), `"guide": "redis"`)
}
