// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/opsdocs/internal/container"
	"github.com/pdiddy/opsdocs/pkg/types"
)

// fakeConverter implements Converter for testing. It writes a stub PDF or
// returns an error, depending on configuration.
type fakeConverter struct {
	err   error
	calls int
}

func (f *fakeConverter) Convert(_ context.Context, docxPath string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	out := PDFPath(docxPath)
	if err := os.WriteFile(out, []byte("%PDF-1.7"), 0o644); err != nil {
		return "", err
	}
	return out, nil
}

// setupDocx creates a temporary .docx file and returns its path.
func setupDocx(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("fake docx"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPDFPath(t *testing.T) {
	if got := PDFPath("/out/Redis_8.x_Installation_Guide.docx"); got != "/out/Redis_8.x_Installation_Guide.pdf" {
		t.Errorf("PDFPath = %q", got)
	}
}

func TestConvertFile(t *testing.T) {
	tests := []struct {
		name       string
		converter  *fakeConverter
		preCreate  bool // create an up-to-date PDF before running
		force      bool
		wantStatus types.ExportStatus
		wantLog    string
		wantCalls  int
	}{
		{
			name:       "successful export",
			converter:  &fakeConverter{},
			wantStatus: types.ExportDone,
			wantLog:    "exported:",
			wantCalls:  1,
		},
		{
			name:       "skip up-to-date PDF",
			converter:  &fakeConverter{},
			preCreate:  true,
			wantStatus: types.ExportSkipped,
			wantLog:    "skipped:",
		},
		{
			name:       "force overrides up-to-date PDF",
			converter:  &fakeConverter{},
			preCreate:  true,
			force:      true,
			wantStatus: types.ExportDone,
			wantLog:    "exported:",
			wantCalls:  1,
		},
		{
			name:       "conversion failure",
			converter:  &fakeConverter{err: errors.New("container crashed")},
			wantStatus: types.ExportFailed,
			wantLog:    "failed:",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docx := setupDocx(t, "guide.docx")
			if tt.preCreate {
				pdf := PDFPath(docx)
				if err := os.WriteFile(pdf, []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
				later := time.Now().Add(time.Hour)
				if err := os.Chtimes(pdf, later, later); err != nil {
					t.Fatal(err)
				}
			}

			var log bytes.Buffer
			status := ConvertFile(context.Background(), tt.converter, docx, tt.force, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}
			if tt.converter.calls != tt.wantCalls {
				t.Errorf("converter called %d times, want %d", tt.converter.calls, tt.wantCalls)
			}
		})
	}
}

func TestConvertFile_StalePDFReconverted(t *testing.T) {
	docx := setupDocx(t, "guide.docx")
	pdf := PDFPath(docx)
	if err := os.WriteFile(pdf, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	earlier := time.Now().Add(-time.Hour)
	if err := os.Chtimes(pdf, earlier, earlier); err != nil {
		t.Fatal(err)
	}

	conv := &fakeConverter{}
	var log bytes.Buffer
	if status := ConvertFile(context.Background(), conv, docx, false, &log); status != types.ExportDone {
		t.Fatalf("status = %q, want %q", status, types.ExportDone)
	}
}

func TestConvertFile_MissingSource(t *testing.T) {
	conv := &fakeConverter{}
	var log bytes.Buffer
	status := ConvertFile(context.Background(), conv, filepath.Join(t.TempDir(), "missing.docx"), false, &log)
	if status != types.ExportFailed {
		t.Errorf("status = %q, want %q", status, types.ExportFailed)
	}
	if conv.calls != 0 {
		t.Errorf("converter should not run for a missing source")
	}
}

// selectiveConverter fails for paths containing failOn.
type selectiveConverter struct {
	failOn string
}

func (s *selectiveConverter) Convert(ctx context.Context, docxPath string) (string, error) {
	if strings.Contains(docxPath, s.failOn) {
		return "", errors.New("simulated failure")
	}
	return (&fakeConverter{}).Convert(ctx, docxPath)
}

func TestConvertPaths(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.docx", "b.docx", "c.docx"} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("docx"), 0o644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}

	// b already has an up-to-date PDF.
	later := time.Now().Add(time.Hour)
	if err := os.WriteFile(PDFPath(paths[1]), []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(PDFPath(paths[1]), later, later); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	result := ConvertPaths(context.Background(), &selectiveConverter{failOn: "c.docx"}, paths, false, &log)

	if result.Converted != 1 {
		t.Errorf("converted = %d, want 1", result.Converted)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if result.Total() != 3 {
		t.Errorf("total = %d, want 3", result.Total())
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if !strings.Contains(log.String(), "Export summary:") {
		t.Error("log should contain batch summary")
	}
}

func TestConvertPaths_Cancelled(t *testing.T) {
	docx := setupDocx(t, "guide.docx")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := &fakeConverter{}
	var log bytes.Buffer
	result := ConvertPaths(ctx, conv, []string{docx}, false, &log)
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if conv.calls != 0 {
		t.Error("converter should not run after cancellation")
	}
}

// fakeRuntime implements container.Runtime. Its Run writes the PDF the
// office suite would have produced into the mounted directory.
type fakeRuntime struct {
	imageErr error
	runErr   error
	noOutput bool
	got      container.RunSpec
}

func (f *fakeRuntime) Name() string                             { return "docker" }
func (f *fakeRuntime) Available(context.Context) bool           { return true }
func (f *fakeRuntime) ImageExists(context.Context, string) error { return f.imageErr }

func (f *fakeRuntime) Run(_ context.Context, spec container.RunSpec) error {
	f.got = spec
	if f.runErr != nil {
		return f.runErr
	}
	if f.noOutput {
		return nil
	}
	src := filepath.Base(spec.Args[len(spec.Args)-1])
	out := filepath.Join(spec.Mounts[0].Source, strings.TrimSuffix(src, ".docx")+".pdf")
	return os.WriteFile(out, []byte("%PDF-1.7"), 0o644)
}

func TestNewOfficeConverter_MissingImage(t *testing.T) {
	rt := &fakeRuntime{imageErr: errors.New("no such image")}
	_, err := NewOfficeConverter(context.Background(), rt, "office:latest")
	if err == nil {
		t.Fatal("expected error for missing image")
	}
	if !strings.Contains(err.Error(), "office:latest") {
		t.Errorf("error should mention image, got: %v", err)
	}
}

func TestOfficeConverter_Convert(t *testing.T) {
	docx := setupDocx(t, "Redis_Guide.docx")
	rt := &fakeRuntime{}
	conv, err := NewOfficeConverter(context.Background(), rt, "office:latest")
	if err != nil {
		t.Fatal(err)
	}

	pdf, err := conv.Convert(context.Background(), docx)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if pdf != PDFPath(docx) {
		t.Errorf("pdf = %q, want %q", pdf, PDFPath(docx))
	}

	if rt.got.Image != "office:latest" || rt.got.Entrypoint != "soffice" {
		t.Errorf("unexpected spec: %+v", rt.got)
	}
	if rt.got.Workdir != "/work" || len(rt.got.Mounts) != 1 || rt.got.Mounts[0].Target != "/work" {
		t.Errorf("unexpected mounts: %+v", rt.got.Mounts)
	}
	if rt.got.Mounts[0].Source != filepath.Dir(docx) {
		t.Errorf("mount source = %q, want %q", rt.got.Mounts[0].Source, filepath.Dir(docx))
	}
	args := strings.Join(rt.got.Args, " ")
	if args != "--headless --convert-to pdf --outdir /work /work/Redis_Guide.docx" {
		t.Errorf("args = %q", args)
	}
}

func TestOfficeConverter_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rt      *fakeRuntime
		wantErr string
	}{
		{name: "run failure", rt: &fakeRuntime{runErr: errors.New("exit 77")}, wantErr: "exit 77"},
		{name: "no output", rt: &fakeRuntime{noOutput: true}, wantErr: "produced no PDF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docx := setupDocx(t, "guide.docx")
			conv, err := NewOfficeConverter(context.Background(), tt.rt, "office:latest")
			if err != nil {
				t.Fatal(err)
			}
			_, err = conv.Convert(context.Background(), docx)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should contain %q, got: %v", tt.wantErr, err)
			}
		})
	}
}
