// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/pdiddy/opsdocs/internal/container"
)

const (
	officeEntrypoint = "soffice"
	workDir          = "/work"
)

// OfficeConverter converts documents by running a headless office suite
// in a container. The source directory is bind-mounted so the PDF lands
// next to the .docx.
type OfficeConverter struct {
	runtime container.Runtime
	image   string
}

// NewOfficeConverter creates a converter that uses the given container
// runtime to run image. It verifies that the image exists locally before
// returning.
func NewOfficeConverter(ctx context.Context, rt container.Runtime, image string) (*OfficeConverter, error) {
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("office image not available in %s (pull %s first): %w", rt.Name(), image, err)
	}
	return &OfficeConverter{runtime: rt, image: image}, nil
}

// Convert runs the office suite against docxPath and returns the PDF path.
func (o *OfficeConverter) Convert(ctx context.Context, docxPath string) (string, error) {
	abs, err := filepath.Abs(docxPath)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", docxPath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("opening %s: %w", docxPath, err)
	}

	var output bytes.Buffer
	spec := container.RunSpec{
		Image:      o.image,
		Entrypoint: officeEntrypoint,
		Args: []string{
			"--headless",
			"--convert-to", "pdf",
			"--outdir", workDir,
			workDir + "/" + filepath.Base(abs),
		},
		Mounts:  []container.Mount{{Source: filepath.Dir(abs), Target: workDir}},
		Workdir: workDir,
		User:    hostUser(),
		Stdout:  &output,
		Stderr:  &output,
	}
	if err := o.runtime.Run(ctx, spec); err != nil {
		return "", fmt.Errorf("converting %s: %w (%s)", filepath.Base(abs), err, bytes.TrimSpace(output.Bytes()))
	}

	pdf := PDFPath(abs)
	if info, err := os.Stat(pdf); err != nil || info.Size() == 0 {
		return "", fmt.Errorf("office suite produced no PDF for %s", filepath.Base(abs))
	}
	return pdf, nil
}

// hostUser returns "uid:gid" on Unix so the container writes files the
// caller owns.
func hostUser() string {
	if runtime.GOOS == "windows" {
		return ""
	}
	return strconv.Itoa(os.Getuid()) + ":" + strconv.Itoa(os.Getgid())
}
