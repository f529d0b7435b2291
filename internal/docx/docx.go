// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx serializes an assembled document into a Word (.docx)
// package. The output is deterministic: the same document always yields
// the same bytes.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/opsdocs/pkg/types"
)

const applicationName = "opsdocs"

// Write encodes doc as a .docx package to w.
func Write(w io.Writer, doc *types.Document) error {
	if doc == nil {
		return fmt.Errorf("docx: nil document")
	}

	docXML, err := marshalPart(buildDocument(doc))
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	coreXML, err := marshalPart(coreProps(doc))
	if err != nil {
		return fmt.Errorf("encoding core properties: %w", err)
	}
	appXML, err := marshalPart(appPropsXML{
		XMLNS:       "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties",
		Application: applicationName,
	})
	if err != nil {
		return fmt.Errorf("encoding app properties: %w", err)
	}

	parts := []struct {
		name string
		data []byte
	}{
		{partContentTypes, []byte(contentTypesXML)},
		{partRootRels, []byte(rootRelsXML)},
		{partCore, coreXML},
		{partApp, appXML},
		{partDocument, docXML},
		{partStyles, []byte(stylesXML(doc.Theme))},
		{partNumbering, []byte(numberingXML)},
		{partDocumentRels, []byte(documentRelsXML)},
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		// No modification time is set so the archive bytes are stable.
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

// WriteFile writes doc to path. The package is written to a temporary file
// in the same directory and renamed into place, so a failed write never
// leaves a truncated document behind. Parent directories are created.
func WriteFile(path string, doc *types.Document) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".opsdocs-*.docx")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := Write(tmp, doc); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func coreProps(doc *types.Document) corePropsXML {
	subject := doc.Subtitle
	if doc.Platform != "" {
		if subject != "" {
			subject += " - "
		}
		subject += doc.Platform
	}
	return corePropsXML{
		XMLNSCP:  "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		XMLNSDC:  "http://purl.org/dc/elements/1.1/",
		XMLNSDCT: "http://purl.org/dc/terms/",
		XMLNSXSI: "http://www.w3.org/2001/XMLSchema-instance",
		Title:    doc.Title,
		Subject:  subject,
		Creator:  applicationName,
	}
}

func marshalPart(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xmlHeader)
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// xmlAttr escapes s for use inside a double-quoted attribute.
func xmlAttr(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return ""
	}
	return b.String()
}
