// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package guide holds the operational guides and turns each one into a
// document by calling the assemble primitives in reading order.
//
// A guide is a Markdown file with YAML front matter naming the title page
// and the output filename. Three guides are built in; a guides directory
// can add more or replace a built-in guide by using the same file name.
package guide

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

//go:embed guides/*.md
var builtinFS embed.FS

// Built-in guide names.
const (
	NameRedis            = "redis"
	NameRabbitMQ         = "rabbitmq"
	NameRabbitMQFailover = "rabbitmq-failover"
)

// SourceBuiltin marks a guide that ships with the binary.
const SourceBuiltin = "builtin"

var (
	// ErrNotFound is returned when no guide has the requested name.
	ErrNotFound = errors.New("guide not found")

	// ErrMissingTitle is returned for a guide whose front matter has no title.
	ErrMissingTitle = errors.New("guide front matter has no title")
)

// Guide is a parsed guide file. The body is kept as source and parsed again
// on every build so builds never share state.
type Guide struct {
	Name     string `json:"name" yaml:"name"`
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
	Output   string `json:"output" yaml:"output"`
	Source   string `json:"source" yaml:"source"`

	src []byte
}

// DisplayName is the short name used in completion messages.
func (g *Guide) DisplayName() string {
	if g.Label != "" {
		return g.Label
	}
	return g.Title
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			meta.Meta,
			extension.Table,
		),
	)
}

// Parse reads the front matter of a guide file. name is the guide name,
// normally the file name without its extension.
func Parse(name, source string, src []byte) (*Guide, error) {
	md := newMarkdown()
	ctx := parser.NewContext()
	md.Parser().Parse(text.NewReader(src), parser.WithContext(ctx))

	fm, err := meta.TryGet(ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing front matter of %s: %w", name, err)
	}

	g := &Guide{
		Name:     name,
		Title:    metaString(fm, "title"),
		Subtitle: metaString(fm, "subtitle"),
		Platform: metaString(fm, "platform"),
		Label:    metaString(fm, "label"),
		Output:   metaString(fm, "output"),
		Source:   source,
		src:      src,
	}
	if g.Title == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingTitle)
	}
	if g.Output == "" {
		g.Output = name + ".docx"
	}
	if filepath.Base(g.Output) != g.Output {
		return nil, fmt.Errorf("%s: output %q must be a file name, not a path", name, g.Output)
	}
	return g, nil
}

func metaString(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

// Builtin returns the guides embedded in the binary, sorted by name.
func Builtin() ([]*Guide, error) {
	return loadFS(builtinFS, "guides", SourceBuiltin)
}

// Load returns the built-in guides merged with the guides found in dir. A
// file in dir replaces the built-in guide of the same name. An empty dir
// returns the built-in guides.
func Load(dir string) ([]*Guide, error) {
	guides, err := Builtin()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return guides, nil
	}

	extra, err := loadFS(os.DirFS(dir), ".", dir)
	if err != nil {
		return nil, fmt.Errorf("loading guides from %s: %w", dir, err)
	}

	byName := make(map[string]*Guide, len(guides)+len(extra))
	for _, g := range guides {
		byName[g.Name] = g
	}
	for _, g := range extra {
		byName[g.Name] = g
	}
	merged := make([]*Guide, 0, len(byName))
	for _, g := range byName {
		merged = append(merged, g)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Name < merged[j].Name })
	return merged, nil
}

func loadFS(fsys fs.FS, dir, source string) ([]*Guide, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var guides []*Guide
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		p := e.Name()
		if dir != "." {
			p = dir + "/" + e.Name()
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		src := source
		if source != SourceBuiltin {
			src = filepath.Join(source, e.Name())
		}
		g, err := Parse(strings.TrimSuffix(e.Name(), ".md"), src, data)
		if err != nil {
			return nil, err
		}
		guides = append(guides, g)
	}
	sort.Slice(guides, func(i, j int) bool { return guides[i].Name < guides[j].Name })
	return guides, nil
}

// Find returns the guide with the given name.
func Find(guides []*Guide, name string) (*Guide, error) {
	for _, g := range guides {
		if g.Name == name {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
}
