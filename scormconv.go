// Package scormconv converts uploaded documents — LaTeX project archives,
// standalone LaTeX files, PDFs, and DOCX files — into normalized HTML with
// extracted images, bundled as SCORM 1.2 content packages.
package scormconv

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/edupack/scormconv/parser"
	"github.com/edupack/scormconv/scorm"
)

// Converter is the main entry point. One conversion is synchronous and
// self-contained: all parser state lives inside the call, so a single
// Converter is safe for concurrent use.
type Converter interface {
	// Convert parses the document and bundles the result into a SCORM 1.2
	// package. The format is inferred from the filename extension alone.
	Convert(ctx context.Context, data []byte, filename string) (*Result, error)
}

// Result is the outcome of one conversion.
type Result struct {
	// Archive is the complete SCORM package (zip bytes).
	Archive []byte
	// HTML is the converted content as embedded in index.html.
	HTML string
	// Images lists the packaging names of the bundled assets, sorted.
	Images []string
}

// New creates a Converter with the built-in parsers registered.
func New(cfg Config) Converter {
	return &converter{
		cfg:     cfg,
		parsers: parser.NewRegistry(),
	}
}

type converter struct {
	cfg     Config
	parsers *parser.Registry
}

func (c *converter) Convert(ctx context.Context, data []byte, filename string) (*Result, error) {
	// Determine format
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	p, err := c.parsers.Get(ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	parsed, err := p.Parse(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	archive, err := scorm.Build(parsed.HTML, parsed.Images, scorm.Meta{
		Identifier: c.cfg.ManifestID,
		Title:      c.cfg.PackageTitle,
		ItemTitle:  c.cfg.ItemTitle,
		PageTitle:  c.cfg.PageTitle,
	})
	if err != nil {
		return nil, fmt.Errorf("packaging %s: %w", filename, err)
	}

	names := make([]string, 0, len(parsed.Images))
	for name := range parsed.Images {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Result{
		Archive: archive,
		HTML:    parsed.HTML,
		Images:  names,
	}, nil
}
