package parser

import (
	"context"
	"errors"
)

var (
	// ErrMissingSource is returned when a LaTeX archive contains no .tex member.
	ErrMissingSource = errors.New("parser: no .tex member in archive")

	// ErrCorruptDocument is returned when a document container cannot be opened.
	ErrCorruptDocument = errors.New("parser: document cannot be opened")
)

// Image is one embedded asset extracted from a document. Immutable after
// creation; Name is the packaging name, unique within one Result.
type Image struct {
	Name   string // packaging name, e.g. "diagram.png" or "pdf_image_2_1.jpg"
	Data   []byte
	Format string // extension-derived tag: "png", "jpg", "jpeg", "gif", ...
}

// Result is what a parser produces from a document.
//
// HTML references images by packaging name only: every <img src="X"> in it
// has X as a key in Images, or the surrounding text carries an inline
// not-found warning instead of a tag. The HTML never contains raw newlines;
// line breaks are always <br>.
type Result struct {
	HTML   string
	Images map[string]Image // packaging name -> asset
}

// Parser can parse a specific document format into HTML plus images.
// Parsers hold no state; all working data is local to one Parse call.
type Parser interface {
	Parse(ctx context.Context, data []byte) (*Result, error)
	SupportedFormats() []string
}
