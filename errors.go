package scormconv

import (
	"errors"

	"github.com/edupack/scormconv/parser"
	"github.com/edupack/scormconv/scorm"
)

var (
	// ErrUnsupportedFormat is returned for unrecognized file extensions.
	ErrUnsupportedFormat = errors.New("scormconv: unsupported document format")

	// ErrMissingSource is returned when a LaTeX archive contains no .tex member.
	ErrMissingSource = parser.ErrMissingSource

	// ErrCorruptDocument is returned when a PDF, DOCX, or zip cannot be opened.
	ErrCorruptDocument = parser.ErrCorruptDocument

	// ErrPackaging is returned when SCORM archive assembly fails.
	ErrPackaging = scorm.ErrPackaging
)
