// Package scorm assembles SCORM 1.2 content packages: one launchable
// index.html described by a fixed imsmanifest.xml, plus extracted image
// assets, zipped together.
package scorm

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/edupack/scormconv/parser"
)

// ErrPackaging is returned when package assembly fails. No partial archive
// is ever returned alongside it.
var ErrPackaging = errors.New("scorm: package assembly failed")

// Meta carries the manifest and page metadata of a package.
type Meta struct {
	// Identifier is the manifest identifier attribute.
	Identifier string
	// Title is the organization title shown by the LMS.
	Title string
	// ItemTitle is the single launchable item's title.
	ItemTitle string
	// PageTitle is the <title> of index.html.
	PageTitle string
}

// DefaultMeta returns the stock package metadata.
func DefaultMeta() Meta {
	return Meta{
		Identifier: "com.example.scorm",
		Title:      "LaTeX to SCORM Converter",
		ItemTitle:  "Main Page",
		PageTitle:  "Converted Document",
	}
}

// The manifest is deliberately minimal SCORM 1.2: one organization, one
// item, one webcontent resource. Image assets are not declared as
// resources; LMS players deliver them as plain package files.
const manifestTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<manifest identifier="%s" version="1.2">
  <organizations default="ORG-1">
    <organization identifier="ORG-1">
      <title>%s</title>
      <item identifier="ITEM-1" identifierref="RES-1">
        <title>%s</title>
      </item>
    </organization>
  </organizations>
  <resources>
    <resource identifier="RES-1" type="webcontent" href="index.html">
      <file href="index.html"/>
    </resource>
  </resources>
</manifest>
`

const indexTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>%s</title>
  </head>
  <body>
    %s
  </body>
</html>
`

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
)

// Build wraps converted HTML and its image mapping into a compressed SCORM
// 1.2 archive containing exactly index.html, imsmanifest.xml, and the
// assets stored byte-for-byte under their packaging names.
func Build(html string, images map[string]parser.Image, meta Meta) ([]byte, error) {
	manifest := fmt.Sprintf(manifestTemplate,
		xmlEscaper.Replace(meta.Identifier),
		xmlEscaper.Replace(meta.Title),
		xmlEscaper.Replace(meta.ItemTitle),
	)
	index := fmt.Sprintf(indexTemplate, xmlEscaper.Replace(meta.PageTitle), html)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	entries := []struct {
		name string
		data []byte
	}{
		{"index.html", []byte(index)},
		{"imsmanifest.xml", []byte(manifest)},
	}
	for _, name := range sortedNames(images) {
		entries = append(entries, struct {
			name string
			data []byte
		}{name, images[name].Data})
	}

	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			return nil, fmt.Errorf("%w: creating %s: %v", ErrPackaging, e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			return nil, fmt.Errorf("%w: writing %s: %v", ErrPackaging, e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing archive: %v", ErrPackaging, err)
	}
	return buf.Bytes(), nil
}

func sortedNames(images map[string]parser.Image) []string {
	names := make([]string, 0, len(images))
	for name := range images {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
