package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

// DOCXParser converts a DOCX container: paragraph text in document order
// joined by line breaks, then an "Embedded Images" section referencing every
// member found under word/media/, named docx_image_<n> in archive listing
// order.
type DOCXParser struct{}

func (p *DOCXParser) SupportedFormats() []string { return []string{"docx"} }

func (p *DOCXParser) Parse(ctx context.Context, data []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening DOCX: %v", ErrCorruptDocument, err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, fmt.Errorf("%w: word/document.xml not found in DOCX", ErrCorruptDocument)
	}

	docXML, err := readZipMember(docFile)
	if err != nil {
		return nil, fmt.Errorf("reading document.xml: %w", err)
	}

	paras, err := parseDocxParagraphs(docXML)
	if err != nil {
		return nil, fmt.Errorf("parsing DOCX XML: %w", err)
	}

	var b strings.Builder
	for i, text := range paras {
		if i > 0 {
			b.WriteString("<br>")
		}
		b.WriteString(canonicalizeBreaks(escapeText(text)))
	}

	// The media scan is independent of the document body: every member under
	// word/media/ is extracted in listing order, referenced or not.
	images := make(map[string]Image)
	var names []string
	n := 0
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasPrefix(f.Name, "word/media/") {
			continue
		}
		imgData, err := readZipMember(f)
		if err != nil {
			return nil, fmt.Errorf("reading media member %s: %w", f.Name, err)
		}
		n++
		ext := strings.TrimPrefix(strings.ToLower(path.Ext(f.Name)), ".")
		if ext == "" {
			ext = "bin"
		}
		name := fmt.Sprintf("docx_image_%d.%s", n, ext)
		images[name] = Image{Name: name, Data: imgData, Format: ext}
		names = append(names, name)
	}

	if len(names) > 0 {
		b.WriteString("<br><br><b>Embedded Images:</b><br>")
		for _, name := range names {
			b.WriteString(fmt.Sprintf(`<img src="%s"><br>`, name))
		}
	}

	return &Result{HTML: wrapHTML(b.String()), Images: images}, nil
}

// DOCX XML structures (simplified)
type docxDocument struct {
	XMLName xml.Name `xml:"document"`
	Body    docxBody `xml:"body"`
}

type docxBody struct {
	Paras []docxPara `xml:"p"`
}

type docxPara struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

// parseDocxParagraphs returns the non-empty paragraph texts of a DOCX body
// in document order.
func parseDocxParagraphs(data []byte) ([]string, error) {
	var doc docxDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	var paras []string
	for _, para := range doc.Body.Paras {
		var b strings.Builder
		for _, run := range para.Runs {
			for _, t := range run.Text {
				b.WriteString(t.Content)
			}
		}
		text := strings.TrimSpace(b.String())
		if text == "" {
			continue
		}
		paras = append(paras, text)
	}
	return paras, nil
}
