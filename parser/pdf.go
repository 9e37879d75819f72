package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PDFParser converts a PDF page by page: a heading marker per page, the
// page's text in native reading order, then one inline reference per raster
// image found on that page. Assets are named pdf_image_<page>_<counter> with
// the counter restarting at 1 on each page; the page component keeps names
// globally unique.
type PDFParser struct{}

func (p *PDFParser) SupportedFormats() []string { return []string{"pdf"} }

func (p *PDFParser) Parse(ctx context.Context, data []byte) (*Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening PDF: %v", ErrCorruptDocument, err)
	}

	// Second handle for image extraction. Both readers work on the request's
	// own copy of the bytes; nothing is shared across conversions.
	conf := model.NewDefaultConfiguration()
	pctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: opening PDF: %v", ErrCorruptDocument, err)
	}

	var b strings.Builder
	images := make(map[string]Image)

	totalPages := reader.NumPage()
	for pageNr := 1; pageNr <= totalPages; pageNr++ {
		page := reader.Page(pageNr)

		var text string
		if !page.V.IsNull() {
			text, err = page.GetPlainText(nil)
			if err != nil {
				// No partial output: one failing page aborts the parse.
				return nil, fmt.Errorf("extracting text from page %d: %w", pageNr, err)
			}
		}

		if b.Len() > 0 {
			b.WriteString("<br>")
		}
		b.WriteString(fmt.Sprintf("<b>Page %d</b><br>", pageNr))
		b.WriteString(canonicalizeBreaks(escapeText(strings.TrimSpace(text))))
		b.WriteString("<br>")

		pageImages, err := extractPageImages(pctx, pageNr)
		if err != nil {
			return nil, fmt.Errorf("extracting images from page %d: %w", pageNr, err)
		}
		for counter, img := range pageImages {
			name := fmt.Sprintf("pdf_image_%d_%d.%s", pageNr, counter+1, img.Format)
			img.Name = name
			images[name] = img
			b.WriteString(fmt.Sprintf(`<img src="%s"><br>`, name))
		}
	}

	return &Result{HTML: wrapHTML(b.String()), Images: images}, nil
}

// extractPageImages pulls the raster images of one page in the page's
// native enumeration order (ascending object number). Names are assigned by
// the caller.
func extractPageImages(pctx *model.Context, pageNr int) ([]Image, error) {
	if len(pdfcpu.ImageObjNrs(pctx, pageNr)) == 0 {
		return nil, nil
	}

	extracted, err := pdfcpu.ExtractPageImages(pctx, pageNr, false)
	if err != nil {
		return nil, err
	}

	objNrs := make([]int, 0, len(extracted))
	for objNr := range extracted {
		objNrs = append(objNrs, objNr)
	}
	sort.Ints(objNrs)

	imgs := make([]Image, 0, len(extracted))
	for _, objNr := range objNrs {
		ex := extracted[objNr]
		raw, err := io.ReadAll(ex)
		if err != nil {
			return nil, fmt.Errorf("reading image object %d: %w", objNr, err)
		}
		format := strings.ToLower(ex.FileType)
		if format == "" {
			format = "png"
		}
		imgs = append(imgs, Image{Data: raw, Format: format})
	}
	return imgs, nil
}
