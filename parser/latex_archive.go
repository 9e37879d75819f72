package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"path"
	"strings"
)

// LatexArchiveParser converts a zipped LaTeX project. The first .tex member
// in archive listing order is the source; every {.png,.jpg,.jpeg,.gif}
// member joins the image pool that include-graphics references are resolved
// against.
type LatexArchiveParser struct{}

func (p *LatexArchiveParser) SupportedFormats() []string { return []string{"zip"} }

func (p *LatexArchiveParser) Parse(ctx context.Context, data []byte) (*Result, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening archive: %v", ErrCorruptDocument, err)
	}

	// One pass over the listing: the first .tex member is the source (a
	// defined policy, no main-file heuristic), image members join the pool
	// in listing order.
	var texMember *zip.File
	var pool []poolEntry
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		switch {
		case strings.HasSuffix(strings.ToLower(f.Name), ".tex"):
			if texMember == nil {
				texMember = f
			}
		case isPoolImage(f.Name):
			imgData, err := readZipMember(f)
			if err != nil {
				return nil, fmt.Errorf("reading archive member %s: %w", f.Name, err)
			}
			pool = append(pool, poolEntry{path: f.Name, data: imgData})
		}
	}
	if texMember == nil {
		return nil, fmt.Errorf("%w", ErrMissingSource)
	}

	src, err := readZipMember(texMember)
	if err != nil {
		return nil, fmt.Errorf("reading archive member %s: %w", texMember.Name, err)
	}

	// Replace include-graphics directives with placeholder tokens, convert
	// the remaining LaTeX around them, then substitute each token with a
	// resolved image tag or an inline warning.
	toks := scanIncludeGraphics(decodeLossy(src))
	var withPlaceholders strings.Builder
	var refs []string
	for _, tok := range toks {
		if tok.isRef {
			withPlaceholders.WriteString(placeholder(len(refs)))
			refs = append(refs, tok.value)
		} else {
			withPlaceholders.WriteString(tok.value)
		}
	}

	out := canonicalizeBreaks(escapeText(latexToText(withPlaceholders.String())))

	images := make(map[string]Image)
	for i, ref := range refs {
		// A directive inside stripped markup (a comment, say) loses its
		// placeholder during conversion; it must not contribute an asset.
		if !strings.Contains(out, placeholder(i)) {
			continue
		}
		var repl string
		if idx, ok := resolveImageRef(ref, pool); ok {
			e := pool[idx]
			name := path.Base(e.path)
			images[name] = Image{
				Name:   name,
				Data:   e.data,
				Format: strings.TrimPrefix(strings.ToLower(path.Ext(name)), "."),
			}
			repl = fmt.Sprintf(`<img src="%s">`, name)
		} else {
			repl = fmt.Sprintf(`<b>[Image not found: %s]</b>`, html.EscapeString(ref))
		}
		out = strings.Replace(out, placeholder(i), repl, 1)
	}

	return &Result{HTML: wrapHTML(out), Images: images}, nil
}

func readZipMember(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
