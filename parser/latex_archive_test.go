package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

type zipMember struct {
	name string
	data []byte
}

// buildZip builds an in-memory zip archive with members in the given order.
func buildZip(t *testing.T, members []zipMember) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, m := range members {
		f, err := w.Create(m.name)
		if err != nil {
			t.Fatalf("creating zip member %s: %v", m.name, err)
		}
		if _, err := f.Write(m.data); err != nil {
			t.Fatalf("writing zip member %s: %v", m.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}

func TestLatexArchiveResolvedImage(t *testing.T) {
	imgData := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	src := `\documentclass{article}
\begin{document}
\section{Results}
See the figure:
\includegraphics[width=5cm]{figs/diagram}
\end{document}`

	archive := buildZip(t, []zipMember{
		{"main.tex", []byte(src)},
		{"figs/diagram.png", imgData},
	})

	p := &LatexArchiveParser{}
	res, err := p.Parse(context.Background(), archive)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if !strings.Contains(res.HTML, `<img src="diagram.png">`) {
		t.Errorf("HTML missing resolved image tag: %q", res.HTML)
	}
	if strings.Contains(res.HTML, "Image not found") {
		t.Errorf("HTML has a not-found warning for a resolved reference: %q", res.HTML)
	}

	img, ok := res.Images["diagram.png"]
	if !ok {
		t.Fatalf("image mapping missing diagram.png, got %v", res.Images)
	}
	if !bytes.Equal(img.Data, imgData) {
		t.Error("image bytes differ from archive member")
	}
	if img.Format != "png" {
		t.Errorf("Format = %q, want png", img.Format)
	}
}

func TestLatexArchiveUnresolvedImage(t *testing.T) {
	src := `\begin{document}Text \includegraphics{missing} more\end{document}`
	archive := buildZip(t, []zipMember{
		{"doc.tex", []byte(src)},
	})

	p := &LatexArchiveParser{}
	res, err := p.Parse(context.Background(), archive)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if !strings.Contains(res.HTML, "[Image not found: missing]") {
		t.Errorf("HTML missing not-found warning: %q", res.HTML)
	}
	if strings.Contains(res.HTML, "<img") {
		t.Errorf("unresolved reference emitted an <img> tag: %q", res.HTML)
	}
	if len(res.Images) != 0 {
		t.Errorf("image mapping should be empty, got %v", res.Images)
	}
}

func TestLatexArchiveMissingSource(t *testing.T) {
	archive := buildZip(t, []zipMember{
		{"readme.md", []byte("no latex here")},
		{"figs/diagram.png", []byte{1, 2, 3}},
	})

	p := &LatexArchiveParser{}
	_, err := p.Parse(context.Background(), archive)
	if !errors.Is(err, ErrMissingSource) {
		t.Fatalf("err = %v, want ErrMissingSource", err)
	}
}

func TestLatexArchiveFirstTexMemberWins(t *testing.T) {
	archive := buildZip(t, []zipMember{
		{"aux.tex", []byte(`FIRSTMARKER`)},
		{"main.tex", []byte(`SECONDMARKER`)},
	})

	p := &LatexArchiveParser{}
	res, err := p.Parse(context.Background(), archive)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if !strings.Contains(res.HTML, "FIRSTMARKER") {
		t.Errorf("first-listed .tex not selected: %q", res.HTML)
	}
	if strings.Contains(res.HTML, "SECONDMARKER") {
		t.Errorf("second .tex leaked into output: %q", res.HTML)
	}
}

func TestLatexArchiveCaseInsensitiveTexExtension(t *testing.T) {
	archive := buildZip(t, []zipMember{
		{"MAIN.TEX", []byte("upper case extension")},
	})

	p := &LatexArchiveParser{}
	res, err := p.Parse(context.Background(), archive)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !strings.Contains(res.HTML, "upper case extension") {
		t.Errorf("uppercase .TEX member not parsed: %q", res.HTML)
	}
}

func TestLatexArchiveCorrupt(t *testing.T) {
	p := &LatexArchiveParser{}
	_, err := p.Parse(context.Background(), []byte("this is not a zip"))
	if !errors.Is(err, ErrCorruptDocument) {
		t.Fatalf("err = %v, want ErrCorruptDocument", err)
	}
}

func TestLatexArchiveNoRawNewlines(t *testing.T) {
	archive := buildZip(t, []zipMember{
		{"main.tex", []byte("line one\nline two\n\nparagraph")},
	})

	p := &LatexArchiveParser{}
	res, err := p.Parse(context.Background(), archive)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if strings.ContainsAny(res.HTML, "\r\n") {
		t.Errorf("output HTML contains raw newlines: %q", res.HTML)
	}
	if !strings.Contains(res.HTML, "<br>") {
		t.Errorf("line breaks not canonicalized: %q", res.HTML)
	}
}

// A directive inside a comment is stripped with the comment; it must not
// leave an asset in the mapping that the HTML never references.
func TestLatexArchiveCommentedDirective(t *testing.T) {
	src := "visible text\n% \\includegraphics{figs/diagram}\nmore text"
	archive := buildZip(t, []zipMember{
		{"main.tex", []byte(src)},
		{"figs/diagram.png", []byte{1, 2, 3}},
	})

	p := &LatexArchiveParser{}
	res, err := p.Parse(context.Background(), archive)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if len(res.Images) != 0 {
		t.Errorf("commented directive produced assets: %v", res.Images)
	}
	if strings.Contains(res.HTML, "<img") {
		t.Errorf("commented directive emitted an image tag: %q", res.HTML)
	}
	if strings.Contains(res.HTML, "Image not found") {
		t.Errorf("commented directive emitted a warning: %q", res.HTML)
	}
	for _, want := range []string{"visible text", "more text"} {
		if !strings.Contains(res.HTML, want) {
			t.Errorf("HTML missing %q: %q", want, res.HTML)
		}
	}
}

// Two archive paths sharing a base filename: the resolver picks the first in
// listing order and the mapping holds one entry per base name.
func TestLatexArchiveBaseNameCollision(t *testing.T) {
	first := []byte("first bytes")
	second := []byte("second bytes")
	archive := buildZip(t, []zipMember{
		{"main.tex", []byte(`\includegraphics{fig}`)},
		{"a/fig.png", first},
		{"b/fig.png", second},
	})

	p := &LatexArchiveParser{}
	res, err := p.Parse(context.Background(), archive)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	img, ok := res.Images["fig.png"]
	if !ok {
		t.Fatalf("mapping missing fig.png: %v", res.Images)
	}
	if !bytes.Equal(img.Data, first) {
		t.Error("resolver did not pick the first-listed entry")
	}
}
