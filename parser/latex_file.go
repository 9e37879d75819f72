package parser

import "context"

// LatexFileParser converts a standalone .tex file. With no companion
// archive there are no images to resolve: include-graphics directives are
// dropped along with the rest of the unrecognized markup, a documented
// limitation of the standalone path. The image mapping is always empty.
type LatexFileParser struct{}

func (p *LatexFileParser) SupportedFormats() []string { return []string{"tex"} }

func (p *LatexFileParser) Parse(ctx context.Context, data []byte) (*Result, error) {
	// Lossy decode: encoding problems are not errors on this path.
	text := latexToText(decodeLossy(data))
	out := canonicalizeBreaks(escapeText(text))
	return &Result{HTML: wrapHTML(out), Images: map[string]Image{}}, nil
}
