package parser

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Placeholder tokens stand in for include-graphics references while the
// surrounding LaTeX is converted to text. NUL bytes cannot appear in LaTeX
// source and pass through every conversion rule untouched.
func placeholder(i int) string {
	return fmt.Sprintf("\x00%d\x00", i)
}

// scanIncludeGraphics splits LaTeX source into alternating text runs and
// include-graphics references with a single left-to-right pass. A directive
// is \includegraphics, an optional bracketed option block, and one mandatory
// braced reference. Malformed directives are left in the text run and later
// stripped as ordinary markup.
type texToken struct {
	isRef bool
	value string
}

func scanIncludeGraphics(src string) []texToken {
	const cmd = `\includegraphics`

	var toks []texToken
	start := 0 // beginning of the current text run
	i := 0
	for {
		j := strings.Index(src[i:], cmd)
		if j < 0 {
			break
		}
		j += i
		k := j + len(cmd)

		// Optional [options] block.
		if k < len(src) && src[k] == '[' {
			end := strings.IndexByte(src[k:], ']')
			if end < 0 {
				i = k
				continue
			}
			k += end + 1
		}

		// Mandatory {reference} block.
		if k >= len(src) || src[k] != '{' {
			i = k
			continue
		}
		end := strings.IndexByte(src[k:], '}')
		if end < 0 {
			i = k
			continue
		}

		ref := strings.TrimSpace(src[k+1 : k+end])
		toks = append(toks,
			texToken{value: src[start:j]},
			texToken{isRef: true, value: ref},
		)
		start = k + end + 1
		i = start
	}
	toks = append(toks, texToken{value: src[start:]})
	return toks
}

var (
	// % starts a comment unless escaped as \%.
	texCommentRe = regexp.MustCompile(`(?m)(^|[^\\])%.*$`)

	// Sectioning commands become their argument surrounded by blank lines.
	texSectionRe = regexp.MustCompile(`\\(?:part|chapter|section|subsection|subsubsection|paragraph|subparagraph|addsec)\*?\s*(?:\[[^\]]*\])?\{([^{}]*)\}`)

	// Formatting commands keep their argument.
	texKeepArgRe = regexp.MustCompile(`\\(?:textbf|textit|texttt|textsc|textsf|textrm|textsl|emph|underline|mbox|text|caption|title|author|date)\*?\{([^{}]*)\}`)

	// Preamble and reference commands disappear with their argument.
	texDropArgRe = regexp.MustCompile(`\\(?:documentclass|usepackage|input|include|includegraphics|label|ref|pageref|eqref|cite|citep|citet|bibliography|bibliographystyle|pagestyle|thispagestyle|vspace|hspace|rule|setlength|newcommand|renewcommand)\*?\s*(?:\[[^\]]*\])?\{[^{}]*\}`)

	// Environment delimiters disappear; their body stays.
	texEnvRe = regexp.MustCompile(`\\(?:begin|end)\s*\{[^{}]*\}`)

	// \\ with an optional spacing argument is a forced line break.
	texLineBreakRe = regexp.MustCompile(`\\\\(?:\[[^\]]*\])?`)

	// \item becomes a list bullet on its own line.
	texItemRe = regexp.MustCompile(`\\item\b`)

	// Paragraph and page breaks.
	texBreakCmdRe = regexp.MustCompile(`\\(?:par|newline|linebreak|newpage|clearpage|cleardoublepage|pagebreak)\b`)

	// Any command not handled above is stripped bare.
	texBareCmdRe = regexp.MustCompile(`\\[a-zA-Z]+\*?`)

	// Escaped specials are swapped for sentinel bytes up front so that
	// comment stripping, math-delimiter removal, and brace removal cannot
	// touch them, then restored as literal characters at the end.
	texProtectEscapes = strings.NewReplacer(
		`\%`, "\x01P\x01", `\&`, "\x01A\x01", `\$`, "\x01D\x01",
		`\#`, "\x01H\x01", `\_`, "\x01U\x01", `\{`, "\x01L\x01",
		`\}`, "\x01R\x01", `\~`, "\x01T\x01",
	)
	texRestoreEscapes = strings.NewReplacer(
		"\x01P\x01", "%", "\x01A\x01", "&", "\x01D\x01", "$",
		"\x01H\x01", "#", "\x01U\x01", "_", "\x01L\x01", "{",
		"\x01R\x01", "}", "\x01T\x01", "~",
	)

	texBlankRunRe = regexp.MustCompile(`\n{3,}`)
)

// latexToText converts LaTeX source to readable plain text: sectioning and
// break commands become newlines, other markup is stripped, escapes are
// unescaped. It is a text-extraction-level conversion, not a renderer.
// Placeholder tokens embedded in the source survive intact.
func latexToText(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")

	src = texProtectEscapes.Replace(src)
	src = texCommentRe.ReplaceAllString(src, "$1")

	// Sectioning and argument-keeping commands can nest, e.g.
	// \section{\textbf{Intro}}. Iterate until the text settles.
	for i := 0; i < 4; i++ {
		next := texSectionRe.ReplaceAllString(src, "\n\n$1\n\n")
		next = texKeepArgRe.ReplaceAllString(next, "$1")
		if next == src {
			break
		}
		src = next
	}

	src = texDropArgRe.ReplaceAllString(src, "")
	src = texEnvRe.ReplaceAllString(src, "")
	src = texLineBreakRe.ReplaceAllString(src, "\n")
	src = texItemRe.ReplaceAllString(src, "\n- ")
	src = texBreakCmdRe.ReplaceAllString(src, "\n\n")
	src = texBareCmdRe.ReplaceAllString(src, "")

	src = strings.ReplaceAll(src, "~", " ")
	// Math delimiters are dropped, their content stays.
	src = strings.ReplaceAll(src, "$", "")
	src = strings.ReplaceAll(src, "{", "")
	src = strings.ReplaceAll(src, "}", "")
	src = texRestoreEscapes.Replace(src)

	src = texBlankRunRe.ReplaceAllString(src, "\n\n")
	return strings.TrimSpace(src)
}

// canonicalizeBreaks rewrites every newline as the canonical HTML break
// marker. Output HTML never carries raw newlines.
func canonicalizeBreaks(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\n", "<br>")
}

// wrapHTML puts converted content into the minimal HTML shell every parser
// emits.
func wrapHTML(body string) string {
	return "<html><head><meta charset='utf-8'><title>Converted Document</title></head><body>" + body + "</body></html>"
}

// escapeText HTML-escapes plain text. Placeholder tokens are control bytes
// and pass through unchanged.
func escapeText(s string) string {
	return html.EscapeString(s)
}

// decodeLossy decodes bytes as UTF-8 text, replacing invalid sequences with
// the replacement rune. Decoding never fails.
func decodeLossy(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
