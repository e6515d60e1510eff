// ABOUTME: HTML utilities for stripping tags, extracting titles and decoding entities
// ABOUTME: Built on the x/net/html tokenizer so malformed markup never panics

package html

import (
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultTitle is used when a page has no usable <title>
const DefaultTitle = "Untitled page"

var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true, atom.Ul: true, atom.Ol: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Tr: true, atom.Table: true, atom.Section: true, atom.Article: true, atom.Header: true,
	atom.Footer: true, atom.Nav: true, atom.Blockquote: true, atom.Pre: true, atom.Hr: true,
}

var skippedElements = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Noscript: true, atom.Template: true, atom.Svg: true,
}

// StripHTML removes tags and decodes entities, returning single-line text
func StripHTML(s string) string {
	return strings.Join(strings.Fields(ToText(s)), " ")
}

// ToText removes tags and decodes entities. Block elements become line breaks
// so line-oriented extraction still works on the result.
func ToText(s string) string {
	z := xhtml.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skipDepth := 0

	for {
		tt := z.Next()
		switch tt {
		case xhtml.ErrorToken:
			// io.EOF or a tokenizer error; either way the text so far is all we get
			return tidyLines(b.String())
		case xhtml.StartTagToken, xhtml.SelfClosingTagToken:
			tok := z.Token()
			if skippedElements[tok.DataAtom] && tt == xhtml.StartTagToken {
				skipDepth++
			}
			if blockElements[tok.DataAtom] {
				b.WriteByte('\n')
			}
		case xhtml.EndTagToken:
			tok := z.Token()
			if skippedElements[tok.DataAtom] && skipDepth > 0 {
				skipDepth--
			}
			if blockElements[tok.DataAtom] {
				b.WriteByte('\n')
			}
		case xhtml.TextToken:
			if skipDepth == 0 {
				b.WriteString(string(z.Text()))
			}
		}
	}
}

// ExtractTitle returns the first <title> text of a document, or DefaultTitle
func ExtractTitle(s string) string {
	z := xhtml.NewTokenizer(strings.NewReader(s))
	inTitle := false
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return DefaultTitle
		case xhtml.StartTagToken:
			if tok := z.Token(); tok.DataAtom == atom.Title {
				inTitle = true
			}
		case xhtml.EndTagToken:
			if tok := z.Token(); tok.DataAtom == atom.Title {
				return DefaultTitle
			}
		case xhtml.TextToken:
			if inTitle {
				if title := strings.Join(strings.Fields(string(z.Text())), " "); title != "" {
					return title
				}
			}
		}
	}
}

// LooksLikeHTML reports whether s appears to be an HTML document or fragment
func LooksLikeHTML(s string) bool {
	head := strings.ToLower(s)
	if len(head) > 2048 {
		head = head[:2048]
	}
	for _, marker := range []string{"<!doctype html", "<html", "<head", "<body", "<div", "<p>", "<a "} {
		if strings.Contains(head, marker) {
			return true
		}
	}
	return false
}

// DecodeEntities decodes HTML entities
func DecodeEntities(text string) string {
	return xhtml.UnescapeString(text)
}

// tidyLines trims every line, folds inner whitespace and drops blank-line runs longer than one
func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
