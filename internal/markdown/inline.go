package markdown

import (
	"regexp"
	"strings"
)

var (
	boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)
	codePattern = regexp.MustCompile("`([^`]+?)`")
	// The target excludes < and > so it can never swallow a tag emitted by
	// an earlier pass; literal angle brackets are already entities here.
	linkPattern   = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s<>]+)\)`)
	schemePattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9+.-]*):`)
)

// inline escapes text and then applies the span rules in a fixed order:
// bold, code, link. Unmatched delimiters stay literal.
func (m *Minimal) inline(text string) string {
	out := EscapeStrict(text)
	out = boldPattern.ReplaceAllString(out, "<strong>$1</strong>")
	out = codePattern.ReplaceAllString(out, "<code>$1</code>")
	out = linkPattern.ReplaceAllStringFunc(out, m.link)
	return out
}

func (m *Minimal) link(match string) string {
	sub := linkPattern.FindStringSubmatch(match)
	label, href := sub[1], sub[2]
	if !m.schemeAllowed(href) {
		return label
	}
	return `<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + label + `</a>`
}

func (m *Minimal) schemeAllowed(href string) bool {
	if len(m.allowedSchemes) == 0 {
		return true
	}
	s := schemePattern.FindStringSubmatch(urlPrefix(href))
	if s == nil {
		return true
	}
	return m.allowedSchemes[strings.ToLower(s[1])]
}

// urlPrefix strips what a browser's URL parser ignores before reading the
// scheme: leading C0 controls and spaces, and tab, LF and CR anywhere.
func urlPrefix(href string) string {
	href = strings.TrimLeftFunc(href, func(r rune) bool { return r <= 0x20 })
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, href)
}
