package markdown

import "strings"

var (
	basicEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	strictEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
	)
)

// Escape replaces &, < and > with their HTML entities.
func Escape(s string) string {
	return basicEscaper.Replace(s)
}

// EscapeStrict is Escape plus double and single quotes, which makes the
// result safe inside a quoted attribute value. The replacement is a single
// pass: calling it on already escaped text escapes the ampersands again.
func EscapeStrict(s string) string {
	return strictEscaper.Replace(s)
}
