// Package markdown renders README text into HTML fragments.
//
// The Minimal renderer understands a small line-oriented subset: fenced code,
// headings of level 1 to 3, flat "-" lists, paragraphs, and the inline spans
// bold, code and link. Everything it does not recognise becomes a paragraph.
// Rendering never fails; every byte of input text is escaped before any
// markup is added around it.
package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	containerOpen  = `<div class="markdown-body">`
	containerClose = `</div>`
)

var (
	fencePattern   = regexp.MustCompile("^\\s*```\\s*([A-Za-z0-9_+#.-]*)")
	headingPattern = regexp.MustCompile(`^(#{1,3})\s+(.*)$`)
	listPattern    = regexp.MustCompile(`^\s*-\s+(.*)$`)
)

// mode is the block context the scanner is in. The three modes are
// mutually exclusive.
type mode int

const (
	modeDefault mode = iota
	modeCode
	modeList
)

func (m mode) String() string {
	switch m {
	case modeCode:
		return "code"
	case modeList:
		return "list"
	default:
		return "default"
	}
}

// scanState is threaded through the line fold. lang is only meaningful in
// modeCode.
type scanState struct {
	mode mode
	lang string
}

// Minimal is the line-oriented renderer. The zero value is ready to use and
// passes link targets through unchanged.
type Minimal struct {
	allowedSchemes map[string]bool
}

// Option configures a Minimal renderer.
type Option func(*Minimal)

// WithAllowedSchemes restricts link targets to the given URL schemes.
// Relative links are always kept. A link whose scheme is not listed is
// rendered as its label only. With no schemes every target is allowed.
func WithAllowedSchemes(schemes ...string) Option {
	return func(m *Minimal) {
		if len(schemes) == 0 {
			m.allowedSchemes = nil
			return
		}
		m.allowedSchemes = make(map[string]bool, len(schemes))
		for _, s := range schemes {
			m.allowedSchemes[strings.ToLower(strings.TrimSuffix(s, ":"))] = true
		}
	}
}

// NewMinimal returns a Minimal renderer with the given options applied.
func NewMinimal(opts ...Option) *Minimal {
	m := &Minimal{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name implements Renderer.
func (m *Minimal) Name() string { return EngineMinimal }

// Render converts source into a fragment wrapped in a single container
// element. It is safe for concurrent use.
func (m *Minimal) Render(source string) string {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")

	var body strings.Builder
	body.Grow(len(source) + len(source)/4)

	st := scanState{}
	for _, line := range lines {
		st = m.step(st, line, &body)
	}
	finish(st, &body)

	return containerOpen + body.String() + containerClose
}

// Render renders source with a default Minimal renderer.
func Render(source string) string {
	return defaultMinimal.Render(source)
}

var defaultMinimal = &Minimal{}

// step consumes one line, writes its markup and returns the next state.
func (m *Minimal) step(st scanState, line string, out *strings.Builder) scanState {
	if f := fencePattern.FindStringSubmatch(line); f != nil {
		if st.mode == modeCode {
			out.WriteString("</code></pre>")
			return scanState{mode: modeDefault}
		}
		closeList(st, out)
		lang := f[1]
		if lang == "" {
			out.WriteString("<pre><code>")
		} else {
			out.WriteString(`<pre><code class="language-` + EscapeStrict(lang) + `">`)
		}
		return scanState{mode: modeCode, lang: lang}
	}

	if st.mode == modeCode {
		out.WriteString(EscapeStrict(line))
		out.WriteByte('\n')
		return st
	}

	if h := headingPattern.FindStringSubmatch(line); h != nil {
		closeList(st, out)
		level := strconv.Itoa(len(h[1]))
		out.WriteString("<h" + level + ">" + m.inline(strings.TrimSpace(h[2])) + "</h" + level + ">")
		return scanState{mode: modeDefault}
	}

	if li := listPattern.FindStringSubmatch(line); li != nil {
		if st.mode != modeList {
			out.WriteString("<ul>")
		}
		out.WriteString("<li>" + m.inline(strings.TrimSpace(li[1])) + "</li>")
		return scanState{mode: modeList}
	}

	trimmed := strings.TrimSpace(line)
	closeList(st, out)
	if trimmed == "" {
		return scanState{mode: modeDefault}
	}
	out.WriteString("<p>" + m.inline(trimmed) + "</p>")
	return scanState{mode: modeDefault}
}

func closeList(st scanState, out *strings.Builder) {
	if st.mode == modeList {
		out.WriteString("</ul>")
	}
}

// finish closes an open list. An open code region stays open: everything
// after an unterminated fence is code.
func finish(st scanState, out *strings.Builder) {
	closeList(st, out)
}
