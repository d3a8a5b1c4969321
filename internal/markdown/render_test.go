package markdown

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func wrap(body string) string {
	return containerOpen + body + containerClose
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty input",
			in:   "",
			want: wrap(""),
		},
		{
			name: "whitespace only",
			in:   "   \n\t\n",
			want: wrap(""),
		},
		{
			name: "script is escaped",
			in:   "<script>alert(1)</script>",
			want: wrap("<p>&lt;script&gt;alert(1)&lt;/script&gt;</p>"),
		},
		{
			name: "heading levels",
			in:   "# A\n## B\n### C",
			want: wrap("<h1>A</h1><h2>B</h2><h3>C</h3>"),
		},
		{
			name: "four hashes is a paragraph",
			in:   "#### four",
			want: wrap("<p>#### four</p>"),
		},
		{
			name: "hash without space is a paragraph",
			in:   "#NoSpace",
			want: wrap("<p>#NoSpace</p>"),
		},
		{
			name: "heading with inline spans",
			in:   "##   **Bold** title  ",
			want: wrap("<h2><strong>Bold</strong> title</h2>"),
		},
		{
			name: "list then blank then paragraph",
			in:   "- one\n- two\n\nplain",
			want: wrap("<ul><li>one</li><li>two</li></ul><p>plain</p>"),
		},
		{
			name: "paragraph closes list",
			in:   "- a\nnext",
			want: wrap("<ul><li>a</li></ul><p>next</p>"),
		},
		{
			name: "list closed at end of input",
			in:   "- a",
			want: wrap("<ul><li>a</li></ul>"),
		},
		{
			name: "indented list item",
			in:   "  - indented",
			want: wrap("<ul><li>indented</li></ul>"),
		},
		{
			name: "dash without space is a paragraph",
			in:   "-nospace",
			want: wrap("<p>-nospace</p>"),
		},
		{
			name: "two lists separated by blank line",
			in:   "- a\n\n- b",
			want: wrap("<ul><li>a</li></ul><ul><li>b</li></ul>"),
		},
		{
			name: "heading closes list",
			in:   "- a\n# H",
			want: wrap("<ul><li>a</li></ul><h1>H</h1>"),
		},
		{
			name: "fence closes list",
			in:   "- a\n```\nx\n```",
			want: wrap("<ul><li>a</li></ul><pre><code>x\n</code></pre>"),
		},
		{
			name: "fenced code keeps source verbatim",
			in:   "```js\nlet **x** = 1;\n```",
			want: wrap(`<pre><code class="language-js">let **x** = 1;` + "\n</code></pre>"),
		},
		{
			name: "fenced code escapes once",
			in:   "```\n<b>&amp;</b>\n```",
			want: wrap("<pre><code>&lt;b&gt;&amp;amp;&lt;/b&gt;\n</code></pre>"),
		},
		{
			name: "fenced code keeps blank lines and headings",
			in:   "```\n# not a heading\n\n- not a list\n```",
			want: wrap("<pre><code># not a heading\n\n- not a list\n</code></pre>"),
		},
		{
			name: "language word only",
			in:   "```go extra words\nx\n```",
			want: wrap(`<pre><code class="language-go">x` + "\n</code></pre>"),
		},
		{
			name: "indented closing fence",
			in:   "```\nx\n   ```\nafter",
			want: wrap("<pre><code>x\n</code></pre><p>after</p>"),
		},
		{
			name: "unterminated fence stays open",
			in:   "```\ndangling",
			want: wrap("<pre><code>dangling\n"),
		},
		{
			name: "bold and code",
			in:   "**bold** and `code`",
			want: wrap("<p><strong>bold</strong> and <code>code</code></p>"),
		},
		{
			name: "bold is non-greedy",
			in:   "**a** b **c**",
			want: wrap("<p><strong>a</strong> b <strong>c</strong></p>"),
		},
		{
			name: "unmatched bold stays literal",
			in:   "**unmatched",
			want: wrap("<p>**unmatched</p>"),
		},
		{
			name: "unmatched backtick stays literal",
			in:   "a `b",
			want: wrap("<p>a `b</p>"),
		},
		{
			name: "link",
			in:   "see [docs](https://example.com/a?b=1&c=2)",
			want: wrap(`<p>see <a href="https://example.com/a?b=1&amp;c=2" target="_blank" rel="noopener noreferrer">docs</a></p>`),
		},
		{
			name: "javascript link passes through",
			in:   "[x](javascript:evil)",
			want: wrap(`<p><a href="javascript:evil" target="_blank" rel="noopener noreferrer">x</a></p>`),
		},
		{
			name: "quote in link target cannot break the attribute",
			in:   `[x](http://a.com/"onmouseover)`,
			want: wrap(`<p><a href="http://a.com/&quot;onmouseover" target="_blank" rel="noopener noreferrer">x</a></p>`),
		},
		{
			name: "bold inside link label",
			in:   "[**x**](/p)",
			want: wrap(`<p><a href="/p" target="_blank" rel="noopener noreferrer"><strong>x</strong></a></p>`),
		},
		{
			name: "quotes are escaped",
			in:   `say "hi" & 'bye'`,
			want: wrap("<p>say &quot;hi&quot; &amp; &#039;bye&#039;</p>"),
		},
		{
			name: "crlf line endings",
			in:   "a\r\nb\r\n",
			want: wrap("<p>a</p><p>b</p>"),
		},
		{
			name: "fallback text is a single paragraph",
			in:   "README content is not available.",
			want: wrap("<p>README content is not available.</p>"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Render(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestRenderScriptEntitiesAppearOnce(t *testing.T) {
	got := Render("<script>alert(1)</script>")
	if strings.Contains(got, "<script>") {
		t.Fatalf("output contains raw script tag: %s", got)
	}
	if n := strings.Count(got, "&lt;"); n != 2 {
		t.Errorf("&lt; count = %d, want 2", n)
	}
	if n := strings.Count(got, "&gt;"); n != 2 {
		t.Errorf("&gt; count = %d, want 2", n)
	}
	if strings.Contains(got, "&amp;lt;") {
		t.Errorf("output is double escaped: %s", got)
	}
}

func TestRenderIsRepeatable(t *testing.T) {
	inputs := []string{
		"",
		"# title\n- a\n- b\n\n```go\nfunc main() {}\n```\ntext",
		"```\nunterminated",
	}
	for _, in := range inputs {
		if a, b := Render(in), Render(in); a != b {
			t.Errorf("Render(%q) not repeatable:\n%s\n%s", in, a, b)
		}
	}
}

func TestRenderConcurrent(t *testing.T) {
	const src = "# T\n- a\n- b\n\n```sh\necho hi\n```\n**done**"
	want := Render(src)

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Render(src); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent render differs: %s", got)
	}
}

func TestRenderBinaryInput(t *testing.T) {
	in := string([]byte{0xff, 0xfe, 0x00, '<', '\n', 0x80, '*', '*'})
	got := Render(in)
	if !strings.HasPrefix(got, containerOpen) || !strings.HasSuffix(got, containerClose) {
		t.Fatalf("output not wrapped: %q", got)
	}
	if strings.Contains(got, "\x00<") {
		t.Errorf("angle bracket not escaped: %q", got)
	}
}

func TestAllowedSchemes(t *testing.T) {
	m := NewMinimal(WithAllowedSchemes("https", "mailto:"))

	tests := []struct {
		in   string
		want string
	}{
		{"[x](javascript:evil)", "<p>x</p>"},
		{"[w](JavaScript:alert)", "<p>w</p>"},
		{"[y](https://a.example)", `<p><a href="https://a.example" target="_blank" rel="noopener noreferrer">y</a></p>`},
		{"[m](MAILTO:me@example.com)", `<p><a href="MAILTO:me@example.com" target="_blank" rel="noopener noreferrer">m</a></p>`},
		{"[c](\x01javascript:alert(1))", "<p>c)</p>"},
		{"[d](\x00\x08JavaScript:alert)", "<p>d</p>"},
		{"[e](\x0b\x1fjavascript:alert)", "<p>e</p>"},
		{"[f](\x01https://a.example)", "<p><a href=\"\x01https://a.example\" target=\"_blank\" rel=\"noopener noreferrer\">f</a></p>"},
		{"[z](/relative/path)", `<p><a href="/relative/path" target="_blank" rel="noopener noreferrer">z</a></p>`},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(wrap(tt.want), m.Render(tt.in)); diff != "" {
			t.Errorf("Render(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}

	open := NewMinimal(WithAllowedSchemes())
	if got := open.Render("[x](javascript:evil)"); !strings.Contains(got, `href="javascript:evil"`) {
		t.Errorf("empty allow list should pass links through, got %s", got)
	}
}

func TestStepTransitions(t *testing.T) {
	m := &Minimal{}
	tests := []struct {
		name     string
		from     scanState
		line     string
		wantMode mode
		wantLang string
		wantOut  string
	}{
		{"fence opens code", scanState{}, "```py", modeCode, "py", `<pre><code class="language-py">`},
		{"fence closes code", scanState{mode: modeCode, lang: "py"}, "```", modeDefault, "", "</code></pre>"},
		{"code line", scanState{mode: modeCode}, "- x", modeCode, "", "- x\n"},
		{"item opens list", scanState{}, "- x", modeList, "", "<ul><li>x</li>"},
		{"item continues list", scanState{mode: modeList}, "- y", modeList, "", "<li>y</li>"},
		{"blank closes list", scanState{mode: modeList}, "  ", modeDefault, "", "</ul>"},
		{"blank in default", scanState{}, "", modeDefault, "", ""},
		{"fence from list", scanState{mode: modeList}, "```", modeCode, "", "</ul><pre><code>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			got := m.step(tt.from, tt.line, &out)
			if got.mode != tt.wantMode {
				t.Errorf("mode = %v, want %v", got.mode, tt.wantMode)
			}
			if got.lang != tt.wantLang {
				t.Errorf("lang = %q, want %q", got.lang, tt.wantLang)
			}
			if out.String() != tt.wantOut {
				t.Errorf("output = %q, want %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestNew(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatalf("New(\"\") error: %v", err)
	}
	if r.Name() != EngineMinimal {
		t.Errorf("default engine = %q, want %q", r.Name(), EngineMinimal)
	}

	r, err = New(EngineCommonMark)
	if err != nil {
		t.Fatalf("New(commonmark) error: %v", err)
	}
	if r.Name() != EngineCommonMark {
		t.Errorf("engine = %q, want %q", r.Name(), EngineCommonMark)
	}

	if _, err := New("asciidoc"); err == nil {
		t.Error("expected error for unknown engine")
	}
}

func TestURLPrefix(t *testing.T) {
	tests := []struct{ in, want string }{
		{"https://a", "https://a"},
		{"\x01\x1f javascript:x", "javascript:x"},
		{"java\tscr\nipt\r:x", "javascript:x"},
		{"\x7fjavascript:x", "\x7fjavascript:x"},
	}
	for _, tt := range tests {
		if got := urlPrefix(tt.in); got != tt.want {
			t.Errorf("urlPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
