package markdown

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"a & b", "a &amp; b"},
		{"<tag>", "&lt;tag&gt;"},
		{`"quoted" 'single'`, `"quoted" 'single'`},
		{"&amp;", "&amp;amp;"},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeStrict(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"a & b < c > d", "a &amp; b &lt; c &gt; d"},
		{`"q"`, "&quot;q&quot;"},
		{"it's", "it&#039;s"},
		{"&lt;", "&amp;lt;"},
	}
	for _, tt := range tests {
		if got := EscapeStrict(tt.in); got != tt.want {
			t.Errorf("EscapeStrict(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
