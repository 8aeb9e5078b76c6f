package refs

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestResolveText - Inline Tags
// ---------------------------------------------------------------------------

func TestResolveText(t *testing.T) {
	t.Parallel()

	m := newFakeModel("open", "io.read", "my_func")
	m.entries["io.read"].Label = "io.read()"
	r := NewResolver(m.lookup)

	tests := []struct {
		name      string
		input     string
		opts      TextOptions
		want      string
		wantDiags int
	}{
		{
			name:  "no tags",
			input: "plain text",
			want:  "plain text",
		},
		{
			name:  "simple tag uses reference label",
			input: "see @{io.read} now",
			want:  `see <a href="#io.read">io.read()</a> now`,
		},
		{
			name:  "explicit label",
			input: "@{open|the opener}",
			want:  `<a href="#open">the opener</a>`,
		},
		{
			name:  "label whitespace trimmed",
			input: "@{ open | opener }",
			want:  `<a href="#open">opener</a>`,
		},
		{
			name:  "empty label falls back to reference label",
			input: "@{open|}",
			want:  `<a href="#open">open</a>`,
		},
		{
			name:  "label is html escaped",
			input: "@{open|a<b>&c}",
			want:  `<a href="#open">a&lt;b&gt;&amp;c</a>`,
		},
		{
			name:  "escape form is literal",
			input: `write @{\name} for links`,
			want:  "write @{name} for links",
		},
		{
			name:      "unresolved tag becomes placeholder",
			input:     "see @{missing}.",
			want:      "see ???.",
			wantDiags: 1,
		},
		{
			name:      "failures do not stop the line",
			input:     "@{missing} and @{open}",
			want:      `??? and <a href="#open">open</a>`,
			wantDiags: 1,
		},
		{
			name:  "unterminated tag kept literally",
			input: "broken @{open and more",
			want:  "broken @{open and more",
		},
		{
			name:  "underscores escaped for quirky backends",
			input: "@{my_func}",
			opts:  TextOptions{EscapeUnderscores: true},
			want:  `<a href="#my_func">my\_func</a>`,
		},
		{
			name:  "code mode never escapes underscores",
			input: "@{my_func}",
			opts:  TextOptions{Code: true, EscapeUnderscores: true},
			want:  `<a href="#my_func">my_func</a>`,
		},
		{
			name:  "multiple tags",
			input: "@{open}@{io.read|r}",
			want:  `<a href="#open">open</a><a href="#io.read">r</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, diags := r.ResolveText(tt.input, Context{}, tt.opts)
			if got != tt.want {
				t.Errorf("ResolveText(%q)\n got: %q\nwant: %q", tt.input, got, tt.want)
			}
			if len(diags) != tt.wantDiags {
				t.Errorf("diagnostics = %d, want %d (%v)", len(diags), tt.wantDiags, diags)
			}
		})
	}
}

func TestResolveText_SingleLinkPerResolvedTag(t *testing.T) {
	t.Parallel()

	r := NewResolver(newFakeModel("open").lookup)

	got, diags := r.ResolveText("@{open}", Context{}, TextOptions{})
	if n := strings.Count(got, "<a "); n != 1 {
		t.Errorf("got %d links in %q, want 1", n, got)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
}

func TestResolveText_EscapeRoundTrip(t *testing.T) {
	t.Parallel()

	r := NewResolver(newFakeModel().lookup)

	got, diags := r.ResolveText(`@{\anything.at.all}`, Context{}, TextOptions{})
	if got != "@{anything.at.all}" {
		t.Errorf("got %q, want literal tag", got)
	}
	if strings.Contains(got, Placeholder) {
		t.Error("escaped tag produced a placeholder")
	}
	if len(diags) != 0 {
		t.Errorf("escaped tag produced diagnostics: %v", diags)
	}
}

func TestResolveText_DiagnosticCarriesNameAndError(t *testing.T) {
	t.Parallel()

	r := NewResolver(newFakeModel().lookup)

	_, diags := r.ResolveText("@{nowhere|label}", Context{}, TextOptions{})
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	if diags[0].Name != "nowhere" {
		t.Errorf("Name = %q, want %q", diags[0].Name, "nowhere")
	}
	if !errors.Is(diags[0].Err, ErrNotFound) {
		t.Errorf("Err = %v, want ErrNotFound", diags[0].Err)
	}
}

func TestResolveText_LookupNone(t *testing.T) {
	t.Parallel()

	r := NewResolver(newFakeModel("foo", "pkg.foo").lookup)
	ctx := Context{Global: "pkg."}
	ctx.SetLocal(NoLookup)

	got, diags := r.ResolveText("@{foo}", ctx, TextOptions{})
	if got != Placeholder || len(diags) != 1 {
		t.Errorf("unqualified tag under @lookup none = %q (%d diags), want placeholder", got, len(diags))
	}

	got, diags = r.ResolveText("@{pkg.foo}", ctx, TextOptions{})
	if !strings.Contains(got, `href="#pkg.foo"`) || len(diags) != 0 {
		t.Errorf("qualified tag under @lookup none = %q, want link", got)
	}
}

// ---------------------------------------------------------------------------
// TestResolveText - Custom Prefixes
// ---------------------------------------------------------------------------

func TestResolveText_CustomResolver(t *testing.T) {
	t.Parallel()

	m := newFakeModel("open", "issue:42")
	issues := func(name string) (*Reference, bool) {
		if name == "7" {
			return &Reference{Name: name, Label: "issue 7", Href: "https://tracker/7"}, true
		}
		return nil, false
	}
	r := NewResolver(m.lookup, WithCustom("issue", issues))

	tests := []struct {
		name      string
		input     string
		want      string
		wantDiags int
	}{
		{
			name:  "custom hit",
			input: "@{issue:7}",
			want:  `<a href="https://tracker/7">issue 7</a>`,
		},
		{
			name:  "custom miss falls through on unprefixed name",
			input: "@{issue:open}",
			want:  `<a href="#open">open</a>`,
		},
		{
			name:      "custom and default miss",
			input:     "@{issue:42}",
			want:      Placeholder,
			wantDiags: 1,
		},
		{
			name:  "unregistered prefix resolves whole name",
			input: "@{other:x|y}",
			want:  Placeholder,
			// the whole "other:x" goes to the default resolver
			wantDiags: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, diags := r.ResolveText(tt.input, Context{}, TextOptions{})
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if len(diags) != tt.wantDiags {
				t.Errorf("diagnostics = %d, want %d", len(diags), tt.wantDiags)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveText - Backtick References
// ---------------------------------------------------------------------------

func TestResolveText_Backticks(t *testing.T) {
	t.Parallel()

	m := newFakeModel("open", "my_func")
	r := NewResolver(m.lookup, WithBackticks(true))

	tests := []struct {
		name  string
		input string
		opts  TextOptions
		want  string
	}{
		{
			name:  "resolved span becomes link",
			input: "call `open` first",
			want:  `call <a href="#open">open</a> first`,
		},
		{
			name:  "unresolved span becomes code",
			input: "use `x + 1`",
			want:  "use <code>x + 1</code>",
		},
		{
			name:  "unterminated backtick left alone",
			input: "a `b",
			want:  "a `b",
		},
		{
			name:  "code mode leaves backticks",
			input: "`open`",
			opts:  TextOptions{Code: true},
			want:  "`open`",
		},
		{
			name:  "span content escaped",
			input: "`a<b`",
			want:  "<code>a&lt;b</code>",
		},
		{
			name:  "underscore quirk applies to span labels",
			input: "`my_func`",
			opts:  TextOptions{EscapeUnderscores: true},
			want:  `<a href="#my_func">my\_func</a>`,
		},
		{
			name:  "backticks inside tag label stay in the label",
			input: "see @{open|the `bar` thing}",
			want:  "see <a href=\"#open\">the `bar` thing</a>",
		},
		{
			name:  "tag inside span expands within code",
			input: "try `@{open}` here",
			want:  `try <code><a href="#open">open</a></code> here`,
		},
		{
			name:  "span text around tag is escaped",
			input: "`a<@{open}`",
			want:  `<code>a&lt;<a href="#open">open</a></code>`,
		},
		{
			name:  "backtick in tag label does not close span",
			input: "`x @{open|a`b} y`",
			want:  "<code>x <a href=\"#open\">a`b</a> y</code>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, diags := r.ResolveText(tt.input, Context{}, tt.opts)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if len(diags) != 0 {
				t.Errorf("backtick misses must be silent, got %v", diags)
			}
		})
	}
}

func TestResolveText_TagInsideSpanReportsMiss(t *testing.T) {
	t.Parallel()

	r := NewResolver(newFakeModel().lookup, WithBackticks(true))

	got, diags := r.ResolveText("`@{gone}`", Context{}, TextOptions{})
	if got != "<code>???</code>" {
		t.Errorf("got %q, want placeholder inside code", got)
	}
	if len(diags) != 1 || diags[0].Name != "gone" {
		t.Errorf("diagnostics = %v, want one for gone", diags)
	}
}

func TestResolveText_BackticksDisabledByDefault(t *testing.T) {
	t.Parallel()

	r := NewResolver(newFakeModel("open").lookup)

	got, _ := r.ResolveText("`open`", Context{}, TextOptions{})
	if got != "`open`" {
		t.Errorf("got %q, want backticks untouched", got)
	}
}

func TestResolveText_DiagnosticLines(t *testing.T) {
	t.Parallel()

	r := NewResolver(newFakeModel("open").lookup)

	text := "@{a}\n@{open}\n\nx @{b}"
	_, diags := r.ResolveText(text, Context{}, TextOptions{})

	type pos struct {
		Name   string
		Line   int
		Offset int
	}
	var got []pos
	for _, d := range diags {
		got = append(got, pos{d.Name, d.Line, d.Offset})
	}
	want := []pos{
		{"a", 1, 0},
		{"b", 4, strings.Index(text, "@{b}")},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diagnostic positions mismatch (-want +got):\n%s", diff)
	}
}

func TestDiagnosticString(t *testing.T) {
	t.Parallel()

	d := Diagnostic{Line: 3, Name: "x", Err: ErrNotFound}
	if got := d.String(); got != "line 3: reference not found" {
		t.Errorf("String() = %q", got)
	}
	d.Line = 0
	if got := d.String(); got != "reference not found" {
		t.Errorf("String() = %q", got)
	}
}
