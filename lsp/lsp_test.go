package lsp

import (
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const sample = `// sample
@zoom 50
|z - 1| < 2
z = 1 = 2 ; color=#ff0000
@bogus 1
arg(z) < 5
  z = w
`

func TestDiagnostics(t *testing.T) {
	doc := NewDocument("file:///tmp/sample.argand", sample)
	got := doc.Diagnostics()

	want := []struct {
		line, start, end protocol.UInteger
		message          string
	}{
		{3, 6, 7, "parse: grammar mismatch"},
		{4, 0, 8, "unknown directive"},
		{5, 0, 10, "classify:"},
		{6, 6, 7, "parse: multiple variables"},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d diagnostics, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		d := got[i]
		if d.Range.Start.Line != w.line || d.Range.End.Line != w.line {
			t.Errorf("diagnostic %d: got line %d, want %d", i, d.Range.Start.Line, w.line)
		}
		if d.Range.Start.Character != w.start || d.Range.End.Character != w.end {
			t.Errorf("diagnostic %d: got columns %d-%d, want %d-%d",
				i, d.Range.Start.Character, d.Range.End.Character, w.start, w.end)
		}
		if !strings.Contains(d.Message, w.message) {
			t.Errorf("diagnostic %d: got message %q, want it to contain %q", i, d.Message, w.message)
		}
		if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
			t.Errorf("diagnostic %d: got severity %v, want error", i, d.Severity)
		}
		if d.Source == nil || *d.Source != "argand" {
			t.Errorf("diagnostic %d: got source %v, want argand", i, d.Source)
		}
	}
}

func TestDiagnosticsClean(t *testing.T) {
	doc := NewDocument("file:///tmp/clean.argand", "|z| <= 1\nre(z) = 0\n")
	got := doc.Diagnostics()
	if got == nil {
		t.Fatal("got nil diagnostics, want empty slice")
	}
	if len(got) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %+v", len(got), got)
	}
	if got[0].Range.Start.Line != 1 {
		t.Errorf("got line %d, want 1", got[0].Range.Start.Line)
	}

	doc = NewDocument("file:///tmp/clean.argand", "|z| <= 1\n")
	if got := doc.Diagnostics(); len(got) != 0 {
		t.Errorf("got %d diagnostics, want 0", len(got))
	}
}

func TestHover(t *testing.T) {
	doc := NewDocument("file:///tmp/sample.argand", sample)

	tests := []struct {
		line int
		want string
	}{
		{2, "**disk**: open disk, centre 1, radius 2"},
		{3, "**invalid**: parse: grammar mismatch"},
		{5, "**invalid**: classify:"},
	}

	for _, tt := range tests {
		h := doc.Hover(tt.line)
		if h == nil {
			t.Fatalf("line %d: got nil hover", tt.line)
		}
		content, ok := h.Contents.(protocol.MarkupContent)
		if !ok {
			t.Fatalf("line %d: got %T, want protocol.MarkupContent", tt.line, h.Contents)
		}
		if content.Kind != protocol.MarkupKindMarkdown {
			t.Errorf("line %d: got kind %q, want markdown", tt.line, content.Kind)
		}
		if !strings.Contains(content.Value, tt.want) {
			t.Errorf("line %d: got %q, want it to contain %q", tt.line, content.Value, tt.want)
		}
	}

	for _, line := range []int{0, 1, 4, 99} {
		if h := doc.Hover(line); h != nil {
			t.Errorf("line %d: got hover %+v, want nil", line, h)
		}
	}
}

func TestColumn(t *testing.T) {
	tests := []struct {
		text   string
		offset int
		want   protocol.UInteger
	}{
		{"abc", 2, 2},
		{"abc", 10, 3},
		{"é = z", 3, 2},
		{"𝑧 = 1", 4, 2},
	}
	for _, tt := range tests {
		if got := column(tt.text, tt.offset); got != tt.want {
			t.Errorf("column(%q, %d): got %d, want %d", tt.text, tt.offset, got, tt.want)
		}
	}
}

func TestDocuments(t *testing.T) {
	docs := NewDocuments()
	if docs.Get("file:///a.argand") != nil {
		t.Fatal("got document before update")
	}
	docs.Update("file:///a.argand", "|z| = 1\n")
	doc := docs.Get("file:///a.argand")
	if doc == nil || len(doc.Diagram.Plots) != 1 {
		t.Fatalf("got %+v, want one plot", doc)
	}
	docs.Remove("file:///a.argand")
	if docs.Get("file:///a.argand") != nil {
		t.Error("got document after remove")
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri, want string
	}{
		{"file:///tmp/a%20b.argand", "/tmp/a b.argand"},
		{"untitled:1", "untitled:1"},
	}
	for _, tt := range tests {
		got, err := uriToPath(tt.uri)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}
