package lsp

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"unicode/utf16"

	"github.com/Homlet/argand/diagram"
	"github.com/Homlet/argand/format"
	"github.com/Homlet/argand/parser"
	"github.com/Homlet/argand/plot"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

const diagnosticSource = "argand"

// Document is an open diagram file and its parsed contents.
type Document struct {
	URI     string
	Text    string
	Diagram *diagram.Diagram
	Err     error // malformed lines reported by diagram.Parse
}

// NewDocument parses text as a diagram file.
func NewDocument(uri, text string) *Document {
	d, err := diagram.Parse(strings.NewReader(text))
	return &Document{URI: uri, Text: text, Diagram: d, Err: err}
}

func (doc *Document) line(n int) string {
	lines := strings.Split(doc.Text, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[n-1], "\r")
}

// Diagnostics returns one error diagnostic per malformed or invalid line,
// ordered by line.
func (doc *Document) Diagnostics() []protocol.Diagnostic {
	var problems []*diagram.LineError
	if doc.Err != nil {
		if joined, ok := doc.Err.(interface{ Unwrap() []error }); ok {
			for _, err := range joined.Unwrap() {
				var le *diagram.LineError
				if errors.As(err, &le) {
					problems = append(problems, le)
				}
			}
		}
	}
	if doc.Diagram != nil {
		problems = append(problems, doc.Diagram.Problems()...)
	}
	sort.SliceStable(problems, func(i, j int) bool {
		return problems[i].Line < problems[j].Line
	})

	diagnostics := []protocol.Diagnostic{}
	for _, p := range problems {
		if p.Line < 1 {
			continue
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    doc.problemRange(p),
			Severity: severityPtr(protocol.DiagnosticSeverityError),
			Source:   strPtr(diagnosticSource),
			Message:  message(p.Err),
		})
	}
	return diagnostics
}

// problemRange covers the offending token of an equation when the error
// locates one, otherwise the trimmed line up to any attributes.
func (doc *Document) problemRange(p *diagram.LineError) protocol.Range {
	text := doc.line(p.Line)
	start := len(text) - len(strings.TrimLeft(text, " \t"))
	end := len(strings.TrimRight(text, " \t"))

	var ce *plot.CompileError
	if errors.As(p.Err, &ce) {
		if eq, _, ok := strings.Cut(text[start:], ";"); ok {
			end = start + len(strings.TrimRight(eq, " \t"))
		}
		var se *parser.SyntaxError
		if errors.As(ce.Err, &se) && se.Text != "" && start+se.Offset+len(se.Text) <= end {
			start += se.Offset
			end = start + len(se.Text)
		}
	}

	line := protocol.UInteger(p.Line - 1)
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: column(text, start)},
		End:   protocol.Position{Line: line, Character: column(text, end)},
	}
}

// message drops the equation text that CompileError repeats.
func message(err error) string {
	var ce *plot.CompileError
	if errors.As(err, &ce) {
		return fmt.Sprintf("%s: %v", ce.Stage, ce.Err)
	}
	return err.Error()
}

// Hover describes the locus of the equation on line (zero-based), or
// returns nil when the line holds no equation.
func (doc *Document) Hover(line int) *protocol.Hover {
	if doc.Diagram == nil {
		return nil
	}
	for _, p := range doc.Diagram.Plots {
		if p.Line != line+1 {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "`%s`\n\n", p.Equation)
		if p.Valid() {
			fmt.Fprintf(&b, "**%s**: %s", p.Result.Locus.Kind, format.Describe(p.Result.Locus))
		} else {
			fmt.Fprintf(&b, "**invalid**: %s", message(p.Err))
		}
		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: b.String(),
			},
		}
	}
	return nil
}

// column converts a byte offset within text to UTF-16 code units.
func column(text string, offset int) protocol.UInteger {
	if offset > len(text) {
		offset = len(text)
	}
	n := 0
	for _, r := range text[:offset] {
		n += utf16.RuneLen(r)
	}
	return protocol.UInteger(n)
}

// Documents holds the open documents by URI.
type Documents struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewDocuments() *Documents {
	return &Documents{docs: make(map[string]*Document)}
}

// Update replaces the text of uri and reparses it.
func (s *Documents) Update(uri, text string) *Document {
	doc := NewDocument(uri, text)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = doc
	return doc
}

// Load reads the document from disk.
func (s *Documents) Load(uri string) (*Document, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return s.Update(uri, string(content)), nil
}

func (s *Documents) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}

func (s *Documents) Remove(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func severityPtr(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func strPtr(s string) *string {
	return &s
}
