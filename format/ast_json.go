package format

import (
	"encoding/json"
	"io"

	"github.com/Homlet/argand/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(node parser.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Op       string         `json:"op,omitempty"`
	Value    string         `json:"value,omitempty"`
	Name     string         `json:"name,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

func nodeToJSON(n parser.Node) *astJSONNode {
	switch n := n.(type) {
	case *parser.Number:
		return &astJSONNode{Kind: "number", Value: parser.FormatComplex(n.Value)}
	case *parser.Variable:
		return &astJSONNode{Kind: "variable", Name: n.Name}
	case *parser.Operator:
		jn := &astJSONNode{Kind: "operator", Op: n.Op.String()}
		jn.Children = make([]*astJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
		return jn
	}
	return &astJSONNode{Kind: "unknown"}
}

// MatchJSONEncoder writes parse-match trees.
type MatchJSONEncoder struct {
	w io.Writer
}

func NewMatchJSONEncoder(w io.Writer) *MatchJSONEncoder {
	return &MatchJSONEncoder{w: w}
}

func (e *MatchJSONEncoder) Encode(m *parser.Match) error {
	text, err := e.MarshalText(m)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *MatchJSONEncoder) MarshalText(m *parser.Match) ([]byte, error) {
	return json.MarshalIndent(matchToJSON(m), "", "  ")
}

type matchJSONNode struct {
	Rule     string           `json:"rule"`
	Token    *tokenJSON       `json:"token,omitempty"`
	Children []*matchJSONNode `json:"children,omitempty"`
}

type tokenJSON struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Offset int    `json:"offset"`
}

func matchToJSON(m *parser.Match) *matchJSONNode {
	jn := &matchJSONNode{Rule: m.Rule}
	if m.IsTerminal() {
		tok := tokenToJSON(*m.Token)
		jn.Token = &tok
		return jn
	}
	jn.Children = make([]*matchJSONNode, len(m.Children))
	for i, child := range m.Children {
		jn.Children[i] = matchToJSON(child)
	}
	return jn
}

func tokenToJSON(t parser.Token) tokenJSON {
	return tokenJSON{Kind: t.Kind.String(), Text: t.Text, Offset: t.Offset}
}

// TokensJSON renders a token stream as a JSON array.
func TokensJSON(tokens []parser.Token) ([]byte, error) {
	out := make([]tokenJSON, len(tokens))
	for i, t := range tokens {
		out[i] = tokenToJSON(t)
	}
	return json.MarshalIndent(out, "", "  ")
}
