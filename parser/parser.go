package parser

// Parse turns equation text into an AST. The text is tokenized, matched
// against the grammar, regrouped for left associativity and built.
func Parse(text string, opts ...Option) (Node, error) {
	cfg := newConfig(opts)
	m, err := parseMatch(text, cfg)
	if err != nil {
		return nil, err
	}
	return newBuilder(cfg).build(m)
}

// ParseMatch returns the associativity-fixed match tree for text.
func ParseMatch(text string, opts ...Option) (*Match, error) {
	return parseMatch(text, newConfig(opts))
}

func parseMatch(text string, cfg *config) (*Match, error) {
	tokens := newLexer(text, cfg).Tokenize()
	if err := checkVariables(tokens, cfg); err != nil {
		return nil, err
	}
	m, err := matchAll(cfg.grammar, tokens, len(text))
	if err != nil {
		return nil, err
	}
	return FixAssociativity(m, LeftAssociative...), nil
}

// checkVariables rejects equations that name more than one variable letter.
func checkVariables(tokens []Token, cfg *config) error {
	var first string
	for _, tok := range tokens {
		if tok.Kind != TokenVar {
			continue
		}
		if cfg.strict && tok.Text != string(cfg.variable) {
			return &SyntaxError{Offset: tok.Offset, Text: tok.Text, Err: ErrUnknownVariable}
		}
		switch first {
		case "":
			first = tok.Text
		case tok.Text:
		default:
			return &SyntaxError{Offset: tok.Offset, Text: tok.Text, Err: ErrMultipleVariables}
		}
	}
	return nil
}
