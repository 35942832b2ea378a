package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/Homlet/argand/grammar"
	"github.com/Homlet/argand/parser"
	"github.com/spf13/cobra"
)

// parserFlags are the tokenizer and grammar settings shared by the
// commands that read equations.
type parserFlags struct {
	variable    string
	unit        string
	strict      bool
	grammarFile string
}

func (f *parserFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.variable, "variable", "z", "letter naming the complex variable")
	cmd.Flags().StringVar(&f.unit, "unit", "j", "letter naming the imaginary unit")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "reject letters other than the variable")
	cmd.Flags().StringVar(&f.grammarFile, "grammar", "", "EBNF grammar file to parse with instead of the built-in one")
}

func (f *parserFlags) options() ([]parser.Option, error) {
	variable, err := letter("variable", f.variable)
	if err != nil {
		return nil, err
	}
	unit, err := letter("unit", f.unit)
	if err != nil {
		return nil, err
	}
	if variable == unit {
		return nil, fmt.Errorf("variable and unit must differ, both are %q", variable)
	}

	opts := []parser.Option{parser.WithVariable(variable), parser.WithImaginaryUnit(unit)}
	if f.strict {
		opts = append(opts, parser.WithStrictVariable())
	}
	if f.grammarFile != "" {
		file, err := os.Open(f.grammarFile)
		if err != nil {
			return nil, fmt.Errorf("open grammar: %w", err)
		}
		defer file.Close()
		g, err := grammar.Load(f.grammarFile, file, grammar.Start)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithGrammar(g))
	}
	return opts, nil
}

func letter(name, s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r < 'a' || r > 'z' {
		return 0, fmt.Errorf("--%s must be a single lowercase letter, got %q", name, s)
	}
	return r, nil
}
