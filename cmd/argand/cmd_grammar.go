package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/Homlet/argand/grammar"
	"github.com/Homlet/argand/parser"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Equation grammar tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), grammar.Equation())
			return nil
		},
	}

	cmd.AddCommand(newGrammarPrintCmd())
	cmd.AddCommand(newGrammarCheckCmd())

	return cmd
}

func newGrammarPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print",
		Short: "Print the built-in equation grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), grammar.Equation())
			return nil
		},
	}
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:           "check <file>",
		Short:         "Parse and verify an EBNF equation grammar",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			f, err := os.Open(filename)
			if err != nil {
				return fmt.Errorf("open file: %w", err)
			}
			defer f.Close()

			g, err := grammar.Load(filename, f, startProduction)
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules, %d terminals\n", filename, len(g.Rules()), len(g.Terminals()))

			problems := tokenProblems(g)
			for _, p := range problems {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", filename, p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d terminal(s) the tokenizer cannot produce", len(problems))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", grammar.Start, "start production")

	return cmd
}

// tokenProblems reports the terminals of g that the built-in tokenizer
// never emits, either because no token kind has that name or because the
// grammar spells the kind differently.
func tokenProblems(g *grammar.Grammar) []string {
	var out []string
	for _, name := range g.Terminals() {
		kind, ok := parser.LookupTokenKind(name)
		if !ok {
			out = append(out, fmt.Sprintf("terminal %s is not a token kind", name))
			continue
		}
		if !g.Spells(name, kind.Example()) {
			out = append(out, fmt.Sprintf("terminal %s does not spell %q", name, kind.Example()))
		}
	}
	return out
}

// printErrors prints one line per error of an ebnf error list, which
// may be wrapped.
func printErrors(w io.Writer, err error) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			return
		}
	}
	fmt.Fprintln(w, err)
}
