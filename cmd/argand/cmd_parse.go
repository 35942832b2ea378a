package main

import (
	"fmt"

	"github.com/Homlet/argand/format"
	"github.com/Homlet/argand/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var showTokens bool
	var showMatch bool
	var flags parserFlags

	cmd := &cobra.Command{
		Use:   "parse <equation>",
		Short: "Tokenize and parse an equation and dump the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			equation := args[0]
			out := cmd.OutOrStdout()
			opts, err := flags.options()
			if err != nil {
				return err
			}
			if outputFormat != "text" && outputFormat != "json" {
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			switch {
			case showTokens:
				tokens := parser.Tokenize(equation, opts...)
				if outputFormat == "json" {
					data, err := format.TokensJSON(tokens)
					if err != nil {
						return fmt.Errorf("encode json: %w", err)
					}
					fmt.Fprintln(out, string(data))
					return nil
				}
				for _, tok := range tokens {
					fmt.Fprintln(out, tok)
				}
			case showMatch:
				m, err := parser.ParseMatch(equation, opts...)
				if err != nil {
					return fmt.Errorf("parse: %w", err)
				}
				if outputFormat == "json" {
					return format.NewMatchJSONEncoder(out).Encode(m)
				}
				fmt.Fprintln(out, m)
			default:
				node, err := parser.Parse(equation, opts...)
				if err != nil {
					return fmt.Errorf("parse: %w", err)
				}
				if outputFormat == "json" {
					return format.NewASTJSONEncoder(out).Encode(node)
				}
				fmt.Fprintln(out, node)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&showTokens, "tokens", false, "dump the token stream")
	cmd.Flags().BoolVar(&showMatch, "match", false, "dump the parse-match tree")
	cmd.MarkFlagsMutuallyExclusive("tokens", "match")
	flags.register(cmd)

	return cmd
}
