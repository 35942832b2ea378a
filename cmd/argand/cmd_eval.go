package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Homlet/argand/locus"
	"github.com/Homlet/argand/parser"
	"github.com/Homlet/argand/plot"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	var at string
	var flags parserFlags

	cmd := &cobra.Command{
		Use:   "eval <equation>",
		Short: "Evaluate both sides of an equation at a point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			z, err := parseComplex(at, flags.unit)
			if err != nil {
				return err
			}

			root, err := parser.Parse(args[0], opts...)
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			out := cmd.OutOrStdout()
			if op, ok := root.(*parser.Operator); ok && op.Op.IsRelation() {
				for i, side := range []string{"left", "right"} {
					v, err := parser.EvalAt(op.Children[i], z)
					if err != nil {
						return fmt.Errorf("evaluate %s side: %w", side, err)
					}
					fmt.Fprintf(out, "%s\t%s\n", side, parser.FormatComplex(v))
				}
			}
			v, err := parser.EvalAt(root, z)
			if err != nil {
				return fmt.Errorf("evaluate: %w", err)
			}
			fmt.Fprintf(out, "value\t%s\n", parser.FormatComplex(v))

			if res, err := plot.Compile(args[0], opts...); err == nil {
				fmt.Fprintf(out, "locus\t%s contains %s: %t\n",
					res.Locus.Kind, parser.FormatComplex(z), res.Locus.Contains(locus.VecOf(z)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "0", "value of the variable, e.g. 1+2j")
	flags.register(cmd)

	return cmd
}

// parseComplex reads a complex number written with the imaginary unit
// letter, e.g. "1-2j", "3j" or "j".
func parseComplex(s, unit string) (complex128, error) {
	t := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if t == unit || t == "+"+unit || t == "-"+unit {
		t = strings.Replace(t, unit, "1"+unit, 1)
	}
	t = strings.ReplaceAll(t, unit, "i")
	c, err := strconv.ParseComplex(t, 128)
	if err != nil {
		return 0, fmt.Errorf("parse complex %q: %w", s, err)
	}
	return c, nil
}
