package main

import (
	"fmt"

	"github.com/Homlet/argand/format"
	"github.com/Homlet/argand/plot"
	"github.com/spf13/cobra"
)

func newCompileCmd() *cobra.Command {
	var outputFormat string
	var flags parserFlags

	cmd := &cobra.Command{
		Use:   "compile <equation>...",
		Short: "Classify the locus of each equation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}

			var encoder format.Encoder
			switch outputFormat {
			case "text":
				encoder = format.NewLineEncoder(cmd.OutOrStdout())
			case "json":
				encoder = format.NewJSONEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			failed := 0
			for _, equation := range args {
				res, err := plot.Compile(equation, opts...)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					failed++
					continue
				}
				if err := encoder.Encode(res); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d equation(s) failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	flags.register(cmd)

	return cmd
}
