package main

import (
	"errors"
	"fmt"

	"github.com/Homlet/argand/diagram"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Report malformed lines and invalid equations in diagram files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			problems := 0
			for _, path := range args {
				d, err := diagram.Load(path)
				if d == nil {
					return err
				}
				lineErrs := append(lineErrors(err), d.Problems()...)
				for _, le := range lineErrs {
					fmt.Fprintf(out, "%s:%d: %v\n", path, le.Line, le.Err)
				}
				problems += len(lineErrs)
			}
			if problems > 0 {
				return fmt.Errorf("%d problem(s) found", problems)
			}
			return nil
		},
	}
}

// lineErrors unpacks the joined errors returned by diagram.Parse.
func lineErrors(err error) []*diagram.LineError {
	if err == nil {
		return nil
	}
	var errs []error
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	} else {
		errs = []error{err}
	}

	var out []*diagram.LineError
	for _, e := range errs {
		var le *diagram.LineError
		if errors.As(e, &le) {
			out = append(out, le)
		} else {
			out = append(out, &diagram.LineError{Err: e})
		}
	}
	return out
}
