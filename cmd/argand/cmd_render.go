package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Homlet/argand/diagram"
	"github.com/Homlet/argand/render"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newRenderCmd() *cobra.Command {
	var output string
	var width, height int

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Draw a diagram file as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := commonlog.GetLogger("argand.render")

			d, err := diagram.Load(args[0])
			if d == nil {
				return err
			}
			for _, le := range lineErrors(err) {
				log.Warningf("%s: %s", args[0], le)
			}
			for _, le := range d.Problems() {
				log.Warningf("%s: skipping %s", args[0], le)
			}

			var buf bytes.Buffer
			if err := render.SVG(&buf, d, width, height); err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write svg: %w", err)
			}
			log.Infof("wrote %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&width, "width", 800, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 600, "image height in pixels")

	return cmd
}
