package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/Homlet/argand/diagram"
	"github.com/Homlet/argand/ui"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newUICmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "ui [file]",
		Short: "Start the web UI server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := openDiagram(args)
			if err != nil {
				return err
			}

			server, err := ui.NewServer(d)
			if err != nil {
				return fmt.Errorf("create server: %w", err)
			}
			server.Start()
			defer server.Stop()

			displayAddr := addr
			if strings.HasPrefix(addr, ":") {
				displayAddr = "localhost" + addr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Starting server at http://%s\n", displayAddr)
			return http.ListenAndServe(addr, server)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "address to listen on")

	return cmd
}

// openDiagram loads the named diagram file, or starts a new one that will
// be saved there if it does not exist yet.
func openDiagram(args []string) (*diagram.Diagram, error) {
	if len(args) == 0 {
		return diagram.New(), nil
	}
	path := args[0]
	d, err := diagram.Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		d = diagram.New()
		if err := d.SaveAs(path); err != nil {
			return nil, err
		}
		return d, nil
	case d == nil:
		return nil, err
	}
	// Malformed lines are kept and written back on save.
	log := commonlog.GetLogger("argand.ui")
	for _, le := range lineErrors(err) {
		log.Warningf("%s: %s", path, le)
	}
	for _, le := range d.Problems() {
		log.Warningf("%s: %s", path, le)
	}
	return d, nil
}
