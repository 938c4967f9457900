package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/retroglue/retroglue/internal/harness"
)

// newInfoCmd creates the info subcommand: load a core and print its identity
// block without initializing it.
func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <core>",
		Short: "Print a core's identity and API version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := harness.Open(args[0])
			if err != nil {
				return err
			}

			name, version, exts, needFullPath := lib.SystemInfo()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "library:\t%s %s\n", name, version)
			fmt.Fprintf(w, "api version:\t%d\n", lib.APIVersion())
			fmt.Fprintf(w, "extensions:\t%s\n", exts)
			fmt.Fprintf(w, "needs full path:\t%t\n", needFullPath)
			return w.Flush()
		},
	}
}
