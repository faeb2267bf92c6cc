// Package main provides the CLI entrypoint for tablefn.
//
// tablefn loads a mapping table described by a YAML definition file and:
//   - checks that the table defines a function (check)
//   - evaluates the function for one input record (apply)
//   - prints the compiled domain and range shapes (shape)
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

type app struct {
	verbose bool
	logger  *log.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "tablefn",
		Short: "Wildcard mapping table tool",
		Long: `tablefn turns a table of wildcard patterns into a function from domain
records to range records. Rows are read from CSV sources listed in a YAML
definition file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			out := io.Discard
			if a.verbose {
				out = cmd.ErrOrStderr()
			}

			a.logger = log.New(out, "tablefn: ", 0)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log progress to stderr")

	rootCmd.AddCommand(newCheckCommand(a))
	rootCmd.AddCommand(newApplyCommand(a))
	rootCmd.AddCommand(newShapeCommand(a))

	return rootCmd
}
