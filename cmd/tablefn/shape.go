package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tablefn/internal/mapping"
	"tablefn/shape"
)

func newShapeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shape DEFINITION",
		Short: "Print the domain and range shapes",
		Long:  "Compile the definition and list every leaf of its domain and range in row order.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.logger.Printf("compiling %s", args[0])

			mf, err := mapping.LoadFile(args[0])
			if err != nil {
				return err
			}

			domain, rng, err := mapping.Compile(mf)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printShape(out, "domain", domain, 0)
			printShape(out, "range", rng, domain.Width())

			return nil
		},
	}
}

func printShape(out io.Writer, role string, s *shape.Shape, offset int) {
	fmt.Fprintf(out, "%s %s\n", role, s.Name())

	for i, ref := range s.Leaves() {
		fmt.Fprintf(out, "  %3d  %-30s %s\n", offset+i, ref.Path, ref.Leaf)
	}
}
