package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tablefn/function"
	"tablefn/internal/diagnostic"
	"tablefn/internal/mapping"
)

type checkOptions struct {
	failFast     bool
	maxConflicts int
	quiet        bool
}

func newCheckCommand(a *app) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check DEFINITION",
		Short: "Check that a mapping table is consistent",
		Long: `Validate the definition, load every source and report conflicting row
pairs, duplicate rows and rows that constrain nothing. Exits non-zero when the
definition is invalid or when any two compatible rows map a field to
different values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "Stop at the first conflict")
	cmd.Flags().IntVar(&opts.maxConflicts, "max-conflicts", 0, "Stop after this many conflicts (0 for no limit)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only print errors")

	return cmd
}

func runCheck(cmd *cobra.Command, a *app, opts *checkOptions, path string) error {
	a.logger.Printf("loading %s", path)

	mf, err := mapping.LoadFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	diags := mapping.Validate(mf)
	if diags.HasErrors() {
		printDiagnostics(out, diags, opts.quiet)
		return fmt.Errorf("%s: %d definition error(s)", path, len(diags.Errors))
	}

	domain, rng, err := mapping.Compile(mf)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	tbl, err := mapping.LoadTable(mf, domain, rng)
	if err != nil {
		return err
	}

	a.logger.Printf("checking %d rows of %s -> %s", tbl.Len(), domain.Name(), rng.Name())

	cfg := function.Config{FailFast: opts.failFast, MaxConflicts: opts.maxConflicts}
	diags.Merge(*function.Report(tbl, cfg))
	printDiagnostics(out, diags, opts.quiet)

	if _, err := function.BuildWithConfig(tbl, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Fprintf(out, "ok: %d rows\n", tbl.Len())

	return nil
}

func printDiagnostics(out io.Writer, diags *diagnostic.Diagnostics, quiet bool) {
	list := diags.All()
	if quiet {
		list = diags.Errors
	}

	for _, d := range list {
		fmt.Fprintf(out, "%s: %s\n", d.Severity, d)
	}
}
