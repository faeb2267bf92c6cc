package main

import (
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tablefn/function"
	"tablefn/internal/mapping"
	"tablefn/record"
)

type applyOptions struct {
	set     []string
	format  string
	explain bool
}

func newApplyCommand(a *app) *cobra.Command {
	opts := &applyOptions{}

	cmd := &cobra.Command{
		Use:   "apply DEFINITION",
		Short: "Evaluate the table for one input record",
		Long: `Build the function of the definition's table and apply it to the input
given with --set. The merged range record is printed with unconstrained
leaves as the wildcard token (YAML) or null (JSON).

Leaves that are not set are wildcards, and a wildcard input leaf only meets a
wildcard in a row's pattern. A partial input is therefore not "don't care":
with only name=yogi set, a row whose pattern requires species=bear does not
match. Set every leaf a row may test.`,
		Example: `  tablefn apply icecream.yaml --set brand_name=Acme --set flavour=ants
  tablefn apply icecream.yaml --set full_name.edition=2 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, a, opts, args[0])
		},
	}

	cmd.Flags().StringArrayVarP(&opts.set, "set", "s", nil, "Input leaf as path=value (repeatable)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "yaml", "Output format: yaml or json")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "Print the matching rows to stderr")

	return cmd
}

func runApply(cmd *cobra.Command, a *app, opts *applyOptions, path string) error {
	if opts.format != "yaml" && opts.format != "json" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	keyed, err := parseAssignments(opts.set)
	if err != nil {
		return err
	}

	mf, tbl, err := mapping.Open(path)
	if err != nil {
		return err
	}

	fn, err := function.Build(tbl)
	if err != nil {
		return err
	}

	a.logger.Printf("built %s -> %s from %d rows", fn.Domain().Name(), fn.Range().Name(), fn.Len())

	input, err := record.DecodeKeyed(fn.Domain(), keyed, mf.Wildcard)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}

	matched := fn.Matches(input)
	a.logger.Printf("%s matches %d rows", input, len(matched))

	if opts.explain {
		for _, r := range matched {
			fmt.Fprintln(cmd.ErrOrStderr(), r)
		}
	}

	return writeRecord(cmd, fn.Apply(input), opts.format, mf.Wildcard)
}

func writeRecord(cmd *cobra.Command, r record.Record, format, wildcard string) error {
	out := cmd.OutOrStdout()

	if format == "json" {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(out, string(data))

		return err
	}

	node, err := r.YAMLNode(wildcard)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)

	if err := enc.Encode(node); err != nil {
		return err
	}

	return enc.Close()
}

// parseAssignments turns path=value pairs into a keyed token map.
func parseAssignments(set []string) (map[string]string, error) {
	keyed := make(map[string]string, len(set))

	for _, s := range set {
		key, value, ok := strings.Cut(s, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("--set %q: want path=value", s)
		}

		if _, dup := keyed[key]; dup {
			return nil, errors.New("--set " + key + " given twice")
		}

		keyed[key] = value
	}

	return keyed, nil
}
