package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"defcompose/internal/compose"
	"defcompose/internal/defs"
	"defcompose/internal/diagnostic"
	"defcompose/internal/model"
)

func newCheckCommand(a *app) *cobra.Command {
	var (
		tiers      tierFiles
		local      string
		provenance bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate definition files and their composition",
		Long: `Validate each tier on its own, then merge them and report every
diagnostic without writing the result.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			sys, shared, err := tiers.load()
			if err != nil {
				return err
			}

			var diags diagnostic.Diagnostics
			if sys != nil {
				diags.Merge(*defs.ValidateSystem(sys))
			}

			diags.Merge(*defs.ValidateShared(shared))

			if local == "" {
				printDiagnostics(a.stdout, diags)
				return a.report(diags)
			}

			def, err := defs.LoadLocal(local)
			if err != nil {
				return err
			}

			diags.Merge(*defs.Validate(def))

			if err := diags.Error(); err != nil {
				printDiagnostics(a.stdout, diags)
				return err
			}

			res, err := a.composer().Merge(def, sys, shared)
			if err != nil {
				return err
			}

			diags.Merge(res.Diagnostics)
			diags.Merge(*defs.ValidateReferences(res.Definition))

			if provenance {
				printProvenance(a.stdout, compose.Provenance(res.Definition))
			}

			printDiagnostics(a.stdout, diags)

			return a.report(diags)
		},
	}

	tiers.register(cmd)
	cmd.Flags().StringVar(&local, "local", "", "local definition file")
	cmd.Flags().BoolVar(&provenance, "provenance", false, "print the origin of every composed field")

	return cmd
}

func printProvenance(w io.Writer, origins map[string]model.Origin) {
	names := make([]string, 0, len(origins))
	for n := range origins {
		names = append(names, n)
	}

	slices.Sort(names)

	for _, n := range names {
		fmt.Fprintf(w, "%s\t%s\n", n, origins[n])
	}
}

func printDiagnostics(w io.Writer, d diagnostic.Diagnostics) {
	for _, list := range [][]diagnostic.Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range list {
			fmt.Fprintf(w, "%s: %s\n", diag.Severity, diag)
		}
	}
}
