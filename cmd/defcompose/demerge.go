package main

import (
	"github.com/spf13/cobra"

	"defcompose/internal/defs"
)

func newDemergeCommand(a *app) *cobra.Command {
	var (
		tiers  tierFiles
		merged string
	)

	cmd := &cobra.Command{
		Use:     "demerge",
		Short:   "Split a composed definition back into its local part",
		Example: `  defcompose demerge --system sys.yaml --shared shared.yaml --merged merged.yaml -o article.yaml`,
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			sys, shared, err := tiers.load()
			if err != nil {
				return err
			}

			def, err := defs.LoadLocal(merged)
			if err != nil {
				return err
			}

			res, err := a.composer().Demerge(def, sys, shared)
			if err != nil {
				return err
			}

			if err := a.report(res.Diagnostics); err != nil {
				return err
			}

			return a.write(res.Definition)
		},
	}

	tiers.register(cmd)
	cmd.Flags().StringVar(&merged, "merged", "", "composed definition file")
	_ = cmd.MarkFlagRequired("merged")

	return cmd
}
