package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"defcompose/internal/defs"
)

func newMergeCommand(a *app) *cobra.Command {
	var (
		tiers tierFiles
		local string
		dump  bool
	)

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge a local definition with the system and shared tiers",
		Example: `  defcompose merge --system sys.yaml --shared shared.yaml --local article.yaml
  defcompose merge --system sys.yaml --local article.yaml -o merged.yaml`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			sys, shared, err := tiers.load()
			if err != nil {
				return err
			}

			def, err := defs.LoadLocal(local)
			if err != nil {
				return err
			}

			res, err := a.composer().Merge(def, sys, shared)
			if err != nil {
				return err
			}

			if dump {
				spew.Fdump(a.stderr, res.Definition)
			}

			if err := a.report(res.Diagnostics); err != nil {
				return err
			}

			return a.write(res.Definition)
		},
	}

	tiers.register(cmd)
	cmd.Flags().StringVar(&local, "local", "", "local definition file")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the composed tree to standard error")
	_ = cmd.MarkFlagRequired("local")

	return cmd
}
