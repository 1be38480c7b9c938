package main

import (
	"github.com/spf13/cobra"

	"communityconnect.org/internal/directory"
	"communityconnect.org/internal/export"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		ref referenceFlags
		out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write businesses, nearest first, to an .xlsx spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reference, err := ref.coordinate()
			if err != nil {
				return err
			}

			listings, err := rankedListings(cmd, opts, reference, directory.Filter{})
			if err != nil {
				return err
			}

			if err := export.WriteBusinesses(out, listings); err != nil {
				return err
			}
			cmd.Printf("exported %d businesses to %s\n", len(listings), out)
			return nil
		},
	}

	ref.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "businesses.xlsx", "output file")
	return cmd
}
