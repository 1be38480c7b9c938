package main

import (
	"github.com/spf13/cobra"

	"communityconnect.org/internal/logging"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load businesses from a JSON seed file",
		Long: `Loads businesses from a JSON seed file. Rows with an id that already
exists are replaced, so seeding twice is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := opts.openClient(cmd)
			if err != nil {
				return err
			}
			defer logging.SafeCloseWithLogging(client, opts.logger(cmd), "directory_database")

			n, err := client.SeedFromJSON(cmd.Context(), file)
			if err != nil {
				return err
			}
			cmd.Printf("seeded %d businesses from %s\n", n, file)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "data/seeds/businesses.json", "seed file")
	return cmd
}
