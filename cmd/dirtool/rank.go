package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"communityconnect.org/internal/appconf"
	"communityconnect.org/internal/directory"
	"communityconnect.org/internal/geo"
	"communityconnect.org/internal/logging"
)

// referenceFlags are the --lat and --lon flags shared by rank and export.
type referenceFlags struct {
	lat, lon float64
}

func (f *referenceFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.lat, "lat", appconf.DefaultLatitude, "latitude of the reference point")
	cmd.Flags().Float64Var(&f.lon, "lon", appconf.DefaultLongitude, "longitude of the reference point")
}

func (f *referenceFlags) coordinate() (geo.Coordinate, error) {
	return geo.NewCoordinate(f.lat, f.lon)
}

// rankedListings opens the database and returns the businesses matching
// filter ranked around the reference point.
func rankedListings(cmd *cobra.Command, opts *rootOptions, ref geo.Coordinate, filter directory.Filter) ([]directory.Listing, error) {
	client, err := opts.openClient(cmd)
	if err != nil {
		return nil, err
	}
	defer logging.SafeCloseWithLogging(client, opts.logger(cmd), "directory_database")

	filter.Reference = &ref
	manager := directory.NewManager(client, ref, opts.logger(cmd))
	return manager.List(cmd.Context(), filter)
}

func newRankCmd(opts *rootOptions) *cobra.Command {
	var (
		ref      referenceFlags
		category string
		search   string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print businesses nearest first",
		Long: `Prints every business ordered by distance from the reference point.
Businesses without a location are listed last.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reference, err := ref.coordinate()
			if err != nil {
				return err
			}

			listings, err := rankedListings(cmd, opts, reference, directory.Filter{
				Search:   search,
				Category: category,
			})
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(listings, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal businesses: %w", err)
				}
				cmd.Println(string(data))
				return nil
			}

			if len(listings) == 0 {
				cmd.Println("No businesses found.")
				return nil
			}
			for i, l := range listings {
				cmd.Printf("%3d. %-32s %-14s %s\n", i+1, l.Name, l.Category, formatDistance(l))
			}
			return nil
		},
	}

	ref.register(cmd)
	cmd.Flags().StringVar(&category, "category", "", "only businesses in this category")
	cmd.Flags().StringVarP(&search, "search", "s", "", "match a substring of the name or category")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output businesses as JSON")
	return cmd
}

func formatDistance(l directory.Listing) string {
	if l.DistanceKm == nil {
		return "location unknown"
	}
	if l.Direction == "" {
		return fmt.Sprintf("%.2f km", *l.DistanceKm)
	}
	return fmt.Sprintf("%.2f km %s", *l.DistanceKm, l.Direction)
}
