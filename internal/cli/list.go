package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/lease-rules/internal/listing"
)

func newListCmd() *cobra.Command {
	var opts listing.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored listings",
		Long:  "List all stored listings, optionally filtered by borough or host.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Borough, "borough", "", "only listings in this borough")
	cmd.Flags().StringVar(&opts.HostID, "host", "", "only listings from this host ID")

	return cmd
}

func runList(cmd *cobra.Command, opts listing.ListOptions) error {
	stored, err := listListings(opts)
	if err != nil {
		return err
	}

	if isJSON() {
		if stored == nil {
			stored = make([]*listing.Stored, 0)
		}
		return printJSON(cmd.OutOrStdout(), stored)
	}

	return printListingTable(cmd.OutOrStdout(), stored)
}

func listListings(opts listing.ListOptions) ([]*listing.Stored, error) {
	if c := remoteClient(); c != nil {
		return c.ListListings(opts)
	}

	repo, database, err := newListingRepo()
	if err != nil {
		return nil, err
	}
	defer closeDB(database)

	return repo.List(opts)
}
