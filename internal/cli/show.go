package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/lease-rules/internal/listing"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show listing details",
		Long:  "Show a stored listing as the matching engine sees it, including its per-frequency nightly rates.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	stored, c, err := getListing(args[0])
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"listing":   stored,
			"candidate": c,
		})
	}

	printCandidate(cmd.OutOrStdout(), c)
	return nil
}

// getListing returns a stored listing and its adapted form.
func getListing(id string) (*listing.Stored, *listing.Candidate, error) {
	if rc := remoteClient(); rc != nil {
		resp, err := rc.GetListing(id)
		if err != nil {
			return nil, nil, err
		}
		return resp.Listing, resp.Candidate, nil
	}

	repo, database, err := newListingRepo()
	if err != nil {
		return nil, nil, err
	}
	defer closeDB(database)

	stored, err := repo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}

	c, err := listing.AdaptCandidate(stored.Raw)
	if err != nil {
		return nil, nil, err
	}
	return stored, c, nil
}
