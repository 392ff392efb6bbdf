package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a listing",
		Long:  "Remove a stored listing.",
		Args:  cobra.ExactArgs(1),
		RunE:  runRemove,
	}
}

func runRemove(cmd *cobra.Command, args []string) error {
	id := args[0]

	if err := deleteListing(id); err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"id":      id,
			"removed": true,
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Listing %s removed.\n", id)
	return nil
}

func deleteListing(id string) error {
	if c := remoteClient(); c != nil {
		return c.DeleteListing(id)
	}

	repo, database, err := newListingRepo()
	if err != nil {
		return err
	}
	defer closeDB(database)

	return repo.Delete(id)
}
