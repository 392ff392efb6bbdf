package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/lease-rules/internal/fields"
	"github.com/evcraddock/lease-rules/internal/listing"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import listings from JSON",
		Long:  "Import raw listing records from a JSON file holding one object or an array of objects. Use - to read stdin. Records with an existing ID are replaced.",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	records, err := readListings(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	save, done, err := listingSaver()
	if err != nil {
		return err
	}
	defer done()

	saved := make([]*listing.Stored, 0, len(records))
	for i, raw := range records {
		s, err := save(raw)
		if err != nil {
			return fmt.Errorf("importing record %d: %w", i, err)
		}
		slog.Debug("imported listing", "id", s.ID, "borough", s.Borough)
		saved = append(saved, s)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), saved)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d listings.\n", len(saved))
	return nil
}

// readListings decodes one record or an array of records from path, or from
// stdin when path is "-".
func readListings(stdin io.Reader, path string) ([]fields.Record, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	switch t := v.(type) {
	case map[string]interface{}:
		return []fields.Record{t}, nil
	case []interface{}:
		out := make([]fields.Record, 0, len(t))
		for i, item := range t {
			m, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("record %d is not an object", i)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s: expected a listing object or an array of listings", path)
	}
}

// listingSaver returns a save function for the configured backend and a
// cleanup to run when done.
func listingSaver() (func(fields.Record) (*listing.Stored, error), func(), error) {
	if c := remoteClient(); c != nil {
		return c.SaveListing, func() {}, nil
	}

	repo, database, err := newListingRepo()
	if err != nil {
		return nil, nil, err
	}
	return repo.Save, func() { closeDB(database) }, nil
}
