// Package cli defines the cobra command tree for lr.
package cli

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/lease-rules/internal/client"
	"github.com/evcraddock/lease-rules/internal/config"
	"github.com/evcraddock/lease-rules/internal/db"
	"github.com/evcraddock/lease-rules/internal/listing"
	"github.com/evcraddock/lease-rules/internal/logging"
)

var (
	flagFormat string
	flagDB     string
	flagServer string

	cfg config.Config
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lr",
		Short:         "Price and match rental listings",
		Long:          "A tool to price rental listings by weekly frequency and rank listings against guest proposals. Import listings, quote stays, and run matches via CLI or HTTP API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			logging.Setup(os.Stderr, cfg.DevMode)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: ~/.config/lr/listings.db)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "lr API base URL; when set, commands run against the server instead of the local database")

	root.AddCommand(
		newImportCmd(),
		newListCmd(),
		newShowCmd(),
		newRemoveCmd(),
		newPriceCmd(),
		newGuestPriceCmd(),
		newMatchCmd(),
		newServeCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// openDB opens the SQLite database from the --db flag, the config file, or
// the default path, in that order.
func openDB() (*sql.DB, error) {
	path := flagDB
	if path == "" {
		path = cfg.DBPath
	}
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

// newListingRepo opens the database and returns a listing repository.
// Callers must close the returned database.
func newListingRepo() (*listing.Repository, *sql.DB, error) {
	database, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	return listing.NewRepository(database), database, nil
}

// remoteClient returns an API client when a server is configured by flag,
// config, or LR_SERVER_URL, and nil otherwise.
func remoteClient() *client.Client {
	url := flagServer
	if url == "" {
		url = cfg.ServerURL
	}
	if url == "" {
		return nil
	}
	return client.New(strings.TrimRight(url, "/"))
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
