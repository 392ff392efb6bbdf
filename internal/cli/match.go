package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/lease-rules/internal/listing"
	"github.com/evcraddock/lease-rules/internal/matching"
)

func newMatchCmd() *cobra.Command {
	var limit int
	var explain bool
	var borough string

	cmd := &cobra.Command{
		Use:   "match <proposal.json>",
		Short: "Rank stored listings against a proposal",
		Long:  "Score every stored listing against a guest proposal and print the best matches. Use - to read the proposal from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, args[0], limit, explain, borough)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", matching.DefaultLimit, "maximum number of matches")
	cmd.Flags().BoolVar(&explain, "explain", false, "show per-dimension scores and heuristics")
	cmd.Flags().StringVar(&borough, "borough", "", "only consider listings in this borough")

	return cmd
}

func runMatch(cmd *cobra.Command, path string, limit int, explain bool, borough string) error {
	proposal, err := readProposal(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	ranked, err := rank(proposal, limit, borough)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"results":            ranked,
			"max_possible_score": matching.MaxPossibleScore,
		})
	}

	return printRankedTable(cmd.OutOrStdout(), ranked, explain)
}

func rank(proposal *listing.Proposal, limit int, borough string) ([]matching.Ranked, error) {
	if c := remoteClient(); c != nil {
		resp, err := c.Match(proposal, limit, borough)
		if err != nil {
			return nil, err
		}
		return resp.Results, nil
	}

	repo, database, err := newListingRepo()
	if err != nil {
		return nil, err
	}
	defer closeDB(database)

	cands, err := repo.Candidates(listing.ListOptions{Borough: borough})
	if err != nil {
		return nil, err
	}

	ranked := matching.Rank(proposal, cands, limit, cfg.MatchOptions())
	slog.Debug("ranked candidates", "considered", len(cands), "returned", len(ranked))
	return ranked, nil
}

func readProposal(stdin io.Reader, path string) (*listing.Proposal, error) {
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

	var p listing.Proposal
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing proposal: %w", err)
	}
	return &p, nil
}
