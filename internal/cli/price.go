package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evcraddock/lease-rules/internal/listing"
	"github.com/evcraddock/lease-rules/internal/pricing"
)

func newPriceCmd() *cobra.Command {
	var nights int
	var weeks float64

	cmd := &cobra.Command{
		Use:   "price <id>",
		Short: "Quote a stay at a stored listing",
		Long:  "Compute the nightly rate, 4-week rent, reservation total, and fees for a stay of --weeks weeks at --nights nights per week.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrice(cmd, args[0], nights, weeks)
		},
	}

	cmd.Flags().IntVar(&nights, "nights", listing.DefaultNightsPerWeek, "nights per week (2-7)")
	cmd.Flags().Float64Var(&weeks, "weeks", float64(pricing.WeeksPerCycle), "reservation length in weeks")

	return cmd
}

func runPrice(cmd *cobra.Command, id string, nights int, weeks float64) error {
	b, err := quote(id, nights, weeks)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), b)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Listing %s: %d nights/week for %g weeks\n", id, nights, weeks)
	printBreakdown(cmd.OutOrStdout(), b)
	return nil
}

func quote(id string, nights int, weeks float64) (*pricing.Breakdown, error) {
	if c := remoteClient(); c != nil {
		return c.Price(id, nights, weeks)
	}

	repo, database, err := newListingRepo()
	if err != nil {
		return nil, err
	}
	defer closeDB(database)

	stored, err := repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	return pricing.CalculateBreakdown(pricing.BreakdownParams{
		Listing:          stored.Raw,
		NightsPerWeek:    nights,
		ReservationWeeks: weeks,
	})
}

func newGuestPriceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guest-price <host-rate> <nights>",
		Short: "Convert a host rate to the guest-facing price",
		Long:  "Apply the full-week discount and site markup to a host nightly rate.",
		Args:  cobra.ExactArgs(2),
		RunE:  runGuestPrice,
	}
}

func runGuestPrice(cmd *cobra.Command, args []string) error {
	rate, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid host rate: %s", args[0])
	}
	nights, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid nights: %s", args[1])
	}

	var price float64
	if c := remoteClient(); c != nil {
		price, err = c.GuestPrice(rate, nights)
	} else {
		price, err = pricing.GuestFacingPrice(rate, nights)
	}
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{
			"host_rate":   rate,
			"nights":      nights,
			"guest_price": price,
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), formatMoney(price))
	return nil
}
