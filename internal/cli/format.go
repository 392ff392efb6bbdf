package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/lease-rules/internal/listing"
	"github.com/evcraddock/lease-rules/internal/matching"
	"github.com/evcraddock/lease-rules/internal/pricing"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printCandidate prints a single adapted listing in text format.
func printCandidate(w io.Writer, c *listing.Candidate) {
	fmt.Fprintf(w, "Listing %s\n", c.ID)
	if b := c.BoroughLabel(); b != "" {
		fmt.Fprintf(w, "  Borough:  %s\n", b)
	}
	if len(c.DaysAvailable) > 0 {
		fmt.Fprintf(w, "  Days:     %s\n", formatDays(c.DaysAvailable))
	}
	if c.MinimumNights != nil {
		fmt.Fprintf(w, "  Min:      %g nights\n", *c.MinimumNights)
	}
	if c.Bedrooms != nil {
		fmt.Fprintf(w, "  Beds:     %g\n", *c.Bedrooms)
	}
	if c.Bathrooms != nil {
		fmt.Fprintf(w, "  Baths:    %g\n", *c.Bathrooms)
	}
	if c.Host.ID != "" {
		fmt.Fprintf(w, "  Host:     %s (%d verifications)\n", c.Host.ID, c.Host.Verifications)
	}
	for n := pricing.MinNights; n <= pricing.MaxNights; n++ {
		rate, err := pricing.NightlyRateByFrequency(c.Pricing, n)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %d nights: %s/night\n", n, formatMoney(rate))
	}
}

// printListingTable prints stored listings as a formatted table.
func printListingTable(w io.Writer, stored []*listing.Stored) error {
	if len(stored) == 0 {
		fmt.Fprintln(w, "No listings found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "ID\tBOROUGH\tHOST\tUPDATED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--\t-------\t----\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, s := range stored {
		borough := s.Borough
		if borough == "" {
			borough = "-"
		}
		host := s.HostID
		if host == "" {
			host = "-"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			truncate(s.ID, 36), borough, truncate(host, 24), s.UpdatedAt.Format("2006-01-02 15:04")); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(w, "\nTotal: %d listings\n", len(stored))
	return nil
}

// printBreakdown prints a pricing breakdown in text format.
func printBreakdown(w io.Writer, b *pricing.Breakdown) {
	fmt.Fprintf(w, "  Nightly:      %s\n", formatMoney(b.NightlyPrice))
	fmt.Fprintf(w, "  4-week rent:  %s\n", formatMoney(b.FourWeekRent))
	fmt.Fprintf(w, "  Reservation:  %s\n", formatMoney(b.ReservationTotal))
	fmt.Fprintf(w, "  Cleaning:     %s\n", formatMoney(b.CleaningFee))
	fmt.Fprintf(w, "  Total:        %s\n", formatMoney(b.GrandTotal))
	fmt.Fprintf(w, "  Deposit:      %s (refundable)\n", formatMoney(b.DamageDeposit))
}

// printRankedTable prints match results, best first. With explain, each row
// is followed by its per-dimension scores and heuristics.
func printRankedTable(w io.Writer, ranked []matching.Ranked, explain bool) error {
	if len(ranked) == 0 {
		fmt.Fprintln(w, "No matching listings.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "RANK\tID\tBOROUGH\tSCORE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "----\t--\t-------\t-----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for i, r := range ranked {
		borough := r.Candidate.BoroughLabel()
		if borough == "" {
			borough = "-"
		}
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%d/%d\n",
			i+1, truncate(r.Candidate.ID, 36), borough, r.Score.TotalScore, r.Score.MaxPossibleScore); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
		if explain {
			if _, err := fmt.Fprintf(tw, "\t%s\t\t\n", formatScoreBreakdown(r.Score.Breakdown)); err != nil {
				return fmt.Errorf("writing table row: %w", err)
			}
			if _, err := fmt.Fprintf(tw, "\t%s\t\t\n", formatHeuristics(r.Heuristics)); err != nil {
				return fmt.Errorf("writing table row: %w", err)
			}
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	return nil
}

func formatScoreBreakdown(b matching.Breakdown) string {
	return fmt.Sprintf("borough=%d price=%d schedule=%d weekly=%d duration=%d host=%d",
		b.Borough, b.Price, b.Schedule, b.WeeklyStay, b.Duration, b.Host)
}

func formatHeuristics(h matching.HeuristicsResult) string {
	var flags []string
	switch {
	case h.BoroughExact:
		flags = append(flags, "same-borough")
	case h.BoroughAdjacent:
		flags = append(flags, "adjacent-borough")
	}
	switch {
	case h.PriceWithin10Percent:
		flags = append(flags, "price±10%")
	case h.PriceWithin20Percent:
		flags = append(flags, "price±20%")
	case h.PriceWithin50Percent:
		flags = append(flags, "price±50%")
	}
	flags = append(flags, fmt.Sprintf("overlap=%d%%", h.ScheduleOverlapPercent))
	if h.SupportsWeeklyStays {
		flags = append(flags, "weekly")
	}
	if h.DurationMatch {
		flags = append(flags, "duration")
	}
	if h.HostVerified {
		flags = append(flags, "verified-host")
	}
	return strings.Join(flags, " ")
}

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// formatDays renders day indices as short weekday names.
func formatDays(days []int) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 0 && d < len(dayNames) {
			names = append(names, dayNames[d])
		}
	}
	return strings.Join(names, ",")
}

// formatMoney formats a dollar amount with commas and cents.
func formatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	s := fmt.Sprintf("%.2f", v)
	whole, cents := s[:len(s)-3], s[len(s)-3:]

	var parts []string
	for len(whole) > 3 {
		parts = append([]string{whole[len(whole)-3:]}, parts...)
		whole = whole[:len(whole)-3]
	}
	parts = append([]string{whole}, parts...)

	return sign + "$" + strings.Join(parts, ",") + cents
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
