// Package listing provides the candidate, proposal, and host models, the
// adapter from raw listing records, and listing storage.
package listing

import (
	"time"

	"github.com/evcraddock/lease-rules/internal/fields"
	"github.com/evcraddock/lease-rules/internal/rules"
)

// DefaultNightsPerWeek is assumed when a proposal states neither a night
// count nor selected days.
const DefaultNightsPerWeek = 4

// Candidate is a listing normalized for the matching engine.
type Candidate struct {
	ID            string   `json:"id"`
	BoroughName   string   `json:"borough_name,omitempty"`
	Borough       string   `json:"borough,omitempty"`
	DaysAvailable []int    `json:"days_available"`
	MinimumNights *float64 `json:"minimum_nights,omitempty"`
	Bedrooms      *float64 `json:"bedrooms,omitempty"`
	Bathrooms     *float64 `json:"bathrooms,omitempty"`
	Photos        []string `json:"photos,omitempty"`
	Host          Host     `json:"host"`

	// Pricing carries the tier rates, price override, cleaning fee, and
	// damage deposit under their canonical field names, values untouched.
	Pricing fields.Record `json:"pricing"`
}

// BoroughLabel returns the borough name, falling back to the short field.
func (c *Candidate) BoroughLabel() string {
	if c.BoroughName != "" {
		return c.BoroughName
	}
	return c.Borough
}

// Host is the verification record of a listing's host.
type Host struct {
	ID string `json:"id,omitempty"`
	rules.Verification
	Verifications int `json:"verifications"`
}

// ProposalListing is the listing a proposal was originally made against.
type ProposalListing struct {
	ID          string `json:"_id,omitempty"`
	BoroughName string `json:"borough_name,omitempty"`
	Borough     string `json:"borough,omitempty"`
}

// BoroughLabel returns the borough name, falling back to the short field.
func (l *ProposalListing) BoroughLabel() string {
	if l == nil {
		return ""
	}
	if l.BoroughName != "" {
		return l.BoroughName
	}
	return l.Borough
}

// Proposal is a guest's booking request.
type Proposal struct {
	ID               string           `json:"_id,omitempty"`
	NightlyPrice     float64          `json:"nightly_price"`
	NightsPerWeek    int              `json:"nights_per_week,omitempty"`
	DaysSelected     []int            `json:"days_selected,omitempty"`
	ReservationWeeks float64          `json:"reservation_weeks,omitempty"`
	Listing          *ProposalListing `json:"listing,omitempty"`
}

// Nights returns the requested nights per week: the explicit count, else the
// number of selected days, else DefaultNightsPerWeek.
func (p *Proposal) Nights() int {
	if p == nil {
		return DefaultNightsPerWeek
	}
	if p.NightsPerWeek > 0 {
		return p.NightsPerWeek
	}
	if len(p.DaysSelected) > 0 {
		return len(p.DaysSelected)
	}
	return DefaultNightsPerWeek
}

// Stored is a raw listing record as kept in the database.
type Stored struct {
	ID        string        `json:"id"`
	Borough   string        `json:"borough"`
	HostID    string        `json:"host_id,omitempty"`
	Raw       fields.Record `json:"raw"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
