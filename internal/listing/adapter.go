package listing

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/evcraddock/lease-rules/internal/fields"
	"github.com/evcraddock/lease-rules/internal/rules"
	"github.com/evcraddock/lease-rules/internal/validate"
)

// ErrNilListing is returned when there is no raw listing to adapt.
var ErrNilListing = errors.New("adaptCandidateListing: raw listing is required")

// pricingFields are copied verbatim into Candidate.Pricing.
var pricingFields = []fields.Field{
	fields.NightlyRate2,
	fields.NightlyRate3,
	fields.NightlyRate4,
	fields.NightlyRate5,
	fields.NightlyRate6,
	fields.NightlyRate7,
	fields.PriceOverride,
	fields.CleaningFee,
	fields.DamageDeposit,
}

// AdaptCandidate reshapes a raw listing record for the matching engine. It
// renames fields only; it neither scores nor validates.
func AdaptCandidate(raw fields.Record) (*Candidate, error) {
	if raw == nil {
		return nil, ErrNilListing
	}

	c := &Candidate{
		ID:            recordID(raw, fields.ID),
		BoroughName:   raw.String(fields.BoroughName),
		Borough:       raw.String(fields.Borough),
		DaysAvailable: parseDays(raw, fields.DaysAvailable),
		MinimumNights: optionalNumber(raw, fields.MinimumNights),
		Bedrooms:      optionalNumber(raw, fields.Bedrooms),
		Bathrooms:     optionalNumber(raw, fields.Bathrooms),
		Photos:        parsePhotos(raw),
		Host:          hostFromListing(raw),
		Pricing:       fields.Record{},
	}

	for _, f := range pricingFields {
		if v, ok := raw.Get(f); ok {
			c.Pricing.Set(f, v)
		}
	}

	return c, nil
}

// AdaptHost builds a host record from its raw form and counts its
// verifications.
func AdaptHost(raw fields.Record) Host {
	if raw == nil {
		return Host{}
	}
	h := Host{
		ID: recordID(raw, fields.HostID),
		Verification: rules.Verification{
			IdentityLinked: truthy(raw, fields.HostLinkedIn),
			PhoneVerified:  truthy(raw, fields.HostPhoneVerified),
			UserVerified:   truthy(raw, fields.HostUserVerified),
		},
	}
	h.Verifications = rules.CountVerifications(h.Verification)
	return h
}

// hostFromListing reads the nested host record, or a bare host reference.
func hostFromListing(raw fields.Record) Host {
	if nested := raw.Nested(fields.Host); nested != nil {
		return AdaptHost(nested)
	}
	return Host{ID: recordID(raw, fields.Host)}
}

func recordID(raw fields.Record, f fields.Field) string {
	v, _ := raw.Get(f)
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	}
	return ""
}

// optionalNumber returns nil for absent or non-numeric values.
func optionalNumber(raw fields.Record, f fields.Field) *float64 {
	v, ok := raw.Get(f)
	if !ok || v == nil {
		return nil
	}
	n := validate.Coerce(v)
	if math.IsNaN(n) {
		return nil
	}
	return &n
}

// parseDays accepts a JSON array of weekday indices or a string holding one.
func parseDays(raw fields.Record, f fields.Field) []int {
	v, _ := raw.Get(f)

	var items []any
	switch d := v.(type) {
	case []any:
		items = d
	case []int:
		return append([]int(nil), d...)
	case string:
		if err := json.Unmarshal([]byte(d), &items); err != nil {
			return nil
		}
	default:
		return nil
	}

	days := make([]int, 0, len(items))
	for _, item := range items {
		n := validate.Coerce(item)
		if math.IsNaN(n) || n != math.Trunc(n) || n < 0 || n > 6 {
			continue
		}
		days = append(days, int(n))
	}
	return days
}

// parsePhotos accepts photo URLs or objects carrying a "url" key.
func parsePhotos(raw fields.Record) []string {
	v, _ := raw.Get(fields.Photos)
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	var photos []string
	for _, item := range items {
		switch p := item.(type) {
		case string:
			if p != "" {
				photos = append(photos, p)
			}
		case map[string]any:
			if url, ok := p["url"].(string); ok && url != "" {
				photos = append(photos, url)
			}
		}
	}
	return photos
}

// truthy reads a loosely typed flag: booleans, non-zero numbers, and
// non-empty strings other than "false" and "0" are set.
func truthy(raw fields.Record, f fields.Field) bool {
	v, _ := raw.Get(f)
	switch b := v.(type) {
	case bool:
		return b
	case string:
		s := strings.TrimSpace(b)
		if parsed, err := strconv.ParseBool(s); err == nil {
			return parsed
		}
		return s != ""
	case nil:
		return false
	}
	n := validate.Coerce(v)
	return !math.IsNaN(n) && n != 0
}
