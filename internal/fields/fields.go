// Package fields is the dictionary of canonical storage keys used by listing,
// proposal, and host records.
package fields

// Field is a canonical storage key in a raw record.
type Field string

// Listing fields.
const (
	ID            Field = "_id"
	BoroughName   Field = "borough_name"
	Borough       Field = "borough"
	DaysAvailable Field = "days_available"
	DatesBlocked  Field = "dates_blocked"
	MinimumWeeks  Field = "minimum_weeks"
	MaximumWeeks  Field = "maximum_weeks"
	MinimumNights Field = "minimum_nights"

	NightlyRate1 Field = "nightly_rate_1_night"
	NightlyRate2 Field = "nightly_rate_2_nights"
	NightlyRate3 Field = "nightly_rate_3_nights"
	NightlyRate4 Field = "nightly_rate_4_nights"
	NightlyRate5 Field = "nightly_rate_5_nights"
	NightlyRate6 Field = "nightly_rate_6_nights"
	NightlyRate7 Field = "nightly_rate_7_nights"

	PriceOverride Field = "price_override"
	CleaningFee   Field = "cleaning_fee"
	DamageDeposit Field = "damage_deposit"
	WeeklyRate    Field = "weekly_host_rate"
	MonthlyRate   Field = "monthly_host_rate"

	Amenities      Field = "amenities_in_unit"
	SafetyFeatures Field = "safety_features"
	HouseRules     Field = "house_rules"
	Photos         Field = "photos"
	RentalType     Field = "rental_type"
	Bedrooms       Field = "bedrooms"
	Bathrooms      Field = "bathrooms"
	Host           Field = "host"
)

// Host record fields.
const (
	HostID            Field = "_id"
	HostLinkedIn      Field = "linkedin_id"
	HostPhoneVerified Field = "phone_verified"
	HostUserVerified  Field = "user_verified"
)

var nightlyRates = map[int]Field{
	1: NightlyRate1,
	2: NightlyRate2,
	3: NightlyRate3,
	4: NightlyRate4,
	5: NightlyRate5,
	6: NightlyRate6,
	7: NightlyRate7,
}

// NightlyRate returns the per-tier rate field for a night count.
func NightlyRate(nights int) (Field, bool) {
	f, ok := nightlyRates[nights]
	return f, ok
}

// Record is a raw record keyed by canonical field names, as decoded from JSON.
type Record map[string]any

// Get returns the value stored under f. A present key holding nil reports ok.
func (r Record) Get(f Field) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[string(f)]
	return v, ok
}

// Set stores v under f.
func (r Record) Set(f Field, v any) {
	r[string(f)] = v
}

// String returns the value under f when it is a string.
func (r Record) String(f Field) string {
	v, _ := r.Get(f)
	s, _ := v.(string)
	return s
}

// Nested returns the value under f as a Record when it is an object.
func (r Record) Nested(f Field) Record {
	v, _ := r.Get(f)
	switch m := v.(type) {
	case Record:
		return m
	case map[string]any:
		return Record(m)
	}
	return nil
}
