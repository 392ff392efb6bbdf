package listing

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/evcraddock/lease-rules/internal/fields"
	"github.com/evcraddock/lease-rules/internal/rules"
)

// ErrNotFound is returned when no listing has the requested ID.
var ErrNotFound = errors.New("listing not found")

// Repository stores raw listing records. Only inputs are stored; prices and
// scores are always recomputed.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a listing repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const upsertSQL = `INSERT INTO listings (id, borough, host_id, raw_json)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		borough = excluded.borough,
		host_id = excluded.host_id,
		raw_json = excluded.raw_json,
		updated_at = CURRENT_TIMESTAMP`

const selectColumns = `id, borough, host_id, raw_json, created_at, updated_at`

// Save inserts or replaces a raw listing. Records without an identifier are
// assigned one.
func (r *Repository) Save(raw fields.Record) (*Stored, error) {
	if raw == nil {
		return nil, ErrNilListing
	}

	id := recordID(raw, fields.ID)
	if id == "" {
		id = uuid.NewString()
		raw.Set(fields.ID, id)
	}

	c, err := AdaptCandidate(raw)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding listing %s: %w", id, err)
	}

	if _, err := r.db.Exec(upsertSQL, id, rules.NormalizeBorough(c.BoroughLabel()), c.Host.ID, string(data)); err != nil {
		return nil, fmt.Errorf("saving listing: %w", err)
	}

	return r.GetByID(id)
}

// GetByID returns a stored listing.
func (r *Repository) GetByID(id string) (*Stored, error) {
	query := fmt.Sprintf("SELECT %s FROM listings WHERE id = ?", selectColumns)
	s, err := scanStored(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying listing %s: %w", id, err)
	}
	return s, nil
}

// ListOptions controls filtering for List.
type ListOptions struct {
	Borough string // empty = all
	HostID  string // empty = all
}

// List returns stored listings, newest first.
func (r *Repository) List(opts ListOptions) (listings []*Stored, err error) {
	query := fmt.Sprintf("SELECT %s FROM listings", selectColumns)
	var args []interface{}
	var conditions []string

	if opts.Borough != "" {
		conditions = append(conditions, "borough = ?")
		args = append(args, rules.NormalizeBorough(opts.Borough))
	}
	if opts.HostID != "" {
		conditions = append(conditions, "host_id = ?")
		args = append(args, opts.HostID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing listings: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		s, err := scanStored(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		listings = append(listings, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}

	return listings, nil
}

// Candidates adapts every stored listing matching opts. Records that fail to
// adapt are skipped.
func (r *Repository) Candidates(opts ListOptions) ([]*Candidate, error) {
	stored, err := r.List(opts)
	if err != nil {
		return nil, err
	}

	out := make([]*Candidate, 0, len(stored))
	for _, s := range stored {
		c, err := AdaptCandidate(s.Raw)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// Delete removes a listing by ID.
func (r *Repository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM listings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting listing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}

	return nil
}

func scanStored(row interface{ Scan(...interface{}) error }) (*Stored, error) {
	var s Stored
	var rawJSON string
	if err := row.Scan(&s.ID, &s.Borough, &s.HostID, &rawJSON, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(rawJSON), &s.Raw); err != nil {
		return nil, fmt.Errorf("decoding listing %s: %w", s.ID, err)
	}
	return &s, nil
}
