package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/lease-rules/internal/fields"
	"github.com/evcraddock/lease-rules/internal/listing"
	"github.com/evcraddock/lease-rules/internal/matching"
	"github.com/evcraddock/lease-rules/internal/pricing"
	"github.com/evcraddock/lease-rules/internal/validate"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// pricingError maps a pricing failure to a response. A missing rate is
// well-formed input the listing cannot price, so it is 422.
func pricingError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	var ve *validate.Error
	if errors.As(err, &ve) {
		code = http.StatusBadRequest
		if ve.Kind == validate.MissingRate {
			code = http.StatusUnprocessableEntity
		}
	}
	slog.WarnContext(r.Context(), "pricing rejected", "error", err)
	apiError(w, err.Error(), code)
}

// storeError maps a repository failure to a response.
func storeError(w http.ResponseWriter, err error) {
	if errors.Is(err, listing.ErrNotFound) {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}
	apiError(w, err.Error(), http.StatusInternalServerError)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// apiListListings returns stored listings, optionally filtered.
func (s *Server) apiListListings(w http.ResponseWriter, r *http.Request) {
	opts := listing.ListOptions{
		Borough: r.URL.Query().Get("borough"),
		HostID:  r.URL.Query().Get("host"),
	}

	stored, err := s.listings.List(opts)
	if err != nil {
		storeError(w, err)
		return
	}
	if stored == nil {
		stored = make([]*listing.Stored, 0)
	}

	apiJSON(w, stored, http.StatusOK)
}

// apiSaveListing stores a raw listing record.
func (s *Server) apiSaveListing(w http.ResponseWriter, r *http.Request) {
	var raw fields.Record
	if !decodeBody(w, r, &raw) {
		return
	}
	if raw == nil {
		apiError(w, "listing is required", http.StatusBadRequest)
		return
	}

	stored, err := s.listings.Save(raw)
	if err != nil {
		storeError(w, err)
		return
	}

	apiJSON(w, stored, http.StatusCreated)
}

// apiGetListing returns a stored listing with its adapted candidate form.
func (s *Server) apiGetListing(w http.ResponseWriter, r *http.Request) {
	stored, err := s.listings.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err)
		return
	}

	c, err := listing.AdaptCandidate(stored.Raw)
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	type response struct {
		Listing   *listing.Stored    `json:"listing"`
		Candidate *listing.Candidate `json:"candidate"`
	}
	apiJSON(w, response{Listing: stored, Candidate: c}, http.StatusOK)
}

// apiDeleteListing removes a stored listing.
func (s *Server) apiDeleteListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.listings.Delete(id); err != nil {
		storeError(w, err)
		return
	}
	apiJSON(w, map[string]interface{}{"id": id, "removed": true}, http.StatusOK)
}

// apiListingPricing prices a stored listing for ?nights=&weeks=.
func (s *Server) apiListingPricing(w http.ResponseWriter, r *http.Request) {
	nights, err := strconv.Atoi(r.URL.Query().Get("nights"))
	if err != nil {
		apiError(w, "nights must be an integer", http.StatusBadRequest)
		return
	}
	weeks, err := strconv.ParseFloat(r.URL.Query().Get("weeks"), 64)
	if err != nil {
		apiError(w, "weeks must be a number", http.StatusBadRequest)
		return
	}

	stored, err := s.listings.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		storeError(w, err)
		return
	}

	b, err := pricing.CalculateBreakdown(pricing.BreakdownParams{
		Listing:          stored.Raw,
		NightsPerWeek:    nights,
		ReservationWeeks: weeks,
	})
	if err != nil {
		pricingError(w, r, err)
		return
	}

	apiJSON(w, b, http.StatusOK)
}

// apiPricing prices an unstored listing record.
func (s *Server) apiPricing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Listing          fields.Record `json:"listing"`
		NightsPerWeek    int           `json:"nights_per_week"`
		ReservationWeeks float64       `json:"reservation_weeks"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	b, err := pricing.CalculateBreakdown(pricing.BreakdownParams{
		Listing:          req.Listing,
		NightsPerWeek:    req.NightsPerWeek,
		ReservationWeeks: req.ReservationWeeks,
	})
	if err != nil {
		pricingError(w, r, err)
		return
	}

	apiJSON(w, b, http.StatusOK)
}

// apiGuestPrice converts a host rate into the guest-facing nightly price.
func (s *Server) apiGuestPrice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HostRate float64 `json:"host_rate"`
		Nights   int     `json:"nights"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	price, err := pricing.GuestFacingPrice(req.HostRate, req.Nights)
	if err != nil {
		pricingError(w, r, err)
		return
	}

	apiJSON(w, map[string]interface{}{
		"host_rate":   req.HostRate,
		"nights":      req.Nights,
		"guest_price": price,
	}, http.StatusOK)
}

// apiMatch ranks stored listings against a proposal.
func (s *Server) apiMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Proposal *listing.Proposal `json:"proposal"`
		Limit    int               `json:"limit"`
		Borough  string            `json:"borough"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Proposal == nil {
		apiError(w, "proposal is required", http.StatusBadRequest)
		return
	}

	cands, err := s.listings.Candidates(listing.ListOptions{Borough: req.Borough})
	if err != nil {
		storeError(w, err)
		return
	}

	ranked := matching.Rank(req.Proposal, cands, req.Limit, s.opts)
	slog.DebugContext(r.Context(), "ranked candidates", "considered", len(cands), "returned", len(ranked))

	apiJSON(w, map[string]interface{}{
		"results":            ranked,
		"max_possible_score": matching.MaxPossibleScore,
	}, http.StatusOK)
}

// apiMatchScore scores a single raw listing against a proposal. A separate
// host record, when given, replaces the listing's own.
func (s *Server) apiMatchScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Listing  fields.Record     `json:"listing"`
		Proposal *listing.Proposal `json:"proposal"`
		Host     fields.Record     `json:"host"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := listing.AdaptCandidate(req.Listing)
	if err != nil {
		apiError(w, fmt.Sprintf("adapting listing: %v", err), http.StatusBadRequest)
		return
	}

	in := matching.Input{Candidate: c, Proposal: req.Proposal, Options: s.opts}
	if req.Host != nil {
		h := listing.AdaptHost(req.Host)
		in.Host = &h
	}

	apiJSON(w, map[string]interface{}{
		"score":      matching.Score(in),
		"heuristics": matching.Heuristics(in),
	}, http.StatusOK)
}
