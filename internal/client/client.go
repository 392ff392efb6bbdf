// Package client provides an HTTP client for the lr JSON API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/evcraddock/lease-rules/internal/fields"
	"github.com/evcraddock/lease-rules/internal/listing"
	"github.com/evcraddock/lease-rules/internal/matching"
	"github.com/evcraddock/lease-rules/internal/pricing"
)

// Client is an HTTP client for the lr API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// ShowResponse is the response from GET /api/listings/{id}.
type ShowResponse struct {
	Listing   *listing.Stored    `json:"listing"`
	Candidate *listing.Candidate `json:"candidate"`
}

// MatchResponse is the response from POST /api/match.
type MatchResponse struct {
	Results          []matching.Ranked `json:"results"`
	MaxPossibleScore int               `json:"max_possible_score"`
}

// ListListings returns stored listings, optionally filtered.
func (c *Client) ListListings(opts listing.ListOptions) ([]*listing.Stored, error) {
	params := url.Values{}
	if opts.Borough != "" {
		params.Set("borough", opts.Borough)
	}
	if opts.HostID != "" {
		params.Set("host", opts.HostID)
	}
	path := "/api/listings"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var stored []*listing.Stored
	if err := c.get(path, &stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// GetListing returns a stored listing and its adapted form.
func (c *Client) GetListing(id string) (*ShowResponse, error) {
	var resp ShowResponse
	if err := c.get("/api/listings/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SaveListing stores a raw listing record.
func (c *Client) SaveListing(raw fields.Record) (*listing.Stored, error) {
	var s listing.Stored
	if err := c.post("/api/listings", raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteListing removes a stored listing.
func (c *Client) DeleteListing(id string) error {
	return c.doDelete("/api/listings/" + url.PathEscape(id))
}

// Price quotes a stay at a stored listing.
func (c *Client) Price(id string, nights int, weeks float64) (*pricing.Breakdown, error) {
	params := url.Values{}
	params.Set("nights", strconv.Itoa(nights))
	params.Set("weeks", strconv.FormatFloat(weeks, 'g', -1, 64))

	var b pricing.Breakdown
	if err := c.get("/api/listings/"+url.PathEscape(id)+"/pricing?"+params.Encode(), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// GuestPrice converts a host nightly rate to the guest-facing price.
func (c *Client) GuestPrice(hostRate float64, nights int) (float64, error) {
	body := map[string]interface{}{"host_rate": hostRate, "nights": nights}
	var resp struct {
		GuestPrice float64 `json:"guest_price"`
	}
	if err := c.post("/api/pricing/guest", body, &resp); err != nil {
		return 0, err
	}
	return resp.GuestPrice, nil
}

// Match ranks the server's listings against a proposal.
func (c *Client) Match(p *listing.Proposal, limit int, borough string) (*MatchResponse, error) {
	body := map[string]interface{}{"proposal": p, "limit": limit, "borough": borough}
	var resp MatchResponse
	if err := c.post("/api/match", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(path string) error {
	req, err := http.NewRequest("DELETE", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// do executes an HTTP request and handles errors.
func (c *Client) do(req *http.Request, result interface{}) (err error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing response body: %w", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		msg := "server error: " + http.StatusText(resp.StatusCode)
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
