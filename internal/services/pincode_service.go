package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var pincodeRegex = regexp.MustCompile(`^\d{6}$`)

// PincodeResult is a resolved postal code.
type PincodeResult struct {
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state"`
}

// PincodeService resolves Indian postal codes to city/state via the
// India Post public API.
type PincodeService struct {
	baseURL string
	client  *http.Client
}

// NewPincodeService constructs a PincodeService. The upstream call is
// bounded by a 5 second timeout and never retried.
func NewPincodeService(baseURL string) *PincodeService {
	return &PincodeService{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type postOffice struct {
	Name     string `json:"Name"`
	Block    string `json:"Block"`
	District string `json:"District"`
	State    string `json:"State"`
}

type pincodeAPIResponse struct {
	Status     string       `json:"Status"`
	PostOffice []postOffice `json:"PostOffice"`
}

// Resolve looks up city and state for a pincode. Malformed input fails
// with ErrInvalidPincodeFormat; every upstream failure collapses to
// ErrPincodeUnresolved.
func (s *PincodeService) Resolve(ctx context.Context, pincode string) (*PincodeResult, error) {
	normalized := strings.TrimSpace(pincode)
	if !pincodeRegex.MatchString(normalized) {
		return nil, ErrInvalidPincodeFormat
	}

	endpoint := fmt.Sprintf("%s/pincode/%s", s.baseURL, url.PathEscape(normalized))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, ErrPincodeUnresolved
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, ErrPincodeUnresolved
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrPincodeUnresolved
	}

	var payload []pincodeAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, ErrPincodeUnresolved
	}

	if len(payload) == 0 || payload[0].Status != "Success" || len(payload[0].PostOffice) == 0 {
		return nil, ErrPincodeUnresolved
	}

	po := payload[0].PostOffice[0]
	city := po.District
	if city == "" {
		city = po.Block
	}
	if city == "" {
		city = po.Name
	}

	return &PincodeResult{Pincode: normalized, City: city, State: po.State}, nil
}
