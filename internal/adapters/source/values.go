package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/okian/podium/internal/domain/model"
	"golang.org/x/time/rate"
)

// DefaultValuesBaseURL is the production spreadsheet-values endpoint base.
const DefaultValuesBaseURL = "https://sheets.googleapis.com"

// ValuesSource fetches rows from a versioned spreadsheet-values endpoint
// authenticated by an opaque API key.
type ValuesSource struct {
	baseURL   string
	token     string
	sheetID   string
	readRange string
	cols      Columns
	client    httpDoer
	limiter   *rate.Limiter
}

// ValuesOption applies a configuration option to the ValuesSource.
type ValuesOption func(*ValuesSource)

// WithValuesBaseURL overrides the endpoint base, mainly for tests.
func WithValuesBaseURL(base string) ValuesOption {
	return func(s *ValuesSource) {
		if base != "" {
			s.baseURL = base
		}
	}
}

// WithValuesClient substitutes the HTTP client.
func WithValuesClient(c httpDoer) ValuesOption {
	return func(s *ValuesSource) {
		if c != nil {
			s.client = c
		}
	}
}

// WithValuesLimiter throttles outbound requests to the values API.
func WithValuesLimiter(l *rate.Limiter) ValuesOption {
	return func(s *ValuesSource) {
		s.limiter = l
	}
}

// NewValuesSource creates a values-API source for one sheet and range.
func NewValuesSource(token, sheetID, readRange string, cols Columns, opts ...ValuesOption) *ValuesSource {
	s := &ValuesSource{
		baseURL:   DefaultValuesBaseURL,
		token:     token,
		sheetID:   sheetID,
		readRange: readRange,
		cols:      cols,
		client:    &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name identifies the source kind.
func (s *ValuesSource) Name() string { return "values" }

// valuesResponse mirrors the upstream JSON body.
type valuesResponse struct {
	Values [][]string `json:"values"`
}

// Fetch reads the configured range and header-maps the returned grid.
func (s *ValuesSource) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?key=%s",
		s.baseURL,
		url.PathEscape(s.sheetID),
		url.PathEscape(s.readRange),
		url.QueryEscape(s.token),
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build values request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("values request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{Source: s.Name(), StatusCode: resp.StatusCode}
	}

	var body valuesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode values body: %w", err)
	}

	return mapRows(body.Values, s.cols), nil
}
