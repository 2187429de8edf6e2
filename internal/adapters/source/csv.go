package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/internal/domain/tabular"
	"golang.org/x/time/rate"
)

// CSVSource fetches a published CSV export over HTTP GET.
type CSVSource struct {
	url     string
	cols    Columns
	client  httpDoer
	limiter *rate.Limiter
}

// CSVOption applies a configuration option to the CSVSource.
type CSVOption func(*CSVSource)

// WithCSVClient substitutes the HTTP client, mainly for tests.
func WithCSVClient(c httpDoer) CSVOption {
	return func(s *CSVSource) {
		if c != nil {
			s.client = c
		}
	}
}

// WithCSVLimiter throttles outbound requests to the export URL.
func WithCSVLimiter(l *rate.Limiter) CSVOption {
	return func(s *CSVSource) {
		s.limiter = l
	}
}

// NewCSVSource creates a CSV source for the given export URL and column
// names.
func NewCSVSource(url string, cols Columns, opts ...CSVOption) *CSVSource {
	s := &CSVSource{
		url:    url,
		cols:   cols,
		client: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name identifies the source kind.
func (s *CSVSource) Name() string { return "csv" }

// Fetch downloads the export, tokenizes it, and header-maps the rows.
func (s *CSVSource) Fetch(ctx context.Context) ([]model.RawRecord, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build csv request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("csv request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &TransportError{Source: s.Name(), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read csv body: %w", err)
	}

	return mapRows(tabular.Parse(string(body)), s.cols), nil
}
