// Package market provides the client for the external market-data provider
// consumed by the market feature extractor. The provider has untrusted
// availability; callers must treat every error as a cue to fall back to
// default market features.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/success-predictor/internal/platform/httpclient"
)

// Signals holds the external labor-market signal for one role/location/
// industry combination. Index values are normalized to [0,1]; GrowthTrend is
// a year-over-year rate that may be negative.
type Signals struct {
	DemandIndex      float64 `json:"demand_index"`
	CompetitionIndex float64 `json:"competition_index"`
	GrowthTrend      float64 `json:"growth_trend"`
	MedianSalary     float64 `json:"median_salary"`
	SampleSize       int     `json:"sample_size"`
}

// Source is the market-data provider contract.
type Source interface {
	Signals(ctx context.Context, role, location, industry string) (*Signals, error)
}

// HTTPSource queries a market-data provider over HTTP. The provider returns
// JSON from its API endpoint; some deployments serve an HTML dashboard page
// instead, which is scraped for the same fields.
type HTTPSource struct {
	baseURL string
	client  *httpclient.Client
}

// NewHTTPSource creates a provider client for the given base URL.
func NewHTTPSource(baseURL string, client *httpclient.Client) *HTTPSource {
	if client == nil {
		client = httpclient.New(httpclient.Options{})
	}
	return &HTTPSource{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Signals fetches demand/competition/growth signals for the role.
func (s *HTTPSource) Signals(ctx context.Context, role, location, industry string) (*Signals, error) {
	q := url.Values{}
	q.Set("role", role)
	if location != "" {
		q.Set("location", location)
	}
	if industry != "" {
		q.Set("industry", industry)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/signals?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build market request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("market provider unavailable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read market response: %w", err)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return parseHTMLSignals(body)
	}

	var sig Signals
	if err := json.Unmarshal(body, &sig); err != nil {
		return nil, fmt.Errorf("failed to parse market response: %w", err)
	}
	return &sig, nil
}

// parseHTMLSignals scrapes signal values from a dashboard page. Values are
// carried in elements marked with data-signal attributes.
func parseHTMLSignals(body []byte) (*Signals, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse market HTML: %w", err)
	}

	sig := &Signals{}
	found := 0
	doc.Find("[data-signal]").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("data-signal")
		value, err := strconv.ParseFloat(strings.TrimSpace(sel.Text()), 64)
		if err != nil {
			return
		}
		switch name {
		case "demand_index":
			sig.DemandIndex = value
		case "competition_index":
			sig.CompetitionIndex = value
		case "growth_trend":
			sig.GrowthTrend = value
		case "median_salary":
			sig.MedianSalary = value
		case "sample_size":
			sig.SampleSize = int(value)
		default:
			return
		}
		found++
	})

	if found == 0 {
		return nil, fmt.Errorf("market HTML carried no signal values")
	}
	return sig, nil
}

// Static is a fixed-response source for tests and offline runs.
type Static struct {
	Result *Signals
	Err    error
}

// Signals returns the configured result.
func (s *Static) Signals(_ context.Context, _, _, _ string) (*Signals, error) {
	return s.Result, s.Err
}
