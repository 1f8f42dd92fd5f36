// OMDb API [MovieService] implementation
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/mvx/internal/metrics"
	"github.com/desertthunder/mvx/internal/shared"
)

const defaultOMDbBaseURL string = "https://www.omdbapi.com/"

// OMDbService implements [MovieService] against the OMDb API.
type OMDbService struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ MovieService = (*OMDbService)(nil)

// NewOMDbService creates a new OMDb client. An empty baseURL uses the public endpoint and a nil client uses [http.DefaultClient].
func NewOMDbService(baseURL, apiKey string, client *http.Client) *OMDbService {
	if baseURL == "" {
		baseURL = defaultOMDbBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &OMDbService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: client,
	}
}

// NewOMDbServiceFromConfig builds an [OMDbService] from the [shared.OMDbConfig] section.
func NewOMDbServiceFromConfig(cfg shared.OMDbConfig) *OMDbService {
	client := &http.Client{Timeout: cfg.ClientTimeout()}
	return NewOMDbService(cfg.BaseURL, cfg.APIKey, client)
}

// Name returns the service name.
func (o *OMDbService) Name() string {
	return "OMDb"
}

// SearchTitle calls GET /?s={title}.
func (o *OMDbService) SearchTitle(ctx context.Context, title string) ([]OMDbSummary, error) {
	var body OMDbSearchResponse
	if err := o.doRequest(ctx, "search", url.Values{"s": {title}}, &body); err != nil {
		return nil, err
	}

	if isFalse(body.Response) {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoResults, reason(body.Error, "no matches for "+title))
	}
	if len(body.Search) == 0 {
		return nil, fmt.Errorf("%w: no matches for %s", shared.ErrNoResults, title)
	}

	return body.Search, nil
}

// LookupID calls GET /?i={id}.
func (o *OMDbService) LookupID(ctx context.Context, id string) (*OMDbMovie, error) {
	var body OMDbMovie
	if err := o.doRequest(ctx, "lookup", url.Values{"i": {id}}, &body); err != nil {
		return nil, err
	}

	if isFalse(body.Response) {
		return nil, fmt.Errorf("%w: %s: %s", shared.ErrMovieNotFound, id, reason(body.Error, "unknown identifier"))
	}

	return &body, nil
}

func (o *OMDbService) doRequest(ctx context.Context, kind string, params url.Values, result any) error {
	if o.apiKey == "" {
		return fmt.Errorf("%w: OMDb API key is not configured (set %s)", shared.ErrMissingCredentials, shared.APIKeyEnv)
	}

	endpoint, err := url.Parse(o.baseURL)
	if err != nil {
		return fmt.Errorf("%w: invalid base URL: %v", shared.ErrAPIRequest, err)
	}

	query := endpoint.Query()
	query.Set("apikey", o.apiKey)
	for k, vs := range params {
		for _, v := range vs {
			query.Set(k, v)
		}
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrAPIRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := o.httpClient.Do(req)
	metrics.OMDbRequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.OMDbRequestsTotal.WithLabelValues(kind, "error").Inc()
		return fmt.Errorf("%w: request failed: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.OMDbRequestsTotal.WithLabelValues(kind, "http_error").Inc()
		var errResp struct {
			Error string `json:"Error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%w: OMDb API error (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Error)
		}
		return fmt.Errorf("%w: OMDb API error: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.OMDbRequestsTotal.WithLabelValues(kind, "error").Inc()
		return fmt.Errorf("%w: failed to read response: %w", shared.ErrAPIRequest, err)
	}

	if err := json.Unmarshal(data, result); err != nil {
		metrics.OMDbRequestsTotal.WithLabelValues(kind, "decode_error").Inc()
		return fmt.Errorf("%w: failed to decode response: %w", shared.ErrAPIRequest, err)
	}

	metrics.OMDbRequestsTotal.WithLabelValues(kind, "ok").Inc()
	return nil
}

// IsNoResults reports whether err means the remote database matched nothing.
func IsNoResults(err error) bool {
	return errors.Is(err, shared.ErrNoResults)
}

func isFalse(flag string) bool {
	return strings.EqualFold(flag, "False")
}

func reason(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
