// Package bff provides clients for the commerce BFF reference services:
// bank and account-type codes, and economic activity codes with fuzzy
// lookup.
package bff

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/pagoandino/capture-cli/internal/resilience"
)

// ReferenceItem is a name and code pair returned by the reference services.
type ReferenceItem struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// Option configures a BFF client.
type Option func(*transport)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(t *transport) {
		t.http = hc
	}
}

// WithRetryConfig overrides the retry behavior.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(t *transport) {
		t.retry = cfg
	}
}

type transport struct {
	token string
	http  *http.Client
	retry resilience.RetryConfig
}

func newTransport(token string, opts ...Option) *transport {
	t := &transport{
		token: token,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		retry: resilience.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// getJSON performs an authenticated GET, retrying transient failures, and
// unmarshals the response into out.
func (t *transport) getJSON(ctx context.Context, url string, out any) error {
	body, err := resilience.DoVal(ctx, t.retry, func(ctx context.Context) ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, eris.Wrap(err, "bff: create request")
		}
		req.Header.Set("Authorization", "Bearer "+t.token)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")

		resp, err := t.http.Do(req)
		if err != nil {
			return nil, eris.Wrapf(err, "bff: GET %s", url)
		}
		defer resp.Body.Close() //nolint:errcheck

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, eris.Wrap(err, "bff: read response body")
		}

		if resp.StatusCode != http.StatusOK {
			statusErr := eris.Errorf("bff: GET %s returned %d: %s", url, resp.StatusCode, string(raw))
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.NewTransientError(statusErr, resp.StatusCode)
			}
			return nil, statusErr
		}
		return raw, nil
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return eris.Wrapf(err, "bff: unmarshal response from %s", url)
	}
	return nil
}
