// Package source holds one HTTP client per public-data provider. Each
// fetch method covers a single data category and fails with a classified
// error: unconfigured (no credential, no network call made), upstream
// (network/HTTP), or no data found.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"propboard/internal/model"
)

// ErrUnconfigured marks a source whose required credential is missing.
// Fetches fail fast on it without touching the network.
var ErrUnconfigured = errors.New("source not configured (missing API key)")

// ErrNoData marks a call that succeeded but returned nothing for the address.
var ErrNoData = errors.New("no data found for address")

// Attempt is one entry in a category's ordered fallback chain: a source id
// plus its fetch function. The coordinator walks the chain in order and
// stops at the first success.
type Attempt struct {
	SourceID string
	Fetch    func(ctx context.Context, addr model.ParsedAddress) (model.CategoryRecord, error)
}

// NewAttempt wraps a concretely-typed fetch method as an Attempt.
func NewAttempt[T model.CategoryRecord](sourceID string, fetch func(context.Context, model.ParsedAddress) (T, error)) Attempt {
	return Attempt{
		SourceID: sourceID,
		Fetch: func(ctx context.Context, addr model.ParsedAddress) (model.CategoryRecord, error) {
			rec, err := fetch(ctx, addr)
			if err != nil {
				return nil, err
			}
			return rec, nil
		},
	}
}

// getJSON performs a GET and decodes the JSON body into target. Non-2xx
// statuses are upstream failures; a 404 means the source has no data.
func getJSON(ctx context.Context, client *http.Client, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNoData
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, string(body))
	}

	return decodeJSON(resp, target)
}

func decodeJSON(resp *http.Response, target interface{}) error {
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
