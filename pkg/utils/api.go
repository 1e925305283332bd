package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// StatusError is returned by Get when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

type API struct {
	client  *http.Client
	baseURL string
}

func NewAPI(baseURL string, timeout time.Duration) *API {
	return &API{client: &http.Client{Timeout: timeout}, baseURL: baseURL}
}

// NewAPIWithClient is used by tests to point at an httptest server client.
func NewAPIWithClient(baseURL string, client *http.Client) *API {
	return &API{client: client, baseURL: baseURL}
}

func (a *API) BaseURL() string {
	return a.baseURL
}

// URL builds the absolute request URL for path and params.
func (a *API) URL(path string, params url.Values) string {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return a.baseURL + path
}

func (a *API) Get(ctx context.Context, path string, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.URL(path, params), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

// Download fetches raw bytes from an absolute URL.
func (a *API) Download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	return io.ReadAll(resp.Body)
}
