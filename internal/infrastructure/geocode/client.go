package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client resolves coordinates to a human-readable place description via a
// Nominatim-compatible reverse geocoding endpoint. Callers fall back to
// their own free-text label when resolution fails, so every error path
// here just returns the error.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("geocoding is not configured")
	}

	endpoint := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%s&lon=%s",
		c.baseURL,
		url.QueryEscape(fmt.Sprintf("%f", lat)),
		url.QueryEscape(fmt.Sprintf("%f", lng)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocoding returned status %d", resp.StatusCode)
	}

	var result reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.DisplayName == "" {
		return "", fmt.Errorf("reverse geocoding returned no place name")
	}

	return result.DisplayName, nil
}
