// Package geocode resolves dwell coordinates to human place names through
// a Nominatim-compatible reverse geocoder. Lookups are strictly best
// effort: the rest of the pipeline works fine with unnamed dwells, and the
// whole feature can be disabled so no coordinate ever leaves the machine.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "NightOwl/1.0 (night-session-tracker)"
)

// Client is a minimal Nominatim reverse-geocoding client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client

	// Nominatim's usage policy allows one request per second
	rateMu      sync.Mutex
	lastRequest time.Time
}

// NewClient creates a client. Empty arguments use the public Nominatim
// endpoint and the default user agent.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type nominatimResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Address     struct {
		Amenity  string `json:"amenity"`
		Leisure  string `json:"leisure"`
		Tourism  string `json:"tourism"`
		Shop     string `json:"shop"`
		Building string `json:"building"`
		Road     string `json:"road"`
		Suburb   string `json:"suburb"`
	} `json:"address"`
}

// Lookup reverse-geocodes one coordinate and returns the best display name
// for it, or "" when the geocoder has nothing useful. The per-second rate
// limit is enforced across all callers of this client.
func (c *Client) Lookup(ctx context.Context, lat, lon float64) (string, error) {
	c.waitForSlot()

	url := fmt.Sprintf("%s/reverse?lat=%.7f&lon=%.7f&format=jsonv2&zoom=18", c.baseURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build reverse geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var parsed nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}

	return extractPlaceName(parsed), nil
}

func (c *Client) waitForSlot() {
	c.rateMu.Lock()
	defer c.rateMu.Unlock()

	if since := time.Since(c.lastRequest); since < time.Second {
		time.Sleep(time.Second - since)
	}
	c.lastRequest = time.Now()
}

// extractPlaceName picks the most venue-like name available. Night-out
// stops are almost always amenities (bars, clubs, restaurants), so those
// win over generic address components.
func extractPlaceName(r nominatimResponse) string {
	for _, candidate := range []string{
		r.Address.Amenity,
		r.Address.Leisure,
		r.Address.Tourism,
		r.Address.Shop,
		r.Name,
		r.Address.Building,
		r.Address.Road,
		r.Address.Suburb,
	} {
		if candidate != "" {
			return candidate
		}
	}

	if r.DisplayName != "" {
		// First component of "Venue, Street, District, ..."
		if idx := strings.Index(r.DisplayName, ","); idx > 0 {
			return strings.TrimSpace(r.DisplayName[:idx])
		}
		return r.DisplayName
	}
	return ""
}
