package sunrisesunset

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/botalearn/plantcare/internal/domain/sunlight"
)

const defaultBaseURL = "https://api.sunrisesunset.io"

// Client fetches day-length records from SunriseSunset.io.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL string) *Client {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch retrieves sunrise, sunset and twilight times for a coordinate.
func (c *Client) Fetch(ctx context.Context, latitude, longitude float64) (sunlight.DayRecord, error) {
	endpoint := fmt.Sprintf("%s/json?%s", c.baseURL, url.Values{
		"lat": []string{fmt.Sprintf("%g", latitude)},
		"lng": []string{fmt.Sprintf("%g", longitude)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return sunlight.DayRecord{}, fmt.Errorf("build sun request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return sunlight.DayRecord{}, fmt.Errorf("sun request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return sunlight.DayRecord{}, fmt.Errorf("sun request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return sunlight.DayRecord{}, fmt.Errorf("read sun response: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return sunlight.DayRecord{}, fmt.Errorf("decode sun response: %w", err)
	}
	if !strings.EqualFold(raw.Status, "OK") {
		return sunlight.DayRecord{}, fmt.Errorf("sun api status: %s", raw.Status)
	}

	return toRecord(raw.Results), nil
}

type apiResponse struct {
	Results apiResults `json:"results"`
	Status  string     `json:"status"`
}

type apiResults struct {
	Date       string `json:"date"`
	Sunrise    string `json:"sunrise"`
	Sunset     string `json:"sunset"`
	FirstLight string `json:"first_light"`
	LastLight  string `json:"last_light"`
	DayLength  string `json:"day_length"`
	Timezone   string `json:"timezone"`
}

func toRecord(results apiResults) sunlight.DayRecord {
	return sunlight.DayRecord{
		Date:       results.Date,
		Sunrise:    results.Sunrise,
		Sunset:     results.Sunset,
		FirstLight: results.FirstLight,
		LastLight:  results.LastLight,
		DayLength:  results.DayLength,
		Timezone:   results.Timezone,
	}
}
