package openweather

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

	"github.com/botalearn/plantcare/internal/domain/weather"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

// Client fetches current conditions from OpenWeatherMap.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs an OpenWeatherMap client. The API key is required;
// it is passed in explicitly rather than read from the environment.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openweather api key cannot be empty")
	}
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Current returns metric temperature and relative humidity for a coordinate.
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (weather.Conditions, error) {
	endpoint := fmt.Sprintf("%s/weather?%s", c.baseURL, url.Values{
		"lat":   []string{fmt.Sprintf("%g", latitude)},
		"lon":   []string{fmt.Sprintf("%g", longitude)},
		"appid": []string{c.apiKey},
		"units": []string{"metric"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return weather.Conditions{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return weather.Conditions{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return weather.Conditions{}, fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw struct {
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return weather.Conditions{}, fmt.Errorf("decode weather response: %w", err)
	}

	return weather.Conditions{
		TemperatureC: raw.Main.Temp,
		Humidity:     raw.Main.Humidity,
	}, nil
}

var _ weather.Provider = (*Client)(nil)
