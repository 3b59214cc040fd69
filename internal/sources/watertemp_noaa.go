package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// NOAAWaterTempClient fetches observed water temperature from NOAA
// CO-OPS' datagetter API, the same station family the tide client uses.
type NOAAWaterTempClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	cache      staleCache[WaterTempReading]
}

// NewNOAAWaterTempClient builds a water-temp client against baseURL.
func NewNOAAWaterTempClient(baseURL string, logger *slog.Logger) *NOAAWaterTempClient {
	return &NOAAWaterTempClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

type noaaWaterTempResponse struct {
	Data []struct {
		Time string `json:"t"`
		Value string `json:"v"`
	} `json:"data"`
}

// Latest fetches the most recent water temperature observation at
// station.
func (c *NOAAWaterTempClient) Latest(ctx context.Context, station string) (*WaterTempReading, error) {
	var result WaterTempReading

	err := fetchOnce(ctx, defaultTimeout, func(ctx context.Context) error {
		q := url.Values{}
		q.Set("product", "water_temperature")
		q.Set("application", "bayscan-engine")
		q.Set("station", station)
		q.Set("date", "latest")
		q.Set("units", "english")
		q.Set("time_zone", "gmt")
		q.Set("format", "json")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
		if err != nil {
			return fmt.Errorf("build water temp request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("water temp request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("water temp API returned status %d", resp.StatusCode)
		}

		var parsed noaaWaterTempResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return fmt.Errorf("decode water temp response: %w", err)
		}
		if len(parsed.Data) == 0 {
			return fmt.Errorf("no water temp data returned")
		}

		latest := parsed.Data[len(parsed.Data)-1]
		t, err := time.Parse("2006-01-02 15:04", latest.Time)
		if err != nil {
			return fmt.Errorf("parse water temp timestamp: %w", err)
		}
		temp, err := strconv.ParseFloat(latest.Value, 64)
		if err != nil {
			return fmt.Errorf("parse water temp value: %w", err)
		}

		result = WaterTempReading{Time: t.UTC(), TempF: temp}
		return nil
	})

	if err != nil {
		return c.cache.fallback(c.logger, "noaa_water_temp", err)
	}
	c.cache.set(result)
	return &result, nil
}
