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

// NOAATideClient fetches tide predictions from NOAA CO-OPS' datagetter API.
type NOAATideClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	cache      staleCache[[]TidePrediction]
}

// NewNOAATideClient builds a tide client against baseURL (spec §6's
// TideSource.PredictionsInRange).
func NewNOAATideClient(baseURL string, logger *slog.Logger) *NOAATideClient {
	return &NOAATideClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

type noaaPredictionsResponse struct {
	Predictions []struct {
		Time string `json:"t"`
		Value string `json:"v"`
		Type  string `json:"type,omitempty"`
	} `json:"predictions"`
}

// PredictionsInRange fetches 6-minute interval height predictions for
// station between begin and end.
func (c *NOAATideClient) PredictionsInRange(ctx context.Context, station string, begin, end time.Time) ([]TidePrediction, error) {
	var result []TidePrediction

	err := fetchOnce(ctx, defaultTimeout, func(ctx context.Context) error {
		q := url.Values{}
		q.Set("product", "predictions")
		q.Set("application", "bayscan-engine")
		q.Set("station", station)
		q.Set("begin_date", begin.Format("20060102 15:04"))
		q.Set("end_date", end.Format("20060102 15:04"))
		q.Set("datum", "MLLW")
		q.Set("units", "english")
		q.Set("time_zone", "gmt")
		q.Set("format", "json")
		q.Set("interval", "6")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
		if err != nil {
			return fmt.Errorf("build tide request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("tide request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("tide API returned status %d", resp.StatusCode)
		}

		var parsed noaaPredictionsResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return fmt.Errorf("decode tide response: %w", err)
		}

		predictions := make([]TidePrediction, 0, len(parsed.Predictions))
		for _, p := range parsed.Predictions {
			t, err := time.Parse("2006-01-02 15:04", p.Time)
			if err != nil {
				continue
			}
			height, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				continue
			}
			predictions = append(predictions, TidePrediction{
				Time:         t.UTC(),
				HeightFt:     height,
				ExtremumKind: extremumKind(p.Type),
			})
		}
		result = predictions
		return nil
	})

	if err != nil {
		return c.cache.fallback(c.logger, "noaa_tide", err)
	}
	c.cache.set(result)
	return result, nil
}

func extremumKind(noaaType string) string {
	switch noaaType {
	case "H":
		return "high"
	case "L":
		return "low"
	default:
		return ""
	}
}
