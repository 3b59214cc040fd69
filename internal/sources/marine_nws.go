package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

// NWSMarineClient fetches marine zone forecasts and active hazard alerts
// from api.weather.gov.
type NWSMarineClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger
	cache      staleCache[MarineForecast]
}

// NewNWSMarineClient builds a marine client against baseURL.
func NewNWSMarineClient(baseURL, userAgent string, logger *slog.Logger) *NWSMarineClient {
	return &NWSMarineClient{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

func (c *NWSMarineClient) do(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build marine request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("marine request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("marine API returned status %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode marine response: %w", err)
	}
	return nil
}

type nwsMarineForecastResponse struct {
	Properties struct {
		Periods []struct {
			DetailedForecast string `json:"detailedForecast"`
		} `json:"periods"`
	} `json:"properties"`
}

type nwsAlertsResponse struct {
	Features []struct {
		Properties struct {
			Headline string `json:"headline"`
			Severity string `json:"severity"`
		} `json:"properties"`
	} `json:"features"`
}

// ForecastAndAlerts fetches the marine zone forecast text plus active
// alerts for zone (an NWS marine zone ID, e.g. "GMZ630").
func (c *NWSMarineClient) ForecastAndAlerts(ctx context.Context, zone string) (*MarineForecast, error) {
	var result MarineForecast

	err := fetchOnce(ctx, defaultTimeout, func(ctx context.Context) error {
		var forecast nwsMarineForecastResponse
		if err := c.do(ctx, fmt.Sprintf("/zones/forecast/%s/forecast", zone), &forecast); err != nil {
			return err
		}

		summary := ""
		if len(forecast.Properties.Periods) > 0 {
			summary = forecast.Properties.Periods[0].DetailedForecast
		}

		var alerts nwsAlertsResponse
		if err := c.do(ctx, fmt.Sprintf("/alerts/active?zone=%s", zone), &alerts); err != nil {
			return err
		}

		marineAlerts := make([]MarineAlert, 0, len(alerts.Features))
		for _, f := range alerts.Features {
			marineAlerts = append(marineAlerts, MarineAlert{
				Headline: f.Properties.Headline,
				Severity: f.Properties.Severity,
			})
		}

		result = MarineForecast{
			Summary:  summary,
			SeaState: seaStateFromSummary(summary),
			Alerts:   marineAlerts,
		}
		return nil
	})

	if err != nil {
		return c.cache.fallback(c.logger, "nws_marine", err)
	}
	c.cache.set(result)
	return &result, nil
}

func seaStateFromSummary(summary string) string {
	lower := strings.ToLower(summary)
	switch {
	case strings.Contains(lower, "rough"), strings.Contains(lower, "hazardous"):
		return "stained"
	case strings.Contains(lower, "choppy"):
		return "slightly_stained"
	default:
		return "clear"
	}
}
