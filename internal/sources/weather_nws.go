package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// NWSWeatherClient fetches observations and forecasts from the National
// Weather Service's api.weather.gov.
type NWSWeatherClient struct {
	baseURL      string
	userAgent    string
	httpClient   *http.Client
	logger       *slog.Logger
	obsCache     staleCache[WeatherObservation]
	forecastCache staleCache[[]WeatherForecastPoint]
}

// NewNWSWeatherClient builds a weather client against baseURL, sending
// userAgent on every request per NWS's API policy.
func NewNWSWeatherClient(baseURL, userAgent string, logger *slog.Logger) *NWSWeatherClient {
	return &NWSWeatherClient{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

func (c *NWSWeatherClient) do(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build weather request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather API returned status %d for %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode weather response: %w", err)
	}
	return nil
}

type nwsObservationResponse struct {
	Properties struct {
		Timestamp      time.Time `json:"timestamp"`
		Temperature    nwsQuantity `json:"temperature"`
		WindSpeed      nwsQuantity `json:"windSpeed"`
		WindDirection  nwsQuantity `json:"windDirection"`
		WindGust       nwsQuantity `json:"windGust"`
		BarometricPressure nwsQuantity `json:"barometricPressure"`
		RelativeHumidity   nwsQuantity `json:"relativeHumidity"`
	} `json:"properties"`
}

type nwsQuantity struct {
	Value *float64 `json:"value"`
	Unit  string   `json:"unitCode"`
}

// Latest fetches the most recent observation at station (an NWS station
// identifier, e.g. "KMOB").
func (c *NWSWeatherClient) Latest(ctx context.Context, station string) (*WeatherObservation, error) {
	var obs WeatherObservation

	err := fetchOnce(ctx, defaultTimeout, func(ctx context.Context) error {
		var parsed nwsObservationResponse
		if err := c.do(ctx, fmt.Sprintf("/stations/%s/observations/latest", station), &parsed); err != nil {
			return err
		}

		obs = WeatherObservation{
			Time:                  parsed.Properties.Timestamp.UTC(),
			AirTempF:              celsiusToFahrenheit(valueOr(parsed.Properties.Temperature.Value, 0)),
			WindSpeedMph:          kphToMph(valueOr(parsed.Properties.WindSpeed.Value, 0)),
			WindDirectionCardinal: degreesToCardinal(valueOr(parsed.Properties.WindDirection.Value, 0)),
			PressureMb:            paToMb(valueOr(parsed.Properties.BarometricPressure.Value, 0)),
		}
		if parsed.Properties.WindGust.Value != nil {
			gust := kphToMph(*parsed.Properties.WindGust.Value)
			obs.WindGustMph = &gust
		}
		if parsed.Properties.RelativeHumidity.Value != nil {
			h := *parsed.Properties.RelativeHumidity.Value
			obs.Humidity = &h
		}
		return nil
	})

	if err != nil {
		return c.obsCache.fallback(c.logger, "nws_observation", err)
	}
	c.obsCache.set(obs)
	return &obs, nil
}

type nwsForecastResponse struct {
	Properties struct {
		Periods []struct {
			StartTime        time.Time `json:"startTime"`
			Temperature      float64   `json:"temperature"`
			WindSpeed        string    `json:"windSpeed"`
			WindDirection    string    `json:"windDirection"`
			ShortForecast    string    `json:"shortForecast"`
			ProbabilityOfPrecipitation nwsQuantity `json:"probabilityOfPrecipitation"`
		} `json:"periods"`
	} `json:"properties"`
}

// Hourly fetches the hourly forecast grid for lat/lon.
func (c *NWSWeatherClient) Hourly(ctx context.Context, lat, lon float64) ([]WeatherForecastPoint, error) {
	var points []WeatherForecastPoint

	err := fetchOnce(ctx, defaultTimeout, func(ctx context.Context) error {
		gridEndpoint, err := c.resolveGridEndpoint(ctx, lat, lon)
		if err != nil {
			return err
		}

		var parsed nwsForecastResponse
		if err := c.do(ctx, gridEndpoint+"/forecast/hourly", &parsed); err != nil {
			return err
		}

		out := make([]WeatherForecastPoint, 0, len(parsed.Properties.Periods))
		for _, p := range parsed.Properties.Periods {
			point := WeatherForecastPoint{
				Time:            p.StartTime.UTC(),
				TemperatureF:    p.Temperature,
				WindSpeedMph:    parseLeadingNumber(p.WindSpeed),
				WindDirection:   p.WindDirection,
				CloudCover:      cloudCoverFromShortForecast(p.ShortForecast),
				ShortConditions: p.ShortForecast,
			}
			if p.ProbabilityOfPrecipitation.Value != nil {
				point.PrecipitationProb = p.ProbabilityOfPrecipitation.Value
			}
			out = append(out, point)
		}
		points = out
		return nil
	})

	if err != nil {
		return c.forecastCache.fallback(c.logger, "nws_forecast", err)
	}
	v := points
	c.forecastCache.set(v)
	return points, nil
}

type nwsPointsResponse struct {
	Properties struct {
		GridID string `json:"gridId"`
		GridX  int    `json:"gridX"`
		GridY  int    `json:"gridY"`
	} `json:"properties"`
}

func (c *NWSWeatherClient) resolveGridEndpoint(ctx context.Context, lat, lon float64) (string, error) {
	var parsed nwsPointsResponse
	if err := c.do(ctx, fmt.Sprintf("/points/%.4f,%.4f", lat, lon), &parsed); err != nil {
		return "", err
	}
	return fmt.Sprintf("/gridpoints/%s/%d,%d", parsed.Properties.GridID, parsed.Properties.GridX, parsed.Properties.GridY), nil
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func celsiusToFahrenheit(c float64) float64 { return c*9.0/5.0 + 32 }
func kphToMph(kph float64) float64          { return kph * 0.621371 }
func paToMb(pa float64) float64             { return pa / 100.0 }

func degreesToCardinal(deg float64) string {
	directions := []string{"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE", "S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW"}
	idx := int((deg/22.5)+0.5) % 16
	if idx < 0 {
		idx += 16
	}
	return directions[idx]
}

func parseLeadingNumber(s string) float64 {
	var n float64
	fmt.Sscanf(s, "%f", &n)
	return n
}

func cloudCoverFromShortForecast(short string) string {
	lower := strings.ToLower(short)
	switch {
	case strings.Contains(lower, "overcast"), strings.Contains(lower, "cloudy"):
		return "overcast"
	case strings.Contains(lower, "partly"), strings.Contains(lower, "mostly sunny"):
		return "partly_cloudy"
	case strings.Contains(lower, "sunny"), strings.Contains(lower, "clear"):
		return "clear"
	default:
		return "partly_cloudy"
	}
}
