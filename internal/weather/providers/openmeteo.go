package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"rt82weather/internal/weather"
)

// OpenMeteoProvider fetches forecasts from Open-Meteo. Like the BBC
// provider it needs no API key; location search goes through Open-Meteo's
// own geocoding endpoint, so forecasts are keyed by coordinates.
type OpenMeteoProvider struct {
	name        string
	geocodeURL  string
	forecastURL string
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

func init() {
	weather.RegisterProvider("openmeteo", func(opts weather.ProviderOptions) weather.Provider {
		return NewOpenMeteoProvider(opts.Client)
	})
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:        "openmeteo",
		geocodeURL:  "https://geocoding-api.open-meteo.com/v1/search",
		forecastURL: "https://api.open-meteo.com/v1/forecast",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) SearchLocations(ctx context.Context, query string) ([]weather.Location, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", query)
		values.Set("count", "15")
		values.Set("format", "json")
		return http.NewRequest(http.MethodGet, p.geocodeURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			ID        int64   `json:"id"`
			Name      string  `json:"name"`
			Admin1    string  `json:"admin1"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	var locations []weather.Location
	for _, r := range payload.Results {
		if r.Name == "" {
			continue
		}
		lat, lon := r.Latitude, r.Longitude
		locations = append(locations, weather.Location{
			ID:      strconv.FormatInt(r.ID, 10),
			Name:    r.Name,
			Area:    r.Admin1,
			Country: r.Country,
			Lat:     &lat,
			Lon:     &lon,
		})
	}

	return locations, nil
}

func (p *OpenMeteoProvider) Forecast(ctx context.Context, loc weather.Location) (weather.Snapshot, error) {
	if loc.Lat == nil || loc.Lon == nil {
		return weather.Snapshot{}, fmt.Errorf("openmeteo requires latitude and longitude")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", *loc.Lat))
		values.Set("longitude", fmt.Sprintf("%f", *loc.Lon))
		values.Set("daily", "weather_code,temperature_2m_min,temperature_2m_max")
		values.Set("forecast_days", "1")
		values.Set("timezone", "UTC")
		return http.NewRequest(http.MethodGet, p.forecastURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Snapshot{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Daily struct {
			Time        []string  `json:"time"`
			WeatherCode []int     `json:"weather_code"`
			TempMin     []float64 `json:"temperature_2m_min"`
			TempMax     []float64 `json:"temperature_2m_max"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, err
	}

	daily := payload.Daily
	if len(daily.TempMin) == 0 || len(daily.TempMax) == 0 || len(daily.WeatherCode) == 0 {
		return weather.Snapshot{}, fmt.Errorf("no forecast data returned")
	}

	ts := time.Now().UTC()
	if len(daily.Time) > 0 {
		if day, err := time.Parse("2006-01-02", daily.Time[0]); err == nil {
			ts = day.UTC()
		}
	}

	cond, text := mapOpenMeteoCondition(daily.WeatherCode[0])

	return weather.Snapshot{
		LocationName:  loc.DisplayName(),
		Condition:     cond,
		ConditionText: text,
		TempMinC:      daily.TempMin[0],
		TempMaxC:      daily.TempMax[0],
		ObservedAt:    ts,
		ProviderName:  p.name,
	}, nil
}

// mapOpenMeteoCondition translates WMO weather codes (simplified) into a
// normalized condition and a human-readable label.
func mapOpenMeteoCondition(code int) (weather.Condition, string) {
	switch {
	case code == 0:
		return weather.ConditionClear, "Clear sky"
	case code == 1 || code == 2:
		return weather.ConditionPartlyCloudy, "Partly cloudy"
	case code == 3:
		return weather.ConditionCloudy, "Overcast"
	case code == 45 || code == 48:
		return weather.ConditionMist, "Fog"
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRain, "Rain"
	case code >= 71 && code <= 77 || code == 85 || code == 86:
		return weather.ConditionSnow, "Snow"
	case code >= 95:
		return weather.ConditionStorm, "Thunderstorm"
	default:
		return weather.ConditionUnknown, "Unknown"
	}
}
