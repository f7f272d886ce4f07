package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"rt82weather/internal/common"
	"rt82weather/internal/weather"
)

// BBCProvider fetches forecasts from the undocumented BBC/UK Met Office
// APIs, the same ones KDE Plasma's weather widget uses. No API key needed.
type BBCProvider struct {
	name        string
	searchURL   string
	forecastURL string // format with place id
	httpCfg     HTTPClientConfig
	circuit     *gobreaker.CircuitBreaker
}

func init() {
	weather.RegisterProvider("bbc", func(opts weather.ProviderOptions) weather.Provider {
		return NewBBCProvider(opts.Client)
	})
}

func NewBBCProvider(client *http.Client) *BBCProvider {
	return &BBCProvider{
		name:        "bbc",
		searchURL:   "https://open.live.bbc.co.uk/locator/locations",
		forecastURL: "https://weather-broker-cdn.api.bbci.co.uk/en/forecast/aggregated/%s",
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff(),
		},
		circuit: newBreaker("bbc"),
	}
}

func (p *BBCProvider) Name() string {
	return p.name
}

func (p *BBCProvider) SearchLocations(ctx context.Context, query string) ([]weather.Location, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("s", query)
		values.Set("format", "json")
		return http.NewRequest(http.MethodGet, p.searchURL+"?"+values.Encode(), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Response struct {
			Locations []bbcLocation `json:"locations"`
			Results   struct {
				Results []bbcLocation `json:"results"`
			} `json:"results"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	raw := payload.Response.Locations
	if len(raw) == 0 {
		raw = payload.Response.Results.Results
	}

	seen := make(map[string]bool)
	var locations []weather.Location
	for _, loc := range raw {
		// Regions are too coarse for a single-place forecast.
		if loc.ID == "" || loc.Name == "" || loc.Container == "" || loc.Country == "" {
			continue
		}
		if loc.PlaceType == "region" {
			continue
		}
		if seen[loc.ID] {
			continue
		}
		seen[loc.ID] = true

		l := weather.Location{
			ID:      loc.ID,
			Name:    loc.Name,
			Area:    loc.Container,
			Country: loc.Country,
		}
		if loc.Latitude != 0 || loc.Longitude != 0 {
			lat, lon := loc.Latitude, loc.Longitude
			l.Lat, l.Lon = &lat, &lon
		}
		locations = append(locations, l)
	}

	return locations, nil
}

type bbcLocation struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Container string  `json:"container"`
	Country   string  `json:"country"`
	PlaceType string  `json:"placeType"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p *BBCProvider) Forecast(ctx context.Context, loc weather.Location) (weather.Snapshot, error) {
	if loc.ID == "" {
		return weather.Snapshot{}, fmt.Errorf("bbc provider requires a location id")
	}

	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, fmt.Sprintf(p.forecastURL, url.PathEscape(loc.ID)), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Snapshot{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Forecasts []struct {
			Summary struct {
				Report struct {
					WeatherTypeText string   `json:"weatherTypeText"`
					MinTempC        *float64 `json:"minTempC"`
					MaxTempC        *float64 `json:"maxTempC"`
					HumidityPercent float64  `json:"humidityPercent"`
					WindSpeedKph    float64  `json:"windSpeedKph"`
					LocalDate       string   `json:"localDate"`
				} `json:"report"`
			} `json:"summary"`
		} `json:"forecasts"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, err
	}

	if len(payload.Forecasts) == 0 {
		return weather.Snapshot{}, fmt.Errorf("no forecast data returned")
	}

	report := payload.Forecasts[0].Summary.Report
	if report.MinTempC == nil || report.MaxTempC == nil {
		return weather.Snapshot{}, fmt.Errorf("forecast missing temperature data")
	}

	return weather.Snapshot{
		LocationName:  loc.DisplayName(),
		Condition:     mapBBCCondition(report.WeatherTypeText),
		ConditionText: report.WeatherTypeText,
		TempMinC:      *report.MinTempC,
		TempMaxC:      *report.MaxTempC,
		ObservedAt:    time.Now().UTC(),
		HumidityPct:   report.HumidityPercent,
		WindSpeedKph:  report.WindSpeedKph,
		ProviderName:  p.name,
	}, nil
}

// bbcConditions maps the exact weatherTypeText strings the BBC broker
// emits to normalized conditions.
var bbcConditions = map[string]weather.Condition{
	"sunny":                  weather.ConditionClear,
	"clear":                  weather.ConditionClear,
	"clear sky":              weather.ConditionClear,
	"sunny intervals":        weather.ConditionPartlyCloudy,
	"light cloud":            weather.ConditionPartlyCloudy,
	"partly cloudy":          weather.ConditionPartlyCloudy,
	"cloudy":                 weather.ConditionCloudy,
	"white cloud":            weather.ConditionCloudy,
	"grey cloud":             weather.ConditionCloudy,
	"thick cloud":            weather.ConditionCloudy,
	"drizzle":                weather.ConditionRain,
	"light shower":           weather.ConditionRain,
	"light rain shower":      weather.ConditionRain,
	"light rain showers":     weather.ConditionRain,
	"light showers":          weather.ConditionRain,
	"light rain":             weather.ConditionRain,
	"heavy rain":             weather.ConditionRain,
	"heavy showers":          weather.ConditionRain,
	"heavy shower":           weather.ConditionRain,
	"heavy rain shower":      weather.ConditionRain,
	"heavy rain showers":     weather.ConditionRain,
	"thundery shower":        weather.ConditionStorm,
	"thundery showers":       weather.ConditionStorm,
	"thunderstorm":           weather.ConditionStorm,
	"tropical storm":         weather.ConditionStorm,
	"misty":                  weather.ConditionMist,
	"mist":                   weather.ConditionMist,
	"fog":                    weather.ConditionMist,
	"foggy":                  weather.ConditionMist,
	"hazy":                   weather.ConditionMist,
	"light snow":             weather.ConditionSnow,
	"light snow shower":      weather.ConditionSnow,
	"light snow showers":     weather.ConditionSnow,
	"cloudy with light snow": weather.ConditionSnow,
	"heavy snow":             weather.ConditionSnow,
	"heavy snow shower":      weather.ConditionSnow,
	"heavy snow showers":     weather.ConditionSnow,
	"cloudy with heavy snow": weather.ConditionSnow,
	"sleet":                  weather.ConditionRain,
	"sleet shower":           weather.ConditionRain,
	"sleet showers":          weather.ConditionRain,
	"cloudy with sleet":      weather.ConditionRain,
	"hail":                   weather.ConditionRain,
	"hail shower":            weather.ConditionRain,
	"hail showers":           weather.ConditionRain,
	"cloudy with hail":       weather.ConditionRain,
}

func mapBBCCondition(text string) weather.Condition {
	key := strings.ToLower(strings.TrimSpace(text))
	if cond, ok := bbcConditions[key]; ok {
		return cond
	}

	// Fall back to substring matching for texts the table doesn't cover,
	// so new BBC phrasings degrade gracefully instead of going grey.
	switch {
	case common.HasAny(key, "thunder", "storm"):
		return weather.ConditionStorm
	case common.HasAny(key, "snow", "blizzard"):
		return weather.ConditionSnow
	case common.HasAny(key, "rain", "shower", "drizzle", "sleet", "hail"):
		return weather.ConditionRain
	case common.HasAny(key, "mist", "fog", "haz"):
		return weather.ConditionMist
	case common.HasAny(key, "cloud"):
		return weather.ConditionCloudy
	case common.HasAny(key, "sun", "clear"):
		return weather.ConditionClear
	default:
		return weather.ConditionCloudy
	}
}
