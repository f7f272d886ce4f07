package weather

import (
	"strings"
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown      Condition = "unknown"
	ConditionClear        Condition = "clear"
	ConditionPartlyCloudy Condition = "partly_cloudy"
	ConditionCloudy       Condition = "cloudy"
	ConditionRain         Condition = "rain"
	ConditionSnow         Condition = "snow"
	ConditionStorm        Condition = "storm"
	ConditionMist         Condition = "mist"
)

// Conditions lists every condition a provider may emit.
func Conditions() []Condition {
	return []Condition{
		ConditionClear,
		ConditionPartlyCloudy,
		ConditionCloudy,
		ConditionRain,
		ConditionSnow,
		ConditionStorm,
		ConditionMist,
		ConditionUnknown,
	}
}

// Location is a place a provider can report weather for. ID is the
// provider-specific place identifier; Lat/Lon are filled in when the
// provider resolves coordinates during search.
type Location struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Area    string   `json:"area,omitempty"`
	Country string   `json:"country,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// DisplayName returns the human-readable form shown in search results
// and saved in the config file.
func (l Location) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Name, l.Area, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Snapshot is a single fetched daily forecast, normalized across providers.
// It is immutable once fetched: created by a Provider, consumed once by the
// renderer, and optionally kept in the store for the daemon's history API.
type Snapshot struct {
	LocationName  string    `json:"location"`
	Condition     Condition `json:"condition"`
	ConditionText string    `json:"conditionText"`
	TempMinC      float64   `json:"tempMinC"`
	TempMaxC      float64   `json:"tempMaxC"`
	ObservedAt    time.Time `json:"observedAt"` // always UTC
	HumidityPct   float64   `json:"humidityPercent,omitempty"`
	WindSpeedKph  float64   `json:"windSpeedKph,omitempty"`
	ProviderName  string    `json:"provider,omitempty"`
}
