package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rt82weather/internal/weather"
)

func TestMapOpenMeteoCondition(t *testing.T) {
	cases := []struct {
		code int
		want weather.Condition
	}{
		{0, weather.ConditionClear},
		{1, weather.ConditionPartlyCloudy},
		{2, weather.ConditionPartlyCloudy},
		{3, weather.ConditionCloudy},
		{45, weather.ConditionMist},
		{48, weather.ConditionMist},
		{51, weather.ConditionRain},
		{63, weather.ConditionRain},
		{67, weather.ConditionRain},
		{71, weather.ConditionSnow},
		{77, weather.ConditionSnow},
		{80, weather.ConditionRain},
		{85, weather.ConditionSnow},
		{95, weather.ConditionStorm},
		{99, weather.ConditionStorm},
		{42, weather.ConditionUnknown},
	}

	for _, tc := range cases {
		cond, text := mapOpenMeteoCondition(tc.code)
		assert.Equal(t, tc.want, cond, "code %d", tc.code)
		assert.NotEmpty(t, text)
	}
}

func TestOpenMeteoSearchLocations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "berlin", r.URL.Query().Get("name"))
		fmt.Fprint(w, `{"results":[
			{"id":2950159,"name":"Berlin","admin1":"Berlin","country":"Germany","latitude":52.52,"longitude":13.41},
			{"id":5083330,"name":"","admin1":"New Hampshire","country":"United States"}
		]}`)
	}))
	defer server.Close()

	p := NewOpenMeteoProvider(server.Client())
	p.geocodeURL = server.URL

	locations, err := p.SearchLocations(context.Background(), "berlin")
	require.NoError(t, err)
	require.Len(t, locations, 1)

	assert.Equal(t, "2950159", locations[0].ID)
	assert.Equal(t, "Berlin, Berlin, Germany", locations[0].DisplayName())
	require.NotNil(t, locations[0].Lat)
	assert.InDelta(t, 52.52, *locations[0].Lat, 0.001)
}

func TestOpenMeteoForecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.NotEmpty(t, q.Get("latitude"))
		assert.NotEmpty(t, q.Get("longitude"))
		assert.Equal(t, "1", q.Get("forecast_days"))
		fmt.Fprint(w, `{"daily":{
			"time":["2026-06-15"],
			"weather_code":[61],
			"temperature_2m_min":[3.2],
			"temperature_2m_max":[9.4]
		}}`)
	}))
	defer server.Close()

	p := NewOpenMeteoProvider(server.Client())
	p.forecastURL = server.URL

	lat, lon := 52.52, 13.41
	snap, err := p.Forecast(context.Background(), weather.Location{
		ID: "2950159", Name: "Berlin", Lat: &lat, Lon: &lon,
	})
	require.NoError(t, err)

	assert.Equal(t, weather.ConditionRain, snap.Condition)
	assert.Equal(t, "Rain", snap.ConditionText)
	assert.Equal(t, 3.2, snap.TempMinC)
	assert.Equal(t, 9.4, snap.TempMaxC)
	assert.Equal(t, "openmeteo", snap.ProviderName)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), snap.ObservedAt)
}

func TestOpenMeteoForecastRequiresCoordinates(t *testing.T) {
	p := NewOpenMeteoProvider(http.DefaultClient)
	_, err := p.Forecast(context.Background(), weather.Location{ID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")
}
