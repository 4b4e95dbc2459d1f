package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCurrentWeather(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "latitude=48.85")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"latitude":48.85,"longitude":2.35,"current_weather":`+
			`{"temperature":21.3,"windspeed":12.7,"winddirection":180,"weathercode":2,"time":"2026-08-29T11:00"}}`)
	}))
	defer server.Close()

	client, err := NewClient()
	require.NoError(t, err)
	client.client.URL = server.URL

	obs, err := client.GetCurrentWeather(context.Background(), 48.85, 2.35)
	require.NoError(t, err)
	assert.Equal(t, 21.3, obs.Temperature)
	assert.Equal(t, 12.7, obs.WindSpeed)
	assert.Equal(t, 2, obs.WeatherCode)
	assert.Equal(t, "2026-08-29T11:00:00Z", obs.Time.Format("2006-01-02T15:04:05Z07:00"))
}
