package blocks

import (
	"context"

	"go.uber.org/zap"

	"github.com/places-api/internal/domain"
	"github.com/places-api/internal/places"
)

type WeatherBlock struct {
	Type        string  `json:"type"`
	Temperature float64 `json:"temperature"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
}

func (b *WeatherBlock) BlockType() string { return "weather" }

func buildWeather(ctx context.Context, b *Builder, p places.Place, _ string) domain.Block {
	if p.PlaceType() != domain.PlaceTypeAdmin || !cityZoneTypes[p.ClassName()] {
		return nil
	}
	coord := p.Coord()
	if coord == nil {
		return nil
	}
	observation, err := b.weather.GetCurrentWeather(ctx, coord.Lat, coord.Lon)
	if err != nil {
		b.log.Warn("weather observation unavailable",
			zap.String("place_id", p.ID()), zap.Error(err))
		return nil
	}
	if observation == nil {
		return nil
	}
	return &WeatherBlock{
		Type:        "weather",
		Temperature: observation.Temperature,
		Icon:        weatherIcon(observation.WeatherCode),
		WindSpeed:   observation.WindSpeed,
	}
}

// weatherIcon maps WMO weather interpretation codes to icon names.
func weatherIcon(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 2:
		return "partly_cloudy"
	case code == 3:
		return "cloudy"
	case code <= 48:
		return "fog"
	case code <= 57:
		return "drizzle"
	case code <= 67:
		return "rain"
	case code <= 77:
		return "snow"
	case code <= 82:
		return "rain"
	case code <= 86:
		return "snow"
	default:
		return "thunderstorm"
	}
}
