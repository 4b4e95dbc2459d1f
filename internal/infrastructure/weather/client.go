// Package weather reads current conditions from the Open-Meteo API.
package weather

import (
	"context"

	"github.com/hectormalot/omgo"

	"github.com/places-api/internal/domain"
)

type Client struct {
	client omgo.Client
}

func NewClient() (*Client, error) {
	client, err := omgo.NewClient()
	if err != nil {
		return nil, err
	}
	return &Client{client: client}, nil
}

func (c *Client) GetCurrentWeather(ctx context.Context, lat, lon float64) (*domain.WeatherObservation, error) {
	loc, err := omgo.NewLocation(lat, lon)
	if err != nil {
		return nil, err
	}
	current, err := c.client.CurrentWeather(ctx, loc, nil)
	if err != nil {
		return nil, err
	}
	return &domain.WeatherObservation{
		Temperature: current.Temperature,
		WindSpeed:   current.WindSpeed,
		WeatherCode: int(current.WeatherCode),
		Time:        current.Time.Time,
	}, nil
}
