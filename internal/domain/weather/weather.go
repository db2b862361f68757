package weather

import "context"

// Conditions are the current ambient readings for a coordinate.
type Conditions struct {
	TemperatureC float64 `json:"temperatureC"`
	Humidity     float64 `json:"humidity"`
}

// Provider supplies current conditions from an external weather service.
type Provider interface {
	Current(ctx context.Context, latitude, longitude float64) (Conditions, error)
}
