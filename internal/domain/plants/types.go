package plants

import "time"

// Plant is a catalog entry describing a species and its default care values.
type Plant struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Type                 string    `json:"type"`
	DefaultHumidity      float64   `json:"defaultHumidity"`
	DefaultLightExposure float64   `json:"defaultLightExposure"`
	DefaultSeason        string    `json:"defaultSeason"`
	DefaultPlacement     string    `json:"defaultPlacement"`
	CreatedAt            time.Time `json:"createdAt"`
}

// UserPlant links a catalog plant to a user with per-user care overrides.
type UserPlant struct {
	UserID        int64     `json:"userId"`
	PlantID       string    `json:"plantId"`
	Humidity      float64   `json:"humidity"`
	Season        string    `json:"season"`
	LightExposure float64   `json:"lightExposure"`
	Placement     string    `json:"placement"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UserPlantView joins a link row with its catalog entry for listings.
type UserPlantView struct {
	PlantID       string  `json:"plantId"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Humidity      float64 `json:"humidity"`
	Season        string  `json:"season"`
	LightExposure float64 `json:"lightExposure"`
	Placement     string  `json:"placement"`
}

// CreatePlantRequest captures a new catalog entry.
type CreatePlantRequest struct {
	Name                 string  `json:"name"`
	Type                 string  `json:"type"`
	DefaultHumidity      float64 `json:"defaultHumidity"`
	DefaultLightExposure float64 `json:"defaultLightExposure"`
	DefaultSeason        string  `json:"defaultSeason"`
	DefaultPlacement     string  `json:"defaultPlacement"`
}

// LinkPlantRequest associates a plant with the authenticated user. Nil
// overrides fall back to the catalog defaults.
type LinkPlantRequest struct {
	PlantID       string   `json:"plantId"`
	Humidity      *float64 `json:"humidity"`
	Season        *string  `json:"season"`
	LightExposure *float64 `json:"lightExposure"`
	Placement     *string  `json:"placement"`
}
