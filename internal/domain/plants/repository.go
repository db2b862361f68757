package plants

import (
	"context"
	"errors"
)

// ErrNameExists indicates a duplicate catalog plant name.
var ErrNameExists = errors.New("plant name already exists")

// ErrAlreadyLinked indicates the user already has this plant.
var ErrAlreadyLinked = errors.New("plant already linked to user")

// Repository abstracts plant persistence.
type Repository interface {
	CreatePlant(ctx context.Context, plant Plant) (Plant, error)
	GetPlant(ctx context.Context, id string) (Plant, bool, error)
	GetPlantByName(ctx context.Context, name string) (Plant, bool, error)
	LinkPlant(ctx context.Context, link UserPlant) (UserPlant, error)
	ListUserPlants(ctx context.Context, userID int64) ([]UserPlantView, error)
}
