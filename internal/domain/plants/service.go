package plants

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/botalearn/plantcare/pkg/errors"
	"github.com/botalearn/plantcare/pkg/util"
)

// Service exposes the plant catalog and user-plant workflows.
type Service interface {
	CreatePlant(ctx context.Context, req CreatePlantRequest) (Plant, error)
	LinkPlant(ctx context.Context, userID int64, req LinkPlantRequest) (UserPlant, error)
	ListUserPlants(ctx context.Context, userID int64) ([]UserPlantView, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a Service instance.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{
		repo:   repo,
		logger: logger.With("component", "plants.service"),
		now:    util.NowUTC,
	}
}

func (s *service) CreatePlant(ctx context.Context, req CreatePlantRequest) (Plant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Plant{}, apperrors.Wrap("invalid_input", "plant name cannot be empty", nil)
	}
	plantType := strings.TrimSpace(req.Type)
	if plantType == "" {
		return Plant{}, apperrors.Wrap("invalid_input", "plant type cannot be empty", nil)
	}
	if req.DefaultHumidity < 0 || req.DefaultHumidity > 100 {
		return Plant{}, apperrors.Wrap("invalid_input", "default humidity must be within [0, 100]", nil)
	}
	if req.DefaultLightExposure < 0 || req.DefaultLightExposure > 24 {
		return Plant{}, apperrors.Wrap("invalid_input", "default light exposure must be within [0, 24] hours", nil)
	}

	if _, exists, err := s.repo.GetPlantByName(ctx, name); err != nil {
		return Plant{}, apperrors.Wrap("plant_error", "failed to check plant name", err)
	} else if exists {
		return Plant{}, apperrors.Wrap("plant_exists", "plant name already exists", nil)
	}

	plant := Plant{
		ID:                   uuid.NewString(),
		Name:                 name,
		Type:                 plantType,
		DefaultHumidity:      req.DefaultHumidity,
		DefaultLightExposure: req.DefaultLightExposure,
		DefaultSeason:        strings.TrimSpace(req.DefaultSeason),
		DefaultPlacement:     strings.TrimSpace(req.DefaultPlacement),
		CreatedAt:            s.now().UTC(),
	}
	created, err := s.repo.CreatePlant(ctx, plant)
	if err != nil {
		if errors.Is(err, ErrNameExists) {
			return Plant{}, apperrors.Wrap("plant_exists", "plant name already exists", err)
		}
		return Plant{}, apperrors.Wrap("plant_error", "failed to create plant", err)
	}
	s.logger.Info("plant created", "plant_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *service) LinkPlant(ctx context.Context, userID int64, req LinkPlantRequest) (UserPlant, error) {
	if userID <= 0 {
		return UserPlant{}, apperrors.Wrap("invalid_input", "user is required", nil)
	}
	plantID := strings.TrimSpace(req.PlantID)
	if plantID == "" {
		return UserPlant{}, apperrors.Wrap("invalid_input", "plant id cannot be empty", nil)
	}
	if _, err := uuid.Parse(plantID); err != nil {
		return UserPlant{}, apperrors.Wrap("invalid_input", "plant id must be a valid UUID", err)
	}

	plant, found, err := s.repo.GetPlant(ctx, plantID)
	if err != nil {
		return UserPlant{}, apperrors.Wrap("plant_error", "failed to load plant", err)
	}
	if !found {
		return UserPlant{}, apperrors.Wrap("plant_not_found", "plant not found", nil)
	}

	// Overrides the caller leaves out inherit the catalog defaults.
	link := UserPlant{
		UserID:        userID,
		PlantID:       plant.ID,
		Humidity:      plant.DefaultHumidity,
		Season:        plant.DefaultSeason,
		LightExposure: plant.DefaultLightExposure,
		Placement:     plant.DefaultPlacement,
		CreatedAt:     s.now().UTC(),
	}
	if req.Humidity != nil {
		link.Humidity = *req.Humidity
	}
	if req.Season != nil {
		link.Season = *req.Season
	}
	if req.LightExposure != nil {
		link.LightExposure = *req.LightExposure
	}
	if req.Placement != nil {
		link.Placement = *req.Placement
	}

	created, err := s.repo.LinkPlant(ctx, link)
	if err != nil {
		if errors.Is(err, ErrAlreadyLinked) {
			return UserPlant{}, apperrors.Wrap("plant_already_linked", "plant already linked to user", err)
		}
		return UserPlant{}, apperrors.Wrap("plant_error", "failed to link plant", err)
	}
	return created, nil
}

func (s *service) ListUserPlants(ctx context.Context, userID int64) ([]UserPlantView, error) {
	if userID <= 0 {
		return nil, apperrors.Wrap("invalid_input", "user is required", nil)
	}
	views, err := s.repo.ListUserPlants(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap("plant_error", "failed to list plants", err)
	}
	return views, nil
}
