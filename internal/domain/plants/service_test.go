package plants

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperrors "github.com/botalearn/plantcare/pkg/errors"
)

func TestCreatePlantAssignsID(t *testing.T) {
	svc := NewService(newMemoryRepo(), newTestLogger())

	plant, err := svc.CreatePlant(context.Background(), CreatePlantRequest{
		Name:                 "Monstera Deliciosa",
		Type:                 "tropical",
		DefaultHumidity:      60,
		DefaultLightExposure: 6,
		DefaultSeason:        "spring",
		DefaultPlacement:     "indoor",
	})
	require.NoError(t, err)
	require.NotEmpty(t, plant.ID)
	_, err = uuid.Parse(plant.ID)
	require.NoError(t, err)
	require.Equal(t, "Monstera Deliciosa", plant.Name)
}

func TestCreatePlantRejectsDuplicateName(t *testing.T) {
	svc := NewService(newMemoryRepo(), newTestLogger())

	_, err := svc.CreatePlant(context.Background(), CreatePlantRequest{Name: "Basil", Type: "herb"})
	require.NoError(t, err)

	_, err = svc.CreatePlant(context.Background(), CreatePlantRequest{Name: "Basil", Type: "herb"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "plant_exists"))
}

func TestCreatePlantValidatesInput(t *testing.T) {
	svc := NewService(newMemoryRepo(), newTestLogger())

	_, err := svc.CreatePlant(context.Background(), CreatePlantRequest{Name: " ", Type: "herb"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.CreatePlant(context.Background(), CreatePlantRequest{Name: "Basil", Type: "herb", DefaultHumidity: 130})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.CreatePlant(context.Background(), CreatePlantRequest{Name: "Basil", Type: "herb", DefaultLightExposure: 30})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestLinkPlantInheritsCatalogDefaults(t *testing.T) {
	svc := NewService(newMemoryRepo(), newTestLogger())

	plant, err := svc.CreatePlant(context.Background(), CreatePlantRequest{
		Name:                 "Snake Plant",
		Type:                 "succulent",
		DefaultHumidity:      40,
		DefaultLightExposure: 4,
		DefaultSeason:        "all",
		DefaultPlacement:     "indoor",
	})
	require.NoError(t, err)

	humidity := 55.0
	link, err := svc.LinkPlant(context.Background(), 7, LinkPlantRequest{
		PlantID:  plant.ID,
		Humidity: &humidity,
	})
	require.NoError(t, err)

	require.Equal(t, 55.0, link.Humidity)
	require.Equal(t, 4.0, link.LightExposure)
	require.Equal(t, "all", link.Season)
	require.Equal(t, "indoor", link.Placement)
}

func TestLinkPlantRejectsUnknownPlant(t *testing.T) {
	svc := NewService(newMemoryRepo(), newTestLogger())

	_, err := svc.LinkPlant(context.Background(), 7, LinkPlantRequest{PlantID: uuid.NewString()})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "plant_not_found"))

	_, err = svc.LinkPlant(context.Background(), 7, LinkPlantRequest{PlantID: "not-a-uuid"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestListUserPlantsJoinsCatalog(t *testing.T) {
	svc := NewService(newMemoryRepo(), newTestLogger())

	plant, err := svc.CreatePlant(context.Background(), CreatePlantRequest{
		Name: "Pothos", Type: "vine", DefaultHumidity: 50, DefaultLightExposure: 5,
	})
	require.NoError(t, err)
	_, err = svc.LinkPlant(context.Background(), 7, LinkPlantRequest{PlantID: plant.ID})
	require.NoError(t, err)

	views, err := svc.ListUserPlants(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, "Pothos", views[0].Name)
	require.Equal(t, "vine", views[0].Type)

	other, err := svc.ListUserPlants(context.Background(), 8)
	require.NoError(t, err)
	require.Empty(t, other)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryRepo mirrors internal/infra/plantrepo for in-package tests.
type memoryRepo struct {
	mu     sync.Mutex
	byID   map[string]Plant
	byName map[string]string
	links  map[int64][]UserPlant
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		byID:   make(map[string]Plant),
		byName: make(map[string]string),
		links:  make(map[int64][]UserPlant),
	}
}

func (r *memoryRepo) CreatePlant(_ context.Context, plant Plant) (Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[plant.Name]; exists {
		return Plant{}, ErrNameExists
	}
	if plant.CreatedAt.IsZero() {
		plant.CreatedAt = time.Now().UTC()
	}
	r.byID[plant.ID] = plant
	r.byName[plant.Name] = plant.ID
	return plant, nil
}

func (r *memoryRepo) GetPlant(_ context.Context, id string) (Plant, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plant, ok := r.byID[id]
	return plant, ok, nil
}

func (r *memoryRepo) GetPlantByName(_ context.Context, name string) (Plant, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byName[name]
	if !ok {
		return Plant{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *memoryRepo) LinkPlant(_ context.Context, link UserPlant) (UserPlant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.links[link.UserID] {
		if existing.PlantID == link.PlantID {
			return UserPlant{}, ErrAlreadyLinked
		}
	}
	r.links[link.UserID] = append(r.links[link.UserID], link)
	return link, nil
}

func (r *memoryRepo) ListUserPlants(_ context.Context, userID int64) ([]UserPlantView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	views := make([]UserPlantView, 0, len(r.links[userID]))
	for _, link := range r.links[userID] {
		plant := r.byID[link.PlantID]
		views = append(views, UserPlantView{
			PlantID:       link.PlantID,
			Name:          plant.Name,
			Type:          plant.Type,
			Humidity:      link.Humidity,
			Season:        link.Season,
			LightExposure: link.LightExposure,
			Placement:     link.Placement,
		})
	}
	return views, nil
}
