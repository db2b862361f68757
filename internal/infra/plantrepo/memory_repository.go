package plantrepo

import (
	"context"
	"sync"
	"time"

	"github.com/botalearn/plantcare/internal/domain/plants"
)

// MemoryRepository provides an in-memory plant store for tests/dev.
type MemoryRepository struct {
	mu        sync.RWMutex
	byID      map[string]plants.Plant
	nameIndex map[string]string
	links     map[int64][]plants.UserPlant
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:      make(map[string]plants.Plant),
		nameIndex: make(map[string]string),
		links:     make(map[int64][]plants.UserPlant),
	}
}

// CreatePlant stores a catalog entry.
func (r *MemoryRepository) CreatePlant(_ context.Context, plant plants.Plant) (plants.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.nameIndex[plant.Name]; exists {
		return plants.Plant{}, plants.ErrNameExists
	}
	if plant.CreatedAt.IsZero() {
		plant.CreatedAt = time.Now().UTC()
	}
	r.byID[plant.ID] = plant
	r.nameIndex[plant.Name] = plant.ID
	return plant, nil
}

// GetPlant fetches a catalog entry by id.
func (r *MemoryRepository) GetPlant(_ context.Context, id string) (plants.Plant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plant, ok := r.byID[id]
	return plant, ok, nil
}

// GetPlantByName fetches a catalog entry by name.
func (r *MemoryRepository) GetPlantByName(_ context.Context, name string) (plants.Plant, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.nameIndex[name]
	if !ok {
		return plants.Plant{}, false, nil
	}
	return r.byID[id], true, nil
}

// LinkPlant stores a user-plant link.
func (r *MemoryRepository) LinkPlant(_ context.Context, link plants.UserPlant) (plants.UserPlant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.links[link.UserID] {
		if existing.PlantID == link.PlantID {
			return plants.UserPlant{}, plants.ErrAlreadyLinked
		}
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}
	r.links[link.UserID] = append(r.links[link.UserID], link)
	return link, nil
}

// ListUserPlants joins link rows with the catalog.
func (r *MemoryRepository) ListUserPlants(_ context.Context, userID int64) ([]plants.UserPlantView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	views := make([]plants.UserPlantView, 0, len(r.links[userID]))
	for _, link := range r.links[userID] {
		plant := r.byID[link.PlantID]
		views = append(views, plants.UserPlantView{
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

var _ plants.Repository = (*MemoryRepository)(nil)
