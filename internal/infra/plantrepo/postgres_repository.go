package plantrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/botalearn/plantcare/internal/domain/plants"
)

// PostgresRepository implements plants.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// CreatePlant inserts a catalog row.
func (r *PostgresRepository) CreatePlant(ctx context.Context, plant plants.Plant) (plants.Plant, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO plants (id, name, type, humidity, light_exposure, season, placement)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, type, humidity, light_exposure, season, placement, created_at
	`, plant.ID, plant.Name, plant.Type, plant.DefaultHumidity, plant.DefaultLightExposure, plant.DefaultSeason, plant.DefaultPlacement)
	created, err := scanPlant(row)
	if err != nil {
		if isUniqueViolation(err) {
			return plants.Plant{}, plants.ErrNameExists
		}
		return plants.Plant{}, err
	}
	return created, nil
}

// GetPlant fetches a catalog row by id.
func (r *PostgresRepository) GetPlant(ctx context.Context, id string) (plants.Plant, bool, error) {
	return r.getOne(ctx, `
		SELECT id, name, type, humidity, light_exposure, season, placement, created_at
		FROM plants
		WHERE id = $1
		LIMIT 1
	`, id)
}

// GetPlantByName fetches a catalog row by name.
func (r *PostgresRepository) GetPlantByName(ctx context.Context, name string) (plants.Plant, bool, error) {
	return r.getOne(ctx, `
		SELECT id, name, type, humidity, light_exposure, season, placement, created_at
		FROM plants
		WHERE name = $1
		LIMIT 1
	`, name)
}

// LinkPlant inserts a user-plant link row.
func (r *PostgresRepository) LinkPlant(ctx context.Context, link plants.UserPlant) (plants.UserPlant, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO userplant (user_id, plant_id, humidity, season, light_exposure, placement)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id, plant_id, humidity, season, light_exposure, placement, created_at
	`, link.UserID, link.PlantID, link.Humidity, link.Season, link.LightExposure, link.Placement)
	var created plants.UserPlant
	var createdAt time.Time
	if err := row.Scan(&created.UserID, &created.PlantID, &created.Humidity, &created.Season, &created.LightExposure, &created.Placement, &createdAt); err != nil {
		if isUniqueViolation(err) {
			return plants.UserPlant{}, plants.ErrAlreadyLinked
		}
		return plants.UserPlant{}, err
	}
	created.CreatedAt = createdAt.UTC()
	return created, nil
}

// ListUserPlants joins link rows with the catalog.
func (r *PostgresRepository) ListUserPlants(ctx context.Context, userID int64) ([]plants.UserPlantView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT up.plant_id, p.name, p.type, up.humidity, up.season, up.light_exposure, up.placement
		FROM userplant up
		JOIN plants p ON p.id = up.plant_id
		WHERE up.user_id = $1
		ORDER BY up.created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	views := make([]plants.UserPlantView, 0)
	for rows.Next() {
		var view plants.UserPlantView
		if err := rows.Scan(&view.PlantID, &view.Name, &view.Type, &view.Humidity, &view.Season, &view.LightExposure, &view.Placement); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, rows.Err()
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (plants.Plant, bool, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return plants.Plant{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return plants.Plant{}, false, rows.Err()
	}
	plant, err := scanPlant(rows)
	if err != nil {
		return plants.Plant{}, false, err
	}
	return plant, true, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlant(row rowScanner) (plants.Plant, error) {
	var plant plants.Plant
	var created time.Time
	if err := row.Scan(&plant.ID, &plant.Name, &plant.Type, &plant.DefaultHumidity, &plant.DefaultLightExposure, &plant.DefaultSeason, &plant.DefaultPlacement, &created); err != nil {
		return plants.Plant{}, err
	}
	plant.CreatedAt = created.UTC()
	return plant, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ plants.Repository = (*PostgresRepository)(nil)
