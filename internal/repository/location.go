package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/paramparahq/parampara/internal/model"
)

var ErrLocationNotFound = errors.New("location not found")

type LocationRepository interface {
	Create(location *model.Location) error
	LatestByUser(userID string) (*model.Location, error)
	ByUser(userID string, limit int) ([]model.Location, error)
}

type locationRepository struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(location *model.Location) error {
	query := r.db.Rebind(`INSERT INTO locations (id, user_id, lat, lon, address, recorded_at) VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := r.db.Exec(query, location.ID, location.UserID, location.Lat, location.Lon, location.Address, location.RecordedAt)
	return err
}

func (r *locationRepository) LatestByUser(userID string) (*model.Location, error) {
	location := &model.Location{}
	query := r.db.Rebind(`SELECT * FROM locations WHERE user_id = ? ORDER BY recorded_at DESC LIMIT 1`)

	err := r.db.Get(location, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrLocationNotFound
	}

	return location, err
}

func (r *locationRepository) ByUser(userID string, limit int) ([]model.Location, error) {
	locations := []model.Location{}
	query := r.db.Rebind(`SELECT * FROM locations WHERE user_id = ? ORDER BY recorded_at DESC LIMIT ?`)

	err := r.db.Select(&locations, query, userID, limit)
	return locations, err
}
