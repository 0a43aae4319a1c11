package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paramparahq/parampara/internal/model"
	"github.com/paramparahq/parampara/internal/repository"
	"github.com/paramparahq/parampara/internal/validation"
)

var ErrNoLocation = errors.New("no location recorded")

type LocationService struct {
	locationRepository repository.LocationRepository
}

func NewLocationService(locationRepository repository.LocationRepository) *LocationService {
	return &LocationService{locationRepository: locationRepository}
}

// Record appends a new location fix for the user. Locations are append-only;
// the latest fix wins for geotagging.
func (s *LocationService) Record(userID string, lat, lon float64, address string) (*model.Location, error) {
	err := validation.ValidateCoordinates(lat, lon)
	if err != nil {
		return nil, err
	}

	location := &model.Location{
		ID:         uuid.New().String(),
		UserID:     userID,
		Lat:        lat,
		Lon:        lon,
		RecordedAt: time.Now(),
	}
	if addr := strings.TrimSpace(address); addr != "" {
		location.Address = &addr
	}

	err = s.locationRepository.Create(location)
	if err != nil {
		return nil, fmt.Errorf("failed to record location: %w", err)
	}

	return location, nil
}

func (s *LocationService) Latest(userID string) (*model.Location, error) {
	location, err := s.locationRepository.LatestByUser(userID)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return nil, ErrNoLocation
		}
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return location, nil
}
