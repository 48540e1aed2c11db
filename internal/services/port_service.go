package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/models"
	"github.com/georef/geo-reference-api/internal/repository"
)

var (
	ErrPortNotFound = errors.New("port not found")
	ErrCityRequired = errors.New("port requires a city")
)

// PortService provides business logic for port operations. Port names are
// not unique; two cities may each have a "Porto Novo".
type PortService struct {
	portRepo repository.PortRepository
	cityRepo repository.CityRepository
}

// NewPortService creates a new PortService.
func NewPortService(portRepo repository.PortRepository, cityRepo repository.CityRepository) *PortService {
	return &PortService{
		portRepo: portRepo,
		cityRepo: cityRepo,
	}
}

// CreatePortInput represents parameters to create a port. Latitude and
// longitude are free-text and optional.
type CreatePortInput struct {
	Name      string
	Latitude  *string
	Longitude *string
	CityID    uint64
}

// CreatePort creates a port under an existing city.
func (s *PortService) CreatePort(input CreatePortInput) (*models.Port, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	if input.CityID == 0 {
		return nil, ErrCityRequired
	}

	city, err := s.cityRepo.FindByID(input.CityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCityRequired
		}
		return nil, fmt.Errorf("failed to find city: %w", err)
	}

	port := &models.Port{
		Name:      input.Name,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		CityID:    city.ID,
	}
	if err := s.portRepo.Create(port); err != nil {
		return nil, fmt.Errorf("failed to create port: %w", err)
	}

	city.AddPort(port)
	return port, nil
}

// GetPort returns a port with its city.
func (s *PortService) GetPort(id uint64) (*models.Port, error) {
	port, err := s.portRepo.FindByID(id, "City")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortNotFound
		}
		return nil, fmt.Errorf("failed to find port: %w", err)
	}
	return port, nil
}

// ListPorts returns ports matching the filter.
func (s *PortService) ListPorts(filter repository.ListFilter) ([]models.Port, int64, error) {
	ports, total, err := s.portRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ports: %w", err)
	}
	return ports, total, nil
}

// UpdatePortInput carries optional field updates; nil fields are untouched.
type UpdatePortInput struct {
	Name      *string
	Latitude  *string
	Longitude *string
	CityID    *uint64
}

// UpdatePort applies a partial update. Renaming re-derives the slug on the
// persisted write.
func (s *PortService) UpdatePort(id uint64, input UpdatePortInput) (*models.Port, error) {
	port, err := s.portRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPortNotFound
		}
		return nil, fmt.Errorf("failed to find port: %w", err)
	}

	if input.Name != nil {
		if err := validateName(*input.Name); err != nil {
			return nil, err
		}
		port.Name = *input.Name
	}
	if input.Latitude != nil {
		port.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		port.Longitude = input.Longitude
	}
	if input.CityID != nil && *input.CityID != port.CityID {
		if _, err := s.cityRepo.FindByID(*input.CityID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCityRequired
			}
			return nil, fmt.Errorf("failed to find city: %w", err)
		}
		port.CityID = *input.CityID
	}

	if err := s.portRepo.Update(port); err != nil {
		return nil, fmt.Errorf("failed to update port: %w", err)
	}
	return port, nil
}

// DeletePort marks the port deleted.
func (s *PortService) DeletePort(id uint64) error {
	if _, err := s.portRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPortNotFound
		}
		return fmt.Errorf("failed to find port: %w", err)
	}
	if err := s.portRepo.SoftDelete(id); err != nil {
		return fmt.Errorf("failed to delete port: %w", err)
	}
	return nil
}

// PurgePort physically removes the port.
func (s *PortService) PurgePort(id uint64) error {
	if _, err := s.portRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPortNotFound
		}
		return fmt.Errorf("failed to find port: %w", err)
	}
	if err := s.portRepo.Purge(id); err != nil {
		return fmt.Errorf("failed to purge port: %w", err)
	}
	return nil
}
