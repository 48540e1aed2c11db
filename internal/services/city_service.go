package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/models"
	"github.com/georef/geo-reference-api/internal/repository"
)

var (
	ErrCityNotFound    = errors.New("city not found")
	ErrCityNameTaken   = errors.New("city already exists")
	ErrCountryRequired = errors.New("city requires a country")
)

// CityService provides business logic for city operations.
type CityService struct {
	cityRepo    repository.CityRepository
	countryRepo repository.CountryRepository
}

// NewCityService creates a new CityService.
func NewCityService(cityRepo repository.CityRepository, countryRepo repository.CountryRepository) *CityService {
	return &CityService{
		cityRepo:    cityRepo,
		countryRepo: countryRepo,
	}
}

// CreateCityInput represents parameters to create a city.
type CreateCityInput struct {
	Name      string
	CountryID uint64
}

// CreateCity creates a city under an existing country.
func (s *CityService) CreateCity(input CreateCityInput) (*models.City, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	if input.CountryID == 0 {
		return nil, ErrCountryRequired
	}

	country, err := s.countryRepo.FindByID(input.CountryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCountryRequired
		}
		return nil, fmt.Errorf("failed to find country: %w", err)
	}

	if _, err := s.cityRepo.FindByName(input.Name); err == nil {
		return nil, ErrCityNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check city name: %w", err)
	}

	city := &models.City{
		Name:      input.Name,
		CountryID: country.ID,
	}
	if err := s.cityRepo.Create(city); err != nil {
		return nil, fmt.Errorf("failed to create city: %w", err)
	}

	country.AddCity(city)
	return city, nil
}

// GetCity returns a city with its country and ports.
func (s *CityService) GetCity(id uint64) (*models.City, error) {
	city, err := s.cityRepo.FindByID(id, "Country", "Ports")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, fmt.Errorf("failed to find city: %w", err)
	}
	return city, nil
}

// ListCities returns cities matching the filter.
func (s *CityService) ListCities(filter repository.ListFilter) ([]models.City, int64, error) {
	cities, total, err := s.cityRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, total, nil
}

// UpdateCityInput carries optional field updates; nil fields are untouched.
type UpdateCityInput struct {
	Name      *string
	CountryID *uint64
}

// UpdateCity applies a partial update. Renaming re-derives the slug on the
// persisted write.
func (s *CityService) UpdateCity(id uint64, input UpdateCityInput) (*models.City, error) {
	city, err := s.cityRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, fmt.Errorf("failed to find city: %w", err)
	}

	if input.Name != nil && *input.Name != city.Name {
		if err := validateName(*input.Name); err != nil {
			return nil, err
		}
		if existing, err := s.cityRepo.FindByName(*input.Name); err == nil {
			if existing.ID != id {
				return nil, ErrCityNameTaken
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check city name: %w", err)
		}
		city.Name = *input.Name
	}
	if input.CountryID != nil && *input.CountryID != city.CountryID {
		if _, err := s.countryRepo.FindByID(*input.CountryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCountryRequired
			}
			return nil, fmt.Errorf("failed to find country: %w", err)
		}
		city.CountryID = *input.CountryID
	}

	if err := s.cityRepo.Update(city); err != nil {
		return nil, fmt.Errorf("failed to update city: %w", err)
	}
	return city, nil
}

// DeleteCity marks the city deleted. Its ports keep their own flags.
func (s *CityService) DeleteCity(id uint64) error {
	if _, err := s.cityRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCityNotFound
		}
		return fmt.Errorf("failed to find city: %w", err)
	}
	if err := s.cityRepo.SoftDelete(id); err != nil {
		return fmt.Errorf("failed to delete city: %w", err)
	}
	return nil
}

// PurgeCity physically removes the city and cascades to its ports.
func (s *CityService) PurgeCity(id uint64) error {
	if _, err := s.cityRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCityNotFound
		}
		return fmt.Errorf("failed to find city: %w", err)
	}
	if err := s.cityRepo.Purge(id); err != nil {
		return fmt.Errorf("failed to purge city: %w", err)
	}
	return nil
}
