package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/constants"
	"github.com/georef/geo-reference-api/internal/models"
	"github.com/georef/geo-reference-api/internal/repository"
)

var (
	ErrCountryNotFound     = errors.New("country not found")
	ErrCountryNameTaken    = errors.New("country already exists")
	ErrContinentRequired   = errors.New("country requires a continent")
	ErrInvalidAbbreviation = errors.New("abbreviation cannot exceed 10 characters")
)

// CountryService provides business logic for country operations.
type CountryService struct {
	countryRepo   repository.CountryRepository
	continentRepo repository.ContinentRepository
}

// NewCountryService creates a new CountryService.
func NewCountryService(countryRepo repository.CountryRepository, continentRepo repository.ContinentRepository) *CountryService {
	return &CountryService{
		countryRepo:   countryRepo,
		continentRepo: continentRepo,
	}
}

// CreateCountryInput represents parameters to create a country.
type CreateCountryInput struct {
	Name         string
	PostalCode   *string
	Abbreviation *string
	ContinentID  uint64
}

// CreateCountry creates a country under an existing continent. A missing or
// unknown continent is a validation failure; a country cannot exist without
// its parent.
func (s *CountryService) CreateCountry(input CreateCountryInput) (*models.Country, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	if input.Abbreviation != nil && len(*input.Abbreviation) > constants.MaxAbbreviation {
		return nil, ErrInvalidAbbreviation
	}
	if input.ContinentID == 0 {
		return nil, ErrContinentRequired
	}

	continent, err := s.continentRepo.FindByID(input.ContinentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContinentRequired
		}
		return nil, fmt.Errorf("failed to find continent: %w", err)
	}

	if _, err := s.countryRepo.FindByName(input.Name); err == nil {
		return nil, ErrCountryNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check country name: %w", err)
	}

	country := &models.Country{
		Name:         input.Name,
		PostalCode:   input.PostalCode,
		Abbreviation: input.Abbreviation,
		ContinentID:  continent.ID,
	}
	if err := s.countryRepo.Create(country); err != nil {
		return nil, fmt.Errorf("failed to create country: %w", err)
	}

	// Attach through the sanctioned setter so both sides of the relation
	// agree in the returned graph.
	continent.AddCountry(country)
	return country, nil
}

// GetCountry returns a country with its continent and cities.
func (s *CountryService) GetCountry(id uint64) (*models.Country, error) {
	country, err := s.countryRepo.FindByID(id, "Continent", "Cities")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCountryNotFound
		}
		return nil, fmt.Errorf("failed to find country: %w", err)
	}
	return country, nil
}

// ListCountries returns countries matching the filter.
func (s *CountryService) ListCountries(filter repository.ListFilter) ([]models.Country, int64, error) {
	countries, total, err := s.countryRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, total, nil
}

// UpdateCountryInput carries optional field updates; nil fields are untouched.
type UpdateCountryInput struct {
	Name         *string
	PostalCode   *string
	Abbreviation *string
	ContinentID  *uint64
}

// UpdateCountry applies a partial update. Renaming re-derives the slug on
// the persisted write; reparenting requires the new continent to exist.
func (s *CountryService) UpdateCountry(id uint64, input UpdateCountryInput) (*models.Country, error) {
	country, err := s.countryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCountryNotFound
		}
		return nil, fmt.Errorf("failed to find country: %w", err)
	}

	if input.Name != nil && *input.Name != country.Name {
		if err := validateName(*input.Name); err != nil {
			return nil, err
		}
		if existing, err := s.countryRepo.FindByName(*input.Name); err == nil {
			if existing.ID != id {
				return nil, ErrCountryNameTaken
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check country name: %w", err)
		}
		country.Name = *input.Name
	}
	if input.PostalCode != nil {
		country.PostalCode = input.PostalCode
	}
	if input.Abbreviation != nil {
		if len(*input.Abbreviation) > constants.MaxAbbreviation {
			return nil, ErrInvalidAbbreviation
		}
		country.Abbreviation = input.Abbreviation
	}
	if input.ContinentID != nil && *input.ContinentID != country.ContinentID {
		if _, err := s.continentRepo.FindByID(*input.ContinentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrContinentRequired
			}
			return nil, fmt.Errorf("failed to find continent: %w", err)
		}
		country.ContinentID = *input.ContinentID
	}

	if err := s.countryRepo.Update(country); err != nil {
		return nil, fmt.Errorf("failed to update country: %w", err)
	}
	return country, nil
}

// DeleteCountry marks the country deleted. Its cities keep their own flags.
func (s *CountryService) DeleteCountry(id uint64) error {
	if _, err := s.countryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCountryNotFound
		}
		return fmt.Errorf("failed to find country: %w", err)
	}
	if err := s.countryRepo.SoftDelete(id); err != nil {
		return fmt.Errorf("failed to delete country: %w", err)
	}
	return nil
}

// PurgeCountry physically removes the country and cascades to its cities
// and their ports.
func (s *CountryService) PurgeCountry(id uint64) error {
	if _, err := s.countryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCountryNotFound
		}
		return fmt.Errorf("failed to find country: %w", err)
	}
	if err := s.countryRepo.Purge(id); err != nil {
		return fmt.Errorf("failed to purge country: %w", err)
	}
	return nil
}
