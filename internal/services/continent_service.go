package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/constants"
	"github.com/georef/geo-reference-api/internal/models"
	"github.com/georef/geo-reference-api/internal/repository"
)

var (
	ErrInvalidName          = errors.New("name must be between 2 and 255 characters")
	ErrContinentNotFound    = errors.New("continent not found")
	ErrContinentNameTaken   = errors.New("continent already exists")
	ErrContinentHasChildren = errors.New("continent still has countries")
)

// validateName enforces the shared display-name bounds for geo entities.
func validateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < constants.MinNameLength || len(trimmed) > constants.MaxNameLength {
		return ErrInvalidName
	}
	return nil
}

// ContinentService provides business logic for continent operations.
// Continents are reference data: they carry no soft-delete flag and are
// hard-deleted, which is refused while countries still belong to them.
type ContinentService struct {
	continentRepo repository.ContinentRepository
}

// NewContinentService creates a new ContinentService.
func NewContinentService(continentRepo repository.ContinentRepository) *ContinentService {
	return &ContinentService{
		continentRepo: continentRepo,
	}
}

// CreateContinentInput represents parameters to create a continent.
type CreateContinentInput struct {
	Name     string
	AuthorID uint64
}

// CreateContinent creates a continent attributed to the acting principal.
// The slug is derived from the name at write time.
func (s *ContinentService) CreateContinent(input CreateContinentInput) (*models.Continent, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}

	if _, err := s.continentRepo.FindByName(input.Name); err == nil {
		return nil, ErrContinentNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check continent name: %w", err)
	}

	continent := &models.Continent{
		Name:     input.Name,
		AuthorID: &input.AuthorID,
	}
	if err := s.continentRepo.Create(continent); err != nil {
		return nil, fmt.Errorf("failed to create continent: %w", err)
	}
	return continent, nil
}

// GetContinent returns a continent with its countries and author.
func (s *ContinentService) GetContinent(id uint64) (*models.Continent, error) {
	continent, err := s.continentRepo.FindByID(id, "Countries", "Author")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContinentNotFound
		}
		return nil, fmt.Errorf("failed to find continent: %w", err)
	}
	return continent, nil
}

// ListContinents returns continents matching the filter.
func (s *ContinentService) ListContinents(filter repository.ListFilter) ([]models.Continent, int64, error) {
	continents, total, err := s.continentRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list continents: %w", err)
	}
	return continents, total, nil
}

// RenameContinent updates a continent's name; the slug follows on the write.
func (s *ContinentService) RenameContinent(id uint64, name string) (*models.Continent, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	continent, err := s.continentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContinentNotFound
		}
		return nil, fmt.Errorf("failed to find continent: %w", err)
	}

	if existing, err := s.continentRepo.FindByName(name); err == nil {
		if existing.ID != id {
			return nil, ErrContinentNameTaken
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check continent name: %w", err)
	}

	continent.Name = name
	if err := s.continentRepo.Update(continent); err != nil {
		return nil, fmt.Errorf("failed to update continent: %w", err)
	}
	return continent, nil
}

// DeleteContinent removes a continent outright. It fails with
// ErrContinentHasChildren while countries still reference it.
func (s *ContinentService) DeleteContinent(id uint64) error {
	if _, err := s.continentRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContinentNotFound
		}
		return fmt.Errorf("failed to find continent: %w", err)
	}

	if err := s.continentRepo.Delete(id); err != nil {
		if errors.Is(err, repository.ErrContinentHasCountries) {
			return ErrContinentHasChildren
		}
		return fmt.Errorf("failed to delete continent: %w", err)
	}
	return nil
}
