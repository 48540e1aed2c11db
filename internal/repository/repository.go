package repository

import (
	"github.com/georef/geo-reference-api/internal/models"
)

// ListFilter holds the common listing options: case-insensitive partial
// name match, ordering by a whitelisted column, and pagination. Soft-deleted
// rows are excluded unless IncludeDeleted is set.
type ListFilter struct {
	Name           string
	OrderBy        string
	OrderDesc      bool
	IncludeDeleted bool
	Page           int
	Limit          int
}

// ContinentRepository defines the interface for continent data access
type ContinentRepository interface {
	// Create creates a new continent
	Create(continent *models.Continent) error

	// FindByID finds a continent by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Continent, error)

	// FindByName finds a continent by exact name
	FindByName(name string) (*models.Continent, error)

	// List retrieves continents with filtering and pagination
	List(filter ListFilter) ([]models.Continent, int64, error)

	// Update persists changes to a continent
	Update(continent *models.Continent) error

	// Delete removes a continent; it fails while countries still reference it
	Delete(id uint64) error
}

// CountryRepository defines the interface for country data access
type CountryRepository interface {
	Create(country *models.Country) error
	FindByID(id uint64, preload ...string) (*models.Country, error)
	FindByName(name string) (*models.Country, error)
	List(filter ListFilter) ([]models.Country, int64, error)
	Update(country *models.Country) error

	// SoftDelete marks the country deleted without touching its cities
	SoftDelete(id uint64) error

	// Purge physically removes the country and cascades to its cities
	// and their ports within a single transaction
	Purge(id uint64) error
}

// CityRepository defines the interface for city data access
type CityRepository interface {
	Create(city *models.City) error
	FindByID(id uint64, preload ...string) (*models.City, error)
	FindByName(name string) (*models.City, error)
	List(filter ListFilter) ([]models.City, int64, error)
	Update(city *models.City) error

	// SoftDelete marks the city deleted without touching its ports
	SoftDelete(id uint64) error

	// Purge physically removes the city and cascades to its ports
	Purge(id uint64) error
}

// PortRepository defines the interface for port data access
type PortRepository interface {
	Create(port *models.Port) error
	FindByID(id uint64, preload ...string) (*models.Port, error)
	List(filter ListFilter) ([]models.Port, int64, error)
	Update(port *models.Port) error
	SoftDelete(id uint64) error
	Purge(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint64, preload ...string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	List(filter ListFilter) ([]models.User, int64, error)
	Update(user *models.User) error
}
