package repository

import (
	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/database"
	"github.com/georef/geo-reference-api/internal/models"
)

var countryOrderColumns = map[string]bool{
	"id":           true,
	"name":         true,
	"slug":         true,
	"postal_code":  true,
	"abbreviation": true,
	"created_at":   true,
}

// GormCountryRepository is a GORM implementation of CountryRepository
type GormCountryRepository struct {
	db *gorm.DB
}

// NewCountryRepository creates a new CountryRepository
func NewCountryRepository(db *gorm.DB) CountryRepository {
	return &GormCountryRepository{db: db}
}

// Create creates a new country
func (r *GormCountryRepository) Create(country *models.Country) error {
	return r.db.Create(country).Error
}

// FindByID finds a country by ID with optional preloading
func (r *GormCountryRepository) FindByID(id uint64, preload ...string) (*models.Country, error) {
	var country models.Country
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&country, id).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

// List retrieves countries with filtering and pagination
func (r *GormCountryRepository) List(filter ListFilter) ([]models.Country, int64, error) {
	query := r.db.Model(&models.Country{}).
		Scopes(
			database.NameSearch("name", filter.Name),
			database.OrderBy(filter.OrderBy, filter.OrderDesc, countryOrderColumns),
		)
	if !filter.IncludeDeleted {
		query = query.Scopes(database.NotDeleted())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var countries []models.Country
	if filter.Page > 0 && filter.Limit > 0 {
		query = query.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
	}
	if err := query.Preload("Continent").Find(&countries).Error; err != nil {
		return nil, 0, err
	}
	return countries, total, nil
}

// Update persists changes to a country
func (r *GormCountryRepository) Update(country *models.Country) error {
	return r.db.Save(country).Error
}

// SoftDelete marks the country deleted. The flag does not propagate to the
// country's cities.
func (r *GormCountryRepository) SoftDelete(id uint64) error {
	return r.db.Model(&models.Country{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

// Purge physically removes the country, its cities, and their ports in one
// transaction.
func (r *GormCountryRepository) Purge(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("city_id IN (?)",
			tx.Model(&models.City{}).Select("id").Where("country_id = ?", id),
		).Delete(&models.Port{}).Error; err != nil {
			return err
		}

		if err := tx.Where("country_id = ?", id).Delete(&models.City{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Country{}, id).Error
	})
}

// FindByName finds a country by exact name
func (r *GormCountryRepository) FindByName(name string) (*models.Country, error) {
	var country models.Country
	if err := r.db.Where("name = ?", name).First(&country).Error; err != nil {
		return nil, err
	}
	return &country, nil
}
