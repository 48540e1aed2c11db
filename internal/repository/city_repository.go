package repository

import (
	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/database"
	"github.com/georef/geo-reference-api/internal/models"
)

var cityOrderColumns = map[string]bool{
	"id":         true,
	"name":       true,
	"slug":       true,
	"created_at": true,
}

// GormCityRepository is a GORM implementation of CityRepository
type GormCityRepository struct {
	db *gorm.DB
}

// NewCityRepository creates a new CityRepository
func NewCityRepository(db *gorm.DB) CityRepository {
	return &GormCityRepository{db: db}
}

// Create creates a new city
func (r *GormCityRepository) Create(city *models.City) error {
	return r.db.Create(city).Error
}

// FindByID finds a city by ID with optional preloading
func (r *GormCityRepository) FindByID(id uint64, preload ...string) (*models.City, error) {
	var city models.City
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&city, id).Error; err != nil {
		return nil, err
	}
	return &city, nil
}

// List retrieves cities with filtering and pagination
func (r *GormCityRepository) List(filter ListFilter) ([]models.City, int64, error) {
	query := r.db.Model(&models.City{}).
		Scopes(
			database.NameSearch("name", filter.Name),
			database.OrderBy(filter.OrderBy, filter.OrderDesc, cityOrderColumns),
		)
	if !filter.IncludeDeleted {
		query = query.Scopes(database.NotDeleted())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cities []models.City
	if filter.Page > 0 && filter.Limit > 0 {
		query = query.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
	}
	if err := query.Preload("Country").Find(&cities).Error; err != nil {
		return nil, 0, err
	}
	return cities, total, nil
}

// Update persists changes to a city
func (r *GormCityRepository) Update(city *models.City) error {
	return r.db.Save(city).Error
}

// SoftDelete marks the city deleted. The flag does not propagate to the
// city's ports.
func (r *GormCityRepository) SoftDelete(id uint64) error {
	return r.db.Model(&models.City{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

// Purge physically removes the city and its ports in one transaction.
func (r *GormCityRepository) Purge(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("city_id = ?", id).Delete(&models.Port{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.City{}, id).Error
	})
}

// FindByName finds a city by exact name
func (r *GormCityRepository) FindByName(name string) (*models.City, error) {
	var city models.City
	if err := r.db.Where("name = ?", name).First(&city).Error; err != nil {
		return nil, err
	}
	return &city, nil
}
