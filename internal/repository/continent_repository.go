package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/database"
	"github.com/georef/geo-reference-api/internal/models"
)

// ErrContinentHasCountries is returned when deleting a continent that
// countries still reference. Continents carry no soft-delete flag, so the
// only delete is physical and it must not orphan children.
var ErrContinentHasCountries = errors.New("continent repository: countries still reference this continent")

var continentOrderColumns = map[string]bool{
	"id":         true,
	"name":       true,
	"slug":       true,
	"created_at": true,
}

// GormContinentRepository is a GORM implementation of ContinentRepository
type GormContinentRepository struct {
	db *gorm.DB
}

// NewContinentRepository creates a new ContinentRepository
func NewContinentRepository(db *gorm.DB) ContinentRepository {
	return &GormContinentRepository{db: db}
}

// Create creates a new continent
func (r *GormContinentRepository) Create(continent *models.Continent) error {
	return r.db.Create(continent).Error
}

// FindByID finds a continent by ID with optional preloading
func (r *GormContinentRepository) FindByID(id uint64, preload ...string) (*models.Continent, error) {
	var continent models.Continent
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&continent, id).Error; err != nil {
		return nil, err
	}
	return &continent, nil
}

// List retrieves continents with filtering and pagination
func (r *GormContinentRepository) List(filter ListFilter) ([]models.Continent, int64, error) {
	query := r.db.Model(&models.Continent{}).
		Scopes(
			database.NameSearch("name", filter.Name),
			database.OrderBy(filter.OrderBy, filter.OrderDesc, continentOrderColumns),
		)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var continents []models.Continent
	if filter.Page > 0 && filter.Limit > 0 {
		query = query.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
	}
	if err := query.Find(&continents).Error; err != nil {
		return nil, 0, err
	}
	return continents, total, nil
}

// Update persists changes to a continent
func (r *GormContinentRepository) Update(continent *models.Continent) error {
	return r.db.Save(continent).Error
}

// Delete removes a continent after verifying no country references it
func (r *GormContinentRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var countries int64
		if err := tx.Model(&models.Country{}).
			Where("continent_id = ?", id).
			Count(&countries).Error; err != nil {
			return err
		}
		if countries > 0 {
			return ErrContinentHasCountries
		}
		return tx.Delete(&models.Continent{}, id).Error
	})
}

// FindByName finds a continent by exact name
func (r *GormContinentRepository) FindByName(name string) (*models.Continent, error) {
	var continent models.Continent
	if err := r.db.Where("name = ?", name).First(&continent).Error; err != nil {
		return nil, err
	}
	return &continent, nil
}
