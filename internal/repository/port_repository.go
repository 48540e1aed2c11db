package repository

import (
	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/database"
	"github.com/georef/geo-reference-api/internal/models"
)

var portOrderColumns = map[string]bool{
	"id":         true,
	"name":       true,
	"slug":       true,
	"latitude":   true,
	"longitude":  true,
	"created_at": true,
}

// GormPortRepository is a GORM implementation of PortRepository
type GormPortRepository struct {
	db *gorm.DB
}

// NewPortRepository creates a new PortRepository
func NewPortRepository(db *gorm.DB) PortRepository {
	return &GormPortRepository{db: db}
}

// Create creates a new port
func (r *GormPortRepository) Create(port *models.Port) error {
	return r.db.Create(port).Error
}

// FindByID finds a port by ID with optional preloading
func (r *GormPortRepository) FindByID(id uint64, preload ...string) (*models.Port, error) {
	var port models.Port
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&port, id).Error; err != nil {
		return nil, err
	}
	return &port, nil
}

// List retrieves ports with filtering and pagination
func (r *GormPortRepository) List(filter ListFilter) ([]models.Port, int64, error) {
	query := r.db.Model(&models.Port{}).
		Scopes(
			database.NameSearch("name", filter.Name),
			database.OrderBy(filter.OrderBy, filter.OrderDesc, portOrderColumns),
		)
	if !filter.IncludeDeleted {
		query = query.Scopes(database.NotDeleted())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ports []models.Port
	if filter.Page > 0 && filter.Limit > 0 {
		query = query.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
	}
	if err := query.Preload("City").Find(&ports).Error; err != nil {
		return nil, 0, err
	}
	return ports, total, nil
}

// Update persists changes to a port
func (r *GormPortRepository) Update(port *models.Port) error {
	return r.db.Save(port).Error
}

// SoftDelete marks the port deleted
func (r *GormPortRepository) SoftDelete(id uint64) error {
	return r.db.Model(&models.Port{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

// Purge physically removes the port
func (r *GormPortRepository) Purge(id uint64) error {
	return r.db.Delete(&models.Port{}, id).Error
}
