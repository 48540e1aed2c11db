package repository

import (
	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/database"
	"github.com/georef/geo-reference-api/internal/models"
)

var userOrderColumns = map[string]bool{
	"id":         true,
	"username":   true,
	"full_name":  true,
	"email":      true,
	"created_at": true,
}

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID with optional preloading
func (r *GormUserRepository) FindByID(id uint64, preload ...string) (*models.User, error) {
	var user models.User
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List retrieves users filtered by a partial full-name match. Users are
// never soft-deleted; deactivated accounts stay listed.
func (r *GormUserRepository) List(filter ListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{}).
		Scopes(
			database.NameSearch("full_name", filter.Name),
			database.OrderBy(filter.OrderBy, filter.OrderDesc, userOrderColumns),
		)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if filter.Page > 0 && filter.Limit > 0 {
		query = query.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
