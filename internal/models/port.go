package models

import (
	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/utils"
)

// Port names are not unique: several cities may share a port name.
type Port struct {
	ID        uint64  `gorm:"primarykey" json:"id"`
	Name      string  `gorm:"type:varchar(255);not null" json:"name"`
	Latitude  *string `gorm:"type:varchar(255)" json:"latitude"`
	Longitude *string `gorm:"type:varchar(255)" json:"longitude"`
	SlugField
	AuditField
	SoftDeleteField
	CityID uint64 `gorm:"not null;index" json:"city_id"`

	// Relations
	City *City `gorm:"foreignKey:CityID" json:"city,omitempty"`
}

// BeforeSave re-derives the slug from the current name on every write.
func (p *Port) BeforeSave(tx *gorm.DB) error {
	p.Slug = utils.Slugify(p.Name)
	return nil
}
