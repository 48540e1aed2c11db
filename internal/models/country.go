package models

import (
	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/utils"
)

type Country struct {
	ID           uint64  `gorm:"primarykey" json:"id"`
	Name         string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	PostalCode   *string `gorm:"type:varchar(255)" json:"postal_code"`
	Abbreviation *string `gorm:"type:varchar(10)" json:"abbreviation"`
	SlugField
	AuditField
	SoftDeleteField
	ContinentID uint64 `gorm:"not null;index" json:"continent_id"`

	// Relations
	Continent *Continent `gorm:"foreignKey:ContinentID" json:"continent,omitempty"`
	Cities    []City     `gorm:"foreignKey:CountryID" json:"cities,omitempty"`
}

// BeforeSave re-derives the slug from the current name on every write.
func (c *Country) BeforeSave(tx *gorm.DB) error {
	c.Slug = utils.Slugify(c.Name)
	return nil
}

// AddCity links a city to this country and keeps the back reference consistent.
func (c *Country) AddCity(city *City) {
	for i := range c.Cities {
		if c.Cities[i].ID == city.ID {
			return
		}
	}
	city.CountryID = c.ID
	city.Country = c
	c.Cities = append(c.Cities, *city)
}

// RemoveCity detaches a city, nulling the owning side only when it still
// points back at this country.
func (c *Country) RemoveCity(city *City) {
	for i := range c.Cities {
		if c.Cities[i].ID == city.ID {
			c.Cities = append(c.Cities[:i], c.Cities[i+1:]...)
			if city.CountryID == c.ID {
				city.CountryID = 0
				city.Country = nil
			}
			return
		}
	}
}
