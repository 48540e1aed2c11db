package models

import (
	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/utils"
)

// Continent is reference data: it has no soft-delete flag and can only be
// removed outright, which is refused while countries still belong to it.
type Continent struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	SlugField
	AuditField
	AuthorID *uint64 `json:"author_id"`

	// Relations
	Author    *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Countries []Country `gorm:"foreignKey:ContinentID" json:"countries,omitempty"`
}

// BeforeSave re-derives the slug from the current name on every write.
func (c *Continent) BeforeSave(tx *gorm.DB) error {
	c.Slug = utils.Slugify(c.Name)
	return nil
}

// AddCountry links a country to this continent and keeps the back
// reference consistent. It is the sanctioned way to grow the collection.
func (c *Continent) AddCountry(country *Country) {
	for i := range c.Countries {
		if c.Countries[i].ID == country.ID {
			return
		}
	}
	country.ContinentID = c.ID
	country.Continent = c
	c.Countries = append(c.Countries, *country)
}

// RemoveCountry detaches a country. The owning side is nulled only when it
// still points back at this continent, so a country already reassigned
// elsewhere keeps its new parent.
func (c *Continent) RemoveCountry(country *Country) {
	for i := range c.Countries {
		if c.Countries[i].ID == country.ID {
			c.Countries = append(c.Countries[:i], c.Countries[i+1:]...)
			if country.ContinentID == c.ID {
				country.ContinentID = 0
				country.Continent = nil
			}
			return
		}
	}
}
