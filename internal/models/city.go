package models

import (
	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/utils"
)

type City struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	SlugField
	AuditField
	SoftDeleteField
	CountryID uint64 `gorm:"not null;index" json:"country_id"`

	// Relations
	Country *Country `gorm:"foreignKey:CountryID" json:"country,omitempty"`
	Ports   []Port   `gorm:"foreignKey:CityID" json:"ports,omitempty"`
}

// BeforeSave re-derives the slug from the current name on every write.
func (c *City) BeforeSave(tx *gorm.DB) error {
	c.Slug = utils.Slugify(c.Name)
	return nil
}

// AddPort links a port to this city and keeps the back reference consistent.
func (c *City) AddPort(port *Port) {
	for i := range c.Ports {
		if c.Ports[i].ID == port.ID {
			return
		}
	}
	port.CityID = c.ID
	port.City = c
	c.Ports = append(c.Ports, *port)
}

// RemovePort detaches a port, nulling the owning side only when it still
// points back at this city.
func (c *City) RemovePort(port *Port) {
	for i := range c.Ports {
		if c.Ports[i].ID == port.ID {
			c.Ports = append(c.Ports[:i], c.Ports[i+1:]...)
			if port.CityID == c.ID {
				port.CityID = 0
				port.City = nil
			}
			return
		}
	}
}
