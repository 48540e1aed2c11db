package models

import (
	"github.com/georef/geo-reference-api/internal/constants"
)

// Roles is stored as a JSON array in a single column.
type Roles []string

type User struct {
	ID           uint64 `gorm:"primarykey" json:"id"`
	Username     string `gorm:"type:varchar(180);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone        string `gorm:"type:varchar(255);not null" json:"phone"`
	Email        string `gorm:"type:varchar(255);not null" json:"email"`
	Roles        Roles  `gorm:"serializer:json;type:text" json:"-"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
	AuditField
	AuthorID *uint64 `json:"author_id"`

	// Relations
	Author        *User       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	AuthoredUsers []User      `gorm:"foreignKey:AuthorID" json:"-"`
	Continents    []Continent `gorm:"foreignKey:AuthorID" json:"-"`
}

// GetRoles returns the stored roles plus the implicit baseline role,
// deduplicated. Every principal carries at least the baseline role no
// matter what the row holds.
func (u *User) GetRoles() []string {
	roles := make([]string, 0, len(u.Roles)+1)
	seen := make(map[string]bool, len(u.Roles)+1)
	for _, role := range u.Roles {
		if role == "" || seen[role] {
			continue
		}
		seen[role] = true
		roles = append(roles, role)
	}
	if !seen[constants.RoleUser] {
		roles = append(roles, constants.RoleUser)
	}
	return roles
}

// HasRole reports whether the user carries the given role, baseline included.
func (u *User) HasRole(role string) bool {
	for _, r := range u.GetRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// AddAuthoredUser records that this user created another user, keeping the
// back reference consistent.
func (u *User) AddAuthoredUser(created *User) {
	for i := range u.AuthoredUsers {
		if u.AuthoredUsers[i].ID == created.ID {
			return
		}
	}
	created.AuthorID = &u.ID
	created.Author = u
	u.AuthoredUsers = append(u.AuthoredUsers, *created)
}

// RemoveAuthoredUser forgets an authored user, nulling its author only when
// it still points back at this user.
func (u *User) RemoveAuthoredUser(created *User) {
	for i := range u.AuthoredUsers {
		if u.AuthoredUsers[i].ID == created.ID {
			u.AuthoredUsers = append(u.AuthoredUsers[:i], u.AuthoredUsers[i+1:]...)
			if created.AuthorID != nil && *created.AuthorID == u.ID {
				created.AuthorID = nil
				created.Author = nil
			}
			return
		}
	}
}

// AddContinent records authorship of a continent, keeping the back
// reference consistent.
func (u *User) AddContinent(continent *Continent) {
	for i := range u.Continents {
		if u.Continents[i].ID == continent.ID {
			return
		}
	}
	continent.AuthorID = &u.ID
	continent.Author = u
	u.Continents = append(u.Continents, *continent)
}

// RemoveContinent forgets an authored continent, nulling its author only
// when it still points back at this user. A nil author is valid: it marks
// system-seeded data.
func (u *User) RemoveContinent(continent *Continent) {
	for i := range u.Continents {
		if u.Continents[i].ID == continent.ID {
			u.Continents = append(u.Continents[:i], u.Continents[i+1:]...)
			if continent.AuthorID != nil && *continent.AuthorID == u.ID {
				continent.AuthorID = nil
				continent.Author = nil
			}
			return
		}
	}
}
