package dto

import (
	"time"

	"github.com/georef/geo-reference-api/internal/models"
)

// UserDTO represents a user in API responses. Roles always include the
// baseline role, whatever the row stores.
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  *uint64   `json:"author_id,omitempty"`
	Author    *UserDTO  `json:"author,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	dto := UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Email:     user.Email,
		Roles:     user.GetRoles(),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		AuthorID:  user.AuthorID,
	}

	// Include author if preloaded
	if user.Author != nil && user.Author.ID != 0 {
		author := ToUserDTO(*user.Author)
		dto.Author = &author
	}

	return dto
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
