package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/constants"
	"github.com/georef/geo-reference-api/internal/models"
	"github.com/georef/geo-reference-api/internal/repository"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidUsername      = errors.New("username must be lowercase words separated by '.', '-' or '_'")
	ErrInvalidPhone         = errors.New("invalid phone number")
	ErrInvalidFullName      = errors.New("full name must be between 2 and 255 characters")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

var (
	usernamePattern = regexp.MustCompile(`^[a-z]+(?:[._-][a-z]+)*$`)
	phonePattern    = regexp.MustCompile(`^\+?\d(?:[\s.-]?\d{2,3}){3,}$`)
)

// UserService handles user management business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUserInput represents the required information to create a user.
type CreateUserInput struct {
	Username string
	Password string
	FullName string
	Phone    string
	Email    string
	Roles    []string
	AuthorID *uint64
}

// CreateUser validates the input, hashes the password, and stores the user.
// The author reference records which principal created the account.
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if len(username) < constants.MinNameLength ||
		len(username) > constants.MaxUsernameLength ||
		!usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if err := validateUserProfile(input.FullName, input.Phone); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		FullName:     input.FullName,
		Phone:        input.Phone,
		Email:        input.Email,
		Roles:        normalizeRoles(input.Roles),
		IsActive:     true,
		AuthorID:     input.AuthorID,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// UpdateUserInput carries a full replacement of the mutable profile fields.
// A non-empty password is re-hashed; an empty one keeps the current hash.
type UpdateUserInput struct {
	FullName string
	Phone    string
	Email    string
	Password string
}

// UpdateUser replaces the mutable profile fields of a user.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	if err := validateUserProfile(input.FullName, input.Phone); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.FullName = input.FullName
	user.Phone = input.Phone
	user.Email = input.Email
	if input.Password != "" {
		if len(input.Password) < constants.MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// PatchUserInput carries optional field updates; nil fields are untouched.
// Roles and IsActive are admin-only and enforced at the route level.
type PatchUserInput struct {
	FullName *string
	Phone    *string
	Email    *string
	Roles    *[]string
	IsActive *bool
}

// PatchUser applies a partial update to a user.
func (s *UserService) PatchUser(id uint64, input PatchUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if err := validateUserProfile(user.FullName, user.Phone); err != nil {
		return nil, err
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Roles != nil {
		user.Roles = normalizeRoles(*input.Roles)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// ListUsers returns users filtered by partial full-name match.
func (s *UserService) ListUsers(filter repository.ListFilter) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetUser retrieves a user with its author reference.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id, "Author")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func validateUserProfile(fullName, phone string) error {
	if len(strings.TrimSpace(fullName)) < constants.MinNameLength || len(fullName) > constants.MaxNameLength {
		return ErrInvalidFullName
	}
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// normalizeRoles strips blanks and duplicates; the baseline role is implicit
// and never stored.
func normalizeRoles(roles []string) models.Roles {
	out := make(models.Roles, 0, len(roles))
	seen := make(map[string]bool, len(roles))
	for _, role := range roles {
		role = strings.TrimSpace(role)
		if role == "" || role == constants.RoleUser || seen[role] {
			continue
		}
		seen[role] = true
		out = append(out, role)
	}
	return out
}
