package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/georef/geo-reference-api/internal/models"
	"github.com/georef/geo-reference-api/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserInactive       = errors.New("account is deactivated")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService verifies credentials and issues JWTs carrying the user's claims.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns a signed token for the user.
// A deactivated account is refused with ErrUserInactive even when the
// password matches; no token is produced.
func (s *AuthService) Login(input LoginInput) (string, *models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// BuildClaims assembles the token payload for a user: id, username, email,
// role set, full name and phone, plus the registered time claims. It refuses
// to build claims for a deactivated account.
func (s *AuthService) BuildClaims(user *models.User) (jwt.MapClaims, error) {
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	now := time.Now()
	return jwt.MapClaims{
		"sub":      strconv.FormatUint(user.ID, 10),
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"roles":    user.GetRoles(),
		"fullName": user.FullName,
		"phone":    user.Phone,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}, nil
}

// IssueToken signs an HS256 token with the user's claims.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	claims, err := s.BuildClaims(user)
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
