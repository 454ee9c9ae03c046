package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-api/internal/core/auth"
	"storefront-api/internal/features/users/domain"
	"storefront-api/internal/features/users/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the hashes already in the users table.
const bcryptCost = 10

// tokenTTL is the lifetime of issued dashboard access tokens.
const tokenTTL = 24 * time.Hour

// UserService handles dashboard account registration and login.
type UserService struct {
	repo      ports.UserRepository
	jwtSecret string
}

// NewUserService creates a new UserService.
func NewUserService(repo ports.UserRepository, jwtSecret string) *UserService {
	return &UserService{
		repo:      repo,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new account. Username and email are stored lowercased
// and must be unused.
func (s *UserService) Register(ctx context.Context, username, email, password, role string) error {
	username = strings.ToLower(username)
	email = strings.ToLower(email)

	taken, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return domain.ErrUsernameTaken
	}

	taken, err = s.repo.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		Role:         strings.ToLower(role),
		PasswordHash: string(hash),
	})
}

// Login verifies the credentials and returns the user with a signed token.
func (s *UserService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.repo.GetByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	now := time.Now()
	token, err := auth.SignAccessToken(s.jwtSecret, auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return user, token, nil
}
