package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ymatsuda/clinic-survey-api/internal/repository"
	"github.com/ymatsuda/clinic-survey-api/pkg/auth"
	apperrors "github.com/ymatsuda/clinic-survey-api/pkg/errors"
	"github.com/ymatsuda/clinic-survey-api/pkg/security"
)

type AuthServicer interface {
	Login(ctx context.Context, username, password string) (string, error)
	ValidateToken(token string) (*auth.Claims, error)
}

type Service struct {
	repo   repository.AdminUserRepository
	hasher security.PasswordHasher
	jwt    auth.JWTService
}

func NewService(repo repository.AdminUserRepository, hasher security.PasswordHasher, jwt auth.JWTService) *Service {
	return &Service{repo: repo, hasher: hasher, jwt: jwt}
}

// Login verifies the admin credential and issues an access token. The
// same error is returned for unknown users and wrong passwords.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.Unauthorized(errors.New("invalid credentials"))
		}
		return "", fmt.Errorf("failed to get admin user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", apperrors.Unauthorized(errors.New("invalid credentials"))
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

func (s *Service) ValidateToken(token string) (*auth.Claims, error) {
	return s.jwt.ValidateToken(token)
}
