package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymatsuda/clinic-survey-api/internal/model"
	"github.com/ymatsuda/clinic-survey-api/internal/repository"
	"github.com/ymatsuda/clinic-survey-api/pkg/auth"
	apperrors "github.com/ymatsuda/clinic-survey-api/pkg/errors"
	"github.com/ymatsuda/clinic-survey-api/pkg/security"
)

type fakeAdminRepo struct {
	repository.AdminUserRepository
	users map[string]*model.AdminUser
}

func (f *fakeAdminRepo) GetByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func newTestService(t *testing.T) *Service {
	t.Helper()

	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)

	repo := &fakeAdminRepo{users: map[string]*model.AdminUser{
		"admin": {ID: uuid.New(), Username: "admin", PasswordHash: hash},
	}}
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	return NewService(repo, hasher, jwtSvc)
}

func TestLogin(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Login(context.Background(), "admin", "correct-password")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), "admin", "wrong-password")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), "nobody", "correct-password")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)

	// Unknown user and wrong password are indistinguishable.
	_, err2 := svc.Login(context.Background(), "admin", "wrong-password")
	appErr2, _ := apperrors.AsAppError(err2)
	assert.Equal(t, appErr.Message, appErr2.Message)
}
