package service

import (
	"testing"
	"time"

	"elearn_backend/internal/config"
	"elearn_backend/internal/model"
	"elearn_backend/internal/repository"
	"elearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	db := setupTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-for-unit-tests-only-0001",
			ExpireTime: time.Hour,
		},
	})
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "plaintext-password",
		Role:     model.Student,
	}
	require.NoError(t, svc.Register(user))

	// 密码落库前已经散列
	stored, err := svc.UserRepo.FindByEmail("ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "plaintext-password", stored.Password)

	token, err := svc.Login("ada@example.com", "plaintext-password")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	require.NoError(t, svc.Register(&model.User{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "password-one",
	}))

	err := svc.Register(&model.User{
		Name:     "Impostor",
		Email:    "ada@example.com",
		Password: "password-two",
	})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	require.NoError(t, svc.Register(&model.User{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct-password",
	}))

	_, err := svc.Login("ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "correct-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	svc := newAuthService(t)

	user := &model.User{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct-password",
	}
	require.NoError(t, svc.Register(user))

	user.Disabled = true
	require.NoError(t, svc.UserRepo.Update(user))

	_, err := svc.Login("ada@example.com", "correct-password")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
