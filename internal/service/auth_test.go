package service

import (
	"context"
	"testing"
	"time"

	"parking_reservation/internal/domain"
	"parking_reservation/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() *AuthService {
	store := memory.NewStore()
	return NewAuthService(memory.NewUserRepository(store), "test-secret", time.Hour)
}

func TestAuthRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a customer account", func(t *testing.T) {
		svc := newAuthService()
		user, err := svc.Register(ctx, domain.RegisterUserDTO{Username: "alice", Password: "s3cret-pw"})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleCustomer, user.Role)
		assert.Empty(t, user.Password, "hash must not leak in the response")
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		svc := newAuthService()
		_, err := svc.Register(ctx, domain.RegisterUserDTO{Username: "alice", Password: "s3cret-pw"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, domain.RegisterUserDTO{Username: "alice", Password: "other-pw"})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestAuthLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials yield a usable token", func(t *testing.T) {
		svc := newAuthService()
		user, err := svc.Register(ctx, domain.RegisterUserDTO{Username: "alice", Password: "s3cret-pw"})
		require.NoError(t, err)

		resp, err := svc.Login(ctx, domain.LoginUserDTO{Username: "alice", Password: "s3cret-pw"})
		require.NoError(t, err)
		assert.Equal(t, user.ID, resp.UserID)
		assert.Equal(t, "alice", resp.Username)

		claims, err := svc.ValidateToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims["username"])
		assert.Equal(t, domain.RoleCustomer, claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newAuthService()
		_, err := svc.Register(ctx, domain.RegisterUserDTO{Username: "alice", Password: "s3cret-pw"})
		require.NoError(t, err)

		_, err = svc.Login(ctx, domain.LoginUserDTO{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newAuthService()
		_, err := svc.Login(ctx, domain.LoginUserDTO{Username: "nobody", Password: "whatever"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	svc := newAuthService()

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewAuthService(memory.NewUserRepository(memory.NewStore()), "other-secret", time.Hour)
		_, err := other.Register(context.Background(), domain.RegisterUserDTO{Username: "alice", Password: "s3cret-pw"})
		require.NoError(t, err)
		resp, err := other.Login(context.Background(), domain.LoginUserDTO{Username: "alice", Password: "s3cret-pw"})
		require.NoError(t, err)

		_, err = svc.ValidateToken(resp.Token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
