package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jacomprei/internal/domain/entity"
	domainerrors "jacomprei/internal/domain/errors"
	"jacomprei/internal/usecase"
)

func requireAppCode(t *testing.T, err error, wantCode string) {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, wantCode, appErr.ErrorCode())
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	out, err := f.users.Register(ctx, usecase.RegisterInput{
		Username: "maria",
		Email:    "maria@example.com",
		Name:     "Maria Silva",
		Password: "super-secret",
		Role:     entity.RoleConsumer,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "maria", out.User.Username)
	assert.Empty(t, out.User.PasswordHash)

	login, err := f.users.Login(ctx, usecase.LoginInput{Username: "maria", Password: "super-secret"})
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestUserService_RegisterDuplicates(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	input := usecase.RegisterInput{
		Username: "joao",
		Email:    "joao@example.com",
		Name:     "João",
		Password: "super-secret",
		Role:     entity.RoleMerchant,
	}
	_, err := f.users.Register(ctx, input)
	require.NoError(t, err)

	_, err = f.users.Register(ctx, input)
	requireAppCode(t, err, "USERNAME_TAKEN")

	input.Username = "joao2"
	_, err = f.users.Register(ctx, input)
	requireAppCode(t, err, "EMAIL_TAKEN")
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	f.register(t, "ana", entity.RoleConsumer)

	_, err := f.users.Login(ctx, usecase.LoginInput{Username: "ana", Password: "wrong"})
	requireAppCode(t, err, "INVALID_CREDENTIALS")

	_, err = f.users.Login(ctx, usecase.LoginInput{Username: "nobody", Password: "wrong"})
	requireAppCode(t, err, "INVALID_CREDENTIALS")
}

func TestUserService_UpdateProfile(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	userID := f.register(t, "carlos", entity.RoleConsumer)

	newName := "Carlos Pereira"
	newPhone := "+55 11 99999-0000"
	updated, err := f.users.UpdateProfile(ctx, userID, usecase.UpdateProfileInput{
		Name:  &newName,
		Phone: &newPhone,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, newPhone, updated.Phone)

	// Nil pointers must leave fields untouched.
	again, err := f.users.UpdateProfile(ctx, userID, usecase.UpdateProfileInput{})
	require.NoError(t, err)
	assert.Equal(t, newName, again.Name)
	assert.Equal(t, newPhone, again.Phone)
}

func TestUserService_UpdateRole(t *testing.T) {
	f := newMarketFixture(t)
	ctx := context.Background()

	userID := f.register(t, "rita", entity.RoleConsumer)

	updated, err := f.users.UpdateRole(ctx, userID, entity.RoleDelivery)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDelivery, updated.Role)

	_, err = f.users.UpdateRole(ctx, userID, entity.Role("ADMIN"))
	requireAppCode(t, err, "VALIDATION_FAILED")
}
