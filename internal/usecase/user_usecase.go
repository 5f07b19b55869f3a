// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"jacomprei/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Name     string
	Password string
	Role     entity.Role
	Phone    string
	Address  string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// UpdateProfileInput defines the mutable profile fields.
// Nil pointers mean "leave unchanged".
type UpdateProfileInput struct {
	Name           *string
	Phone          *string
	Address        *string
	AddressDetails *string
}

// --- Output DTOs ---

// AuthOutput returns the signed token and sanitized user after register or login.
type AuthOutput struct {
	Token string
	User  *entity.User
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*entity.User, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role entity.Role) (*entity.User, error)
}
