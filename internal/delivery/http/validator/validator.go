// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound requests.
package validator

import (
	playground "github.com/go-playground/validator/v10"

	domainerrors "jacomprei/internal/domain/errors"
)

type requestValidator struct {
	validate *playground.Validate
}

// New builds the request validator used by the echo server.
func New() *requestValidator {
	return &requestValidator{validate: playground.New()}
}

// Validate checks struct tags and maps failures onto the shared
// validation error so the error handler renders them uniformly.
func (v *requestValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
