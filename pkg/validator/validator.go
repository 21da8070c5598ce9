package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/raminsh/filmlog/pkg/apperr"
)

// EchoValidator adapts go-playground/validator to echo's Validator interface.
type EchoValidator struct {
	validate *validator.Validate
}

func New() *EchoValidator {
	return &EchoValidator{validate: validator.New()}
}

func (v *EchoValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return apperr.Wrap(apperr.KindInvalidArgument, "validation_failed", err)
	}
	return nil
}
