// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	"net/http"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// EchoValidator wraps a validator instance for use as echo.Validator.
type EchoValidator struct {
	validate *playground.Validate
}

// New creates a request validator with struct tag validation enabled.
func New() *EchoValidator {
	return &EchoValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate validates the request payload against its struct tags.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
