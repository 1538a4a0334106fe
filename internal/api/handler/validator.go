package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface. Only the first failing
// field is reported; the API contract is one message per error response.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) && len(ve) > 0 {
			return errors.New(fieldError(ve[0]))
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into the message the API
// contract expects for that field and rule.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please enter %s!", field)
	case "email":
		return "Please enter valid email!"
	case "oneof":
		return "Please enter valid action!"
	default:
		return fmt.Sprintf("Please enter valid %s!", field)
	}
}
