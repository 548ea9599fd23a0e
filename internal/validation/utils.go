// Package validation binds request data and validates it, turning
// failures into 400 errors with field-level details.
package validation

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/orderhub/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request types. Validate usually runs
// validator.Struct on the request and returns its ValidationErrors.
type Validatable interface {
	Validate() error
}

// CustomValidationError is a field error that validator tags cannot
// express.
type CustomValidationError struct {
	Field   string
	Message string
}

type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates s against its validate tags.
func Struct(s interface{}) error {
	return validate.Struct(s)
}

// BindAndValidate binds path params and the JSON body into payload, which
// must be a pointer, then validates it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors)
	}

	return nil
}

func bindError(err error) *errs.HTTPError {
	var bindingErr *echo.BindingError
	if errors.As(err, &bindingErr) {
		return errs.NewBadRequestError(fmt.Sprintf("Invalid value for %s", bindingErr.Field), true, nil, []errs.FieldError{
			{Field: bindingErr.Field, Error: "has an invalid value"},
		})
	}

	var echoErr *echo.HTTPError
	if !errors.As(err, &echoErr) {
		return errs.NewBadRequestError("Invalid request", false, nil, nil)
	}

	message := http.StatusText(echoErr.Code)
	if msg, ok := echoErr.Message.(string); ok && msg != "" {
		message = msg
	}

	if echoErr.Code != http.StatusBadRequest {
		return &errs.HTTPError{
			Code:    errs.MakeUpperCaseWithUnderscores(http.StatusText(echoErr.Code)),
			Message: message,
			Status:  echoErr.Code,
		}
	}
	return errs.NewBadRequestError(message, false, nil, nil)
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, e := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Error: err.Error()}}
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		var msg string

		switch e.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if e.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", e.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", e.Param())
			}

		case "max":
			if e.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", e.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", e.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", e.Param())

		case "email":
			msg = "must be a valid email address"

		default:
			if e.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, e.Tag(), e.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, e.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
