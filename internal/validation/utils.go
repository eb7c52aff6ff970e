package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/deppfellow/bookshelf/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
// - Define a request struct with validator tags (`validate:"required"`)
// - Implement Validate() error that runs Validator().Struct(req)
// - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// DescribedError attaches a client-facing message to validation errors.
//
// BindAndValidate uses Message as the response message instead of the
// generic "Validation failed".
type DescribedError struct {
	Message string
	Err     error
}

func (d *DescribedError) Error() string {
	return d.Message
}

func (d *DescribedError) Unwrap() error {
	return d.Err
}

// Describe wraps err with message. A nil err stays nil.
func Describe(message string, err error) error {
	if err == nil {
		return nil
	}
	return &DescribedError{Message: message, Err: err}
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
// 1) c.Bind(payload) populates request struct from path params, query and body.
//    A body in a media type Echo cannot decode is ignored, as if none was sent.
// 2) payload.Validate() applies validation rules.
// 3) Returns *errs.HTTPError (400) with field-level errors if validation fails.
//
// NOTE: c.Bind expects a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil && !errors.Is(err, echo.ErrUnsupportedMediaType) {
		return bindError(err)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// bindError turns an Echo bind failure into a 400 carrying Echo's message.
func bindError(err error) error {
	message := http.StatusText(http.StatusBadRequest)

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if m, ok := echoErr.Message.(string); ok && m != "" {
			message = m
		}
	}

	return errs.NewBadRequestError(message, false, nil, nil, nil).WithCause(err)
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	message := "Validation failed"

	var described *DescribedError
	if errors.As(err, &described) {
		message = described.Message
	}

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		fieldErrors := make([]errs.FieldError, 0, len(customErrors))
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return message, fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a field-level failure; report it without field details.
		if described == nil {
			message = err.Error()
		}
		return message, []errs.FieldError{}
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := fe.Field()
		var msg string

		switch fe.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}

		case "max":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", fe.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", fe.Param())

		case "objectid":
			msg = "must be a 24 character hexadecimal identifier"

		default:
			if fe.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, fe.Tag(), fe.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, fe.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: strings.ToLower(field),
			Error: msg,
		})
	}

	return message, fieldErrors
}

// objectIDRegex matches the hex form of a document identifier.
var objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsValidObjectID checks whether s has the shape of a document identifier:
// exactly 24 hexadecimal characters.
//
// Note: This validates format only. It does not check that the identifier exists.
func IsValidObjectID(s string) bool {
	return objectIDRegex.MatchString(s)
}
