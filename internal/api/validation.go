package api

import (
	"reflect"
	"strings"

	"github.com/Kaizen-Gym/Managment-System--Backend/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON name, falling back to the Go
// field name for untagged structs.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrors is returned by ValidateStruct. It unwraps to a
// validation-kind apperror so callers can classify it.
type ValidationErrors struct {
	Fields []ValidationError
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationErrors) Unwrap() error {
	return apperror.Validation(e.Error())
}

// ValidateStruct validates s using its `validate` tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.Validation(err.Error())
	}

	out := &ValidationErrors{}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: getErrorMessage(fe),
		})
	}
	return out
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return err.Field() + " must be a valid email address"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "gt":
		return err.Field() + " must be greater than " + err.Param()
	case "gte":
		return err.Field() + " must be greater than or equal to " + err.Param()
	case "lte":
		return err.Field() + " must be less than or equal to " + err.Param()
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	default:
		return err.Field() + " is invalid"
	}
}
