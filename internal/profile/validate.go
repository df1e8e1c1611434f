package profile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidationError reports every malformed field of a profile.
type ValidationError struct {
	Fields []FieldError
}

// FieldError is a single invalid profile field.
type FieldError struct {
	Field string
	Rule  string
	Value any
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: failed %q (value %v)", f.Field, f.Rule, f.Value))
	}
	return "invalid profile: " + strings.Join(parts, "; ")
}

// Validate checks the structural rules that clamping cannot repair:
// salary ordering, state codes and unknown category keys.
func (p *Profile) Validate() error {
	if p == nil {
		return &ValidationError{Fields: []FieldError{{Field: "profile", Rule: "required"}}}
	}

	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating profile: %w", err)
	}

	result := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		result.Fields = append(result.Fields, FieldError{
			Field: strings.TrimPrefix(fe.Namespace(), "Profile."),
			Rule:  fe.Tag(),
			Value: fe.Value(),
		})
	}
	return result
}
