package validation

import (
	"fmt"
	"strings"

	"github.com/frahmantamala/portal-management/internal"
)

type ValidatorFunc func(interface{}) *internal.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

// Required rejects empty strings and nil string pointers.
func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *internal.AppError {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return internal.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), internal.ErrCodeEmptyField)
			}
		case *string:
			if v == nil || strings.TrimSpace(*v) == "" {
				return internal.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s is required", fv.FieldName), internal.ErrCodeEmptyField)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *internal.AppError {
		if s, ok := value.(string); ok && len(s) > max {
			return internal.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s must be at most %d characters", fv.FieldName, max), internal.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *internal.AppError {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		for _, a := range allowed {
			if s == a {
				return nil
			}
		}
		return internal.NewValidationFieldError(fv.FieldName, fmt.Sprintf("%s must be one of %s", fv.FieldName, strings.Join(allowed, ", ")), internal.ErrCodeValidationFailed)
	})
	return fv
}

// Validate runs every registered rule and aggregates failures into a single
// AppError with field-level details.
func (v *ValidationBuilder) Validate() error {
	var errs []internal.ValidationError
	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if appErr := validator(field.Value); appErr != nil {
				if details, ok := appErr.Details.(internal.ValidationErrors); ok {
					errs = append(errs, details.Errors...)
				} else {
					errs = append(errs, internal.ValidationError{
						Field:   field.FieldName,
						Message: appErr.Message,
						Code:    string(appErr.Code),
					})
				}
				break
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return internal.NewValidationError("Validation failed", internal.ErrCodeValidationFailed).
		WithDetails(internal.ValidationErrors{Errors: errs})
}
