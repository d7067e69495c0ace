// Package validator turns raw payloads into typed records, reporting
// failures as field-level data rather than errors.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"storefront/models"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Fields is the structured failure listing; nil means the payload is valid.
type Fields []FieldError

// Summary joins the field messages into a single user-facing line.
func (f Fields) Summary() string {
	if len(f) == 0 {
		return ""
	}
	msgs := make([]string, len(f))
	for i, fe := range f {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, ". ")
}

type Validator struct {
	validate *validator.Validate
}

// New builds the engine with the custom rules registered. The payment
// method enumeration is configured once at startup.
func New(paymentMethods []string) *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return models.IsCurrency(fl.Field().String())
	})

	v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, m := range paymentMethods {
			if m == value {
				return true
			}
		}
		return false
	})

	return &Validator{validate: v}
}

// Validate checks payload against its declared rules. Failure always comes
// back as data, never as a panic or raised fault.
func (vd *Validator) Validate(payload any) Fields {
	err := vd.validate.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return Fields{{Field: "payload", Message: "invalid payload"}}
	}

	fields := make(Fields, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must have at least %s entries", fe.Field(), fe.Param())
	case "eqfield":
		return "passwords do not match"
	case "currency":
		return fmt.Sprintf("%s must have exactly two decimal places (e.g. 49.99)", fe.Field())
	case "paymentmethod":
		return fmt.Sprintf("%s is not an accepted payment method", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
