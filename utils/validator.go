package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"campaign-backend/models"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator retourne l'instance partagée du validateur.
// Les noms de champs rapportés sont ceux du tag json (ou env pour la configuration).
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(fieldName)
	})
	return validate
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "env"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}

// ValidateStruct applique les règles déclarées dans les tags `validate`
// et retourne la liste des violations (nil si tout est valide)
func ValidateStruct(s interface{}) []models.ValidationError {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []models.ValidationError{{Message: err.Error()}}
	}

	violations := make([]models.ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		violations = append(violations, models.ValidationError{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return violations
}

// validationMessage traduit une règle non respectée en message lisible
func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "datetime":
		return field + " must be a valid RFC 3339 date-time"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "startswith":
		return fmt.Sprintf("%s must start with %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}
