package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"campaign-backend/constants"
	"campaign-backend/models"
)

// MaxBodyBytes limite la taille des corps de requête JSON
const MaxBodyBytes = 1 << 20

// DecodeJSONBody décode le corps JSON dans dst en refusant les champs inconnus.
// Un corps vide est accepté (dst reste inchangé) : la validation décide ensuite.
// Les erreurs de décodage sont rapportées comme des violations de validation.
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) []models.ValidationError {
	if r.Body == nil {
		return nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return []models.ValidationError{decodeViolation(err)}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return []models.ValidationError{{Field: "body", Message: constants.ErrSingleJSONObject}}
	}
	return nil
}

func decodeViolation(err error) models.ValidationError {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxBytesErr *http.MaxBytesError

	switch {
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return models.ValidationError{Field: "body", Message: constants.ErrMalformedJSON}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return models.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be %s", field, jsonTypeName(typeErr.Type)),
		}
	case errors.As(err, &maxBytesErr):
		return models.ValidationError{Field: "body", Message: constants.ErrBodyTooLarge}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		// encoding/json n'expose pas de type dédié pour cette erreur
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return models.ValidationError{Field: field, Message: field + " is not allowed"}
	default:
		return models.ValidationError{Field: "body", Message: constants.ErrMalformedJSON}
	}
}

// jsonTypeName décrit le type JSON attendu pour un type Go
func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}
