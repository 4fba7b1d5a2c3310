package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError est une erreur destinée au client, portant son code HTTP
type HTTPError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implémente l'interface error
func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap expose l'erreur d'origine pour errors.Is / errors.As
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// New crée une HTTPError avec un code et un message
func New(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// NewNotFoundError signale qu'une entité ciblée n'existe pas.
// Le code 400 est conservé pour rester compatible avec les clients existants.
func NewNotFoundError(entity string, cause error) *HTTPError {
	return &HTTPError{
		StatusCode: http.StatusBadRequest,
		Message:    fmt.Sprintf("%s wasn't found", entity),
		Err:        cause,
	}
}

// AsHTTPError extrait une HTTPError de la chaîne d'erreurs
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}
