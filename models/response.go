package models

import "fmt"

// ValidationError représente une règle de validation non respectée
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implémente l'interface error
func (v ValidationError) Error() string {
	if v.Field == "" {
		return v.Message
	}
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ErrorResponse représente une réponse d'erreur
type ErrorResponse struct {
	Status  int               `json:"status"`
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Errors  []ValidationError `json:"errors,omitempty"`
}
