package utils

import (
	"encoding/json"
	"net/http"

	"campaign-backend/apperrors"
	"campaign-backend/constants"
	"campaign-backend/models"
)

// RespondJSON envoie une réponse JSON
func RespondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	if w.Header().Get(constants.HeaderContentType) == "" {
		w.Header().Set(constants.HeaderContentType, constants.HeaderApplicationJSON)
	}

	if statusCode <= 0 {
		statusCode = http.StatusOK
	}

	// Encoder avant d'écrire l'en-tête pour pouvoir encore basculer en 500
	body, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":500,"error":"Internal Server Error","message":"` + constants.ErrJSONEncoding + `"}`))
		return
	}

	w.WriteHeader(statusCode)
	_, _ = w.Write(append(body, '\n'))
}

// RespondError envoie une réponse d'erreur JSON
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, models.ErrorResponse{
		Status:  statusCode,
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// RespondValidationError envoie la liste des violations de validation (400)
func RespondValidationError(w http.ResponseWriter, violations []models.ValidationError) {
	RespondJSON(w, http.StatusBadRequest, models.ErrorResponse{
		Status:  http.StatusBadRequest,
		Error:   http.StatusText(http.StatusBadRequest),
		Message: constants.ErrValidationFailed,
		Errors:  violations,
	})
}

// RespondHTTPError est le point central de rendu des erreurs :
// une HTTPError garde son code et son message, toute autre erreur devient une 500 opaque
func RespondHTTPError(w http.ResponseWriter, err error) {
	if httpErr, ok := apperrors.AsHTTPError(err); ok {
		RespondError(w, httpErr.StatusCode, httpErr.Message)
		return
	}
	RespondError(w, http.StatusInternalServerError, constants.ErrServerError)
}
