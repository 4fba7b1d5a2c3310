package middleware

import (
	"net/http"

	"campaign-backend/constants"

	"github.com/go-chi/cors"
)

// CORS gère les en-têtes CORS pour les origines autorisées ("*" = toutes)
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", constants.HeaderContentType, constants.HeaderRequestID},
		ExposedHeaders: []string{constants.HeaderRequestID},
		MaxAge:         3600,
	})
}
