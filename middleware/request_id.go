package middleware

import (
	"net/http"

	"campaign-backend/constants"
	"campaign-backend/utils"

	"github.com/google/uuid"
)

// maxRequestIDLength borne un identifiant fourni par le client
const maxRequestIDLength = 128

// RequestID propage l'en-tête X-Request-ID, ou en génère un, et l'attache au contexte
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(constants.HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}

		w.Header().Set(constants.HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(utils.WithRequestID(r.Context(), id)))
	})
}
