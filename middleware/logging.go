package middleware

import (
	"context"
	"net/http"
	"time"

	"campaign-backend/services"
	"campaign-backend/utils"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AlertNotifier reçoit les réponses 5xx
type AlertNotifier interface {
	NotifyServerError(ctx context.Context, alert services.ServerErrorAlert)
}

// isCriticalError détermine si une réponse doit être notifiée : seules les erreurs serveur le sont
func isCriticalError(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError
}

// levelFor choisit le niveau de log selon le code de statut
func levelFor(statusCode int) zapcore.Level {
	switch {
	case statusCode >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case statusCode >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logging enregistre les requêtes HTTP et notifie les erreurs serveur
func Logging(logger *zap.Logger, notifier AlertNotifier) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			statusCode := rw.statusCode
			requestID := utils.RequestIDFromContext(r.Context())

			if ce := logger.Check(levelFor(statusCode), "➡️ Requête HTTP"); ce != nil {
				ce.Write(
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", statusCode),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", requestID),
				)
			}

			if isCriticalError(statusCode) && notifier != nil {
				alert := services.ServerErrorAlert{
					Method:     r.Method,
					Path:       r.URL.Path,
					StatusCode: statusCode,
					RequestID:  requestID,
					Origin:     r.Header.Get("Origin"),
					UserAgent:  r.Header.Get("User-Agent"),
				}
				// L'alerte survit à la fin de la requête et à la déconnexion du client
				go notifier.NotifyServerError(context.WithoutCancel(r.Context()), alert)
			}
		})
	}
}
