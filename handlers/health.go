package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"campaign-backend/utils"
)

var startTime = time.Now()

// Pinger vérifie la disponibilité de la base
type Pinger func(ctx context.Context) error

// HealthHandler gère les endpoints de santé
type HealthHandler struct {
	environment string
	ping        Pinger
}

// NewHealthHandler crée un nouveau HealthHandler
func NewHealthHandler(environment string, ping Pinger) *HealthHandler {
	return &HealthHandler{environment: environment, ping: ping}
}

// Health retourne l'état de santé du serveur avec métriques
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(startTime).String()

	// Vérifier la connexion MongoDB
	dbStatus := "ok"
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if h.ping == nil || h.ping(ctx) != nil {
		dbStatus = "error"
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"env":        h.environment,
		"database":   "MongoDB",
		"db_status":  dbStatus,
		"uptime":     uptime,
		"go_version": runtime.Version(),
	})
}
