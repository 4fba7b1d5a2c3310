package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"campaign-backend/config"
	"campaign-backend/database"
	"campaign-backend/handlers"
	"campaign-backend/middleware"
	"campaign-backend/services"
	"campaign-backend/utils"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Charger la configuration
	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement de la configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("❌ Erreur lors de l'initialisation du logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Connexion à MongoDB
	if err := database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB, logger); err != nil {
		logger.Fatal("❌ Erreur de connexion à MongoDB", zap.Error(err))
	}

	slackService := services.NewSlackService(cfg.SlackWebhookURL, logger)
	if cfg.IsProduction() && !slackService.Enabled() {
		logger.Warn("⚠️  Production sans alertes Slack sur les erreurs 5xx")
	}

	campaignRepo := database.NewCampaignRepository(database.DB, cfg.DBTimeout)
	campaignHandler := handlers.NewCampaignHandler(campaignRepo, logger)
	healthHandler := handlers.NewHealthHandler(cfg.Environment, database.Ping)

	// Créer le routeur
	router := mux.NewRouter()
	router.NotFoundHandler = handlers.RouteNotFoundHandler()
	router.MethodNotAllowedHandler = handlers.MethodNotAllowedHandler()

	router.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	campaignHandler.RegisterRoutes(router)

	// CORS enveloppe le routeur pour répondre aux preflight avant le matching
	var handler http.Handler = router
	handler = middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)(handler)
	handler = middleware.CORS(cfg.CORSOrigins)(handler)
	handler = middleware.Logging(logger, slackService)(handler)
	handler = middleware.Metrics(router)(handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("🚀 Serveur démarré",
			zap.String("addr", cfg.Addr()),
			zap.String("base_url", cfg.BaseURL),
			zap.String("env", cfg.Environment),
		)
		logRoutes(router, logger)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("❌ Erreur du serveur", zap.Error(err))
		}
	}()

	// Attendre le signal d'arrêt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Arrêt du serveur...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("❌ Erreur lors de l'arrêt du serveur", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		logger.Error("❌ Erreur lors de la fermeture de MongoDB", zap.Error(err))
	}
	logger.Info("✓ Serveur arrêté proprement")
}

// logRoutes affiche les routes enregistrées au démarrage
func logRoutes(router *mux.Router, logger *zap.Logger) {
	_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		tpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, _ := route.GetMethods()
		logger.Info("📋 Route", zap.String("methods", strings.Join(methods, ",")), zap.String("path", tpl))
		return nil
	})
}
