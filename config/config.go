package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"campaign-backend/utils"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config contient toutes les configurations de l'application
type Config struct {
	Port            int           `env:"PORT,required" validate:"min=1,max=65535"`
	Host            string        `env:"HOST,default=0.0.0.0"`
	BaseURL         string        `env:"BASE_URL,required" validate:"required,url"`
	MongoURI        string        `env:"MONGO_CONNECT,required" validate:"required,startswith=mongodb"`
	MongoDB         string        `env:"MONGO_DB,default=campaign_db" validate:"required"`
	DBTimeout       time.Duration `env:"DB_TIMEOUT,default=5s" validate:"gt=0"`
	Environment     string        `env:"ENVIRONMENT,default=development" validate:"oneof=development staging production test"`
	LogLevel        string        `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS,default=*"`
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS,default=50" validate:"min=0"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST,default=100" validate:"min=1"`
	SlackWebhookURL string        `env:"SLACK_WEBHOOK_URL" validate:"omitempty,url"`
}

// Load charge la configuration depuis les variables d'environnement.
// Le processus doit refuser de démarrer si une erreur est retournée.
func Load(ctx context.Context) (*Config, error) {
	// Charger le fichier .env s'il existe
	_ = godotenv.Load()

	return loadFrom(ctx, envconfig.OsLookuper())
}

func loadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("configuration invalide: %w", err)
	}

	// Nettoyer les espaces autour de chaque origine
	origins := make([]string, 0, len(cfg.CORSOrigins))
	for _, origin := range cfg.CORSOrigins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	cfg.CORSOrigins = origins

	if violations := utils.ValidateStruct(cfg); len(violations) > 0 {
		messages := make([]string, 0, len(violations))
		for _, v := range violations {
			messages = append(messages, v.Message)
		}
		return nil, fmt.Errorf("configuration invalide: %s", strings.Join(messages, "; "))
	}

	return &cfg, nil
}

// Addr retourne l'adresse d'écoute du serveur HTTP
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsProduction indique si l'application tourne en production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
