package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"campaign-backend/config"
	"campaign-backend/database"
	"campaign-backend/models"
	"campaign-backend/utils"

	"go.uber.org/zap"
)

var discountTypes = []string{"percentage", "fixed", "free-shipping"}

// seedCampaigns prépare count campagnes de démonstration, valides jusqu'à now + validity
func seedCampaigns(count int, prefix string, now time.Time, validity time.Duration) []models.CreateCampaignRequest {
	requests := make([]models.CreateCampaignRequest, 0, count)
	for i := 1; i <= count; i++ {
		requests = append(requests, models.CreateCampaignRequest{
			Name:         fmt.Sprintf("%s %d", prefix, i),
			DiscountType: discountTypes[(i-1)%len(discountTypes)],
			ValidTill:    now.Add(validity).UTC().Format(models.ValidTillLayout),
		})
	}
	return requests
}

func main() {
	count := flag.Int("count", 10, "Nombre de campagnes à créer")
	prefix := flag.String("prefix", "Campaign", "Préfixe du nom des campagnes")
	validity := flag.Duration("validity", 30*24*time.Hour, "Durée de validité des campagnes")
	flag.Parse()

	if *count < 1 {
		log.Fatalf("❌ -count doit être supérieur à 0")
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("❌ Erreur lors du chargement de la configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("❌ Erreur lors de l'initialisation du logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB, logger); err != nil {
		logger.Fatal("❌ Erreur de connexion à MongoDB", zap.Error(err))
	}
	defer database.Close()

	repo := database.NewCampaignRepository(database.DB, cfg.DBTimeout)

	logger.Info("🌱 Création des campagnes de démonstration", zap.Int("count", *count))
	for _, req := range seedCampaigns(*count, *prefix, time.Now(), *validity) {
		if violations := utils.ValidateStruct(req); len(violations) > 0 {
			logger.Fatal("❌ Campagne invalide", zap.Any("errors", violations))
		}

		campaign := &models.Campaign{
			Name:         req.Name,
			DiscountType: req.DiscountType,
			ValidTill:    req.ValidTill,
		}
		if err := repo.Create(ctx, campaign); err != nil {
			logger.Fatal("❌ Erreur lors de la création", zap.String("name", req.Name), zap.Error(err))
		}
		logger.Info("✓ Campagne créée", zap.String("id", campaign.ID.Hex()), zap.String("name", campaign.Name))
	}

	logger.Info("✅ Campagnes créées avec succès")
}
