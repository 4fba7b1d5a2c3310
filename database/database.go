package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// DB est l'instance de connexion à la base de données MongoDB
var DB *mongo.Database
var Client *mongo.Client

// Connect établit la connexion à la base de données MongoDB
func Connect(ctx context.Context, uri, dbName string, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("erreur lors de la connexion à MongoDB: %w", err)
	}

	// Vérifier la connexion
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("erreur lors du ping MongoDB: %w", err)
	}

	Client = client
	DB = client.Database(dbName)

	logger.Info("✓ Connexion à MongoDB établie", zap.String("database", dbName))

	if err = createIndexes(ctx, DB); err != nil {
		return fmt.Errorf("erreur lors de la création des index: %w", err)
	}
	logger.Info("✓ Index MongoDB créés")

	return nil
}

// Ping vérifie que la connexion MongoDB est active
func Ping(ctx context.Context) error {
	if Client == nil {
		return fmt.Errorf("client MongoDB non initialisé")
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return Client.Ping(ctx, nil)
}

// Close ferme la connexion à la base de données
func Close() error {
	if Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return Client.Disconnect(ctx)
	}
	return nil
}

// createIndexes crée les index nécessaires
func createIndexes(ctx context.Context, db *mongo.Database) error {
	// Index de tri de la liste paginée : createdAt puis _id pour départager
	listIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: FieldCreatedAt, Value: 1}, {Key: FieldID, Value: 1}},
		Options: options.Index().SetName("createdAt_1__id_1"),
	}

	_, err := db.Collection(CampaignCollection).Indexes().CreateOne(ctx, listIndex)
	if err != nil {
		return fmt.Errorf("erreur lors de la création de l'index createdAt: %w", err)
	}

	return nil
}
