package database

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestPing_clientNil(t *testing.T) {
	// Sauvegarder l'état actuel
	oldClient := Client
	Client = nil
	defer func() { Client = oldClient }()

	err := Ping(context.Background())
	if err == nil {
		t.Error("Ping() devrait échouer quand Client est nil")
	}
	if err != nil && err.Error() != "client MongoDB non initialisé" {
		t.Errorf("Ping() erreur = %v", err)
	}
}

func TestClose_clientNil(t *testing.T) {
	oldClient := Client
	Client = nil
	defer func() { Client = oldClient }()

	if err := Close(); err != nil {
		t.Errorf("Close() erreur = %v", err)
	}
}

func TestCreateIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("succès", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		if err := createIndexes(context.Background(), mt.DB); err != nil {
			t.Errorf("createIndexes() erreur = %v", err)
		}
	})

	mt.Run("erreur serveur", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "index invalide",
		}))
		if err := createIndexes(context.Background(), mt.DB); err == nil {
			t.Error("createIndexes() devrait échouer")
		}
	})
}
