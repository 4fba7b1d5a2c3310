package database

import (
	"context"
	"testing"
	"time"

	"campaign-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const testNamespace = "campaign_db.campaigns"

var fixedNow = time.Date(2020, 6, 8, 14, 46, 10, 672123456, time.UTC)

func newTestRepository(mt *mtest.T) *CampaignRepository {
	repo := NewCampaignRepository(mt.DB, time.Second)
	repo.now = func() time.Time { return fixedNow }
	return repo
}

func campaignDoc(id primitive.ObjectID, name string, redemptions int32, createdAt time.Time) bson.D {
	return bson.D{
		{Key: FieldID, Value: id},
		{Key: FieldName, Value: name},
		{Key: FieldDiscountType, Value: "Discount Type"},
		{Key: FieldValidTill, Value: "2020-07-08T11:02:18.107Z"},
		{Key: FieldRedemptions, Value: redemptions},
		{Key: FieldCreatedAt, Value: createdAt},
		{Key: FieldUpdatedAt, Value: createdAt},
	}
}

// documentKeys retourne les clés d'un document BSON, dans l'ordre
func documentKeys(t testing.TB, doc bson.Raw) []string {
	t.Helper()
	elems, err := doc.Elements()
	require.NoError(t, err)
	keys := make([]string, 0, len(elems))
	for _, e := range elems {
		keys = append(keys, e.Key())
	}
	return keys
}

// sentCommand retourne la commande envoyée au serveur
func sentCommand(mt *mtest.T) bson.Raw {
	started := mt.GetStartedEvent()
	require.NotNil(mt, started, "aucune commande envoyée")
	return started.Command
}

func commandError() bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{
		Code:    2,
		Name:    "BadValue",
		Message: "erreur simulée",
	})
}

func TestCampaignRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("initialise id, redemptions et horodatages", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		campaign := &models.Campaign{
			Name:         "Campaign 10",
			DiscountType: "Discount Type",
			ValidTill:    "2020-07-08T11:02:18.107Z",
			Redemptions:  42,
		}
		require.NoError(mt, repo.Create(context.Background(), campaign))

		assert.False(mt, campaign.ID.IsZero())
		assert.Equal(mt, 0, campaign.Redemptions)
		assert.Equal(mt, fixedNow.Truncate(time.Millisecond), campaign.CreatedAt)
		assert.Equal(mt, campaign.CreatedAt, campaign.UpdatedAt)
	})

	mt.Run("erreur du driver", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(commandError())

		err := repo.Create(context.Background(), &models.Campaign{Name: "x"})
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrCampaignNotFound)
	})
}

func TestCampaignRepository_FindPage(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("décode la page", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			campaignDoc(first, "Campaign 6", 0, fixedNow.Truncate(time.Millisecond)),
			campaignDoc(second, "Campaign 7", 3, fixedNow.Add(time.Second).Truncate(time.Millisecond)),
		))

		campaigns, err := repo.FindPage(context.Background(), 5, 5)
		require.NoError(mt, err)
		require.Len(mt, campaigns, 2)

		cmd := sentCommand(mt)
		assert.Equal(mt, CampaignCollection, cmd.Lookup("find").StringValue())
		sort := cmd.Lookup("sort").Document()
		assert.Equal(mt, []string{FieldCreatedAt, FieldID}, documentKeys(mt, sort))
		assert.EqualValues(mt, 1, sort.Lookup(FieldCreatedAt).AsInt64())
		assert.EqualValues(mt, 1, sort.Lookup(FieldID).AsInt64())
		assert.EqualValues(mt, 5, cmd.Lookup("skip").AsInt64())
		assert.EqualValues(mt, 5, cmd.Lookup("limit").AsInt64())
		assert.Empty(mt, documentKeys(mt, cmd.Lookup("filter").Document()))
		assert.Equal(mt, first, campaigns[0].ID)
		assert.Equal(mt, "Campaign 6", campaigns[0].Name)
		assert.Equal(mt, 3, campaigns[1].Redemptions)
	})

	mt.Run("page vide", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		campaigns, err := repo.FindPage(context.Background(), 100, 10)
		require.NoError(mt, err)
		assert.NotNil(mt, campaigns)
		assert.Empty(mt, campaigns)
	})

	mt.Run("erreur du driver", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(commandError())

		_, err := repo.FindPage(context.Background(), 0, 10)
		assert.Error(mt, err)
	})
}

func TestCampaignRepository_Count(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("retourne le total", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(12)}},
		))

		count, err := repo.Count(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(12), count)
	})

	mt.Run("erreur du driver", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(commandError())

		_, err := repo.Count(context.Background())
		assert.Error(mt, err)
	})
}

func TestCampaignRepository_UpdateByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("retourne le document à jour", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: campaignDoc(id, "Campaign 10", 5, fixedNow.Truncate(time.Millisecond))},
		})

		five := 5
		campaign, err := repo.UpdateByID(context.Background(), id, models.UpdateCampaignRequest{Redemptions: &five})
		require.NoError(mt, err)
		assert.Equal(mt, id, campaign.ID)
		assert.Equal(mt, 5, campaign.Redemptions)

		cmd := sentCommand(mt)
		assert.Equal(mt, CampaignCollection, cmd.Lookup("findAndModify").StringValue())
		assert.Equal(mt, []string{FieldID}, documentKeys(mt, cmd.Lookup("query").Document()))
		assert.Equal(mt, id, cmd.Lookup("query", FieldID).ObjectID())
		assert.True(mt, cmd.Lookup("new").Boolean())

		update := cmd.Lookup("update").Document()
		assert.Equal(mt, []string{BSONSet}, documentKeys(mt, update))
		set := update.Lookup(BSONSet).Document()
		assert.ElementsMatch(mt, []string{FieldRedemptions, FieldUpdatedAt}, documentKeys(mt, set))
		assert.EqualValues(mt, 5, set.Lookup(FieldRedemptions).AsInt64())
		assert.Equal(mt, fixedNow.Truncate(time.Millisecond), set.Lookup(FieldUpdatedAt).Time().UTC())
	})

	mt.Run("ne modifie que les champs fournis", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: campaignDoc(id, "Renamed", 0, fixedNow.Truncate(time.Millisecond))},
		})

		name, validTill := "Renamed", "2021-01-01T00:00:00Z"
		_, err := repo.UpdateByID(context.Background(), id, models.UpdateCampaignRequest{Name: &name, ValidTill: &validTill})
		require.NoError(mt, err)

		set := sentCommand(mt).Lookup("update", BSONSet).Document()
		assert.ElementsMatch(mt, []string{FieldName, FieldValidTill, FieldUpdatedAt}, documentKeys(mt, set))
		assert.Equal(mt, "Renamed", set.Lookup(FieldName).StringValue())
		assert.Equal(mt, validTill, set.Lookup(FieldValidTill).StringValue())
	})

	mt.Run("corps vide: seul updatedAt change", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		id := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: campaignDoc(id, "Campaign 10", 0, fixedNow.Truncate(time.Millisecond))},
		})

		_, err := repo.UpdateByID(context.Background(), id, models.UpdateCampaignRequest{})
		require.NoError(mt, err)

		set := sentCommand(mt).Lookup("update", BSONSet).Document()
		assert.Equal(mt, []string{FieldUpdatedAt}, documentKeys(mt, set))
	})

	mt.Run("campagne absente", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := repo.UpdateByID(context.Background(), primitive.NewObjectID(), models.UpdateCampaignRequest{})
		assert.ErrorIs(mt, err, ErrCampaignNotFound)
	})

	mt.Run("erreur du driver", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(commandError())

		_, err := repo.UpdateByID(context.Background(), primitive.NewObjectID(), models.UpdateCampaignRequest{})
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrCampaignNotFound)
	})
}

func TestCampaignRepository_DeleteByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("supprime un document", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		id := primitive.NewObjectID()
		require.NoError(mt, repo.DeleteByID(context.Background(), id))

		cmd := sentCommand(mt)
		assert.Equal(mt, CampaignCollection, cmd.Lookup("delete").StringValue())
		assert.Equal(mt, id, cmd.Lookup("deletes", "0", "q", FieldID).ObjectID())
	})

	mt.Run("aucun document supprimé", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.DeleteByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrCampaignNotFound)
	})

	mt.Run("erreur du driver", func(mt *mtest.T) {
		repo := newTestRepository(mt)
		mt.AddMockResponses(commandError())

		err := repo.DeleteByID(context.Background(), primitive.NewObjectID())
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ErrCampaignNotFound)
	})
}

func TestCampaignRepository_withTimeout(t *testing.T) {
	repo := &CampaignRepository{timeout: 0}
	ctx, cancel := repo.withTimeout(context.Background())
	defer cancel()
	_, hasDeadline := ctx.Deadline()
	assert.False(t, hasDeadline)

	repo.timeout = time.Minute
	ctx2, cancel2 := repo.withTimeout(context.Background())
	defer cancel2()
	_, hasDeadline = ctx2.Deadline()
	assert.True(t, hasDeadline)
}
