package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campaign-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrCampaignNotFound est retournée quand aucune campagne ne correspond à l'ID
var ErrCampaignNotFound = errors.New("campagne introuvable")

// CampaignRepository gère les opérations sur les campagnes
type CampaignRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
	now        func() time.Time
}

// NewCampaignRepository crée une nouvelle instance de CampaignRepository.
// timeout borne chaque appel à MongoDB (0 = pas de borne supplémentaire).
func NewCampaignRepository(db *mongo.Database, timeout time.Duration) *CampaignRepository {
	return &CampaignRepository{
		collection: db.Collection(CampaignCollection),
		timeout:    timeout,
		now:        time.Now,
	}
}

func (r *CampaignRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// timestamp retourne l'instant courant à la milliseconde, la précision stockée par MongoDB
func (r *CampaignRepository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

// Create insère une nouvelle campagne avec redemptions à 0 et les horodatages initialisés
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	now := r.timestamp()
	campaign.ID = primitive.NewObjectID()
	campaign.Redemptions = 0
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, campaign); err != nil {
		return fmt.Errorf("erreur lors de la création de la campagne: %w", err)
	}

	return nil
}

// FindPage retourne au plus limit campagnes à partir de skip, triées par date de création
func (r *CampaignRepository) FindPage(ctx context.Context, skip, limit int64) ([]models.Campaign, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: FieldCreatedAt, Value: 1}, {Key: FieldID, Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la recherche des campagnes: %w", err)
	}
	defer cursor.Close(ctx)

	campaigns := []models.Campaign{}
	if err = cursor.All(ctx, &campaigns); err != nil {
		return nil, fmt.Errorf("erreur lors du décodage des campagnes: %w", err)
	}

	return campaigns, nil
}

// Count compte toutes les campagnes
func (r *CampaignRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("erreur lors du comptage des campagnes: %w", err)
	}

	return count, nil
}

// UpdateByID applique les champs fournis, rafraîchit updatedAt et retourne le document à jour
func (r *CampaignRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, patch models.UpdateCampaignRequest) (*models.Campaign, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	set := bson.M{FieldUpdatedAt: r.timestamp()}
	if patch.Name != nil {
		set[FieldName] = *patch.Name
	}
	if patch.DiscountType != nil {
		set[FieldDiscountType] = *patch.DiscountType
	}
	if patch.ValidTill != nil {
		set[FieldValidTill] = *patch.ValidTill
	}
	if patch.Redemptions != nil {
		set[FieldRedemptions] = *patch.Redemptions
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var campaign models.Campaign
	err := r.collection.FindOneAndUpdate(ctx, bson.M{FieldID: id}, bson.M{BSONSet: set}, opts).Decode(&campaign)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erreur lors de la mise à jour de la campagne: %w", err)
	}

	return &campaign, nil
}

// DeleteByID supprime une campagne. ErrCampaignNotFound si rien n'a été supprimé.
func (r *CampaignRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{FieldID: id})
	if err != nil {
		return fmt.Errorf("erreur lors de la suppression de la campagne: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrCampaignNotFound
	}

	return nil
}
