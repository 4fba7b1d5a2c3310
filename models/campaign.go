package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ValidTillLayout est le format attendu pour validTill (RFC 3339, fractions de seconde acceptées)
const ValidTillLayout = time.RFC3339

// Campaign représente une campagne promotionnelle
type Campaign struct {
	ID           primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	DiscountType string             `json:"discountType" bson:"discountType"`
	ValidTill    string             `json:"validTill" bson:"validTill"` // Conservé tel que reçu
	Redemptions  int                `json:"redemptions" bson:"redemptions"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CreateCampaignRequest représente la requête de création de campagne
type CreateCampaignRequest struct {
	Name         string `json:"name" validate:"required"`
	DiscountType string `json:"discountType" validate:"required"`
	ValidTill    string `json:"validTill" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// UpdateCampaignRequest représente une mise à jour partielle.
// Les pointeurs distinguent un champ absent d'une valeur zéro.
type UpdateCampaignRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitnil,min=1"`
	DiscountType *string `json:"discountType,omitempty" validate:"omitnil,min=1"`
	ValidTill    *string `json:"validTill,omitempty" validate:"omitnil,datetime=2006-01-02T15:04:05Z07:00"`
	Redemptions  *int    `json:"redemptions,omitempty" validate:"omitnil,min=0"`
}

// IsEmpty indique qu'aucun champ n'est fourni
func (r UpdateCampaignRequest) IsEmpty() bool {
	return r.Name == nil && r.DiscountType == nil && r.ValidTill == nil && r.Redemptions == nil
}

// ListCampaignsQuery représente les paramètres de pagination de la liste
type ListCampaignsQuery struct {
	Page  int `json:"page" validate:"min=1"`
	Limit int `json:"limit" validate:"min=1,max=100"`
}

// SkipOverflows indique que (page-1)*limit ne tient pas dans un int64.
// Suppose limit >= 1, garanti par la validation.
func (q ListCampaignsQuery) SkipOverflows() bool {
	return q.Limit > 0 && int64(q.Page-1) > math.MaxInt64/int64(q.Limit)
}

// Skip retourne le décalage correspondant à la page demandée
func (q ListCampaignsQuery) Skip() int64 {
	return int64(q.Page-1) * int64(q.Limit)
}

// CampaignListResponse représente une page de campagnes
type CampaignListResponse struct {
	Total     int64      `json:"total"`
	Page      int        `json:"page"`
	PerPage   int        `json:"perPage"`
	Campaigns []Campaign `json:"campaigns"`
}
