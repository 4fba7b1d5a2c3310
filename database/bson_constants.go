package database

// Collection des campagnes
const CampaignCollection = "campaigns"

// Noms des champs BSON d'une campagne (évite les littéraux dupliqués)
const (
	FieldID           = "_id"
	FieldName         = "name"
	FieldDiscountType = "discountType"
	FieldValidTill    = "validTill"
	FieldRedemptions  = "redemptions"
	FieldCreatedAt    = "createdAt"
	FieldUpdatedAt    = "updatedAt"
)

// Opérateurs MongoDB
const (
	BSONSet = "$set"
)
