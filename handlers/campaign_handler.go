package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"campaign-backend/apperrors"
	"campaign-backend/constants"
	"campaign-backend/database"
	"campaign-backend/models"
	"campaign-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// CampaignStore est la persistance attendue par CampaignHandler
type CampaignStore interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	FindPage(ctx context.Context, skip, limit int64) ([]models.Campaign, error)
	Count(ctx context.Context) (int64, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch models.UpdateCampaignRequest) (*models.Campaign, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// CampaignHandler gère les requêtes sur les campagnes
type CampaignHandler struct {
	store  CampaignStore
	logger *zap.Logger
}

// NewCampaignHandler crée une nouvelle instance de CampaignHandler
func NewCampaignHandler(store CampaignStore, logger *zap.Logger) *CampaignHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CampaignHandler{store: store, logger: logger}
}

// RegisterRoutes enregistre les routes /campaign sur le routeur
func (h *CampaignHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/campaign", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/campaign/list", h.List).Methods(http.MethodGet)
	router.HandleFunc("/campaign/{"+campaignIDVar+"}", h.Update).Methods(http.MethodPatch)
	router.HandleFunc("/campaign/{"+campaignIDVar+"}", h.Delete).Methods(http.MethodDelete)
}

// Create crée une campagne
func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCampaignRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	campaign := &models.Campaign{
		Name:         req.Name,
		DiscountType: req.DiscountType,
		ValidTill:    req.ValidTill,
	}
	if err := h.store.Create(r.Context(), campaign); err != nil {
		respondStoreError(w, r, h.logger, "create", err)
		return
	}

	h.logger.Info("✅ Campagne créée",
		zap.String("campaign_id", campaign.ID.Hex()),
		zap.String("request_id", utils.RequestIDFromContext(r.Context())),
	)

	utils.RespondJSON(w, http.StatusOK, campaign)
}

// List retourne une page de campagnes et le total
func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	query, violations := parseListQuery(r)
	if len(violations) == 0 {
		violations = utils.ValidateStruct(query)
	}
	if len(violations) == 0 && query.SkipOverflows() {
		violations = []models.ValidationError{{Field: "page", Message: "page is too large"}}
	}
	if len(violations) > 0 {
		utils.RespondValidationError(w, violations)
		return
	}

	campaigns, err := h.store.FindPage(r.Context(), query.Skip(), int64(query.Limit))
	if err != nil {
		respondStoreError(w, r, h.logger, "list", err)
		return
	}

	total, err := h.store.Count(r.Context())
	if err != nil {
		respondStoreError(w, r, h.logger, "count", err)
		return
	}

	if campaigns == nil {
		campaigns = []models.Campaign{}
	}

	utils.RespondJSON(w, http.StatusOK, models.CampaignListResponse{
		Total:     total,
		Page:      query.Page,
		PerPage:   query.Limit,
		Campaigns: campaigns,
	})
}

// Update applique une mise à jour partielle
func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseObjectIDVar(r, campaignIDVar, constants.EntityCampaign)
	if err != nil {
		utils.RespondHTTPError(w, err)
		return
	}

	var patch models.UpdateCampaignRequest
	if !decodeAndValidate(w, r, &patch) {
		return
	}

	if patch.IsEmpty() {
		h.logger.Debug("Mise à jour sans champ, seul updatedAt change", zap.String("campaign_id", id.Hex()))
	}

	campaign, err := h.store.UpdateByID(r.Context(), id, patch)
	if err != nil {
		respondStoreError(w, r, h.logger, "update", notFoundAware(err))
		return
	}

	utils.RespondJSON(w, http.StatusOK, campaign)
}

// Delete supprime une campagne
func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseObjectIDVar(r, campaignIDVar, constants.EntityCampaign)
	if err != nil {
		utils.RespondHTTPError(w, err)
		return
	}

	if err := h.store.DeleteByID(r.Context(), id); err != nil {
		respondStoreError(w, r, h.logger, "delete", notFoundAware(err))
		return
	}

	h.logger.Info("🗑️ Campagne supprimée",
		zap.String("campaign_id", id.Hex()),
		zap.String("request_id", utils.RequestIDFromContext(r.Context())),
	)

	utils.RespondJSON(w, http.StatusOK, emptyObject)
}

// notFoundAware convertit l'absence de campagne en erreur client
func notFoundAware(err error) error {
	if errors.Is(err, database.ErrCampaignNotFound) {
		return apperrors.NewNotFoundError(constants.EntityCampaign, err)
	}
	return err
}

// parseListQuery lit page et limit depuis la query string, avec leurs valeurs par défaut
func parseListQuery(r *http.Request) (models.ListCampaignsQuery, []models.ValidationError) {
	query := models.ListCampaignsQuery{Page: defaultPage, Limit: defaultLimit}
	values := r.URL.Query()

	var violations []models.ValidationError
	parse := func(key string, dst *int) {
		raw := values.Get(key)
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			violations = append(violations, models.ValidationError{
				Field:   key,
				Message: key + " must be an integer",
			})
			return
		}
		*dst = n
	}
	parse("page", &query.Page)
	parse("limit", &query.Limit)

	return query, violations
}
