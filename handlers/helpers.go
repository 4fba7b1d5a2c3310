package handlers

import (
	"net/http"

	"campaign-backend/apperrors"
	"campaign-backend/constants"
	"campaign-backend/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// campaignIDVar est le nom de la variable de route portant l'ID de campagne
const campaignIDVar = "campaignId"

// ParseObjectIDVar extrait un ObjectID depuis les vars de l'URL.
// Un ID mal formé ne peut désigner aucune entité : il est traité comme introuvable.
func ParseObjectIDVar(r *http.Request, key, entity string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[key])
	if err != nil {
		return primitive.NilObjectID, apperrors.NewNotFoundError(entity, err)
	}
	return id, nil
}

// decodeAndValidate décode le corps JSON puis valide dst.
// Retourne false après avoir écrit la réponse 400 si le corps est invalide.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if violations := utils.DecodeJSONBody(w, r, dst); len(violations) > 0 {
		utils.RespondValidationError(w, violations)
		return false
	}
	if violations := utils.ValidateStruct(dst); len(violations) > 0 {
		utils.RespondValidationError(w, violations)
		return false
	}
	return true
}

// respondStoreError rend une erreur issue du store : les erreurs client gardent leur code,
// les autres sont journalisées puis masquées derrière une 500
func respondStoreError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, op string, err error) {
	if _, ok := apperrors.AsHTTPError(err); !ok {
		logger.Error("❌ Erreur du store",
			zap.String("operation", op),
			zap.String("request_id", utils.RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
	}
	utils.RespondHTTPError(w, err)
}

// emptyObject est la réponse `{}` des opérations sans contenu
var emptyObject = struct{}{}

// routeNotFound répond en JSON pour les routes inconnues
func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	utils.RespondError(w, http.StatusNotFound, constants.ErrRouteNotFound)
}

// RouteNotFoundHandler retourne le handler 404 JSON du routeur
func RouteNotFoundHandler() http.Handler {
	return http.HandlerFunc(routeNotFound)
}

// MethodNotAllowedHandler retourne le handler 405 JSON du routeur
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, constants.ErrMethodNotAllowed)
	})
}
