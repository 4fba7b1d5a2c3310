package constants

// Messages d'erreur HTTP courants
const (
	ErrMethodNotAllowed = "Method not allowed"
	ErrServerError      = "Internal server error"
	ErrValidationFailed = "validation failed"
	ErrJSONEncoding     = "failed to encode JSON response"
	ErrMalformedJSON    = "body must be well-formed JSON"
	ErrSingleJSONObject = "body must contain a single JSON object"
	ErrBodyTooLarge     = "body is too large"
	ErrRouteNotFound    = "route not found"
	ErrTooManyRequests  = "too many requests"
)

// Entités exposées par l'API
const (
	EntityCampaign = "campaign"
)

// En-têtes HTTP
const (
	HeaderContentType     = "Content-Type"
	HeaderApplicationJSON = "application/json"
	HeaderRequestID       = "X-Request-ID"
)
