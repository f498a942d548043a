package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyUnauthorized indicates missing or invalid authentication.
	ErrKeyUnauthorized = "error.unauthorized"
	// ErrKeyAPIKeyRequired indicates that an API key is required.
	ErrKeyAPIKeyRequired = "error.api_key_required"
	// ErrKeyInvalidAPIKey indicates an invalid API key.
	ErrKeyInvalidAPIKey = "error.invalid_api_key"
	// ErrKeyForbidden indicates insufficient permissions.
	ErrKeyForbidden = "error.forbidden"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyConflict indicates a conflict with current state.
	ErrKeyConflict = "error.conflict"
	// ErrKeyIdempotencyMismatch indicates an idempotency key reused with a different body.
	ErrKeyIdempotencyMismatch = "error.idempotency_mismatch"
	// ErrKeyInvalidToken indicates an invalid or expired JWT token.
	ErrKeyInvalidToken = "error.invalid_token"
	// ErrKeyTokenRequired indicates that a JWT token is required.
	ErrKeyTokenRequired = "error.token_required"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyServiceUnavailable indicates the pricing store is down.
	ErrKeyServiceUnavailable = "error.service_unavailable"
	// ErrKeyPricingNotConfigured indicates no pricing store is configured.
	ErrKeyPricingNotConfigured = "error.pricing_not_configured"
	// ErrKeyValidationTotalPages indicates an invalid total_pages.
	ErrKeyValidationTotalPages = "error.validation.total_pages"
	// ErrKeyValidationPrintMode indicates an unknown color or duplex mode.
	ErrKeyValidationPrintMode = "error.validation.print_mode"
	// ErrKeyValidationTiers indicates an invalid rate card.
	ErrKeyValidationTiers = "error.validation.tiers"
)

// Success message translation keys.
const (
	// SuccessKeyPricingUpdated indicates the rate card was stored.
	SuccessKeyPricingUpdated = "success.pricing_updated"
)
