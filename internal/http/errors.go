package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/circuitbreaker"
	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/i18n"
	"github.com/guttosm/print-quote-service/internal/service"
)

// writeBindError reports a request body that could not be decoded or
// failed its binding rules.
func writeBindError(c *gin.Context, err error) {
	if details := bindingDetails(err); details != nil {
		NewResponseBuilder(c).ErrorWithDetails(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, details, err)
		return
	}
	NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
}

// writeServiceError maps a service error to its HTTP status.
func writeServiceError(c *gin.Context, err error) {
	rb := NewResponseBuilder(c)

	var verr *dto.ValidationError
	switch {
	case errors.As(err, &verr):
		rb.ErrorWithDetails(http.StatusBadRequest, validationKey(verr.Field),
			map[string]string{verr.Field: verr.Message}, err)
	case errors.Is(err, model.ErrInvalidArgument):
		rb.ErrorWithMessage(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, service.ErrInvalidToken):
		rb.Error(http.StatusUnauthorized, i18n.ErrKeyUnauthorized, err)
	case errors.Is(err, service.ErrRepositoryNotConfigured):
		rb.Error(http.StatusServiceUnavailable, i18n.ErrKeyPricingNotConfigured, err)
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		rb.Error(http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		rb.Error(http.StatusGatewayTimeout, i18n.ErrKeyTimeout, err)
	default:
		rb.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
	}
}

func validationKey(field string) string {
	switch {
	case field == "total_pages":
		return i18n.ErrKeyValidationTotalPages
	case field == "color_mode", field == "duplex_mode":
		return i18n.ErrKeyValidationPrintMode
	case strings.HasPrefix(field, "tiers"):
		return i18n.ErrKeyValidationTiers
	default:
		return i18n.ErrKeyInvalidRequest
	}
}
