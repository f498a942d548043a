package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/circuitbreaker"
	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/i18n"
	"github.com/guttosm/print-quote-service/internal/logger"
)

// ErrorHandler renders errors that handlers attached with c.Error instead
// of writing a response. Nothing is written when the handler already did.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		last := c.Errors.Last()
		status, key := classifyError(last)

		event := logger.FromContext(c.Request.Context()).Error()
		if status < http.StatusInternalServerError {
			event = logger.FromContext(c.Request.Context()).Warn()
		}
		event.Err(last.Err).
			Int("status", status).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if !c.Writer.Written() {
			abortWithError(c, status, key)
		}
	}
}

// classifyError maps a handler error onto a status and message key.
func classifyError(err *gin.Error) (int, string) {
	switch {
	case err.IsType(gin.ErrorTypeBind):
		return http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody
	case errors.Is(err.Err, model.ErrInvalidArgument):
		return http.StatusBadRequest, i18n.ErrKeyInvalidRequest
	case errors.Is(err.Err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable
	case errors.Is(err.Err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	default:
		return http.StatusInternalServerError, i18n.ErrKeyInternalError
	}
}

// abortWithError writes a translated error body and stops the chain.
func abortWithError(c *gin.Context, status int, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	errorResp := dto.NewError(dto.ErrCodeFromStatus(status), message).
		WithRequestID(GetRequestID(c))
	c.AbortWithStatusJSON(status, errorResp)
}
