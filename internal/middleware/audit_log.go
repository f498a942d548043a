package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/service"
)

// AuditLog records a user action for audit purposes. It never blocks:
// the event is handed to recorder, which may drop it under load.
func AuditLog(recorder service.AuditRecorder, c *gin.Context, action, message string, fields map[string]interface{}) {
	if recorder == nil {
		return
	}
	recorder.Log(newAuditEvent(c, "info", action, message, fields))
}

// AuditLogError records a failed user action for audit purposes.
func AuditLogError(recorder service.AuditRecorder, c *gin.Context, action, message string, err error, fields map[string]interface{}) {
	if recorder == nil {
		return
	}
	event := newAuditEvent(c, "error", action, message, fields)
	if err != nil {
		event.Error = err.Error()
	}
	recorder.Log(event)
}

func newAuditEvent(c *gin.Context, level, action, message string, fields map[string]interface{}) *model.AuditEvent {
	event := &model.AuditEvent{
		Timestamp: time.Now().UTC(),
		Level:     level,
		Action:    action,
		Message:   message,
		RequestID: GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if len(fields) > 0 {
		event.WithFields(fields)
	}
	if claims, ok := GetClaims(c); ok {
		event.ActorID = claims.Subject
		event.ShopID = claims.OwnedShop()
	}
	return event
}
