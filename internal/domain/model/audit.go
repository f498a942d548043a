package model

import "time"

// Audit actions recorded by the service.
const (
	ActionHTTPRequest   = "http.request"
	ActionQuote         = "quote.computed"
	ActionPricingUpdate = "pricing.updated"
	ActionAccessDenied  = "auth.denied"
)

// AuditEvent is a single entry in the audit trail. HTTP request logs and
// domain actions share the same shape; Fields carries action specific data.
type AuditEvent struct {
	ID         string                 `bson:"_id" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Action     string                 `bson:"action" json:"action"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	DurationMs int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	ActorID    string                 `bson:"actor_id,omitempty" json:"actor_id,omitempty"`
	ShopID     string                 `bson:"shop_id,omitempty" json:"shop_id,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithField sets a single entry in Fields, allocating the map if needed.
func (e *AuditEvent) WithField(key string, value interface{}) *AuditEvent {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// WithFields merges fields into Fields.
func (e *AuditEvent) WithFields(fields map[string]interface{}) *AuditEvent {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{}, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// AuditQuery filters audit events. Zero fields are ignored.
type AuditQuery struct {
	ShopID    string
	Action    string
	RequestID string
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Skip      int
}
