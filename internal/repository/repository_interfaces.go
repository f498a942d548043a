// Package repository provides persistence for pricing configurations and the audit trail.
package repository

import (
	"context"
	"time"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// SystemOwnerID is the owner id of the configuration shared by all shops.
const SystemOwnerID = ""

// PricingConfigRecord is one stored version of a shop's pricing.
// The configuration may be partial.
type PricingConfigRecord struct {
	ID            string                     `json:"id"`
	OwnerID       string                     `json:"owner_id,omitempty"`
	Configuration model.PricingConfiguration `json:"tiers"`
	Active        bool                       `json:"active"`
	Version       int                        `json:"version"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
	CreatedBy     string                     `json:"created_by,omitempty"`
}

// PricingRepositoryInterface stores versioned pricing per owner.
type PricingRepositoryInterface interface {
	// GetActive returns the active record for ownerID, or nil when the owner
	// has never stored pricing.
	GetActive(ctx context.Context, ownerID string) (*PricingConfigRecord, error)
	// Create stores cfg as the new active version for ownerID.
	Create(ctx context.Context, ownerID string, cfg model.PricingConfiguration, createdBy string) (*PricingConfigRecord, error)
	// List returns up to limit versions for ownerID, newest first. limit <= 0 means all.
	List(ctx context.Context, ownerID string, limit int) ([]PricingConfigRecord, error)
}

// AuditRepositoryInterface stores audit events.
type AuditRepositoryInterface interface {
	Create(ctx context.Context, event *model.AuditEvent) error
	CreateMany(ctx context.Context, events []*model.AuditEvent) error
	Query(ctx context.Context, q model.AuditQuery) ([]model.AuditEvent, error)
	Count(ctx context.Context, q model.AuditQuery) (int64, error)
}

// PricingSource supplies a configuration from outside the repositories,
// such as a file managed by operations.
type PricingSource interface {
	Current() model.PricingConfiguration
}
