package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// pricingConfigDocument is the MongoDB shape of a PricingConfigRecord.
type pricingConfigDocument struct {
	ID        string         `bson:"_id"`
	OwnerID   string         `bson:"owner_id"`
	Tiers     []tierDocument `bson:"tiers"`
	Active    bool           `bson:"active"`
	Version   int            `bson:"version"`
	CreatedAt time.Time      `bson:"created_at"`
	UpdatedAt time.Time      `bson:"updated_at"`
	CreatedBy string         `bson:"created_by,omitempty"`
}

type tierDocument struct {
	ColorMode  string               `bson:"color_mode"`
	DuplexMode string               `bson:"duplex_mode"`
	BasePrice  primitive.Decimal128 `bson:"base_price"`
	BaseLimit  int                  `bson:"base_limit"`
	ExtraPrice primitive.Decimal128 `bson:"extra_price"`
}

// PricingRepository stores pricing versions in MongoDB, one document per version.
type PricingRepository struct {
	collection *mongo.Collection
}

// NewPricingRepository creates a new pricing repository.
func NewPricingRepository(db *MongoDB) *PricingRepository {
	return &PricingRepository{
		collection: db.PricingConfigs,
	}
}

// GetActive returns the active configuration for ownerID, or nil if there is none.
func (r *PricingRepository) GetActive(ctx context.Context, ownerID string) (*PricingConfigRecord, error) {
	var doc pricingConfigDocument
	err := r.collection.FindOne(ctx, bson.M{"owner_id": ownerID, "active": true}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.toRecord()
}

// Create deactivates the owner's current version and inserts cfg as the next one.
func (r *PricingRepository) Create(ctx context.Context, ownerID string, cfg model.PricingConfiguration, createdBy string) (*PricingConfigRecord, error) {
	var latest pricingConfigDocument
	version := 1
	err := r.collection.FindOne(ctx,
		bson.M{"owner_id": ownerID},
		options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}}).SetProjection(bson.M{"version": 1}),
	).Decode(&latest)
	switch {
	case err == nil:
		version = latest.Version + 1
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, err
	}

	now := time.Now().UTC()
	if _, err := r.collection.UpdateMany(
		ctx,
		bson.M{"owner_id": ownerID, "active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": now}},
	); err != nil {
		return nil, err
	}

	doc, err := newPricingConfigDocument(ownerID, cfg)
	if err != nil {
		return nil, err
	}
	doc.Version = version
	doc.CreatedAt = now
	doc.UpdatedAt = now
	doc.CreatedBy = createdBy

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toRecord()
}

// List returns the owner's versions, newest first.
func (r *PricingRepository) List(ctx context.Context, ownerID string, limit int) ([]PricingConfigRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "version", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []pricingConfigDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]PricingConfigRecord, 0, len(docs))
	for _, d := range docs {
		rec, err := d.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

func newPricingConfigDocument(ownerID string, cfg model.PricingConfiguration) (pricingConfigDocument, error) {
	doc := pricingConfigDocument{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Active:  true,
		Tiers:   make([]tierDocument, 0, cfg.Len()),
	}
	for _, cell := range cfg.Cells() {
		base, err := primitive.ParseDecimal128(cell.BasePrice.String())
		if err != nil {
			return doc, fmt.Errorf("encode base price of %s: %w", cell.Key(), err)
		}
		extra, err := primitive.ParseDecimal128(cell.ExtraPrice.String())
		if err != nil {
			return doc, fmt.Errorf("encode extra price of %s: %w", cell.Key(), err)
		}
		doc.Tiers = append(doc.Tiers, tierDocument{
			ColorMode:  string(cell.ColorMode),
			DuplexMode: string(cell.DuplexMode),
			BasePrice:  base,
			BaseLimit:  cell.BaseLimit,
			ExtraPrice: extra,
		})
	}
	return doc, nil
}

func (d pricingConfigDocument) toRecord() (*PricingConfigRecord, error) {
	cells := make([]model.TierCell, 0, len(d.Tiers))
	for _, t := range d.Tiers {
		base, err := decimal.NewFromString(t.BasePrice.String())
		if err != nil {
			return nil, fmt.Errorf("decode base price: %w", err)
		}
		extra, err := decimal.NewFromString(t.ExtraPrice.String())
		if err != nil {
			return nil, fmt.Errorf("decode extra price: %w", err)
		}
		cells = append(cells, model.TierCell{
			ColorMode:  model.ColorMode(t.ColorMode),
			DuplexMode: model.DuplexMode(t.DuplexMode),
			PricingTier: model.PricingTier{
				BasePrice:  base,
				BaseLimit:  t.BaseLimit,
				ExtraPrice: extra,
			},
		})
	}
	cfg, err := model.NewPricingConfigurationFromCells(cells)
	if err != nil {
		return nil, fmt.Errorf("pricing config %s: %w", d.ID, err)
	}
	return &PricingConfigRecord{
		ID:            d.ID,
		OwnerID:       d.OwnerID,
		Configuration: cfg,
		Active:        d.Active,
		Version:       d.Version,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		CreatedBy:     d.CreatedBy,
	}, nil
}
