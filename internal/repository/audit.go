package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// AuditRepository stores audit events in MongoDB.
type AuditRepository struct {
	collection *mongo.Collection
}

// NewAuditRepository creates a new audit repository.
func NewAuditRepository(db *MongoDB) *AuditRepository {
	return &AuditRepository{
		collection: db.AuditEvents,
	}
}

// Create inserts a single event, assigning an id and timestamp when missing.
func (r *AuditRepository) Create(ctx context.Context, event *model.AuditEvent) error {
	prepareAuditEvent(event)
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// CreateMany inserts events in bulk.
func (r *AuditRepository) CreateMany(ctx context.Context, events []*model.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}
	docs := make([]interface{}, len(events))
	for i, e := range events {
		prepareAuditEvent(e)
		docs[i] = e
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns matching events, newest first.
func (r *AuditRepository) Query(ctx context.Context, q model.AuditQuery) ([]model.AuditEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}

	cursor, err := r.collection.Find(ctx, auditFilter(q), opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	events := []model.AuditEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Count returns the number of matching events.
func (r *AuditRepository) Count(ctx context.Context, q model.AuditQuery) (int64, error) {
	return r.collection.CountDocuments(ctx, auditFilter(q))
}

func prepareAuditEvent(e *model.AuditEvent) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
}

func auditFilter(q model.AuditQuery) bson.M {
	filter := bson.M{}
	if q.ShopID != "" {
		filter["shop_id"] = q.ShopID
	}
	if q.Action != "" {
		filter["action"] = q.Action
	}
	if q.RequestID != "" {
		filter["request_id"] = q.RequestID
	}
	if q.Since != nil || q.Until != nil {
		window := bson.M{}
		if q.Since != nil {
			window["$gte"] = *q.Since
		}
		if q.Until != nil {
			window["$lte"] = *q.Until
		}
		filter["timestamp"] = window
	}
	return filter
}
