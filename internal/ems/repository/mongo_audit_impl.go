package repository

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"ems/internal/ems/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAuditRepository implements AuditRepository with one collection per sink
type MongoAuditRepository struct {
	Sinks map[model.LogKind]*mongo.Collection
}

func NewMongoAuditRepository(db *mongo.Database, managerLogCollection, selfLogCollection string) *MongoAuditRepository {
	return &MongoAuditRepository{
		Sinks: map[model.LogKind]*mongo.Collection{
			model.LogKindManager: db.Collection(managerLogCollection),
			model.LogKindSelf:    db.Collection(selfLogCollection),
		},
	}
}

func (r *MongoAuditRepository) sink(kind model.LogKind) (*mongo.Collection, error) {
	coll, ok := r.Sinks[kind]
	if !ok {
		return nil, fmt.Errorf("unknown audit sink %q", kind)
	}
	return coll, nil
}

// EnsureIndexes creates indexes for efficient querying
func (r *MongoAuditRepository) EnsureIndexes(ctx context.Context) error {
	for kind, coll := range r.Sinks {
		indexes := []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "timestamp", Value: -1}},
				Options: options.Index().SetName("idx_timestamp"),
			},
			{
				Keys:    bson.D{{Key: "actorId", Value: 1}, {Key: "timestamp", Value: -1}},
				Options: options.Index().SetName("idx_actor_timestamp"),
			},
		}
		if kind == model.LogKindManager {
			indexes = append(indexes, mongo.IndexModel{
				Keys:    bson.D{{Key: "targetId", Value: 1}, {Key: "timestamp", Value: -1}},
				Options: options.Index().SetName("idx_target_timestamp"),
			})
		}
		if _, err := coll.Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("%s sink: %w", kind, err)
		}
	}
	return nil
}

// Append inserts a new entry (append-only)
func (r *MongoAuditRepository) Append(ctx context.Context, entry *model.AuditEntry) error {
	coll, err := r.sink(entry.Kind)
	if err != nil {
		return err
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	_, err = coll.InsertOne(ctx, entry)
	return err
}

// Find returns entries matching the filter sorted by timestamp desc
func (r *MongoAuditRepository) Find(ctx context.Context, kind model.LogKind, f model.AuditFilter) ([]*model.AuditEntry, error) {
	coll, err := r.sink(kind)
	if err != nil {
		return nil, err
	}

	filter := bson.M{}
	if f.ActorIDs != nil {
		filter["actorId"] = bson.M{"$in": f.ActorIDs}
	}
	if f.Action != "" {
		filter["action"] = bson.M{"$regex": regexp.QuoteMeta(f.Action), "$options": "i"}
	}
	if f.From != nil || f.To != nil {
		timeFilter := bson.M{}
		if f.From != nil {
			timeFilter["$gte"] = *f.From
		}
		if f.To != nil {
			timeFilter["$lte"] = *f.To
		}
		filter["timestamp"] = timeFilter
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []*model.AuditEntry{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
