package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"ems/internal/ems/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEmployeeRepository implements EmployeeRepository using MongoDB
type MongoEmployeeRepository struct {
	Collection *mongo.Collection
}

func NewMongoEmployeeRepository(db *mongo.Database, collectionName string) *MongoEmployeeRepository {
	return &MongoEmployeeRepository{Collection: db.Collection(collectionName)}
}

func (r *MongoEmployeeRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		// Name resolution for log queries
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}},
			Options: options.Index().SetName("idx_role_name"),
		},
		{
			Keys:    bson.D{{Key: "employmentStatus", Value: 1}},
			Options: options.Index().SetName("idx_employment_status"),
		},
	}
	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *MongoEmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	now := time.Now()
	employee.CreatedAt = now
	employee.UpdatedAt = now

	_, err := r.Collection.InsertOne(ctx, employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *MongoEmployeeRepository) findOne(ctx context.Context, filter bson.M) (*model.Employee, error) {
	var employee model.Employee
	err := r.Collection.FindOne(ctx, filter).Decode(&employee)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *MongoEmployeeRepository) FindByID(ctx context.Context, id string) (*model.Employee, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoEmployeeRepository) FindByEmail(ctx context.Context, email string) (*model.Employee, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoEmployeeRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*model.Employee, error) {
	cursor, err := r.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []*model.Employee{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *MongoEmployeeRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Employee, error) {
	if len(ids) == 0 {
		return []*model.Employee{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoEmployeeRepository) FindIDsByName(ctx context.Context, substr string, roles []model.Role) ([]string, error) {
	pattern := bson.M{"$regex": regexp.QuoteMeta(substr), "$options": "i"}
	filter := bson.M{
		"$or": bson.A{
			bson.M{"firstName": pattern},
			bson.M{"lastName": pattern},
		},
	}
	if len(roles) > 0 {
		filter["role"] = bson.M{"$in": roles}
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (r *MongoEmployeeRepository) ListActive(ctx context.Context) ([]*model.Employee, error) {
	filter := bson.M{"employmentStatus": bson.M{"$ne": model.StatusTerminated}}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "lastName", Value: 1}, {Key: "firstName", Value: 1}}))
}

func (r *MongoEmployeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	expected := employee.Version

	next := *employee
	next.Version = expected + 1
	next.UpdatedAt = time.Now()

	res, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": employee.ID, "version": expected}, &next)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	if res.MatchedCount == 0 {
		count, err := r.Collection.CountDocuments(ctx, bson.M{"_id": employee.ID})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrVersionConflict
	}

	*employee = next
	return nil
}

func (r *MongoEmployeeRepository) set(ctx context.Context, id string, fields bson.M) (*model.Employee, error) {
	fields["updatedAt"] = time.Now()
	update := bson.M{"$set": fields, "$inc": bson.M{"version": 1}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var result model.Employee
	err := r.Collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *MongoEmployeeRepository) SetApproved(ctx context.Context, id string, approved bool) (*model.Employee, error) {
	return r.set(ctx, id, bson.M{"approved": approved})
}

func (r *MongoEmployeeRepository) SetEmploymentStatus(ctx context.Context, id string, status model.EmploymentStatus) (*model.Employee, error) {
	return r.set(ctx, id, bson.M{"employmentStatus": status})
}
