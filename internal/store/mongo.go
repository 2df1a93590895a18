package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ayush/goalsetter/internal/models"
)

// MongoStore handles goal document CRUD in MongoDB.
type MongoStore struct {
	col *mongo.Collection
	now func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("goals"), now: time.Now}
}

// EnsureIndexes creates the owner index used by FindByOwner.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("mongo index: %w", err)
	}
	return nil
}

func (s *MongoStore) FindByOwner(ctx context.Context, userID string) ([]models.Goal, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find: %w", err)
	}
	defer cur.Close(ctx)

	goals := []models.Goal{}
	if err := cur.All(ctx, &goals); err != nil {
		return nil, fmt.Errorf("mongo decode: %w", err)
	}
	return goals, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*models.Goal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", id, ErrNotFound)
	}
	var goal models.Goal
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&goal); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("goal %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("mongo find one: %w", err)
	}
	return &goal, nil
}

func (s *MongoStore) Create(ctx context.Context, text, ownerID string) (*models.Goal, error) {
	now := s.now().UTC()
	goal := &models.Goal{
		UserID:    ownerID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := s.col.InsertOne(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("mongo insert: %w", err)
	}
	goal.ID = res.InsertedID.(primitive.ObjectID)
	return goal, nil
}

// UpdateFields sets the non-nil fields of upd and returns the updated goal.
// The owner field is never written.
func (s *MongoStore) UpdateFields(ctx context.Context, id string, upd models.GoalUpdate) (*models.Goal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid id %q: %w", id, ErrNotFound)
	}

	set := bson.M{"updated_at": s.now().UTC()}
	if upd.Text != nil {
		set["text"] = *upd.Text
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var goal models.Goal
	err = s.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&goal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("goal %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("mongo update: %w", err)
	}
	return &goal, nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", id, ErrNotFound)
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("goal %s: %w", id, ErrNotFound)
	}
	return nil
}
