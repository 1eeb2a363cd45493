package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores reviews in the `reviews` collection.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("reviews")}
}

// CreateIndexes enforces the one-review-per-(user, product) invariant at
// the store level instead of relying on the client-side check alone.
func (r *MongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "productId", Value: 1}, {Key: "userEmail", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "rating", Value: -1}, {Key: "date", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.collection.Find(ctx, bson.M{"productId": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]Review, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return out, nil
}

func (r *MongoRepository) GetByProductAndEmail(ctx context.Context, productID, email string) (Review, error) {
	var rev Review
	filter := bson.M{"productId": productID, "userEmail": email}
	err := r.collection.FindOne(ctx, filter).Decode(&rev)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Review{}, ErrNotFound
		}
		return Review{}, fmt.Errorf("failed to get review: %w", err)
	}
	return rev, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Review, error) {
	var rev Review
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rev)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Review{}, ErrNotFound
		}
		return Review{}, fmt.Errorf("failed to get review: %w", err)
	}
	return rev, nil
}

func (r *MongoRepository) Create(ctx context.Context, rev Review) (Review, error) {
	if rev.ID == "" {
		rev.ID = uuid.NewString()
	}
	if _, err := r.collection.InsertOne(ctx, rev); err != nil {
		return Review{}, fmt.Errorf("failed to create review: %w", err)
	}
	return rev, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, rev Review) (Review, error) {
	rev.ID = id
	update := bson.M{"$set": bson.M{
		"rating":  rev.Rating,
		"comment": rev.Comment,
		"date":    rev.Date,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return Review{}, fmt.Errorf("failed to update review: %w", err)
	}
	if res.MatchedCount == 0 {
		return Review{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) ListTopRated(ctx context.Context, minRating, limit int) ([]Review, error) {
	filter := bson.M{"rating": bson.M{"$gte": minRating}}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list top rated reviews: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]Review, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return out, nil
}
