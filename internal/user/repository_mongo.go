package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores accounts in the `users` collection.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("users")}
}

func (r *MongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoRepository) GetByVerifyToken(ctx context.Context, token string) (User, error) {
	return r.findOne(ctx, bson.M{"verifyToken": token})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (User, error) {
	var u User
	err := r.collection.FindOne(ctx, filter).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (r *MongoRepository) Create(ctx context.Context, u User) (User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if _, err := r.collection.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrEmailExists
		}
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, u User) (User, error) {
	u.ID = id
	update := bson.M{"$set": bson.M{
		"email":       u.Email,
		"name":        u.Name,
		"phone":       u.Phone,
		"role":        u.Role,
		"password":    u.Password,
		"verified":    u.Verified,
		"verifyToken": u.VerifyToken,
		"updatedAt":   u.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return User{}, fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}
