package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores products in the `products` collection.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection("products")}
}

func (r *MongoRepository) List(ctx context.Context) ([]Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]Product, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return out, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (r *MongoRepository) Create(ctx context.Context, p Product) (Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return Product{}, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, p Product) (Product, error) {
	p.ID = id
	update := bson.M{"$set": bson.M{
		"name":          p.Name,
		"brand":         p.Brand,
		"price":         p.Price,
		"originalPrice": p.OriginalPrice,
		"category":      p.Category,
		"skinType":      p.SkinType,
		"description":   p.Description,
		"ingredients":   p.Ingredients,
		"benefits":      p.Benefits,
		"image":         p.Image,
		"images":        p.Images,
		"featured":      p.Featured,
		"updatedAt":     p.UpdatedAt,
	}}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) SetRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	update := bson.M{"$set": bson.M{
		"rating":      rating,
		"reviewCount": reviewCount,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update product rating: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
