package catalog

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listProductsQuery = `
		SELECT id, name, brand, price, original_price, category, skin_type, description, ingredients, benefits, image, images, featured, rating, review_count, created_at, updated_at
		FROM products
		ORDER BY name
	`
	getProductByIDQuery = `
		SELECT id, name, brand, price, original_price, category, skin_type, description, ingredients, benefits, image, images, featured, rating, review_count, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO products (id, name, brand, price, original_price, category, skin_type, description, ingredients, benefits, image, images, featured, rating, review_count, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			brand = $2,
			price = $3,
			original_price = $4,
			category = $5,
			skin_type = $6,
			description = $7,
			ingredients = $8,
			benefits = $9,
			image = $10,
			images = $11,
			featured = $12,
			updated_at = $13
		WHERE id = $14
	`
	setProductRatingQuery = `UPDATE products SET rating = $1, review_count = $2 WHERE id = $3`
	deleteProductQuery    = `DELETE FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Product, error) {
	row := r.db.QueryRowContext(ctx, getProductByIDQuery, id)
	p, err := scanProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, insertProductQuery,
		p.ID, p.Name, p.Brand, p.Price, p.OriginalPrice, p.Category, p.SkinType,
		p.Description, marshalStrings(p.Ingredients), marshalStrings(p.Benefits),
		p.Image, marshalStrings(p.Images), p.Featured, p.Rating, p.ReviewCount,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, p Product) (Product, error) {
	res, err := r.db.ExecContext(ctx, updateProductQuery,
		p.Name, p.Brand, p.Price, p.OriginalPrice, p.Category, p.SkinType,
		p.Description, marshalStrings(p.Ingredients), marshalStrings(p.Benefits),
		p.Image, marshalStrings(p.Images), p.Featured, p.UpdatedAt, id)
	if err != nil {
		return Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Product{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	res, err := r.db.ExecContext(ctx, setProductRatingQuery, rating, reviewCount, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p                              Product
		originalPrice                  sql.NullInt64
		skinType                       sql.NullString
		ingredients, benefits, gallery []byte
	)
	err := row.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &originalPrice, &p.Category,
		&skinType, &p.Description, &ingredients, &benefits, &p.Image, &gallery,
		&p.Featured, &p.Rating, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	if originalPrice.Valid {
		v := int(originalPrice.Int64)
		p.OriginalPrice = &v
	}
	if skinType.Valid {
		v := skinType.String
		p.SkinType = &v
	}
	p.Ingredients = unmarshalStrings(ingredients)
	p.Benefits = unmarshalStrings(benefits)
	p.Images = unmarshalStrings(gallery)
	return p, nil
}

// string slices are stored as jsonb columns
func marshalStrings(values []string) []byte {
	if values == nil {
		values = []string{}
	}
	b, _ := json.Marshal(values)
	return b
}

func unmarshalStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
