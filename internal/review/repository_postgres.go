package review

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listReviewsByProductQuery = `
		SELECT id, product_id, user_email, user_name, rating, comment, review_date
		FROM reviews
		WHERE product_id = $1
		ORDER BY review_date DESC
	`
	getReviewByProductAndEmailQuery = `
		SELECT id, product_id, user_email, user_name, rating, comment, review_date
		FROM reviews
		WHERE product_id = $1 AND user_email = $2
	`
	getReviewByIDQuery = `
		SELECT id, product_id, user_email, user_name, rating, comment, review_date
		FROM reviews
		WHERE id = $1
	`
	insertReviewQuery = `
		INSERT INTO reviews (id, product_id, user_email, user_name, rating, comment, review_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`
	updateReviewQuery = `
		UPDATE reviews
		SET rating = $1,
			comment = $2,
			review_date = $3
		WHERE id = $4
	`
	deleteReviewQuery = `DELETE FROM reviews WHERE id = $1`

	listTopRatedQuery = `
		SELECT id, product_id, user_email, user_name, rating, comment, review_date
		FROM reviews
		WHERE rating >= $1
		ORDER BY review_date DESC
		LIMIT $2
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsByProductQuery, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows)
}

func (r *PostgresRepository) GetByProductAndEmail(ctx context.Context, productID, email string) (Review, error) {
	row := r.db.QueryRowContext(ctx, getReviewByProductAndEmailQuery, productID, email)
	return scanReview(row)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Review, error) {
	row := r.db.QueryRowContext(ctx, getReviewByIDQuery, id)
	return scanReview(row)
}

func (r *PostgresRepository) Create(ctx context.Context, rev Review) (Review, error) {
	if rev.ID == "" {
		rev.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, insertReviewQuery,
		rev.ID, rev.ProductID, rev.UserEmail, rev.UserName, rev.Rating, rev.Comment, rev.Date)
	if err != nil {
		return Review{}, err
	}
	return rev, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, rev Review) (Review, error) {
	res, err := r.db.ExecContext(ctx, updateReviewQuery, rev.Rating, rev.Comment, rev.Date, id)
	if err != nil {
		return Review{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Review{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, deleteReviewQuery, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListTopRated(ctx context.Context, minRating, limit int) ([]Review, error) {
	rows, err := r.db.QueryContext(ctx, listTopRatedQuery, minRating, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReviews(rows)
}

func collectReviews(rows *sql.Rows) ([]Review, error) {
	out := make([]Review, 0)
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (Review, error) {
	var rev Review
	err := row.Scan(&rev.ID, &rev.ProductID, &rev.UserEmail, &rev.UserName,
		&rev.Rating, &rev.Comment, &rev.Date)
	if err != nil {
		if err == sql.ErrNoRows {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	return rev, nil
}
