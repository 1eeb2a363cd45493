package user

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	userColumns = `id, email, name, phone, role, password, verified, verify_token, created_at, updated_at`

	getUserByIDQuery          = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	getUserByEmailQuery       = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	getUserByVerifyTokenQuery = `SELECT ` + userColumns + ` FROM users WHERE verify_token = $1 AND verify_token <> ''`

	insertUserQuery = `
		INSERT INTO users (id, email, name, phone, role, password, verified, verify_token, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	updateUserQuery = `
		UPDATE users
		SET email = $1,
			name = $2,
			phone = $3,
			role = $4,
			password = $5,
			verified = $6,
			verify_token = $7,
			updated_at = $8
		WHERE id = $9
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByIDQuery, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByEmailQuery, email))
}

func (r *PostgresRepository) GetByVerifyToken(ctx context.Context, token string) (User, error) {
	return scanUser(r.db.QueryRowContext(ctx, getUserByVerifyTokenQuery, token))
}

func (r *PostgresRepository) Create(ctx context.Context, u User) (User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, insertUserQuery,
		u.ID, u.Email, u.Name, u.Phone, u.Role, u.Password, u.Verified,
		u.VerifyToken, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, u User) (User, error) {
	res, err := r.db.ExecContext(ctx, updateUserQuery,
		u.Email, u.Name, u.Phone, u.Role, u.Password, u.Verified,
		u.VerifyToken, u.UpdatedAt, id)
	if err != nil {
		return User{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Phone, &u.Role, &u.Password,
		&u.Verified, &u.VerifyToken, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}
