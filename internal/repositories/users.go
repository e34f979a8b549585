package repositories

import (
	"context"
	"strings"

	"coursetrack-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, name, email, password_hash, created_at)
VALUES ($1,$2,$3,$4,$5)
`, user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt)
	return translate(err)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = $1)`, strings.ToLower(email))
	return exists, translate(err)
}

// GetByEmail returns the user including the password hash.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
SELECT id, name, email, password_hash, created_at
FROM users
WHERE lower(email) = $1
`, strings.ToLower(email))
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetByID never loads the password hash.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT id, name, email, created_at FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
