package repository

import (
	"context"
	"database/sql"

	"gatherly-api/core/database"
	"gatherly-api/core/logger"
	"gatherly-api/modules/user/entity"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// UserRepository handles user database operations
type UserRepository struct {
	DB database.Database
}

// NewUserRepository creates a new repository instance
func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{DB: db}
}

// UserRepositoryInterface defines the repository contract
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error)
	Search(ctx context.Context, query string, limit int) ([]entity.User, error)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `
		SELECT id, name, email, avatar_key, created_at, updated_at
		FROM users WHERE id = $1
	`

	var user entity.User
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("UserRepository:GetByID", "error", err)
		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, name, email, avatar_key, created_at, updated_at
		FROM users WHERE id IN (?)
	`, ids)
	if err != nil {
		logger.Error("UserRepository:GetByIDs", "error", err)
		return nil, err
	}
	query = r.DB.SQLx().Rebind(query)

	var users []entity.User
	if err := r.DB.SelectContext(ctx, &users, query, args...); err != nil {
		logger.Error("UserRepository:GetByIDs", "error", err)
		return nil, err
	}

	return users, nil
}

// Search matches name or email, case-insensitively. Used to find people to
// invite.
func (r *UserRepository) Search(ctx context.Context, search string, limit int) ([]entity.User, error) {
	query := `
		SELECT id, name, email, avatar_key, created_at, updated_at
		FROM users
		WHERE name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT $2
	`

	var users []entity.User
	if err := r.DB.SelectContext(ctx, &users, query, search, limit); err != nil {
		logger.Error("UserRepository:Search", "error", err)
		return nil, err
	}

	return users, nil
}
