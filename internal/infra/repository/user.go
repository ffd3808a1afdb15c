package repository

import (
	"context"

	"kyren/internal/infra"
	"kyren/internal/infra/db"
	"kyren/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	const query = `
		SELECT id, bale_id, username, name, role
		FROM users
		WHERE id = $1`

	var u shared.UserSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.BaleID, &u.Username, &u.Name, &u.Role)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user", err)
	}
	return &u, nil
}

func (r *UserRepository) UpsertByBaleID(ctx context.Context, baleID, username, name string) (*shared.UserSnapshot, error) {
	const upsert = `
		INSERT INTO users (id, bale_id, username, name, role)
		VALUES ($1, $2, $3, $4, 'buyer')
		ON CONFLICT (bale_id)
		DO UPDATE SET username = EXCLUDED.username, name = EXCLUDED.name, updated_at = now()
		RETURNING id, bale_id, username, name, role`

	var u shared.UserSnapshot
	err := r.db.QueryRow(ctx, upsert, uuid.New(), baleID, username, name).
		Scan(&u.ID, &u.BaleID, &u.Username, &u.Name, &u.Role)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to upsert user", err)
	}
	return &u, nil
}
