package readstore

import (
	"context"

	"kyren/internal/infra"
	"kyren/internal/infra/db"
	"kyren/internal/usecase/queries"

	"github.com/google/uuid"
)

type GroupReadStore struct {
	db db.DBTX
}

func NewGroupReadStore(dbtx db.DBTX) *GroupReadStore {
	return &GroupReadStore{db: dbtx}
}

const groupViewColumns = `
	g.id, g.product_id, p.name, g.current_count, g.target_count, g.is_active,
	g.created_at, g.updated_at`

func (r *GroupReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.GroupView, error) {
	query := `
		SELECT` + groupViewColumns + `
		FROM group_buys g
		JOIN products p ON p.id = g.product_id
		WHERE g.id = $1`

	view, err := r.scanGroupView(ctx, query, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find group view", err)
	}
	return view, nil
}

func (r *GroupReadStore) FindActiveByProductID(ctx context.Context, productID uuid.UUID) (*queries.GroupView, error) {
	query := `
		SELECT` + groupViewColumns + `
		FROM group_buys g
		JOIN products p ON p.id = g.product_id
		WHERE g.product_id = $1 AND g.is_active`

	view, err := r.scanGroupView(ctx, query, productID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active group view", err)
	}
	return view, nil
}

func (r *GroupReadStore) scanGroupView(ctx context.Context, query string, arg any) (*queries.GroupView, error) {
	var view queries.GroupView
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&view.ID, &view.ProductID, &view.ProductName, &view.CurrentCount,
		&view.TargetCount, &view.IsActive, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &view, nil
}
