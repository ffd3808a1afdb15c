package repository

import (
	"context"
	"time"

	"kyren/internal/domain/groupbuy"
	"kyren/internal/infra"
	"kyren/internal/infra/db"

	"github.com/google/uuid"
)

const groupColumns = `id, product_id, current_count, target_count, is_active, created_at, updated_at`

type GroupBuyRepository struct {
	db db.DBTX
}

func NewGroupBuyRepository(dbtx db.DBTX) *GroupBuyRepository {
	return &GroupBuyRepository{db: dbtx}
}

func (r *GroupBuyRepository) Create(ctx context.Context, g *groupbuy.GroupBuy) error {
	const insertGroup = `
		INSERT INTO group_buys (id, product_id, current_count, target_count, is_active)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, insertGroup, g.ID(), g.ProductID(), g.CurrentCount(), g.TargetCount(), g.IsActive())
	if err != nil {
		return infra.WrapRepoErr("failed to create group buy", err)
	}
	return nil
}

// FindActiveForUpdate locks the product's active group row for the rest of
// the transaction. Joins and rearrangement for the same product serialize on
// this lock.
func (r *GroupBuyRepository) FindActiveForUpdate(ctx context.Context, productID uuid.UUID) (*groupbuy.GroupBuy, error) {
	const query = `
		SELECT ` + groupColumns + `
		FROM group_buys
		WHERE product_id = $1 AND is_active
		FOR UPDATE`

	g, err := scanGroup(r.db.QueryRow(ctx, query, productID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active group buy", err)
	}
	return g, nil
}

func (r *GroupBuyRepository) Update(ctx context.Context, g *groupbuy.GroupBuy) error {
	const update = `
		UPDATE group_buys
		SET current_count = $2, is_active = $3, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, update, g.ID(), g.CurrentCount(), g.IsActive())
	if err != nil {
		return infra.WrapRepoErr("failed to update group buy", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFoundErr("group buy not found for update")
	}
	return nil
}

func (r *GroupBuyRepository) ProductIDsWithIncompleteGroups(ctx context.Context) ([]uuid.UUID, error) {
	const query = `
		SELECT DISTINCT g.product_id
		FROM group_buys g
		WHERE g.current_count < g.target_count
		  AND EXISTS (
			SELECT 1 FROM orders o
			WHERE o.group_buy_id = g.id AND o.status = 'pending'
		  )`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products with incomplete groups", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate product ids", err)
	}
	return ids, nil
}

// FindIncompleteForUpdate keys on pending orders rather than is_active: the
// one-active-group index means a second incomplete group can only exist as a
// closed group whose buyers are still waiting, and those buyers are exactly
// who rearrangement rescues.
func (r *GroupBuyRepository) FindIncompleteForUpdate(ctx context.Context, productID uuid.UUID) ([]*groupbuy.GroupBuy, error) {
	const query = `
		SELECT g.id, g.product_id, g.current_count, g.target_count, g.is_active, g.created_at, g.updated_at
		FROM group_buys g
		WHERE g.product_id = $1
		  AND g.current_count < g.target_count
		  AND EXISTS (
			SELECT 1 FROM orders o
			WHERE o.group_buy_id = g.id AND o.status = 'pending'
		  )
		ORDER BY g.created_at
		FOR UPDATE OF g`

	return r.queryGroups(ctx, query, productID)
}

func (r *GroupBuyRepository) FindExpiredForUpdate(ctx context.Context, cutoff time.Time) ([]*groupbuy.GroupBuy, error) {
	const query = `
		SELECT ` + groupColumns + `
		FROM group_buys
		WHERE is_active AND updated_at < $1 AND current_count < target_count
		ORDER BY created_at
		FOR UPDATE`

	return r.queryGroups(ctx, query, cutoff)
}

func (r *GroupBuyRepository) queryGroups(ctx context.Context, query string, args ...any) ([]*groupbuy.GroupBuy, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query group buys", err)
	}
	defer rows.Close()

	var groups []*groupbuy.GroupBuy
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan group buy", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate group buys", err)
	}
	return groups, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (*groupbuy.GroupBuy, error) {
	var (
		id, productID             uuid.UUID
		currentCount, targetCount int
		isActive                  bool
		createdAt, updatedAt      time.Time
	)
	if err := row.Scan(&id, &productID, &currentCount, &targetCount, &isActive, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return groupbuy.ReconstructGroupBuy(id, productID, currentCount, targetCount, isActive, createdAt, updatedAt), nil
}
